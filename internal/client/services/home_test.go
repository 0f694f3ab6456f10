package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHome_MissingImage(t *testing.T) {
	fc := newFakeClient()
	m, _ := loggedIn(t)

	err := NewHomeService(fc, m).CreateHome(context.Background(), "Flat", "p", "")
	require.Error(t, err)
	assert.Equal(t, "Home picture missing.", err.Error())
	assert.Empty(t, fc.calls)
}

func TestCreateHome_Chain(t *testing.T) {
	fc := newFakeClient()
	m, _ := loggedIn(t)

	require.NoError(t, NewHomeService(fc, m, clockOpt()).CreateHome(context.Background(), "Flat", "p", pngURI))
	assert.Equal(t, []string{client.OpGetUploadURL, client.OpUpload, client.OpCreateHome}, fc.calls)
	assert.Equal(t, "2024-06-02T10:04:05.123Z_home_Flat.png", fc.LastFileName)
	assert.Equal(t, "tok", fc.LastToken)
	assert.Equal(t, []string{"Flat", "p", "http://s3/obj.png"}, fc.LastArgs)
	assert.False(t, m.Snapshot().HasHome(), "creating alone does not join")
}

func TestCreateHome_UploadFailure(t *testing.T) {
	fc := newFakeClient()
	fc.GetUploadURLErr = &client.Error{Op: client.OpGetUploadURL, Message: "GetUploadURL Error"}
	m, _ := loggedIn(t)

	err := NewHomeService(fc, m).CreateHome(context.Background(), "Flat", "p", pngURI)
	require.Error(t, err)
	assert.Equal(t, "Error creating Home", err.Error())
}

func TestCreateAndJoin(t *testing.T) {
	fc := newFakeClient()
	m, st := loggedIn(t)

	require.NoError(t, NewHomeService(fc, m).CreateAndJoin(context.Background(), "Flat", "p", pngURI))
	assert.Equal(t, []string{client.OpGetUploadURL, client.OpUpload, client.OpCreateHome, client.OpJoinHome}, fc.calls)
	assert.Equal(t, []string{"Flat", "p"}, fc.LastArgs)
	assert.Equal(t, "Ann", fc.LastUserName)
	assert.Equal(t, "Flat", m.HomeName())

	v, _, _ := st.Get(context.Background(), session.KeyHomeName)
	assert.Equal(t, "Flat", v)
}

func TestCreateAndJoin_CreateErrorShortCircuits(t *testing.T) {
	fc := newFakeClient()
	fc.CreateHomeErr = domainErr(client.OpCreateHome, "Home exists")
	m, _ := loggedIn(t)

	err := NewHomeService(fc, m).CreateAndJoin(context.Background(), "Flat", "p", pngURI)
	require.Error(t, err)
	assert.Equal(t, "Home exists", err.Error())
	assert.False(t, fc.called(client.OpJoinHome))
}

func TestJoinHome_Error(t *testing.T) {
	fc := newFakeClient()
	fc.JoinHomeErr = domainErr(client.OpJoinHome, "Wrong home password")
	m, _ := loggedIn(t)

	err := NewHomeService(fc, m).JoinHome(context.Background(), "Flat", "bad")
	require.Error(t, err)
	assert.Equal(t, "Wrong home password", err.Error())
	assert.False(t, m.Snapshot().HasHome())
}

func TestLeaveHome(t *testing.T) {
	fc := newFakeClient()
	m, st := loggedIn(t)
	ctx := context.Background()
	require.NoError(t, m.Commit(ctx, session.Fields{HomeName: session.Ptr("Flat")}))

	require.NoError(t, NewHomeService(fc, m).LeaveHome(ctx))
	assert.Equal(t, "Ann", fc.LastUserName)
	assert.False(t, m.Snapshot().HasHome())

	v, ok, _ := st.Get(ctx, session.KeyHomeName)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestLeaveHome_ErrorKeepsHome(t *testing.T) {
	fc := newFakeClient()
	fc.LeaveHomeErr = domainErr(client.OpLeaveHome, "E")
	m, _ := loggedIn(t)
	require.NoError(t, m.Commit(context.Background(), session.Fields{HomeName: session.Ptr("Flat")}))

	require.Error(t, NewHomeService(fc, m).LeaveHome(context.Background()))
	assert.Equal(t, "Flat", m.HomeName())
}
