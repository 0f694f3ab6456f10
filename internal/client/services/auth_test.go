package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/session"
	"github.com/dmitrijs2005/planplant/internal/client/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_MissingImage_NoRequest(t *testing.T) {
	fc := newFakeClient()
	m, _ := newSession(t)
	svc := NewAuthService(fc, m)

	err := svc.Register(context.Background(), "Ann", "a@b.com", "p", "")
	require.Error(t, err)
	assert.Equal(t, "Profile picture missing.", err.Error())
	assert.Empty(t, fc.calls)
}

func TestRegister_Chain(t *testing.T) {
	fc := newFakeClient()
	m, _ := newSession(t)
	svc := NewAuthService(fc, m, clockOpt())

	require.NoError(t, svc.Register(context.Background(), "Ann", "a@b.com", "p", pngURI))

	assert.Equal(t, []string{client.OpGetUploadURL, client.OpUpload, client.OpRegister}, fc.calls)
	assert.Equal(t, "2024-06-02T10:04:05.123Z_Ann.png", fc.LastFileName)
	assert.Equal(t, "image/png", fc.LastFileType)
	assert.Equal(t, "http://s3/put?sig", fc.LastSigned)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, fc.LastData)
	assert.Equal(t, client.RegisterRequest{
		UserName: "Ann", Email: "a@b.com", Password: "p", Image: "http://s3/obj.png",
	}, fc.LastRegister)
}

func TestRegister_StepFailuresUseOpText(t *testing.T) {
	cases := map[string]func(fc *fakeClient){
		"upload url": func(fc *fakeClient) { fc.GetUploadURLErr = domainErr(client.OpGetUploadURL, "S3 down") },
		"upload":     func(fc *fakeClient) { fc.UploadErr = errors.New("403") },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			fc := newFakeClient()
			setup(fc)
			m, _ := newSession(t)

			err := NewAuthService(fc, m).Register(context.Background(), "Ann", "e", "p", pngURI)
			require.Error(t, err)
			assert.Equal(t, "Sign Up Error", err.Error())
			assert.False(t, fc.called(client.OpRegister))
		})
	}
}

func TestRegister_BadDataURI(t *testing.T) {
	fc := newFakeClient()
	m, _ := newSession(t)

	err := NewAuthService(fc, m).Register(context.Background(), "Ann", "e", "p", "not-a-data-uri")
	require.Error(t, err)
	assert.Equal(t, "Sign Up Error", err.Error())
	assert.Empty(t, fc.calls)
}

func TestSignUp_RegisterErrorShortCircuits(t *testing.T) {
	fc := newFakeClient()
	fc.RegisterErr = domainErr(client.OpRegister, "E")
	m, _ := newSession(t)

	err := NewAuthService(fc, m).SignUp(context.Background(), "Ann", "a@b.com", "p", pngURI)
	require.Error(t, err)
	assert.Equal(t, "E", err.Error())
	assert.False(t, fc.called(client.OpLogin), "login must not run after a failed register")
	assert.False(t, m.Snapshot().LoggedIn())
}

func TestSignUp_ChainsIntoLogin(t *testing.T) {
	fc := newFakeClient()
	fc.LoginResp = client.LoginResponse{Token: "t", UserName: "Ann", ID: "1", Image: "http://s3/obj.png"}
	m, _ := newSession(t)

	require.NoError(t, NewAuthService(fc, m).SignUp(context.Background(), "Ann", "a@b.com", "p", pngURI))
	assert.Equal(t, []string{client.OpGetUploadURL, client.OpUpload, client.OpRegister, client.OpLogin}, fc.calls)
	assert.Equal(t, "a@b.com", fc.LastLoginEmail)
	assert.True(t, m.Snapshot().LoggedIn())
}

func TestLogin_CommitsEverything(t *testing.T) {
	fc := newFakeClient()
	fc.LoginResp = client.LoginResponse{
		Token: "t", UserName: "A", ID: "1", Image: "http://x/i.png",
		Settings: map[string]bool{"vibrate": false}, HomeName: session.Ptr("Flat"),
	}
	m, st := newSession(t)

	require.NoError(t, NewAuthService(fc, m).Login(context.Background(), "a@b.com", "p"))

	s := m.Snapshot()
	assert.Equal(t, "t", s.Token)
	assert.Equal(t, "A", s.UserName)
	assert.Equal(t, "1", s.UserID)
	assert.Equal(t, "http://x/i.png", s.Image)
	assert.Equal(t, "Flat", s.HomeName)
	assert.Equal(t, session.Settings{"vibrate": false}, s.Settings)

	v, _, _ := st.Get(context.Background(), session.KeyHomeName)
	assert.Equal(t, "Flat", v)
}

type storeClock struct{ now time.Time }

func (c storeClock) Now() time.Time { return c.now }

func TestLogin_OverHTTPWritesFullRecord(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api_v1/user/login", r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &got)
		_, _ = io.WriteString(w, `{"token":"t","userName":"A","id":"1","image":"http://x/i.png","settings":{"vibrate":true},"homeName":null}`)
	}))
	t.Cleanup(srv.Close)

	st := store.NewMemoryStore(store.WithClock(storeClock{fixedNow}))
	m := session.NewManager(st)
	api := client.NewHTTPClient(srv.URL+"/", "api_v1", client.WithHTTPClient(srv.Client()))
	ctx := context.Background()

	require.NoError(t, NewAuthService(api, m).Login(ctx, "a@b.com", "p"))
	assert.Equal(t, map[string]string{"email": "a@b.com", "password": "p"}, got)

	s := m.Snapshot()
	assert.Equal(t, "t", s.Token)
	assert.Equal(t, "A", s.UserName)
	assert.Equal(t, "1", s.UserID)
	assert.Equal(t, "http://x/i.png", s.Image)
	assert.Equal(t, session.Settings{"vibrate": true}, s.Settings)
	assert.Empty(t, s.HomeName)

	want := fixedNow.AddDate(0, 0, 365)
	for _, k := range session.AllKeys {
		exp, ok := st.ExpiresAt(k)
		require.True(t, ok, k)
		assert.Equal(t, want, exp, k)
	}

	v, ok, err := st.Get(ctx, session.KeyHomeName)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "", v)

	v, _, _ = st.Get(ctx, session.KeySettings)
	assert.JSONEq(t, `{"vibrate":true}`, v)
}

func TestLogin_DefaultsMissingSettings(t *testing.T) {
	fc := newFakeClient()
	fc.LoginResp = client.LoginResponse{Token: "t", UserName: "A", ID: "1", Image: "i"}
	m, _ := newSession(t)

	require.NoError(t, NewAuthService(fc, m).Login(context.Background(), "e", "p"))
	assert.Equal(t, session.DefaultSettings(), m.Settings())
	assert.False(t, m.Snapshot().HasHome())
}

func TestLogin_ErrorLeavesSessionAlone(t *testing.T) {
	fc := newFakeClient()
	fc.LoginErr = domainErr(client.OpLogin, "Wrong password")
	m, _ := newSession(t)

	err := NewAuthService(fc, m).Login(context.Background(), "e", "p")
	require.Error(t, err)
	assert.Equal(t, "Wrong password", err.Error())
	assert.False(t, m.Snapshot().LoggedIn())
}

func TestLogoutAndIsLoggedIn(t *testing.T) {
	fc := newFakeClient()
	m, _ := loggedIn(t)
	svc := NewAuthService(fc, m)
	ctx := context.Background()

	assert.True(t, svc.IsLoggedIn(ctx))
	require.NoError(t, svc.Logout(ctx))
	assert.False(t, m.Snapshot().LoggedIn())
	assert.False(t, svc.IsLoggedIn(ctx))
}
