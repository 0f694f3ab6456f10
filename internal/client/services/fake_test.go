package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/imagex"
	"github.com/dmitrijs2005/planplant/internal/client/session"
	"github.com/dmitrijs2005/planplant/internal/client/store"
	"github.com/stretchr/testify/require"
)

// ---- fake client ----

type fakeClient struct {
	calls []string

	UploadTarget    client.UploadTarget
	GetUploadURLErr error
	UploadErr       error
	RegisterErr     error
	LoginResp       client.LoginResponse
	LoginErr        error
	ChangeErr       map[string]error
	CreateHomeErr   error
	JoinHomeErr     error
	LeaveHomeErr    error

	LastFileName   string
	LastFileType   string
	LastSigned     string
	LastData       []byte
	LastRegister   client.RegisterRequest
	LastToken      string
	LastUserName   string
	LastArgs       []string
	LastSettings   map[string]bool
	LastLoginEmail string
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		UploadTarget: client.UploadTarget{SignedRequest: "http://s3/put?sig", URL: "http://s3/obj.png"},
		ChangeErr:    map[string]error{},
	}
}

func (f *fakeClient) called(op string) bool {
	for _, c := range f.calls {
		if c == op {
			return true
		}
	}
	return false
}

func (f *fakeClient) GetUploadURL(ctx context.Context, fileName, fileType string) (client.UploadTarget, error) {
	f.calls = append(f.calls, client.OpGetUploadURL)
	f.LastFileName, f.LastFileType = fileName, fileType
	if f.GetUploadURLErr != nil {
		return client.UploadTarget{}, f.GetUploadURLErr
	}
	return f.UploadTarget, nil
}

func (f *fakeClient) Upload(ctx context.Context, signedRequest string, data []byte) error {
	f.calls = append(f.calls, client.OpUpload)
	f.LastSigned = signedRequest
	f.LastData = append([]byte(nil), data...)
	return f.UploadErr
}

func (f *fakeClient) Register(ctx context.Context, req client.RegisterRequest) error {
	f.calls = append(f.calls, client.OpRegister)
	f.LastRegister = req
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email, password string) (client.LoginResponse, error) {
	f.calls = append(f.calls, client.OpLogin)
	f.LastLoginEmail = email
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) change(op, token, userName string, args ...string) error {
	f.calls = append(f.calls, op)
	f.LastToken, f.LastUserName, f.LastArgs = token, userName, args
	return f.ChangeErr[op]
}

func (f *fakeClient) ChangeUserName(ctx context.Context, token, userName, password, newUserName string) error {
	return f.change(client.OpChangeUserName, token, userName, password, newUserName)
}

func (f *fakeClient) ChangeEmail(ctx context.Context, token, userName, password, email string) error {
	return f.change(client.OpChangeEmail, token, userName, password, email)
}

func (f *fakeClient) ChangePassword(ctx context.Context, token, userName, password, newPassword string) error {
	return f.change(client.OpChangePassword, token, userName, password, newPassword)
}

func (f *fakeClient) ChangeImage(ctx context.Context, token, userName, password, imageURL string) error {
	return f.change(client.OpChangeImage, token, userName, password, imageURL)
}

func (f *fakeClient) ChangeSettings(ctx context.Context, token, userName string, settings map[string]bool) error {
	f.LastSettings = settings
	return f.change(client.OpChangeSettings, token, userName)
}

func (f *fakeClient) DeleteAccount(ctx context.Context, token, userName, password string) error {
	return f.change(client.OpDeleteAccount, token, userName, password)
}

func (f *fakeClient) CreateHome(ctx context.Context, token, homeName, password, imageURL string) error {
	f.calls = append(f.calls, client.OpCreateHome)
	f.LastToken, f.LastArgs = token, []string{homeName, password, imageURL}
	return f.CreateHomeErr
}

func (f *fakeClient) JoinHome(ctx context.Context, token, homeName, userName, password string) error {
	f.calls = append(f.calls, client.OpJoinHome)
	f.LastToken, f.LastUserName, f.LastArgs = token, userName, []string{homeName, password}
	return f.JoinHomeErr
}

func (f *fakeClient) LeaveHome(ctx context.Context, token, userName string) error {
	f.calls = append(f.calls, client.OpLeaveHome)
	f.LastToken, f.LastUserName = token, userName
	return f.LeaveHomeErr
}

var _ client.Client = (*fakeClient)(nil)

// ---- helpers ----

var fixedNow = time.Date(2024, 6, 2, 10, 4, 5, 123_000_000, time.UTC)

func clockOpt() Option {
	return WithClock(func() time.Time { return fixedNow })
}

var pngURI = imagex.EncodeDataURI(imagex.PNG, []byte{0x89, 'P', 'N', 'G'})

func newSession(t *testing.T) (*session.Manager, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	return session.NewManager(st), st
}

func loggedIn(t *testing.T) (*session.Manager, *store.MemoryStore) {
	t.Helper()
	m, st := newSession(t)
	require.NoError(t, m.Commit(context.Background(), session.Fields{
		Token:    session.Ptr("tok"),
		UserName: session.Ptr("Ann"),
		UserID:   session.Ptr("7"),
		Image:    session.Ptr("http://x/old.png"),
		Settings: session.DefaultSettings(),
		HomeName: session.Ptr(""),
	}))
	return m, st
}

func domainErr(op, msg string) error {
	return &client.Error{Op: op, Message: msg, Domain: true}
}
