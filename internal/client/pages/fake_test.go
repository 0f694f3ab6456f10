package pages

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/session"
	"github.com/dmitrijs2005/planplant/internal/client/store"
	"github.com/dmitrijs2005/planplant/internal/client/theme"
	"github.com/stretchr/testify/require"
)

type pulses struct{ n int }

func (p *pulses) Pulse() { p.n++ }

type vibrations struct{ n int }

func (v *vibrations) Vibrate(time.Duration) { v.n++ }

// fakeAuth commits a fixed session on Login, like the real service.
type fakeAuth struct {
	s        *session.Manager
	calls    []string
	loginErr error
	signErr  error
	// during runs inside blocking calls; tests unmount through it.
	during func()

	lastEmail, lastPassword string
	lastSignUp              []string
}

func (f *fakeAuth) block() {
	if f.during != nil {
		f.during()
	}
}

func (f *fakeAuth) Register(ctx context.Context, userName, email, password, image string) error {
	f.calls = append(f.calls, "register")
	return f.signErr
}

func (f *fakeAuth) Login(ctx context.Context, email, password string) error {
	f.calls = append(f.calls, "login")
	f.lastEmail, f.lastPassword = email, password
	f.block()
	if f.loginErr != nil {
		return f.loginErr
	}
	return f.s.Commit(ctx, session.Fields{
		Token:    session.Ptr("tok"),
		UserName: session.Ptr("Ann"),
		UserID:   session.Ptr("7"),
		Image:    session.Ptr("http://img/a.png"),
		HomeName: session.Ptr(""),
		Settings: session.DefaultSettings(),
	})
}

func (f *fakeAuth) SignUp(ctx context.Context, userName, email, password, image string) error {
	f.calls = append(f.calls, "signup")
	f.lastSignUp = []string{userName, email, password, image}
	f.block()
	if f.signErr != nil {
		return f.signErr
	}
	return f.Login(ctx, email, password)
}

func (f *fakeAuth) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	return f.s.Reset(ctx)
}

func (f *fakeAuth) IsLoggedIn(ctx context.Context) bool {
	f.calls = append(f.calls, "isLoggedIn")
	return f.s.Hydrate(ctx)
}

type fakeAccount struct {
	s      *session.Manager
	calls  []string
	args   [][]string
	err    error
	during func()

	lastSettings session.Settings
}

func (f *fakeAccount) record(op string, args ...string) error {
	f.calls = append(f.calls, op)
	f.args = append(f.args, args)
	if f.during != nil {
		f.during()
	}
	return f.err
}

func (f *fakeAccount) ChangeUserName(ctx context.Context, password, newUserName string) error {
	return f.record("userName", password, newUserName)
}

func (f *fakeAccount) ChangeEmail(ctx context.Context, password, email string) error {
	return f.record("email", password, email)
}

func (f *fakeAccount) ChangePassword(ctx context.Context, password, newPassword string) error {
	return f.record("password", password, newPassword)
}

func (f *fakeAccount) ChangeImage(ctx context.Context, password, image string) error {
	return f.record("image", password, image)
}

func (f *fakeAccount) ChangeSettings(ctx context.Context, settings session.Settings) error {
	f.lastSettings = settings
	if err := f.record("settings"); err != nil {
		return err
	}
	return f.s.Commit(ctx, session.Fields{Settings: settings})
}

func (f *fakeAccount) DeleteAccount(ctx context.Context, password string) error {
	if err := f.record("delete", password); err != nil {
		return err
	}
	return f.s.Reset(ctx)
}

type fakeHome struct {
	s      *session.Manager
	calls  []string
	args   [][]string
	err    error
	during func()
}

func (f *fakeHome) record(op string, args ...string) error {
	f.calls = append(f.calls, op)
	f.args = append(f.args, args)
	if f.during != nil {
		f.during()
	}
	return f.err
}

func (f *fakeHome) CreateHome(ctx context.Context, homeName, password, image string) error {
	return f.record("create", homeName, password, image)
}

func (f *fakeHome) JoinHome(ctx context.Context, homeName, password string) error {
	if err := f.record("join", homeName, password); err != nil {
		return err
	}
	return f.s.Commit(ctx, session.Fields{HomeName: &homeName})
}

func (f *fakeHome) CreateAndJoin(ctx context.Context, homeName, password, image string) error {
	if err := f.record("createAndJoin", homeName, password, image); err != nil {
		return err
	}
	return f.s.Commit(ctx, session.Fields{HomeName: &homeName})
}

func (f *fakeHome) LeaveHome(ctx context.Context) error {
	if err := f.record("leave"); err != nil {
		return err
	}
	return f.s.Commit(ctx, session.Fields{HomeName: session.Ptr("")})
}

type fixture struct {
	deps    Deps
	session *session.Manager
	auth    *fakeAuth
	account *fakeAccount
	home    *fakeHome
	pulses  *pulses
	bg      *theme.Background
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := session.NewManager(store.NewMemoryStore())
	f := &fixture{
		session: s,
		auth:    &fakeAuth{s: s},
		account: &fakeAccount{s: s},
		home:    &fakeHome{s: s},
		pulses:  &pulses{},
		bg:      theme.NewBackground(),
	}
	f.deps = Deps{
		Session:    s,
		Auth:       f.auth,
		Account:    f.account,
		Home:       f.home,
		Haptics:    f.pulses,
		Background: f.bg,
		Width:      390,
	}
	return f
}

// loggedIn commits a session and marks landing done.
func (f *fixture) loggedIn(t *testing.T, home string) {
	t.Helper()
	require.NoError(t, f.session.Commit(context.Background(), session.Fields{
		Token:    session.Ptr("tok"),
		UserName: session.Ptr("Ann"),
		UserID:   session.Ptr("7"),
		Image:    session.Ptr("http://img/a.png"),
		HomeName: session.Ptr(home),
		Settings: session.DefaultSettings(),
	}))
	f.session.MarkLandingDone()
}

func domainErr(op, msg string) error {
	return &client.Error{Op: op, Message: msg, Domain: true}
}
