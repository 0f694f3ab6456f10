package pages

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/haptics"
	"github.com/dmitrijs2005/planplant/internal/client/nav"
	"github.com/dmitrijs2005/planplant/internal/client/session"
	"github.com/dmitrijs2005/planplant/internal/client/theme"
	"github.com/dmitrijs2005/planplant/internal/common"
)

const (
	ScreenMain           nav.Screen = "main"
	ScreenChangeUserName nav.Screen = "changeUserName"
	ScreenChangeEmail    nav.Screen = "changeEmail"
	ScreenChangePassword nav.Screen = "changePassword"
	ScreenChangeImage    nav.Screen = "changeImage"
	ScreenDeleteAccount  nav.Screen = "deleteAccount"
)

const (
	MsgUserNameChanged = "User changed successfully"
	MsgEmailChanged    = "Email changed successfully"
	MsgPasswordChanged = "Password changed successfully"
	MsgImageChanged    = "Image changed successfully"
	MsgAccountDeleted  = "Account Deleted successfully"
	MsgSettingUpdated  = "Setting updated successfully"
	MsgHomeLeft        = "Home left successfully"
)

var settingsLayout = nav.Layout{
	Screens: []nav.Screen{
		ScreenMain, ScreenChangeUserName, ScreenChangeEmail, ScreenChangePassword,
		ScreenChangeImage, ScreenDeleteAccount, ScreenCamera,
	},
	Parents: map[nav.Screen]nav.Screen{ScreenCamera: ScreenChangeImage},
	Armed: nav.Set(ScreenChangeUserName, ScreenChangeEmail, ScreenChangePassword,
		ScreenChangeImage, ScreenDeleteAccount, ScreenCamera),
}

type SettingsForms struct {
	UserName struct{ UserName, Password string }
	Email    struct{ Email, Password string }
	Password struct{ NewPassword, Password string }
	Image    struct{ Image, Password string }
	Delete   struct{ Password string }
}

// SettingsErrors are the inline messages of the settings page. General
// carries failures that have no form, like the vibrate toggle.
type SettingsErrors struct {
	UserName string
	Email    string
	Password string
	Image    string
	Delete   string
	Camera   string
	General  string
}

type SettingsPage struct {
	lifecycle
	deps     Deps
	nav      *nav.Navigator
	vibrator haptics.Vibrator

	mu      sync.Mutex
	forms   SettingsForms
	errs    SettingsErrors
	success string
	vibrate *nav.Toggle
}

// NewSettingsPage builds the page. v drives the vibrate toggle's own
// feedback, which follows the toggle's new value rather than the stored
// setting; nil disables it.
func NewSettingsPage(d Deps, v haptics.Vibrator) *SettingsPage {
	p := &SettingsPage{deps: d.withDefaults(), vibrator: v}
	p.nav = nav.New(settingsLayout, p.deps.Width,
		nav.WithHaptics(p.deps.Haptics),
		nav.WithFormReset(p.resetForms),
		nav.WithOnChange(p.screenChanged),
		nav.WithLogger(p.deps.Logger),
	)
	p.vibrate = p.newToggle(p.deps.Session.Vibrate())
	return p
}

func (p *SettingsPage) Route() Route { return RouteSettings }

func (p *SettingsPage) Nav() *nav.Navigator { return p.nav }

func (p *SettingsPage) Mount(ctx context.Context) {
	p.mount()
	if !protect(p.deps, &p.lifecycle) {
		return
	}
	p.deps.Background.Change(theme.Purple)

	p.mu.Lock()
	p.vibrate = p.newToggle(p.deps.Session.Vibrate())
	p.success = ""
	p.errs = SettingsErrors{}
	p.mu.Unlock()

	p.nav.Enter()
}

func (p *SettingsPage) newToggle(on bool) *nav.Toggle {
	var tg *nav.Toggle
	fb := haptics.New(p.vibrator, func() bool { return tg.On() })
	tg = nav.NewToggle(p.deps.Width, on, func(on bool) {
		p.deps.Logger.Debug(context.Background(), "vibrate toggled", "on", on)
	}, nav.WithToggleHaptics(fb))
	return tg
}

func (p *SettingsPage) resetForms() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.forms = SettingsForms{}
}

func (p *SettingsPage) screenChanged(s nav.Screen) {
	if s == ScreenMain {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.success = ""
}

// Update edits the forms in place.
func (p *SettingsPage) Update(fn func(f *SettingsForms)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.forms)
}

func (p *SettingsPage) Forms() SettingsForms {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.forms
}

func (p *SettingsPage) Errors() SettingsErrors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errs
}

func (p *SettingsPage) Success() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.success
}

func (p *SettingsPage) Vibrate() *nav.Toggle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.vibrate
}

func (p *SettingsPage) Show(s nav.Screen) error {
	return p.nav.GoTo(s, nav.GoToOptions{KeepForm: s == ScreenCamera})
}

// Back returns to the previous screen, or leaves for home from main.
func (p *SettingsPage) Back() {
	if p.nav.Current() == ScreenMain {
		p.deps.Haptics.Pulse()
		p.redirectTo(RouteHome)
		return
	}
	p.nav.Back()
}

// submit runs one form operation. A failure stays on the form with its
// inline error; success clears every error, shows msg and returns to main.
func (p *SettingsPage) submit(ctx context.Context, field *string, msg string, call func(f SettingsForms) error) error {
	p.deps.Haptics.Pulse()
	err := call(p.Forms())
	if !p.Mounted() {
		return common.ErrUnmounted
	}
	if err != nil {
		p.mu.Lock()
		*field = client.Message(err)
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.errs = SettingsErrors{}
	p.success = msg
	p.mu.Unlock()
	p.deps.Logger.Info(ctx, msg)
	_ = p.nav.GoTo(ScreenMain, nav.GoToOptions{})
	return nil
}

func (p *SettingsPage) SubmitUserName(ctx context.Context) error {
	return p.submit(ctx, &p.errs.UserName, MsgUserNameChanged, func(f SettingsForms) error {
		return p.deps.Account.ChangeUserName(ctx, f.UserName.Password, f.UserName.UserName)
	})
}

func (p *SettingsPage) SubmitEmail(ctx context.Context) error {
	return p.submit(ctx, &p.errs.Email, MsgEmailChanged, func(f SettingsForms) error {
		return p.deps.Account.ChangeEmail(ctx, f.Email.Password, f.Email.Email)
	})
}

func (p *SettingsPage) SubmitPassword(ctx context.Context) error {
	return p.submit(ctx, &p.errs.Password, MsgPasswordChanged, func(f SettingsForms) error {
		return p.deps.Account.ChangePassword(ctx, f.Password.Password, f.Password.NewPassword)
	})
}

func (p *SettingsPage) SubmitImage(ctx context.Context) error {
	return p.submit(ctx, &p.errs.Image, MsgImageChanged, func(f SettingsForms) error {
		return p.deps.Account.ChangeImage(ctx, f.Image.Password, f.Image.Image)
	})
}

// SubmitDeleteAccount deletes the account, which also ends the session,
// and leaves for landing.
func (p *SettingsPage) SubmitDeleteAccount(ctx context.Context) error {
	p.deps.Haptics.Pulse()
	f := p.Forms()
	err := p.deps.Account.DeleteAccount(ctx, f.Delete.Password)
	if !p.Mounted() {
		return common.ErrUnmounted
	}
	if err != nil {
		p.mu.Lock()
		p.errs.Delete = client.Message(err)
		p.mu.Unlock()
		return err
	}

	p.mu.Lock()
	p.errs = SettingsErrors{}
	p.success = MsgAccountDeleted
	p.mu.Unlock()
	p.deps.Logger.Info(ctx, "account deleted")
	p.redirectTo(RouteLanding)
	return nil
}

// Logout ends the session and leaves for landing.
func (p *SettingsPage) Logout(ctx context.Context) error {
	p.redirectTo(RouteLanding)
	return p.deps.Auth.Logout(ctx)
}

// LeaveHome drops the user's home membership and stays on main.
func (p *SettingsPage) LeaveHome(ctx context.Context) error {
	p.deps.Haptics.Pulse()
	err := p.deps.Home.LeaveHome(ctx)
	if !p.Mounted() {
		return common.ErrUnmounted
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.errs.General = client.Message(err)
		return err
	}
	p.errs.General = ""
	p.success = MsgHomeLeft
	return nil
}

// ClickVibrate flips the vibrate toggle and saves the new value.
func (p *SettingsPage) ClickVibrate(ctx context.Context) error {
	if !p.Vibrate().Click() {
		return nil
	}
	return p.saveSettings(ctx)
}

// ReleaseVibrate ends a drag of the vibrate toggle and saves the value
// when it changed.
func (p *SettingsPage) ReleaseVibrate(ctx context.Context, mx, vx float64) error {
	if !p.Vibrate().EndDrag(mx, vx) {
		return nil
	}
	return p.saveSettings(ctx)
}

// saveSettings sends the settings with the toggle's value. A failure
// leaves the toggle where the user put it.
func (p *SettingsPage) saveSettings(ctx context.Context) error {
	settings := p.deps.Session.Settings()
	if settings == nil {
		settings = session.DefaultSettings()
	}
	settings[session.SettingVibrate] = p.Vibrate().On()

	err := p.deps.Account.ChangeSettings(ctx, settings)
	if !p.Mounted() {
		return common.ErrUnmounted
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.errs.General = client.Message(err)
		return err
	}
	p.errs = SettingsErrors{}
	p.success = MsgSettingUpdated
	return nil
}

func (p *SettingsPage) PickImage(path string) bool {
	return p.setImage(pickImage(path))
}

func (p *SettingsPage) CapturePhoto(dataURI string) bool {
	return p.setImage(captureImage(dataURI))
}

func (p *SettingsPage) setImage(image, camErr string) bool {
	p.mu.Lock()
	if camErr != "" {
		p.errs.Camera = camErr
		p.mu.Unlock()
		return false
	}
	p.forms.Image.Image = image
	p.errs.Camera = ""
	p.mu.Unlock()

	_ = p.nav.GoTo(ScreenChangeImage, nav.GoToOptions{KeepForm: true})
	return true
}
