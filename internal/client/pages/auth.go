package pages

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/nav"
	"github.com/dmitrijs2005/planplant/internal/common"
)

const (
	ScreenWelcome nav.Screen = "welcome"
	ScreenLogin   nav.Screen = "login"
	ScreenSignUp  nav.Screen = "signup"
)

// authGradient is not a known preset, so the background keeps whatever
// the previous page set.
const authGradient = "lime"

var authLayout = nav.Layout{
	Screens: []nav.Screen{ScreenWelcome, ScreenLogin, ScreenSignUp, ScreenLoading, ScreenCamera},
	Parents: map[nav.Screen]nav.Screen{
		ScreenLogin:  ScreenWelcome,
		ScreenSignUp: ScreenWelcome,
		ScreenCamera: ScreenSignUp,
	},
	Transient: nav.Set(ScreenLoading),
	Armed:     nav.Set(ScreenLogin, ScreenSignUp, ScreenCamera),
}

type LoginForm struct {
	Email    string
	Password string
}

type SignUpForm struct {
	UserName string
	Email    string
	Password string
	// Image is a data URI, empty when no picture was chosen.
	Image string
}

// AuthErrors are the inline messages of the auth page.
type AuthErrors struct {
	Login  string
	SignUp string
	Camera string
}

type AuthPage struct {
	lifecycle
	deps Deps
	nav  *nav.Navigator

	mu     sync.Mutex
	login  LoginForm
	signUp SignUpForm
	errs   AuthErrors
}

func NewAuthPage(d Deps) *AuthPage {
	p := &AuthPage{deps: d.withDefaults()}
	p.nav = newNavigator(authLayout, p.deps, p.resetForms)
	return p
}

func (p *AuthPage) Route() Route { return RouteAuth }

func (p *AuthPage) Nav() *nav.Navigator { return p.nav }

// Mount redirects home when a session is already valid, otherwise it
// shows the welcome screen.
func (p *AuthPage) Mount(ctx context.Context) {
	p.mount()
	p.deps.Background.Change(authGradient)

	loggedIn := p.deps.Auth.IsLoggedIn(ctx)
	if !p.Mounted() {
		return
	}
	if loggedIn {
		p.redirectTo(RouteHome)
		return
	}
	p.nav.Enter()
}

// resetForms clears both forms and their errors. The camera error stays.
func (p *AuthPage) resetForms() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.login = LoginForm{}
	p.signUp = SignUpForm{}
	p.errs.Login = ""
	p.errs.SignUp = ""
}

func (p *AuthPage) ShowWelcome() { _ = p.nav.GoTo(ScreenWelcome, nav.GoToOptions{}) }

func (p *AuthPage) ShowLogin() { _ = p.nav.GoTo(ScreenLogin, nav.GoToOptions{}) }

func (p *AuthPage) ShowSignUp() { _ = p.nav.GoTo(ScreenSignUp, nav.GoToOptions{}) }

func (p *AuthPage) ShowCamera() { _ = p.nav.GoTo(ScreenCamera, nav.GoToOptions{KeepForm: true}) }

func (p *AuthPage) SetLoginForm(f LoginForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.login = f
}

func (p *AuthPage) LoginForm() LoginForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.login
}

func (p *AuthPage) SetSignUpForm(f SignUpForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signUp = f
}

func (p *AuthPage) SignUpForm() SignUpForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.signUp
}

func (p *AuthPage) Errors() AuthErrors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errs
}

// SubmitLogin logs in with the login form. While the call runs the page
// shows the loading screen; a failure returns to the login screen with
// the form intact.
func (p *AuthPage) SubmitLogin(ctx context.Context) error {
	p.deps.Haptics.Pulse()
	f := p.LoginForm()
	_ = p.nav.GoTo(ScreenLoading, nav.GoToOptions{KeepForm: true, Silent: true})

	err := p.deps.Auth.Login(ctx, f.Email, f.Password)
	if !p.Mounted() {
		return common.ErrUnmounted
	}
	if err != nil {
		p.mu.Lock()
		p.errs.Login = client.Message(err)
		p.mu.Unlock()
		_ = p.nav.GoTo(ScreenLogin, nav.GoToOptions{KeepForm: true})
		return err
	}

	p.deps.Logger.Info(ctx, "logged in", "user", p.deps.Session.UserName())
	p.redirectTo(RouteHome)
	return nil
}

// SubmitSignUp registers and then logs in with the sign-up form.
func (p *AuthPage) SubmitSignUp(ctx context.Context) error {
	p.deps.Haptics.Pulse()
	f := p.SignUpForm()
	_ = p.nav.GoTo(ScreenLoading, nav.GoToOptions{KeepForm: true, Silent: true})

	err := p.deps.Auth.SignUp(ctx, f.UserName, f.Email, f.Password, f.Image)
	if !p.Mounted() {
		return common.ErrUnmounted
	}
	if err != nil {
		p.mu.Lock()
		p.errs.SignUp = client.Message(err)
		p.mu.Unlock()
		_ = p.nav.GoTo(ScreenSignUp, nav.GoToOptions{KeepForm: true})
		return err
	}

	p.deps.Logger.Info(ctx, "signed up", "user", p.deps.Session.UserName())
	p.redirectTo(RouteHome)
	return nil
}

// PickImage loads the sign-up picture from a file and returns to the
// sign-up screen. An unusable file sets the camera error and stays.
func (p *AuthPage) PickImage(path string) bool {
	return p.setImage(pickImage(path))
}

// CapturePhoto sets the sign-up picture from a camera capture.
func (p *AuthPage) CapturePhoto(dataURI string) bool {
	return p.setImage(captureImage(dataURI))
}

func (p *AuthPage) setImage(image, camErr string) bool {
	p.mu.Lock()
	if camErr != "" {
		p.errs.Camera = camErr
		p.mu.Unlock()
		return false
	}
	p.signUp.Image = image
	p.errs.Camera = ""
	p.mu.Unlock()

	_ = p.nav.GoTo(ScreenSignUp, nav.GoToOptions{KeepForm: true})
	return true
}
