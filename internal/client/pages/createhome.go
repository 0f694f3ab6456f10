package pages

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/nav"
	"github.com/dmitrijs2005/planplant/internal/client/theme"
	"github.com/dmitrijs2005/planplant/internal/common"
)

const ScreenCreateHome nav.Screen = "createHome"

var createHomeLayout = nav.Layout{
	Screens:   []nav.Screen{ScreenCreateHome, ScreenLoading, ScreenCamera},
	Parents:   map[nav.Screen]nav.Screen{ScreenCamera: ScreenCreateHome},
	Transient: nav.Set(ScreenLoading),
	Armed:     nav.Set(ScreenCamera),
}

type CreateHomeForm struct {
	HomeName string
	Password string
	// Image is a data URI.
	Image string
}

// HomeErrors are the inline messages of the create and join pages.
type HomeErrors struct {
	Form   string
	Camera string
}

type CreateHomePage struct {
	lifecycle
	deps Deps
	nav  *nav.Navigator

	mu   sync.Mutex
	form CreateHomeForm
	errs HomeErrors
}

func NewCreateHomePage(d Deps) *CreateHomePage {
	p := &CreateHomePage{deps: d.withDefaults()}
	p.nav = newNavigator(createHomeLayout, p.deps, p.resetForm)
	return p
}

func (p *CreateHomePage) Route() Route { return RouteCreateHome }

func (p *CreateHomePage) Nav() *nav.Navigator { return p.nav }

func (p *CreateHomePage) Mount(ctx context.Context) {
	p.mount()
	if !protect(p.deps, &p.lifecycle) {
		return
	}
	p.deps.Background.Change(theme.Turquoise)
	p.nav.Enter()
}

func (p *CreateHomePage) resetForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = CreateHomeForm{}
	p.errs.Form = ""
}

func (p *CreateHomePage) SetForm(f CreateHomeForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = f
}

func (p *CreateHomePage) Form() CreateHomeForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

func (p *CreateHomePage) Errors() HomeErrors {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.errs
}

func (p *CreateHomePage) ShowCamera() {
	_ = p.nav.GoTo(ScreenCamera, nav.GoToOptions{KeepForm: true})
}

// Submit creates the home and joins it. On success the page redirects to
// the plants page.
func (p *CreateHomePage) Submit(ctx context.Context) error {
	p.deps.Haptics.Pulse()
	f := p.Form()
	_ = p.nav.GoTo(ScreenLoading, nav.GoToOptions{KeepForm: true, Silent: true})

	err := p.deps.Home.CreateAndJoin(ctx, f.HomeName, f.Password, f.Image)
	if !p.Mounted() {
		return common.ErrUnmounted
	}
	if err != nil {
		p.mu.Lock()
		p.errs.Form = client.Message(err)
		p.mu.Unlock()
		_ = p.nav.GoTo(ScreenCreateHome, nav.GoToOptions{KeepForm: true})
		return err
	}

	p.deps.Logger.Info(ctx, "home created", "home", f.HomeName)
	p.redirectTo(RoutePlants)
	return nil
}

// Back leaves the page for home.
func (p *CreateHomePage) Back() {
	p.redirectTo(RouteHome)
}

func (p *CreateHomePage) PickImage(path string) bool {
	return p.setImage(pickImage(path))
}

func (p *CreateHomePage) CapturePhoto(dataURI string) bool {
	return p.setImage(captureImage(dataURI))
}

func (p *CreateHomePage) setImage(image, camErr string) bool {
	p.mu.Lock()
	if camErr != "" {
		p.errs.Camera = camErr
		p.mu.Unlock()
		return false
	}
	p.form.Image = image
	p.errs.Camera = ""
	p.mu.Unlock()

	_ = p.nav.GoTo(ScreenCreateHome, nav.GoToOptions{KeepForm: true})
	return true
}
