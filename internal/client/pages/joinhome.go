package pages

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/nav"
	"github.com/dmitrijs2005/planplant/internal/client/theme"
	"github.com/dmitrijs2005/planplant/internal/common"
)

const ScreenJoinHome nav.Screen = "joinHome"

var joinHomeLayout = nav.Layout{
	Screens:   []nav.Screen{ScreenJoinHome, ScreenLoading},
	Transient: nav.Set(ScreenLoading),
}

type JoinHomeForm struct {
	HomeName string
	Password string
}

type JoinHomePage struct {
	lifecycle
	deps Deps
	nav  *nav.Navigator

	mu   sync.Mutex
	form JoinHomeForm
	err  string
}

func NewJoinHomePage(d Deps) *JoinHomePage {
	p := &JoinHomePage{deps: d.withDefaults()}
	p.nav = newNavigator(joinHomeLayout, p.deps, p.resetForm)
	return p
}

func (p *JoinHomePage) Route() Route { return RouteJoinHome }

func (p *JoinHomePage) Nav() *nav.Navigator { return p.nav }

func (p *JoinHomePage) Mount(ctx context.Context) {
	p.mount()
	if !protect(p.deps, &p.lifecycle) {
		return
	}
	p.deps.Background.Change(theme.Turquoise)
	p.nav.Enter()
}

func (p *JoinHomePage) resetForm() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = JoinHomeForm{}
	p.err = ""
}

func (p *JoinHomePage) SetForm(f JoinHomeForm) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form = f
}

func (p *JoinHomePage) Form() JoinHomeForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form
}

func (p *JoinHomePage) Error() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Submit joins an existing home and redirects to the plants page.
func (p *JoinHomePage) Submit(ctx context.Context) error {
	p.deps.Haptics.Pulse()
	f := p.Form()
	_ = p.nav.GoTo(ScreenLoading, nav.GoToOptions{KeepForm: true, Silent: true})

	err := p.deps.Home.JoinHome(ctx, f.HomeName, f.Password)
	if !p.Mounted() {
		return common.ErrUnmounted
	}
	if err != nil {
		p.mu.Lock()
		p.err = client.Message(err)
		p.mu.Unlock()
		_ = p.nav.GoTo(ScreenJoinHome, nav.GoToOptions{KeepForm: true})
		return err
	}

	p.deps.Logger.Info(ctx, "home joined", "home", f.HomeName)
	p.redirectTo(RoutePlants)
	return nil
}

func (p *JoinHomePage) Back() {
	p.redirectTo(RouteHome)
}
