package pages

import (
	"context"

	"github.com/dmitrijs2005/planplant/internal/client/theme"
	"github.com/dmitrijs2005/planplant/internal/common"
)

// HomePage is the hub after login.
type HomePage struct {
	lifecycle
	deps Deps
}

func NewHomePage(d Deps) *HomePage {
	return &HomePage{deps: d.withDefaults()}
}

func (p *HomePage) Route() Route { return RouteHome }

func (p *HomePage) Mount(ctx context.Context) {
	p.mount()
	if !protect(p.deps, &p.lifecycle) {
		return
	}
	p.deps.Background.Change(theme.Turquoise)
}

func (p *HomePage) open(r Route) {
	p.deps.Haptics.Pulse()
	p.redirectTo(r)
}

func (p *HomePage) OpenSettings() { p.open(RouteSettings) }

func (p *HomePage) OpenCreateHome() { p.open(RouteCreateHome) }

func (p *HomePage) OpenJoinHome() { p.open(RouteJoinHome) }

// OpenPlants is only available once the user belongs to a home.
func (p *HomePage) OpenPlants() error {
	if !p.deps.Session.Snapshot().HasHome() {
		return common.ErrNoHome
	}
	p.open(RoutePlants)
	return nil
}
