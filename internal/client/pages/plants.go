package pages

import (
	"context"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/theme"
	"github.com/dmitrijs2005/planplant/internal/common"
)

// PlantsPage shows the plants of the user's home.
type PlantsPage struct {
	lifecycle
	deps Deps
	err  string
}

func NewPlantsPage(d Deps) *PlantsPage {
	return &PlantsPage{deps: d.withDefaults()}
}

func (p *PlantsPage) Route() Route { return RoutePlants }

// Mount sends users without a home back to the home page.
func (p *PlantsPage) Mount(ctx context.Context) {
	p.mount()
	if !protect(p.deps, &p.lifecycle) {
		return
	}
	if !p.deps.Session.Snapshot().HasHome() {
		p.redirectTo(RouteHome)
		return
	}
	p.deps.Background.Change(theme.Orange)
}

func (p *PlantsPage) HomeName() string { return p.deps.Session.HomeName() }

// Error is the message of the last failed action.
func (p *PlantsPage) Error() string {
	p.lmu.Lock()
	defer p.lmu.Unlock()
	return p.err
}

// LeaveHome leaves the current home and returns to the home page.
func (p *PlantsPage) LeaveHome(ctx context.Context) error {
	p.deps.Haptics.Pulse()
	err := p.deps.Home.LeaveHome(ctx)
	if !p.Mounted() {
		return common.ErrUnmounted
	}
	if err != nil {
		p.lmu.Lock()
		p.err = client.Message(err)
		p.lmu.Unlock()
		return err
	}
	p.redirectTo(RouteHome)
	return nil
}

func (p *PlantsPage) Back() {
	p.deps.Haptics.Pulse()
	p.redirectTo(RouteHome)
}
