package pages

import "context"

// LandingPage decides where a fresh start goes: home with a valid
// persisted session, auth otherwise.
type LandingPage struct {
	lifecycle
	deps Deps
}

func NewLandingPage(d Deps) *LandingPage {
	return &LandingPage{deps: d.withDefaults()}
}

func (p *LandingPage) Route() Route { return RouteLanding }

func (p *LandingPage) Mount(ctx context.Context) {
	p.mount()
	p.deps.Session.MarkLandingDone()

	loggedIn := p.deps.Auth.IsLoggedIn(ctx)
	if !p.Mounted() {
		return
	}
	if loggedIn {
		p.redirectTo(RouteHome)
		return
	}
	p.redirectTo(RouteAuth)
}
