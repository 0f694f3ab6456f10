package pages

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/planplant/internal/client/haptics"
	"github.com/dmitrijs2005/planplant/internal/common"
)

// maxRedirects bounds one Navigate call.
const maxRedirects = 8

type Factory func(Deps) Page

// Router mounts one page at a time and follows their redirects.
type Router struct {
	mu        sync.Mutex
	deps      Deps
	factories map[Route]Factory
	current   Page
}

type RouterOption func(*Router)

// WithPage overrides the page built for a route.
func WithPage(r Route, f Factory) RouterOption {
	return func(rt *Router) { rt.factories[r] = f }
}

// WithVibrator sets the vibrator of the settings page toggle.
func WithVibrator(v haptics.Vibrator) RouterOption {
	return WithPage(RouteSettings, func(d Deps) Page { return NewSettingsPage(d, v) })
}

func NewRouter(d Deps, opts ...RouterOption) *Router {
	r := &Router{
		deps: d.withDefaults(),
		factories: map[Route]Factory{
			RouteLanding:    func(d Deps) Page { return NewLandingPage(d) },
			RouteAuth:       func(d Deps) Page { return NewAuthPage(d) },
			RouteHome:       func(d Deps) Page { return NewHomePage(d) },
			RouteCreateHome: func(d Deps) Page { return NewCreateHomePage(d) },
			RouteJoinHome:   func(d Deps) Page { return NewJoinHomePage(d) },
			RouteSettings:   func(d Deps) Page { return NewSettingsPage(d, nil) },
			RoutePlants:     func(d Deps) Page { return NewPlantsPage(d) },
		},
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Navigate unmounts the current page, mounts a fresh page for route and
// follows redirects until a page stays.
func (r *Router) Navigate(ctx context.Context, route Route) (Page, error) {
	for hops := 0; ; hops++ {
		if hops > maxRedirects {
			return r.Current(), common.ErrRedirectLoop
		}
		f, ok := r.factories[route]
		if !ok {
			return r.Current(), fmt.Errorf("%w: %s", common.ErrUnknownRoute, route)
		}

		page := f(r.deps)
		r.mu.Lock()
		prev := r.current
		r.current = page
		r.mu.Unlock()
		if prev != nil {
			prev.Unmount()
		}

		page.Mount(ctx)
		next, ok := page.Redirect()
		if !ok {
			r.deps.Logger.Debug(ctx, "route", "path", string(route))
			return page, nil
		}
		r.deps.Logger.Debug(ctx, "redirect", "from", string(route), "to", string(next))
		route = next
	}
}

// Follow applies the pending redirect of the current page, if any.
func (r *Router) Follow(ctx context.Context) (Page, error) {
	cur := r.Current()
	if cur == nil {
		return nil, nil
	}
	next, ok := cur.Redirect()
	if !ok {
		return cur, nil
	}
	return r.Navigate(ctx, next)
}

func (r *Router) Current() Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Route is the route of the mounted page, empty before the first Navigate.
func (r *Router) Route() Route {
	cur := r.Current()
	if cur == nil {
		return ""
	}
	return cur.Route()
}
