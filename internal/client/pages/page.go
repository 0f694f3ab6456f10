package pages

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/planplant/internal/client/imagex"
	"github.com/dmitrijs2005/planplant/internal/client/nav"
	"github.com/dmitrijs2005/planplant/internal/client/services"
	"github.com/dmitrijs2005/planplant/internal/client/session"
	"github.com/dmitrijs2005/planplant/internal/client/theme"
	"github.com/dmitrijs2005/planplant/internal/logging"
)

type Route string

const (
	RouteLanding    Route = "/"
	RouteAuth       Route = "/auth"
	RouteHome       Route = "/home"
	RouteCreateHome Route = "/createHome"
	RouteJoinHome   Route = "/joinHome"
	RouteSettings   Route = "/settings"
	RoutePlants     Route = "/plants"
)

// Screens shared by several pages.
const (
	ScreenLoading nav.Screen = "loading"
	ScreenCamera  nav.Screen = "camera"
)

// Page is the controller behind one route.
type Page interface {
	Route() Route
	Mount(ctx context.Context)
	Unmount()
	Mounted() bool
	// Redirect returns and clears the pending route change.
	Redirect() (Route, bool)
}

// Navigable is a page with its own screen navigator.
type Navigable interface {
	Page
	Nav() *nav.Navigator
}

// Deps is everything a page needs from the app root.
type Deps struct {
	Session    *session.Manager
	Auth       services.AuthService
	Account    services.AccountService
	Home       services.HomeService
	Haptics    nav.Haptics
	Background *theme.Background
	Logger     logging.Logger
	// Width is the navigator track width.
	Width float64
}

type noPulse struct{}

func (noPulse) Pulse() {}

func (d Deps) withDefaults() Deps {
	if d.Haptics == nil {
		d.Haptics = noPulse{}
	}
	if d.Background == nil {
		d.Background = theme.NewBackground()
	}
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.Width <= 0 {
		d.Width = nav.DefaultTrackWidth
	}
	return d
}

// lifecycle tracks mount state and the pending redirect of a page.
type lifecycle struct {
	lmu      sync.Mutex
	mounted  bool
	redirect Route
	pending  bool
}

func (l *lifecycle) mount() {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	l.mounted = true
	l.pending = false
}

func (l *lifecycle) Unmount() {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	l.mounted = false
}

func (l *lifecycle) Mounted() bool {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	return l.mounted
}

func (l *lifecycle) redirectTo(r Route) {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	l.redirect = r
	l.pending = true
}

func (l *lifecycle) Redirect() (Route, bool) {
	l.lmu.Lock()
	defer l.lmu.Unlock()
	if !l.pending {
		return "", false
	}
	l.pending = false
	return l.redirect, true
}

// protect sends the page back to landing when landing has not run yet or
// no user is logged in. It reports whether the page may stay.
func protect(d Deps, l *lifecycle) bool {
	if !d.Session.LandingDone() || !d.Session.Snapshot().LoggedIn() {
		l.redirectTo(RouteLanding)
		return false
	}
	return true
}

func newNavigator(layout nav.Layout, d Deps, reset func()) *nav.Navigator {
	return nav.New(layout, d.Width,
		nav.WithHaptics(d.Haptics),
		nav.WithFormReset(reset),
		nav.WithLogger(d.Logger),
	)
}

// pickImage loads an image file for a form. On failure it returns the
// inline camera error.
func pickImage(path string) (image, camErr string) {
	uri, err := imagex.LoadFile(path)
	if err != nil {
		return "", imageError(err)
	}
	return uri, ""
}

// captureImage accepts a data URI from a camera capture.
func captureImage(dataURI string) (image, camErr string) {
	if _, err := imagex.DecodeDataURI(dataURI); err != nil {
		return "", imagex.ErrUnableToLoad.Error()
	}
	return dataURI, ""
}

func imageError(err error) string {
	if errors.Is(err, imagex.ErrWrongFileType) {
		return imagex.ErrWrongFileType.Error()
	}
	return imagex.ErrUnableToLoad.Error()
}
