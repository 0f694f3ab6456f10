package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/planplant/internal/client/client"
	"github.com/dmitrijs2005/planplant/internal/client/pages"
	"github.com/dmitrijs2005/planplant/internal/common"
)

var errNotHere = errors.New("command not available on this page")

var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// pageAs returns the mounted page when it is a T.
func pageAs[T pages.Page](a *App) (T, error) {
	p, ok := a.router.Current().(T)
	if !ok {
		printlnFn("Not available here. Type 'help' for commands.")
		return p, errNotHere
	}
	return p, nil
}

func (a *App) prompt(label string) (string, error) {
	return getSimpleText(a.reader, label, a.out)
}

// password reads a password and returns it as a string. The read buffer
// is wiped.
func (a *App) password() (string, error) {
	pw, err := getPassword(a.reader, a.out)
	if err != nil {
		printlnFn("Unable to read password:", err)
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// fail prints the user-visible text of err under prefix and returns err.
func fail(prefix string, err error) error {
	printlnFn(prefix+":", client.Message(err))
	return err
}

// Back presses the back button of the mounted page.
func (a *App) Back(ctx context.Context) error {
	switch p := a.router.Current().(type) {
	case *pages.AuthPage:
		if _, ok := p.Nav().Back(); !ok {
			printlnFn("Nothing to go back to")
		}
	case *pages.CreateHomePage:
		if p.Nav().Current() == pages.ScreenCamera {
			p.Nav().Back()
		} else {
			p.Back()
		}
	case *pages.JoinHomePage:
		p.Back()
	case *pages.SettingsPage:
		p.Back()
	case *pages.PlantsPage:
		p.Back()
	default:
		printlnFn("Nothing to go back to")
		return errNotHere
	}
	a.follow(ctx)
	return nil
}

// Drag performs a whole back gesture on the mounted page: press, move by
// mx, release with velocity vx.
func (a *App) Drag(ctx context.Context, mx, vx float64) error {
	p, err := pageAs[pages.Navigable](a)
	if err != nil {
		return err
	}
	n := p.Nav()
	if err := n.BeginDrag(); err != nil {
		printlnFn("Cannot go back from here")
		return err
	}
	n.UpdateDrag(mx)
	out := n.EndDrag(mx, vx)
	printlnFn("Gesture "+out.String()+", now on", n.Current())
	return nil
}

func (a *App) WhoAmI(context.Context) error {
	st := a.session.Snapshot()
	if !st.LoggedIn() {
		printlnFn("Not logged in")
		return common.ErrNotLoggedIn
	}
	home := st.HomeName
	if home == "" {
		home = "(none)"
	}
	printlnFn("User:", st.UserName)
	printlnFn("Home:", home)
	printlnFn("Vibrate:", st.Settings.Vibrate())
	return nil
}

// Logout ends the session from any logged-in page.
func (a *App) Logout(ctx context.Context) error {
	var err error
	if p, ok := a.router.Current().(*pages.SettingsPage); ok {
		err = p.Logout(ctx)
		a.follow(ctx)
	} else {
		if !a.session.Snapshot().LoggedIn() {
			printlnFn("Not logged in")
			return common.ErrNotLoggedIn
		}
		err = a.auth.Logout(ctx)
		if _, nerr := a.router.Navigate(ctx, pages.RouteLanding); nerr != nil {
			a.logger.Error(ctx, "navigation failed", "error", nerr)
		}
	}
	if err != nil {
		return fail("Logout failed", err)
	}
	printlnFn("Logged out")
	return nil
}
