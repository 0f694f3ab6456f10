package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/planplant/internal/client/pages"
)

var routeCommands = map[pages.Route][]string{
	pages.RouteAuth:       {"welcome", "login", "signup", "back", "drag <mx> <vx>"},
	pages.RouteHome:       {"settings", "createhome", "joinhome", "plants", "whoami", "logout"},
	pages.RouteCreateHome: {"createhome", "image <path>", "back", "drag <mx> <vx>"},
	pages.RouteJoinHome:   {"joinhome", "back", "drag <mx> <vx>"},
	pages.RouteSettings: {"username", "email", "password", "image <path>", "delete",
		"vibrate [<mx> <vx>]", "leave", "logout", "whoami", "back", "drag <mx> <vx>"},
	pages.RoutePlants: {"leave", "whoami", "logout", "back"},
}

func (a *App) help() string {
	cmds := append(append([]string(nil), routeCommands[a.router.Route()]...), "help", "exit")
	return "Available commands: " + strings.Join(cmds, ", ")
}

// getStatus renders "(user@home) route:screen".
func (a *App) getStatus() string {
	s := ""
	if a.session != nil {
		st := a.session.Snapshot()
		s = st.UserName
		if st.HomeName != "" {
			s += "@" + st.HomeName
		}
	}
	if s != "" {
		s = fmt.Sprintf("(%s) ", s)
	}
	if a.router == nil {
		return strings.TrimSpace(s)
	}

	p := a.router.Current()
	if p == nil {
		return strings.TrimSpace(s)
	}
	s += string(p.Route())
	if n, ok := p.(pages.Navigable); ok {
		s += ":" + string(n.Nav().Current())
	}
	return s
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to PlanPlant CLI (type 'help' for commands)")

	if _, err := a.router.Navigate(ctx, pages.RouteLanding); err != nil {
		a.logger.Error(ctx, "landing failed", "error", err)
		printlnFn("Unable to start:", err)
		return
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
