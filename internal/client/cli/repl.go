package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	help() string
	Welcome(ctx context.Context) error
	Login(ctx context.Context) error
	SignUp(ctx context.Context) error
	Back(ctx context.Context) error
	Drag(ctx context.Context, mx, vx float64) error
	Settings(ctx context.Context) error
	CreateHome(ctx context.Context) error
	JoinHome(ctx context.Context) error
	Plants(ctx context.Context) error
	ChangeUserName(ctx context.Context) error
	ChangeEmail(ctx context.Context) error
	ChangePassword(ctx context.Context) error
	ChangeImage(ctx context.Context, path string) error
	Vibrate(ctx context.Context, release []float64) error
	LeaveHome(ctx context.Context) error
	DeleteAccount(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the PlanPlant CLI.
//
// It reads a line from in, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF or when the user types "exit" or "quit".
// Prompts issued by the commands read from the same reader.
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn): user, home, route
// and screen. Commands, each valid on the pages that offer it:
//
//	help                 show the commands of the current page
//	welcome | login | signup
//	                     auth screens; login and signup prompt for the form
//	back                 back button of the page or screen
//	drag <mx> <vx>       back gesture released at mx with velocity vx
//	settings | createhome | joinhome | plants
//	                     open a page from home; createhome and joinhome
//	                     prompt for the form
//	username | email | password | image <path> | delete
//	                     settings forms
//	vibrate [<mx> <vx>]  click, or drag and release, the vibrate toggle
//	leave                leave the current home
//	logout | whoami
//	exit | quit          leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// print their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, in *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("pp %s> ", statusFn()))
		line, err := readLine(in)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printlnFn(a.help())

		case "welcome":
			_ = a.Welcome(ctx)

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.SignUp(ctx)

		case "back":
			_ = a.Back(ctx)

		case "drag":
			v, ok := parseFloats(args)
			if !ok || len(v) != 2 {
				printlnFn("Usage: drag <mx> <vx>")
				continue
			}
			_ = a.Drag(ctx, v[0], v[1])

		case "settings":
			_ = a.Settings(ctx)

		case "createhome":
			_ = a.CreateHome(ctx)

		case "joinhome":
			_ = a.JoinHome(ctx)

		case "plants":
			_ = a.Plants(ctx)

		case "username":
			_ = a.ChangeUserName(ctx)

		case "email":
			_ = a.ChangeEmail(ctx)

		case "password":
			_ = a.ChangePassword(ctx)

		case "image":
			if len(args) != 1 {
				printlnFn("Usage: image <path>")
				continue
			}
			_ = a.ChangeImage(ctx, args[0])

		case "vibrate":
			v, ok := parseFloats(args)
			if !ok || (len(v) != 0 && len(v) != 2) {
				printlnFn("Usage: vibrate [<mx> <vx>]")
				continue
			}
			_ = a.Vibrate(ctx, v)

		case "leave":
			_ = a.LeaveHome(ctx)

		case "delete":
			_ = a.DeleteAccount(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func parseFloats(args []string) ([]float64, bool) {
	out := make([]float64, 0, len(args))
	for _, s := range args {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out = append(out, f)
	}
	return out, true
}
