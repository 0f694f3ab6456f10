package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) record(c string) error { f.calls = append(f.calls, c); return nil }

func (f *fakeExec) help() string                         { return "help text" }
func (f *fakeExec) Welcome(context.Context) error        { return f.record("welcome") }
func (f *fakeExec) Login(context.Context) error          { return f.record("login") }
func (f *fakeExec) SignUp(context.Context) error         { return f.record("signup") }
func (f *fakeExec) Back(context.Context) error           { return f.record("back") }
func (f *fakeExec) Settings(context.Context) error       { return f.record("settings") }
func (f *fakeExec) CreateHome(context.Context) error     { return f.record("createhome") }
func (f *fakeExec) JoinHome(context.Context) error       { return f.record("joinhome") }
func (f *fakeExec) Plants(context.Context) error         { return f.record("plants") }
func (f *fakeExec) ChangeUserName(context.Context) error { return f.record("username") }
func (f *fakeExec) ChangeEmail(context.Context) error    { return f.record("email") }
func (f *fakeExec) ChangePassword(context.Context) error { return f.record("password") }
func (f *fakeExec) LeaveHome(context.Context) error      { return f.record("leave") }
func (f *fakeExec) DeleteAccount(context.Context) error  { return f.record("delete") }
func (f *fakeExec) Logout(context.Context) error         { return f.record("logout") }
func (f *fakeExec) WhoAmI(context.Context) error         { return f.record("whoami") }

func (f *fakeExec) ChangeImage(_ context.Context, p string) error {
	return f.record("image " + p)
}

func (f *fakeExec) Drag(_ context.Context, mx, vx float64) error {
	return f.record(fmt.Sprintf("drag %g %g", mx, vx))
}

func (f *fakeExec) Vibrate(_ context.Context, release []float64) error {
	return f.record(fmt.Sprintf("vibrate %v", release))
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		s := strings.TrimSuffix(fmt.Sprintln(a...), "\n")
		lines = append(lines, s)
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func reader(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
}

func TestRunREPL_Dispatch(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, reader(
		"help",
		"welcome",
		"login",
		"signup",
		"",
		"back",
		"drag 120 0.5",
		"settings",
		"createhome",
		"joinhome",
		"plants",
		"username",
		"email",
		"password",
		"image /tmp/a.png",
		"vibrate",
		"vibrate -60 0",
		"leave",
		"delete",
		"logout",
		"whoami",
		"foobar",
		"exit",
		"login",
	))

	assert.Equal(t, []string{
		"welcome", "login", "signup", "back", "drag 120 0.5", "settings",
		"createhome", "joinhome", "plants", "username", "email", "password",
		"image /tmp/a.png", "vibrate []", "vibrate [-60 0]", "leave", "delete",
		"logout", "whoami",
	}, exec.calls)
	assert.Contains(t, *out, "help text")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "pp status> ")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_Usage(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, reader(
		"drag",
		"drag 1",
		"drag a b",
		"image",
		"vibrate 1",
		"quit",
	))

	require.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: drag <mx> <vx>")
	assert.Contains(t, *out, "Usage: image <path>")
	assert.Contains(t, *out, "Usage: vibrate [<mx> <vx>]")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" },
		bufio.NewReader(strings.NewReader("whoami")))

	assert.Equal(t, []string{"whoami"}, exec.calls)
}

func TestParseFloats(t *testing.T) {
	v, ok := parseFloats([]string{"1.5", "-2"})
	require.True(t, ok)
	assert.Equal(t, []float64{1.5, -2}, v)

	_, ok = parseFloats([]string{"x"})
	assert.False(t, ok)

	v, ok = parseFloats(nil)
	require.True(t, ok)
	assert.Empty(t, v)
}
