package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	fail     map[string]error

	calls   []string
	handled []error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.fail[call]
}

func (f *fakeExec) isLoggedIn() bool                            { return f.loggedIn }
func (f *fakeExec) Home(ctx context.Context) error              { return f.record("home") }
func (f *fakeExec) More(ctx context.Context) error              { return f.record("more") }
func (f *fakeExec) Column(ctx context.Context, id string) error { return f.record("column " + id) }
func (f *fakeExec) Post(ctx context.Context, id string) error   { return f.record("post " + id) }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}
func (f *fakeExec) Whoami(ctx context.Context) error            { return f.record("whoami") }
func (f *fakeExec) Create(ctx context.Context) error            { return f.record("create") }
func (f *fakeExec) Edit(ctx context.Context, id string) error   { return f.record("edit " + id) }
func (f *fakeExec) Delete(ctx context.Context, id string) error { return f.record("delete " + id) }
func (f *fakeExec) handleError(ctx context.Context, err error) {
	if err != nil {
		f.handled = append(f.handled, err)
	}
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.Join([]string{
		"help",
		"home",
		"more",
		"c c1",
		"post p1",
		"login",
		"whoami",
		"create",
		"edit p1",
		"delete p1",
		"logout",
		"register",
		"",
		"exit",
		"home",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	assert.Equal(t, []string{
		"home", "more", "column c1", "post p1", "login", "whoami",
		"create", "edit p1", "delete p1", "logout", "register",
	}, exec.calls, "nothing runs after exit")
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\nquit\n")))

	var helps []string
	for _, l := range *out {
		if strings.HasPrefix(l, "Available commands") {
			helps = append(helps, l)
		}
	}
	if assert.Len(t, helps, 2) {
		assert.Contains(t, helps[0], "login")
		assert.Contains(t, helps[1], "logout")
	}
}

func TestRunREPL_UnknownCommandAndEOF(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("foobar\nwhoami")))

	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Equal(t, []string{"whoami"}, exec.calls, "last line without newline still runs")
}

func TestRunREPL_CommandErrorsReachHandler(t *testing.T) {
	captureOutput(t)

	rejected := errors.New("rejected")
	exec := &fakeExec{loggedIn: true, fail: map[string]error{"create": rejected}}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("home\ncreate\nwhoami\n")))

	assert.Equal(t, []string{"home", "create", "whoami"}, exec.calls, "the loop keeps going after a failed command")
	assert.Equal(t, []error{rejected}, exec.handled)
}
