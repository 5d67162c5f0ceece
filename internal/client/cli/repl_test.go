package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool
	expired  bool

	calls    []string
	args     []string
	reported []error
	loginErr error
}

func (f *fakeExec) record(name, arg string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, arg)
	return nil
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) sessionExpired() bool {
	e := f.expired
	f.expired = false
	return e
}
func (f *fakeExec) report(err error) {
	if err != nil {
		f.reported = append(f.reported, err)
	}
}

func (f *fakeExec) Register(context.Context) error { return f.record("register", "") }
func (f *fakeExec) Login(context.Context) error {
	_ = f.record("login", "")
	if f.loginErr != nil {
		return f.loginErr
	}
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.loggedIn = false
	return f.record("logout", "")
}
func (f *fakeExec) WhoAmI(context.Context) error      { return f.record("whoami", "") }
func (f *fakeExec) Profile(context.Context) error     { return f.record("profile", "") }
func (f *fakeExec) EditProfile(context.Context) error { return f.record("editprofile", "") }
func (f *fakeExec) Posts(_ context.Context, s string) error {
	return f.record("posts", s)
}
func (f *fakeExec) NextPage(context.Context) error { return f.record("next", "") }
func (f *fakeExec) PrevPage(context.Context) error { return f.record("prev", "") }
func (f *fakeExec) MyPosts(context.Context) error  { return f.record("mine", "") }
func (f *fakeExec) ShowPost(_ context.Context, id string) error {
	return f.record("show", id)
}
func (f *fakeExec) NewPost(context.Context) error { return f.record("newpost", "") }
func (f *fakeExec) EditPost(_ context.Context, id string) error {
	return f.record("editpost", id)
}
func (f *fakeExec) DeletePost(_ context.Context, id string) error {
	_ = f.record("delete", id)
	return errors.New("boom")
}
func (f *fakeExec) Comments(_ context.Context, id string) error {
	return f.record("comments", id)
}
func (f *fakeExec) AddComment(_ context.Context, id string) error {
	return f.record("comment", id)
}
func (f *fakeExec) Predict(context.Context) error { return f.record("predict", "") }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	printed := capturePrints(t)

	input := strings.Join([]string{
		"help",
		"posts",
		"login",
		"help",
		"posts laje de concreto",
		"next",
		"prev",
		"mine",
		"SHOW 12",
		"newpost",
		"editpost 12",
		"delete 12",
		"comments 12",
		"comment 12",
		"predict",
		"whoami",
		"profile",
		"editprofile",
		"foobar",
		"",
		"logout",
		"exit",
		"register",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, rdr(input))

	wantCalls := []string{"login", "posts", "next", "prev", "mine", "show", "newpost", "editpost",
		"delete", "comments", "comment", "predict", "whoami", "profile", "editprofile", "logout"}
	assert.Equal(t, wantCalls, exec.calls, "register after exit must not run")
	assert.Equal(t, "laje de concreto", exec.args[1])
	assert.Equal(t, "12", exec.args[5])

	require.Len(t, exec.reported, 1, "handler errors are reported")
	assert.EqualError(t, exec.reported[0], "boom")

	out := strings.Join(*printed, "\n")
	assert.Contains(t, out, guestHelp)
	assert.Contains(t, out, userHelp)
	assert.Contains(t, out, "Please login first")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "ch status>")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_SessionExpiredPromptsLogin(t *testing.T) {
	printed := capturePrints(t)

	exec := &fakeExec{loggedIn: true, expired: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("whoami\n"))

	assert.Equal(t, []string{"login", "whoami"}, exec.calls)
	assert.Contains(t, strings.Join(*printed, "\n"), "Your session has expired")
}

func TestRunREPL_SessionExpiredLoginFails(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{loggedIn: false, expired: true, loginErr: errors.New("bad credentials")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("posts\nexit\n"))

	assert.Equal(t, []string{"login"}, exec.calls, "posts is refused while logged out")
	require.Len(t, exec.reported, 1)
}

func TestRunREPL_EOFWithoutNewline(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("mine"))
	assert.Equal(t, []string{"mine"}, exec.calls)
}

func TestSplitCommand(t *testing.T) {
	cmd, arg := splitCommand("  Posts   laje   fina \n")
	assert.Equal(t, "posts", cmd)
	assert.Equal(t, "laje fina", arg)

	cmd, arg = splitCommand("   ")
	assert.Empty(t, cmd)
	assert.Empty(t, arg)
}
