package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	sessionExpired() bool
	report(err error)

	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error

	Posts(ctx context.Context, search string) error
	NextPage(ctx context.Context) error
	PrevPage(ctx context.Context) error
	MyPosts(ctx context.Context) error
	ShowPost(ctx context.Context, id string) error
	NewPost(ctx context.Context) error
	EditPost(ctx context.Context, id string) error
	DeletePost(ctx context.Context, id string) error

	Comments(ctx context.Context, id string) error
	AddComment(ctx context.Context, id string) error

	Predict(ctx context.Context) error
}

const guestHelp = "Available commands: register, login, help, exit"

const userHelp = "Available commands: whoami, profile, editprofile, posts [search], next, prev, mine, show <id>, newpost, editpost <id>, delete <id>, comments <id>, comment <id>, predict, logout, help, exit"

// runREPL starts a simple read–eval–print loop for the ConstructHub CLI.
//
// It reads a line from reader, parses the first token as the command and
// the rest as its argument, and dispatches to methods on 'a'. Commands that
// need a session are refused while logged out. The loop exits on EOF or
// when the user types "exit" or "quit".
//
// Before each prompt the loop checks whether the session expired during the
// previous command; if so it tells the user and starts the login flow.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if a.sessionExpired() {
			printlnFn("Your session has expired. Please log in again.")
			a.report(a.Login(ctx))
		}

		printlnFn(fmt.Sprintf("ch %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || strings.TrimSpace(line) == "") {
			return
		}

		cmd, arg := splitCommand(line)
		if cmd == "" {
			continue
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(userHelp)
			} else {
				printlnFn(guestHelp)
			}
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		case "register":
			a.report(a.Register(ctx))
			continue
		case "login":
			a.report(a.Login(ctx))
			continue
		}

		if !a.isLoggedIn() {
			if _, known := userCommands[cmd]; known {
				printlnFn("Please login first")
			} else {
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		run, ok := userCommands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		a.report(run(ctx, a, arg))
	}
}

type command func(ctx context.Context, a execIface, arg string) error

var userCommands = map[string]command{
	"logout":      func(ctx context.Context, a execIface, _ string) error { return a.Logout(ctx) },
	"whoami":      func(ctx context.Context, a execIface, _ string) error { return a.WhoAmI(ctx) },
	"profile":     func(ctx context.Context, a execIface, _ string) error { return a.Profile(ctx) },
	"editprofile": func(ctx context.Context, a execIface, _ string) error { return a.EditProfile(ctx) },
	"posts":       func(ctx context.Context, a execIface, arg string) error { return a.Posts(ctx, arg) },
	"next":        func(ctx context.Context, a execIface, _ string) error { return a.NextPage(ctx) },
	"prev":        func(ctx context.Context, a execIface, _ string) error { return a.PrevPage(ctx) },
	"mine":        func(ctx context.Context, a execIface, _ string) error { return a.MyPosts(ctx) },
	"show":        func(ctx context.Context, a execIface, arg string) error { return a.ShowPost(ctx, arg) },
	"newpost":     func(ctx context.Context, a execIface, _ string) error { return a.NewPost(ctx) },
	"editpost":    func(ctx context.Context, a execIface, arg string) error { return a.EditPost(ctx, arg) },
	"delete":      func(ctx context.Context, a execIface, arg string) error { return a.DeletePost(ctx, arg) },
	"comments":    func(ctx context.Context, a execIface, arg string) error { return a.Comments(ctx, arg) },
	"comment":     func(ctx context.Context, a execIface, arg string) error { return a.AddComment(ctx, arg) },
	"predict":     func(ctx context.Context, a execIface, _ string) error { return a.Predict(ctx) },
}

func splitCommand(line string) (cmd, arg string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}
	return strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
}
