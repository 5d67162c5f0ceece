package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	switch {
	case a.userName != "":
		return fmt.Sprintf("(%s)", a.userName)
	case a.isLoggedIn():
		return "(logged in)"
	default:
		return "(guest)"
	}
}

// Root greets the user, asks for credentials when no session was restored
// and runs the REPL until exit.
func (a *App) Root(ctx context.Context) {
	a.info("Welcome to ConstructHub CLI (type 'help' for commands)")

	if !a.isLoggedIn() {
		a.report(a.Login(ctx))
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
