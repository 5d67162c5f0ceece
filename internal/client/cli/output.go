package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/fatih/color"
)

var (
	okColor    = color.New(color.FgGreen)
	errColor   = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	titleColor = color.New(color.FgCyan, color.Bold)
)

func (a *App) ok(format string, args ...any) {
	okColor.Fprintf(a.out, format+"\n", args...)
}

func (a *App) info(format string, args ...any) {
	fmt.Fprintf(a.out, format+"\n", args...)
}

func (a *App) warn(format string, args ...any) {
	warnColor.Fprintf(a.out, format+"\n", args...)
}

// report prints err for the user. Session expiry is announced by the REPL
// itself, so those errors stay quiet here.
func (a *App) report(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, client.ErrNoSession) || errors.Is(err, client.ErrSessionExpired) {
		return
	}
	errColor.Fprintf(a.out, "Error: %s\n", describe(err))
}

// describe turns client errors into short user-facing text.
func describe(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Detail != "":
		return apiErr.Detail
	case errors.Is(err, client.ErrUnavailable):
		return "server unavailable, try again later"
	case errors.Is(err, client.ErrForbidden):
		return "you are not allowed to do that"
	case errors.Is(err, client.ErrNotFound):
		return "not found"
	default:
		return err.Error()
	}
}

func printPostLine(w io.Writer, p models.Post) {
	titleColor.Fprintf(w, "#%d %s", p.ID, p.Title)
	fmt.Fprintf(w, "  by %s", orDash(p.Author))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintf(w, " on %s", p.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(w)
}

func printPost(w io.Writer, p models.Post) {
	printPostLine(w, p)
	if p.Image != "" {
		fmt.Fprintf(w, "image: %s\n", p.Image)
	}
	fmt.Fprintln(w, p.Content)
}

func printComment(w io.Writer, c models.Comment) {
	titleColor.Fprintf(w, "  [%d] %s", c.ID, c.Title)
	fmt.Fprintf(w, " (user %d)\n", c.Author)
	for _, line := range strings.Split(c.Content, "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
