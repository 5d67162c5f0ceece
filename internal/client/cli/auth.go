package cli

import (
	"bytes"
	"context"
	"errors"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/common"
)

// Register prompts for username, email and a confirmed password and
// creates an account.
// It does not log in; the user is pointed to the login command instead.
// Both password buffers are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Repeat password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)
	if !bytes.Equal(password, confirm) {
		return errors.New("passwords do not match")
	}

	reg := models.Registration{Username: username, Email: email, Password: string(password)}
	if err := a.authService.Register(ctx, reg); err != nil {
		return err
	}

	a.ok("Account created. Type 'login' to sign in.")
	return nil
}

// Login prompts for email (defaulting to the last one used) and password
// and authenticates. The service wipes the password.
func (a *App) Login(ctx context.Context) error {
	last := ""
	if id, err := a.authService.Identity(ctx); err == nil {
		last = id.Email
	}

	email, err := GetTextWithDefault(a.reader, "Enter email", last, a.out)
	if err != nil {
		return err
	}
	if email == "" {
		return errors.New("email is required")
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.userName = s.Username
	if a.userName == "" {
		a.userName = email
	}
	a.feed = nil
	a.expired.Store(false)

	a.ok("Welcome, %s!", a.userName)
	return nil
}

// Logout forgets the session locally.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.userName = ""
	a.feed = nil
	a.ok("Logged out.")
	return nil
}

// WhoAmI prints the identity cached at login.
func (a *App) WhoAmI(ctx context.Context) error {
	id, err := a.authService.Identity(ctx)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			a.info("Logged in as %s", orDash(a.userName))
			return nil
		}
		return err
	}
	a.info("Logged in as %s <%s> (id %d)", orDash(id.Username), id.Email, id.UserID)
	return nil
}
