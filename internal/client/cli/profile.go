package cli

import (
	"context"

	"github.com/dmitrijs2005/constructhub/internal/client/services"
)

func (a *App) Profile(ctx context.Context) error {
	p, err := a.profileService.Me(ctx)
	if err != nil {
		return err
	}

	titleColor.Fprintln(a.out, p.Username)
	a.info("email:   %s", orDash(p.Email))
	a.info("picture: %s", orDash(p.ProfilePicture))
	return nil
}

// EditProfile prompts for each field; empty answers keep the current value.
func (a *App) EditProfile(ctx context.Context) error {
	current, err := a.profileService.Me(ctx)
	if err != nil {
		return err
	}

	username, err := GetTextWithDefault(a.reader, "Username", current.Username, a.out)
	if err != nil {
		return err
	}
	email, err := GetTextWithDefault(a.reader, "Email", current.Email, a.out)
	if err != nil {
		return err
	}
	pic, err := a.askAttachment("Profile picture path", "profile_picture")
	if err != nil {
		return err
	}

	upd := services.ProfileUpdate{Picture: pic}
	if username != current.Username {
		upd.Username = username
	}
	if email != current.Email {
		upd.Email = email
	}
	if upd == (services.ProfileUpdate{}) {
		a.info("Nothing to change.")
		return nil
	}

	p, err := a.profileService.Update(ctx, upd)
	if err != nil {
		return err
	}
	if p.Username != "" {
		a.userName = p.Username
	}
	a.ok("Profile updated.")
	return nil
}
