package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/netx"
)

const profilePath = "/profiles/me/"

// ProfileUpdate carries the fields to change. Empty strings are not sent.
type ProfileUpdate struct {
	Username string
	Email    string
	Picture  *netx.File
}

type ProfileService interface {
	Me(ctx context.Context) (*models.Profile, error)
	Update(ctx context.Context, upd ProfileUpdate) (*models.Profile, error)
}

type profileService struct {
	client Doer
}

func NewProfileService(c Doer) ProfileService {
	return &profileService{client: c}
}

func (p *profileService) Me(ctx context.Context) (*models.Profile, error) {
	resp, err := p.client.Do(ctx, &client.Request{Method: http.MethodGet, Path: profilePath})
	if err != nil {
		return nil, fmt.Errorf("get profile error: %w", err)
	}

	var out models.Profile
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p *profileService) Update(ctx context.Context, upd ProfileUpdate) (*models.Profile, error) {
	form := netx.NewMultipart()
	if upd.Username != "" {
		form.Set("username", upd.Username)
	}
	if upd.Email != "" {
		form.Set("email", upd.Email)
	}
	if upd.Picture != nil {
		pic := *upd.Picture
		pic.Field = "profile_picture"
		form.AddFile(pic)
	}

	resp, err := p.client.Do(ctx, &client.Request{Method: http.MethodPut, Path: profilePath, Body: form})
	if err != nil {
		return nil, fmt.Errorf("update profile error: %w", err)
	}

	var out models.Profile
	if err := resp.Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
