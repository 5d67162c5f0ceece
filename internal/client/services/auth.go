package services

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/constructhub/internal/common"
)

const registerPath = "/profiles/register/"

// Identity keys cached in the metadata table after a successful login.
const (
	IdentityUserIDKey   = "user_id"
	IdentityUsernameKey = "username"
	IdentityEmailKey    = "email"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a new account on the server; it does not log in.
//   - Login: obtain and persist a token pair, cache the identity locally.
//   - Logout: forget tokens and the cached identity. No network call.
//   - IsLoggedIn: whether an access token is installed.
//   - Identity: the identity cached by the last login, if any.
type AuthService interface {
	Register(ctx context.Context, reg models.Registration) error
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Logout(ctx context.Context) error
	IsLoggedIn() bool
	Identity(ctx context.Context) (*models.Session, error)
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	meta   metadata.Repository
}

// NewAuthService binds the service to the API client. meta may be nil, in
// which case no identity is cached.
func NewAuthService(c client.Client, meta metadata.Repository) AuthService {
	return &authService{client: c, meta: meta}
}

func (a *authService) Register(ctx context.Context, reg models.Registration) error {
	_, err := a.client.Do(ctx, &client.Request{
		Method: http.MethodPost,
		Path:   registerPath,
		Body:   reg,
	})
	if err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login wipes password once the request has been encoded.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	pw := string(password)
	common.WipeByteArray(password)

	s, err := a.client.Login(ctx, email, pw)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	if err := a.saveIdentity(ctx, s, email); err != nil {
		return nil, fmt.Errorf("identity saving error: %w", err)
	}
	return s, nil
}

func (a *authService) saveIdentity(ctx context.Context, s *models.Session, email string) error {
	if a.meta == nil {
		return nil
	}
	if s.Email == "" {
		s.Email = email
	}

	return a.meta.Put(ctx, map[string]string{
		IdentityUserIDKey:   strconv.FormatInt(s.UserID, 10),
		IdentityUsernameKey: s.Username,
		IdentityEmailKey:    s.Email,
	})
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return err
	}
	if a.meta == nil {
		return nil
	}
	return a.meta.Delete(ctx, IdentityUserIDKey, IdentityUsernameKey, IdentityEmailKey)
}

func (a *authService) IsLoggedIn() bool {
	return a.client.State() != client.Unauthenticated
}

// Identity returns common.ErrorNotFound when nothing is cached.
func (a *authService) Identity(ctx context.Context) (*models.Session, error) {
	if a.meta == nil {
		return nil, common.ErrorNotFound
	}

	m, err := a.meta.Lookup(ctx, IdentityUserIDKey, IdentityUsernameKey, IdentityEmailKey)
	if err != nil {
		return nil, err
	}
	email, ok := m[IdentityEmailKey]
	if !ok {
		return nil, common.ErrorNotFound
	}

	s := &models.Session{Email: email, Username: m[IdentityUsernameKey]}
	s.UserID, _ = strconv.ParseInt(m[IdentityUserIDKey], 10, 64)
	return s, nil
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
