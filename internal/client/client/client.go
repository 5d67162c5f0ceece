package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/constructhub/internal/logging"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultLoginPath   = "/profiles/login/"
	DefaultRefreshPath = "/profiles/token/refresh/"
	DefaultTimeout     = 15 * time.Second
)

// Client is the request-issuing interface the services depend on.
type Client interface {
	Do(ctx context.Context, req *Request) (*Response, error)
	Login(ctx context.Context, email, password string) (*models.Session, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) error
	SetToken(token string)
	State() State
	OnSessionExpired(fn func(SessionExpiredEvent)) error
	Close() error
}

type State int

const (
	Unauthenticated State = iota
	Authenticated
	Refreshing
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	case Refreshing:
		return "refreshing"
	default:
		return "unauthenticated"
	}
}

type HTTPClient struct {
	baseURL     string
	loginPath   string
	refreshPath string
	timeout     time.Duration

	http   *http.Client
	tokens tokens.Repository
	log    logging.Logger
	bus    evbus.Bus

	mu          sync.RWMutex
	accessToken string
	refreshing  int

	refreshGroup singleflight.Group
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

func WithEventBus(b evbus.Bus) Option {
	return func(c *HTTPClient) { c.bus = b }
}

// WithTimeout sets the per-request timeout applied when the caller's context
// has no deadline. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.timeout = d }
}

func WithLoginPath(p string) Option {
	return func(c *HTTPClient) {
		if p != "" {
			c.loginPath = p
		}
	}
}

func WithRefreshPath(p string) Option {
	return func(c *HTTPClient) {
		if p != "" {
			c.refreshPath = p
		}
	}
}

// New creates a client for baseURL (e.g. "http://localhost:8000/api") that
// persists credentials in repo.
func New(baseURL string, repo tokens.Repository, opts ...Option) (*HTTPClient, error) {
	if baseURL == "" {
		return nil, ErrInvalidBaseURL
	}
	if repo == nil {
		repo = tokens.NewMemory()
	}

	c := &HTTPClient{
		baseURL:     baseURL,
		loginPath:   DefaultLoginPath,
		refreshPath: DefaultRefreshPath,
		timeout:     DefaultTimeout,
		http:        &http.Client{},
		tokens:      repo,
		log:         logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.bus == nil {
		c.bus = newBus()
	}
	return c, nil
}

// SetToken installs token for subsequent requests, or clears it when empty.
func (c *HTTPClient) SetToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *HTTPClient) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch {
	case c.refreshing > 0:
		return Refreshing
	case c.accessToken != "":
		return Authenticated
	default:
		return Unauthenticated
	}
}

// Do issues req with the current access token and renews the session once
// on a 401.
func (c *HTTPClient) Do(ctx context.Context, req *Request) (*Response, error) {
	p, err := c.prepare(req)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, p)
}

// Login exchanges credentials for a token pair. It bypasses renewal and
// leaves stored state untouched on failure.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.Session, error) {
	p, err := c.prepare(&Request{
		Method: http.MethodPost,
		Path:   c.loginPath,
		Body:   map[string]string{"email": email, "password": password},
	})
	if err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, p, authorization{})
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp)
	}

	var s models.Session
	if err := resp.Decode(&s); err != nil {
		return nil, err
	}
	if s.Access == "" || s.Refresh == "" {
		return nil, ErrMalformedTokens
	}

	if err := c.tokens.Save(ctx, s.Tokens()); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	c.SetToken(s.Access)

	c.log.Info(ctx, "logged in", "user_id", s.UserID)
	return &s, nil
}

// Logout forgets the session locally. No request is made.
func (c *HTTPClient) Logout(ctx context.Context) error {
	c.SetToken("")
	if err := c.tokens.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Restore installs the stored access token, if any.
func (c *HTTPClient) Restore(ctx context.Context) error {
	t, err := c.tokens.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	c.SetToken(t.Access)
	return nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return c.tokens.Close()
}
