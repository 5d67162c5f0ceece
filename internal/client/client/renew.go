package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
)

const refreshKey = "refresh"

// execute sends p and, for a first-attempt 401, renews the session and
// replays p once.
func (c *HTTPClient) execute(ctx context.Context, p *pendingRequest) (*Response, error) {
	auth := c.currentAuth()

	resp, err := c.send(ctx, p, auth)
	if err != nil {
		return nil, err
	}
	if resp.ok() {
		return resp, nil
	}

	if resp.StatusCode != http.StatusUnauthorized || p.attempt >= maxReplays {
		return nil, newAPIError(resp)
	}

	renewed, err := c.renew(ctx, auth)
	if err != nil {
		return nil, err
	}

	resp, err = c.send(ctx, p.replay(), renewed)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp)
	}
	return resp, nil
}

// renew returns the authorization to replay with. stale is the snapshot
// that got the 401; if another goroutine has rotated the token since, the
// current one is used without a new refresh. If the session was torn down
// since, the caller gets ErrNoSession and no second expiry is signalled.
func (c *HTTPClient) renew(ctx context.Context, stale authorization) (authorization, error) {
	cur := c.currentAuth()
	if cur.token != stale.token {
		if cur.token == "" {
			return authorization{}, ErrNoSession
		}
		return cur, nil
	}

	// The shared refresh must not die with whichever caller started it.
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.refreshGroup.Do(refreshKey, func() (any, error) {
		return c.refresh(shared)
	})
	if err != nil {
		return authorization{}, err
	}
	return authorization{token: v.(string)}, nil
}

func (c *HTTPClient) refresh(ctx context.Context) (string, error) {
	c.beginRefresh()
	defer c.endRefresh()

	stored, err := c.tokens.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load session: %w", err)
	}

	if stored.Refresh == "" {
		c.expire(ctx, SessionExpiredEvent{Reason: ReasonNoRefreshToken, Err: ErrNoSession})
		return "", ErrNoSession
	}

	fresh, err := c.exchange(ctx, stored.Refresh)
	if err != nil {
		c.expire(ctx, SessionExpiredEvent{Reason: ReasonRefreshFailed, Err: err})
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	if fresh.Refresh != "" {
		err = c.tokens.Save(ctx, fresh)
	} else {
		err = c.tokens.SaveAccess(ctx, fresh.Access)
	}
	if err != nil {
		c.log.Warn(ctx, "failed to persist refreshed token", "error", err)
	}
	c.SetToken(fresh.Access)

	c.log.Info(ctx, "access token refreshed")
	return fresh.Access, nil
}

// exchange posts the refresh token. Backends that rotate refresh tokens
// return a new one alongside the access token.
func (c *HTTPClient) exchange(ctx context.Context, refresh string) (models.Tokens, error) {
	p, err := c.prepare(&Request{
		Method: http.MethodPost,
		Path:   c.refreshPath,
		Body:   map[string]string{"refresh": refresh},
	})
	if err != nil {
		return models.Tokens{}, err
	}

	resp, err := c.send(ctx, p, authorization{})
	if err != nil {
		return models.Tokens{}, err
	}
	if !resp.ok() {
		return models.Tokens{}, newAPIError(resp)
	}

	var body struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := resp.Decode(&body); err != nil {
		return models.Tokens{}, err
	}
	if body.Access == "" {
		return models.Tokens{}, ErrMalformedTokens
	}
	return models.Tokens{Access: body.Access, Refresh: body.Refresh}, nil
}

// expire clears every trace of the session and signals it once.
func (c *HTTPClient) expire(ctx context.Context, ev SessionExpiredEvent) {
	c.SetToken("")
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear session", "error", err)
	}
	c.log.Warn(ctx, "session expired", "reason", string(ev.Reason), "error", ev.Err)
	c.publishExpired(ev)
}

func (c *HTTPClient) beginRefresh() {
	c.mu.Lock()
	c.refreshing++
	c.mu.Unlock()
}

func (c *HTTPClient) endRefresh() {
	c.mu.Lock()
	c.refreshing--
	c.mu.Unlock()
}
