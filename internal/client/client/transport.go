package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/constructhub/internal/common"
	"github.com/dmitrijs2005/constructhub/internal/logging"
	"github.com/google/uuid"
)

// maxResponseSize caps buffered response bodies.
var maxResponseSize int64 = 32 << 20

// authorization is the per-request credential snapshot. The zero value
// sends no Authorization header.
type authorization struct {
	token string
}

func (a authorization) apply(h http.Header) {
	if a.token != "" {
		h.Set(common.AuthorizationHeaderName, common.BearerPrefix+a.token)
	}
}

func (c *HTTPClient) currentAuth() authorization {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return authorization{token: c.accessToken}
}

func (r *Response) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// withTimeout applies the default timeout unless the caller already set a
// deadline.
func (c *HTTPClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.timeout)
}

// send performs one HTTP exchange. It never renews.
func (c *HTTPClient) send(ctx context.Context, p *pendingRequest, auth authorization) (*Response, error) {
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)

	reqCtx, cancel := c.withTimeout(ctx)
	defer cancel()

	var body io.Reader = http.NoBody
	if p.body != nil {
		body = bytes.NewReader(p.body)
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, p.method, p.url, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range p.header {
		httpReq.Header[k] = append([]string(nil), v...)
	}
	if p.contentType != "" {
		httpReq.Header.Set("Content-Type", p.contentType)
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}
	httpReq.Header.Set(common.RequestIDHeaderName, requestID)
	auth.apply(httpReq.Header)

	log := c.log.With("method", p.method, "url", p.url, "attempt", p.attempt)

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn(ctx, "request failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}
	if int64(len(data)) > maxResponseSize {
		log.Warn(ctx, "response too large", "status", resp.StatusCode, "limit", maxResponseSize)
		return nil, fmt.Errorf("%w: over %d bytes", ErrResponseTooLarge, maxResponseSize)
	}

	log.Debug(ctx, "request done", "status", resp.StatusCode, "dur", time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
