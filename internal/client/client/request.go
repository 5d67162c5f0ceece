package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/constructhub/internal/netx"
)

// Request describes one API call. Path is relative to the base URL unless it
// is an absolute http(s) URL, as in the "next" links of paginated lists.
// Body is nil, a *netx.Multipart form, or any JSON-serialisable value.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	Header http.Header
}

// Response is a 2xx reply with its body fully read.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the JSON body into v. An empty body (204) is a no-op.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 || v == nil {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// pendingRequest is a request encoded once so it can be replayed. attempt
// counts replays done by the renewal logic; it never exceeds maxReplays.
type pendingRequest struct {
	method      string
	url         string
	header      http.Header
	body        []byte
	contentType string
	attempt     int
}

const maxReplays = 1

func (p *pendingRequest) replay() *pendingRequest {
	next := *p
	next.attempt = p.attempt + 1
	return &next
}

func (c *HTTPClient) prepare(req *Request) (*pendingRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := c.resolve(req.Path, req.Query)
	if err != nil {
		return nil, err
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	for k, v := range req.Header {
		header[k] = append([]string(nil), v...)
	}

	return &pendingRequest{
		method:      method,
		url:         u,
		header:      header,
		body:        body,
		contentType: contentType,
	}, nil
}

func (c *HTTPClient) resolve(path string, query url.Values) (string, error) {
	var raw string
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		raw = path
	} else {
		raw = strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid request url %q: %w", raw, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func encodeBody(body any) ([]byte, string, error) {
	switch b := body.(type) {
	case nil:
		return nil, "", nil
	case *netx.Multipart:
		return b.Encode()
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", fmt.Errorf("encode request body: %w", err)
		}
		return data, "application/json", nil
	}
}
