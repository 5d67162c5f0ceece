package services

import (
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/netx"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client for unit tests of the services.
type fakeClient struct {
	// canned replies for Do, consumed in order
	replies []fakeReply
	// requests seen by Do
	requests []*client.Request

	LoginRet   *models.Session
	LoginErr   error
	LastEmail  string
	LastPass   string
	LogoutErr  error
	LogoutCall int
	CloseCall  int
	state      client.State
}

type fakeReply struct {
	body string
	err  error
}

func (f *fakeClient) reply(body string) *fakeClient {
	f.replies = append(f.replies, fakeReply{body: body})
	return f
}

func (f *fakeClient) fail(err error) *fakeClient {
	f.replies = append(f.replies, fakeReply{err: err})
	return f
}

func (f *fakeClient) Do(_ context.Context, req *client.Request) (*client.Response, error) {
	f.requests = append(f.requests, req)
	if len(f.replies) == 0 {
		return &client.Response{StatusCode: 204}, nil
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &client.Response{StatusCode: 200, Body: []byte(r.body)}, nil
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.Session, error) {
	f.LastEmail, f.LastPass = email, password
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	f.state = client.Authenticated
	return f.LoginRet, nil
}

func (f *fakeClient) Logout(context.Context) error {
	f.LogoutCall++
	f.state = client.Unauthenticated
	return f.LogoutErr
}

func (f *fakeClient) Restore(context.Context) error { return nil }
func (f *fakeClient) SetToken(string)               {}
func (f *fakeClient) State() client.State           { return f.state }

func (f *fakeClient) OnSessionExpired(func(client.SessionExpiredEvent)) error { return nil }

func (f *fakeClient) Close() error {
	f.CloseCall++
	return nil
}

func (f *fakeClient) last(t *testing.T) *client.Request {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

// jsonBody re-encodes a request body the way the client would.
func jsonBody(t *testing.T, body any) map[string]any {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// formParts decodes a multipart body into field values and file names.
func formParts(t *testing.T, body any) (fields map[string]string, files map[string]string) {
	t.Helper()
	form, ok := body.(*netx.Multipart)
	require.True(t, ok, "body must be multipart, got %T", body)

	data, ct, err := form.Encode()
	require.NoError(t, err)
	_, params, err := mime.ParseMediaType(ct)
	require.NoError(t, err)

	fields, files = map[string]string{}, map[string]string{}
	r := multipart.NewReader(strings.NewReader(string(data)), params["boundary"])
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		v, _ := io.ReadAll(p)
		if p.FileName() != "" {
			files[p.FormName()] = p.FileName()
			continue
		}
		fields[p.FormName()] = string(v)
	}
	return fields, files
}
