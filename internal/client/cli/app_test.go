package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/config"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/constructhub/internal/client/services"
	"github.com/dmitrijs2005/constructhub/internal/common"
	"github.com/dmitrijs2005/constructhub/internal/logging"
	"github.com/dmitrijs2005/constructhub/internal/netx"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ fakes ------------

type fakeAuth struct {
	loggedIn   bool
	identity   *models.Session
	session    *models.Session
	loginErr   error
	lastEmail  string
	lastPass   string
	registered []models.Registration
}

func (f *fakeAuth) Register(_ context.Context, reg models.Registration) error {
	f.registered = append(f.registered, reg)
	return nil
}

func (f *fakeAuth) Login(_ context.Context, email string, password []byte) (*models.Session, error) {
	f.lastEmail, f.lastPass = email, string(password)
	common.WipeByteArray(password)
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	f.loggedIn = true
	return f.session, nil
}

func (f *fakeAuth) Logout(context.Context) error {
	f.loggedIn = false
	return nil
}

func (f *fakeAuth) IsLoggedIn() bool { return f.loggedIn }

func (f *fakeAuth) Identity(context.Context) (*models.Session, error) {
	if f.identity == nil {
		return nil, common.ErrorNotFound
	}
	return f.identity, nil
}

func (f *fakeAuth) Close(context.Context) error { return nil }

type fakePosts struct {
	page     *models.Page[models.Post]
	followed []string
	listArgs []string
	post     *models.Post
	created  []services.PostInput
	updated  []services.PostInput
	deleted  []int64
}

func (f *fakePosts) List(_ context.Context, search string, _ int) (*models.Page[models.Post], error) {
	f.listArgs = append(f.listArgs, search)
	return f.page, nil
}

func (f *fakePosts) Follow(_ context.Context, link string) (*models.Page[models.Post], error) {
	f.followed = append(f.followed, link)
	return &models.Page[models.Post]{Previous: "prev-link", Results: []models.Post{{ID: 9, Title: "page two"}}}, nil
}

func (f *fakePosts) Mine(context.Context) ([]models.Post, error) { return nil, nil }

func (f *fakePosts) Get(_ context.Context, id int64) (*models.Post, error) {
	if f.post == nil {
		return nil, &client.APIError{StatusCode: http.StatusNotFound}
	}
	return f.post, nil
}

func (f *fakePosts) Create(_ context.Context, in services.PostInput) (*models.Post, error) {
	f.created = append(f.created, in)
	return &models.Post{ID: 77}, nil
}

func (f *fakePosts) Update(_ context.Context, id int64, in services.PostInput) (*models.Post, error) {
	f.updated = append(f.updated, in)
	return &models.Post{ID: id}, nil
}

func (f *fakePosts) Delete(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeComments struct {
	list    []models.Comment
	created []models.Comment
}

func (f *fakeComments) ListForPost(context.Context, int64) ([]models.Comment, error) {
	return f.list, nil
}

func (f *fakeComments) Create(_ context.Context, postID int64, title, content string) (*models.Comment, error) {
	c := models.Comment{ID: 5, PostID: postID, Title: title, Content: content}
	f.created = append(f.created, c)
	return &c, nil
}

type fakePredict struct {
	got models.EstimateRequest
}

func (f *fakePredict) Estimate(_ context.Context, req models.EstimateRequest) (*models.Estimate, error) {
	f.got = req
	return &models.Estimate{Cement: 964, Sand: 2410, Bricks: 1687}, nil
}

type fakeProfile struct {
	me      models.Profile
	updates []services.ProfileUpdate
}

func (f *fakeProfile) Me(context.Context) (*models.Profile, error) { return &f.me, nil }

func (f *fakeProfile) Update(_ context.Context, upd services.ProfileUpdate) (*models.Profile, error) {
	f.updates = append(f.updates, upd)
	p := f.me
	if upd.Username != "" {
		p.Username = upd.Username
	}
	return &p, nil
}

// ------------ helpers ------------

type testApp struct {
	*App
	auth     *fakeAuth
	posts    *fakePosts
	comments *fakeComments
	predict  *fakePredict
	profile  *fakeProfile
	buf      *bytes.Buffer
}

func newTestApp(t *testing.T, lines ...string) *testApp {
	t.Helper()

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	oldPw := getPassword
	getPassword = func(string, io.Writer) ([]byte, error) { return []byte("s3cret"), nil }
	t.Cleanup(func() { getPassword = oldPw })

	ta := &testApp{
		auth:     &fakeAuth{},
		posts:    &fakePosts{},
		comments: &fakeComments{},
		predict:  &fakePredict{},
		profile:  &fakeProfile{},
		buf:      &bytes.Buffer{},
	}
	ta.App = &App{
		log:            logging.Discard(),
		authService:    ta.auth,
		postService:    ta.posts,
		commentService: ta.comments,
		predictService: ta.predict,
		profileService: ta.profile,
		reader:         rdr(strings.Join(lines, "\n") + "\n"),
		out:            ta.buf,
	}
	return ta
}

// ------------ tests ------------

func TestApp_Register(t *testing.T) {
	ta := newTestApp(t, "ana", "ana@example.com")

	require.NoError(t, ta.Register(context.Background()))
	require.Len(t, ta.auth.registered, 1)
	assert.Equal(t, models.Registration{Username: "ana", Email: "ana@example.com", Password: "s3cret"}, ta.auth.registered[0])
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.buf.String(), "Account created")
}

func TestApp_RegisterPasswordMismatch(t *testing.T) {
	ta := newTestApp(t, "ana", "ana@example.com")
	answers := [][]byte{[]byte("s3cret"), []byte("other")}
	getPassword = func(string, io.Writer) ([]byte, error) {
		pw := answers[0]
		answers = answers[1:]
		return pw, nil
	}

	err := ta.Register(context.Background())
	require.ErrorContains(t, err, "passwords do not match")
	assert.Empty(t, ta.auth.registered)
}

func TestApp_LoginUsesCachedEmail(t *testing.T) {
	ta := newTestApp(t, "")
	ta.auth.identity = &models.Session{Email: "ana@example.com"}
	ta.auth.session = &models.Session{Username: "ana"}
	ta.expired.Store(true)

	require.NoError(t, ta.Login(context.Background()))
	assert.Equal(t, "ana@example.com", ta.auth.lastEmail)
	assert.Equal(t, "s3cret", ta.auth.lastPass)
	assert.Equal(t, "ana", ta.userName)
	assert.False(t, ta.sessionExpired(), "login clears a pending expiry")
	assert.Contains(t, ta.buf.String(), "Welcome, ana!")
	assert.Equal(t, "(ana)", ta.getStatus())
}

func TestApp_LoginRequiresEmail(t *testing.T) {
	ta := newTestApp(t, "")
	require.Error(t, ta.Login(context.Background()))
	assert.Empty(t, ta.auth.lastEmail)
	assert.Equal(t, "(guest)", ta.getStatus())
}

func TestApp_LoginFailure(t *testing.T) {
	ta := newTestApp(t, "ana@example.com")
	ta.auth.loginErr = &client.APIError{StatusCode: 401, Detail: "No active account found with the given credentials"}

	err := ta.Login(context.Background())
	require.Error(t, err)
	ta.report(err)
	assert.Contains(t, ta.buf.String(), "Error: No active account found")
	assert.False(t, ta.isLoggedIn())
}

func TestApp_LogoutAndWhoAmI(t *testing.T) {
	ta := newTestApp(t)
	ta.auth.loggedIn = true
	ta.auth.identity = &models.Session{UserID: 7, Username: "ana", Email: "ana@example.com"}

	require.NoError(t, ta.WhoAmI(context.Background()))
	assert.Contains(t, ta.buf.String(), "Logged in as ana <ana@example.com> (id 7)")

	require.NoError(t, ta.Logout(context.Background()))
	assert.False(t, ta.isLoggedIn())
	assert.Contains(t, ta.buf.String(), "Logged out.")
}

func TestApp_PostsPaging(t *testing.T) {
	ta := newTestApp(t)
	ta.posts.page = &models.Page[models.Post]{
		Count: 2,
		Next:  "next-link",
		Results: []models.Post{
			{ID: 1, Title: "Laje", Author: "ana"},
		},
	}

	require.NoError(t, ta.PrevPage(context.Background()))
	assert.Contains(t, ta.buf.String(), "No previous page.")

	require.NoError(t, ta.Posts(context.Background(), " laje "))
	assert.Equal(t, []string{"laje"}, ta.posts.listArgs)
	assert.Contains(t, ta.buf.String(), "#1 Laje  by ana")
	assert.Contains(t, ta.buf.String(), "type 'next' to page")

	require.NoError(t, ta.NextPage(context.Background()))
	require.NoError(t, ta.PrevPage(context.Background()))
	assert.Equal(t, []string{"next-link", "prev-link"}, ta.posts.followed)
	assert.Contains(t, ta.buf.String(), "#9 page two")
}

func TestApp_ShowPost(t *testing.T) {
	ta := newTestApp(t)

	err := ta.ShowPost(context.Background(), "")
	require.ErrorIs(t, err, errUsage)
	require.Error(t, ta.ShowPost(context.Background(), "abc"))

	err = ta.ShowPost(context.Background(), "4")
	require.ErrorIs(t, err, client.ErrNotFound)
	ta.report(err)
	assert.Contains(t, ta.buf.String(), "Error: not found")

	ta.posts.post = &models.Post{ID: 4, Title: "Muro", Content: "tijolo baiano", Image: "/media/m.png"}
	require.NoError(t, ta.ShowPost(context.Background(), "#4"))
	assert.Contains(t, ta.buf.String(), "tijolo baiano")
	assert.Contains(t, ta.buf.String(), "image: /media/m.png")
}

func TestApp_NewPostWithImage(t *testing.T) {
	ta := newTestApp(t, "Laje", "linha 1", "linha 2", "", "/tmp/laje.png")

	oldRead := readFile
	readFile = func(field, path string) (netx.File, error) {
		return netx.File{Field: field, Name: filepath.Base(path), Data: []byte("png")}, nil
	}
	t.Cleanup(func() { readFile = oldRead })

	require.NoError(t, ta.NewPost(context.Background()))
	require.Len(t, ta.posts.created, 1)
	in := ta.posts.created[0]
	assert.Equal(t, "Laje", in.Title)
	assert.Equal(t, "linha 1\nlinha 2", in.Content)
	require.NotNil(t, in.Image)
	assert.Equal(t, "imagem", in.Image.Field)
	assert.Equal(t, "laje.png", in.Image.Name)
	assert.Contains(t, ta.buf.String(), "Post #77 published.")
}

func TestApp_NewPostAttachmentError(t *testing.T) {
	ta := newTestApp(t, "Laje", "texto", "", "/nope.png")

	oldRead := readFile
	readFile = func(string, string) (netx.File, error) { return netx.File{}, errors.New("stat /nope.png: no such file") }
	t.Cleanup(func() { readFile = oldRead })

	require.Error(t, ta.NewPost(context.Background()))
	assert.Empty(t, ta.posts.created)
}

func TestApp_EditPostKeepsCurrentValues(t *testing.T) {
	ta := newTestApp(t, "", "", "")
	ta.posts.post = &models.Post{ID: 3, Title: "old title", Content: "old body"}

	require.NoError(t, ta.EditPost(context.Background(), "3"))
	require.Len(t, ta.posts.updated, 1)
	assert.Equal(t, services.PostInput{Title: "old title", Content: "old body"}, ta.posts.updated[0])
}

func TestApp_DeletePostAsksConfirmation(t *testing.T) {
	ta := newTestApp(t, "n", "y")

	require.NoError(t, ta.DeletePost(context.Background(), "8"))
	assert.Empty(t, ta.posts.deleted)
	assert.Contains(t, ta.buf.String(), "Cancelled.")

	require.NoError(t, ta.DeletePost(context.Background(), "8"))
	assert.Equal(t, []int64{8}, ta.posts.deleted)
}

func TestApp_Comments(t *testing.T) {
	ta := newTestApp(t, "Boa", "muito bom", "")

	require.NoError(t, ta.Comments(context.Background(), "2"))
	assert.Contains(t, ta.buf.String(), "No comments yet.")

	ta.comments.list = []models.Comment{{ID: 1, Title: "Oi", Content: "linha", Author: 3}}
	require.NoError(t, ta.Comments(context.Background(), "2"))
	assert.Contains(t, ta.buf.String(), "[1] Oi (user 3)")

	require.NoError(t, ta.AddComment(context.Background(), "2"))
	require.Len(t, ta.comments.created, 1)
	assert.Equal(t, models.Comment{ID: 5, PostID: 2, Title: "Boa", Content: "muito bom"}, ta.comments.created[0])
}

func TestApp_Predict(t *testing.T) {
	ta := newTestApp(t, "120,5", "residencial", "")

	require.NoError(t, ta.Predict(context.Background()))
	assert.Equal(t, models.EstimateRequest{Area: 120.5, ConstructionType: "residencial"}, ta.predict.got)
	assert.Contains(t, ta.buf.String(), "bricks: 1687")

	ta = newTestApp(t, "muito")
	require.Error(t, ta.Predict(context.Background()))
}

func TestApp_EditProfile(t *testing.T) {
	ta := newTestApp(t, "", "", "")
	ta.profile.me = models.Profile{Username: "ana", Email: "ana@example.com"}

	require.NoError(t, ta.EditProfile(context.Background()))
	assert.Empty(t, ta.profile.updates)
	assert.Contains(t, ta.buf.String(), "Nothing to change.")

	ta = newTestApp(t, "ana2", "", "")
	ta.profile.me = models.Profile{Username: "ana", Email: "ana@example.com"}
	require.NoError(t, ta.EditProfile(context.Background()))
	require.Len(t, ta.profile.updates, 1)
	assert.Equal(t, services.ProfileUpdate{Username: "ana2"}, ta.profile.updates[0])
	assert.Equal(t, "ana2", ta.userName)
}

func TestApp_ReportIsQuietOnExpiry(t *testing.T) {
	ta := newTestApp(t)

	ta.report(client.ErrNoSession)
	ta.report(client.ErrSessionExpired)
	ta.report(nil)
	assert.Empty(t, ta.buf.String())

	ta.report(client.ErrUnavailable)
	assert.Contains(t, ta.buf.String(), "server unavailable")
}

// The real client and services against a backend that rejects the stored
// token, with no refresh token available.
func TestApp_SessionExpiryResetsState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	repo := tokens.NewMemory()
	require.NoError(t, repo.Save(context.Background(), models.Tokens{Access: "A"}))
	c, err := client.New(srv.URL+"/api", repo)
	require.NoError(t, err)
	require.NoError(t, c.Restore(context.Background()))

	ta := newTestApp(t)
	ta.App.authService = services.NewAuthService(c, nil)
	ta.App.profileService = services.NewProfileService(c)
	ta.App.userName = "ana"
	require.NoError(t, c.OnSessionExpired(ta.onSessionExpired))
	require.True(t, ta.isLoggedIn())

	err = ta.Profile(context.Background())
	require.ErrorIs(t, err, client.ErrNoSession)
	ta.report(err)
	assert.Empty(t, ta.buf.String())

	assert.True(t, ta.sessionExpired())
	assert.False(t, ta.sessionExpired(), "expiry is consumed once")
	assert.Empty(t, ta.userName)
	assert.False(t, ta.isLoggedIn())
}

func TestNewApp(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.LoadDefaults()
		cfg.TokenStore = tokens.DriverMemory

		app, err := NewApp(ctx, cfg, logging.Discard())
		require.NoError(t, err)
		assert.False(t, app.isLoggedIn())
		assert.NoError(t, app.Close(ctx))
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.LoadDefaults()
		cfg.SQLiteDSN = filepath.Join(t.TempDir(), "cli.db")

		app, err := NewApp(ctx, cfg, logging.Discard())
		require.NoError(t, err)
		require.NotNil(t, app.db)
		assert.NoError(t, app.Close(ctx))
	})

	t.Run("unknown store", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.LoadDefaults()
		cfg.TokenStore = "etcd"

		_, err := NewApp(ctx, cfg, logging.Discard())
		require.Error(t, err)
	})
}
