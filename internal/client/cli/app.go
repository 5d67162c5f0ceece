package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/config"
	"github.com/dmitrijs2005/constructhub/internal/client/models"
	"github.com/dmitrijs2005/constructhub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/constructhub/internal/client/repositories/tokens"
	"github.com/dmitrijs2005/constructhub/internal/client/services"
	"github.com/dmitrijs2005/constructhub/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	apiClient      client.Client
	authService    services.AuthService
	profileService services.ProfileService
	postService    services.PostService
	commentService services.CommentService
	predictService services.PredictService

	userName string
	feed     *models.Page[models.Post]
	expired  atomic.Bool

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the token store selected by c, builds the API client and the
// services on top of it, and restores any saved session.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	var (
		deps tokens.Dependencies
		meta metadata.Repository
		db   *sql.DB
	)

	if c.TokenStore == tokens.DriverSQLite {
		var err error
		db, err = client.InitDatabase(ctx, c.SQLiteDSN)
		if err != nil {
			return nil, fmt.Errorf("error initializing database: %w", err)
		}
		deps.SQLiteDB = db
		meta = metadata.NewSQLiteRepository(db)
	}

	repo, err := tokens.New(c.Tokens(), deps)
	if err != nil {
		closeDB(db)
		return nil, err
	}

	apiClient, err := client.New(c.APIBaseURL, repo,
		client.WithLogger(log),
		client.WithTimeout(c.RequestTimeout),
		client.WithLoginPath(c.LoginPath),
		client.WithRefreshPath(c.RefreshPath),
	)
	if err != nil {
		_ = repo.Close()
		closeDB(db)
		return nil, err
	}

	a := &App{
		config:         c,
		log:            log,
		db:             db,
		apiClient:      apiClient,
		authService:    services.NewAuthService(apiClient, meta),
		profileService: services.NewProfileService(apiClient),
		postService:    services.NewPostService(apiClient),
		commentService: services.NewCommentService(apiClient),
		predictService: services.NewPredictService(apiClient),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}

	if err := apiClient.OnSessionExpired(a.onSessionExpired); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	if err := apiClient.Restore(ctx); err != nil {
		log.Warn(ctx, "could not restore session", "error", err)
	}
	if id, err := a.authService.Identity(ctx); err == nil && a.isLoggedIn() {
		a.userName = id.Username
	}

	return a, nil
}

func closeDB(db *sql.DB) {
	if db != nil {
		_ = db.Close()
	}
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

func (a *App) Close(ctx context.Context) error {
	err := a.authService.Close(ctx)
	if a.db != nil {
		err = errors.Join(err, a.db.Close())
	}
	return err
}

func (a *App) isLoggedIn() bool {
	return a.authService.IsLoggedIn()
}

// onSessionExpired runs on the goroutine of the failed request; it only
// records the fact; the REPL reacts before reading the next command.
func (a *App) onSessionExpired(ev client.SessionExpiredEvent) {
	a.expired.Store(true)
	a.log.Info(context.Background(), "session expired", "reason", string(ev.Reason))
}

// sessionExpired reports and clears a pending expiry.
func (a *App) sessionExpired() bool {
	if !a.expired.Swap(false) {
		return false
	}
	a.userName = ""
	a.feed = nil
	return true
}
