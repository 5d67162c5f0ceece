// Package tokens persists the session credentials (access/refresh pair) of
// the client. Three drivers share one contract: memory, sqlite and redis.
package tokens

import (
	"context"

	"github.com/dmitrijs2005/constructhub/internal/client/models"
)

// Repository stores at most one token pair. Writing a pair replaces the
// previous one; Load on an empty store returns zero Tokens and a nil error.
type Repository interface {
	Load(ctx context.Context) (models.Tokens, error)
	Save(ctx context.Context, t models.Tokens) error
	SaveAccess(ctx context.Context, access string) error
	Clear(ctx context.Context) error
	Close() error
}

// Config selects and tunes a driver.
type Config struct {
	Driver string
	Redis  *RedisConfig
}

// RedisConfig captures connection options for the redis driver.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}
