package config

import (
	"time"

	"github.com/dmitrijs2005/constructhub/internal/client/client"
	"github.com/dmitrijs2005/constructhub/internal/client/repositories/tokens"
)

// Config holds runtime settings for the ConstructHub CLI.
//
// Fields:
//   - APIBaseURL: backend base URL including the /api prefix.
//   - LoginPath, RefreshPath: token endpoints relative to APIBaseURL.
//   - RequestTimeout: default per-request timeout.
//   - TokenStore: memory, sqlite or redis.
//   - SQLiteDSN: local database file for the sqlite store.
//   - Redis*: connection options for the redis store.
//   - LogLevel: debug, info, warn or error. Logs go to stderr.
type Config struct {
	APIBaseURL     string        `env:"CONSTRUCTHUB_API_URL"`
	LoginPath      string        `env:"CONSTRUCTHUB_LOGIN_PATH"`
	RefreshPath    string        `env:"CONSTRUCTHUB_REFRESH_PATH"`
	RequestTimeout time.Duration `env:"CONSTRUCTHUB_REQUEST_TIMEOUT"`
	TokenStore     string        `env:"CONSTRUCTHUB_TOKEN_STORE"`
	SQLiteDSN      string        `env:"CONSTRUCTHUB_SQLITE_DSN"`
	RedisAddr      string        `env:"CONSTRUCTHUB_REDIS_ADDR"`
	RedisUsername  string        `env:"CONSTRUCTHUB_REDIS_USERNAME"`
	RedisPassword  string        `env:"CONSTRUCTHUB_REDIS_PASSWORD"`
	RedisDB        int           `env:"CONSTRUCTHUB_REDIS_DB"`
	RedisPrefix    string        `env:"CONSTRUCTHUB_REDIS_PREFIX"`
	LogLevel       string        `env:"CONSTRUCTHUB_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.LoginPath = client.DefaultLoginPath
	c.RefreshPath = client.DefaultRefreshPath
	c.RequestTimeout = client.DefaultTimeout
	c.TokenStore = tokens.DriverSQLite
	c.SQLiteDSN = "constructhub.db"
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPrefix = "constructhub:session:"
	c.LogLevel = "warn"
}

// Tokens returns the token store settings.
func (c *Config) Tokens() tokens.Config {
	tc := tokens.Config{Driver: c.TokenStore}
	if c.TokenStore == tokens.DriverRedis {
		tc.Redis = &tokens.RedisConfig{
			Addr:     c.RedisAddr,
			Username: c.RedisUsername,
			Password: c.RedisPassword,
			DB:       c.RedisDB,
			Prefix:   c.RedisPrefix,
		}
	}
	return tc
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
