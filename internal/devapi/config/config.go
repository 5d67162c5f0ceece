// Package config handles configuration for the dev API server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the dev API.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP listener.
//   - BasePath: prefix every route is mounted under (e.g. "/api").
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: token lifetimes.
//   - PageSize: number of posts per page on list endpoints.
//   - LogLevel: slog level name.
type Config struct {
	EndpointAddr                 string
	BasePath                     string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	PageSize                     int
	LogLevel                     string
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure and should be overridden outside local runs.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8000"
	c.BasePath = "/api"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 5 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.PageSize = 10
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
