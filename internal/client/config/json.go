package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/constructhub/internal/flagx"
	"github.com/dmitrijs2005/constructhub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields distinguish "absent" from "empty" so a partial file only overrides
// what it names. RequestTimeout accepts "15s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL     *string         `json:"api_base_url"`
	LoginPath      *string         `json:"login_path"`
	RefreshPath    *string         `json:"refresh_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	TokenStore     *string         `json:"token_store"`
	SQLiteDSN      *string         `json:"sqlite_dsn"`
	RedisAddr      *string         `json:"redis_addr"`
	RedisUsername  *string         `json:"redis_username"`
	RedisPassword  *string         `json:"redis_password"`
	RedisDB        *int            `json:"redis_db"`
	RedisPrefix    *string         `json:"redis_prefix"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file named by
// -c or -config. Without the flag nothing happens. Read or unmarshal errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.LoginPath, jc.LoginPath)
	setString(&cfg.RefreshPath, jc.RefreshPath)
	setString(&cfg.TokenStore, jc.TokenStore)
	setString(&cfg.SQLiteDSN, jc.SQLiteDSN)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisUsername, jc.RedisUsername)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.RedisPrefix, jc.RedisPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
