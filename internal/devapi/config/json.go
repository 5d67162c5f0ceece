package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/constructhub/internal/flagx"
	"github.com/dmitrijs2005/constructhub/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// both "90s" strings and integer nanoseconds. Absent fields keep their
// current value.
type JsonConfig struct {
	EndpointAddr                 *string         `json:"endpoint_addr"`
	BasePath                     *string         `json:"base_path"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	PageSize                     *int            `json:"page_size"`
	LogLevel                     *string         `json:"log_level"`
}

// parseJson overlays values from the file named by -c/-config. Nothing is
// loaded when the flag is absent. Unreadable files and invalid JSON panic.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.EndpointAddr, c.EndpointAddr)
	setString(&config.BasePath, c.BasePath)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.PageSize != nil {
		config.PageSize = *c.PageSize
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
