package config

import (
	"errors"
	"io/fs"

	"github.com/dmitrijs2005/constructhub/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// parseEnv overlays Config with CONSTRUCTHUB_* environment variables.
//
// A dotenv file named by -e or -env is loaded first; without the flag a
// ".env" in the working directory is used when present. Variables already
// set in the process environment win over the file. Only variables that are
// present override cfg.
func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		panic(err)
	}
}
