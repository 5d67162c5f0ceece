package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://10.0.0.2:8000/api", "-t", "5s", "-s", "redis", "-d", "x.db", "-r", "redis:6379", "-l", "debug"},
			expected: &Config{
				APIBaseURL:     "http://10.0.0.2:8000/api",
				RequestTimeout: 5 * time.Second,
				TokenStore:     "redis",
				SQLiteDSN:      "x.db",
				RedisAddr:      "redis:6379",
				LogLevel:       "debug",
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"cmd", "-c", "conf.json", "-e", ".env", "-a", "http://h/api"},
			expected: &Config{APIBaseURL: "http://h/api"},
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
