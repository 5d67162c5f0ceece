// Package config loads runtime configuration for the ConstructHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment (see parseEnv): CONSTRUCTHUB_* variables, optionally
//     loaded from a dotenv file given by -e or -env.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     API base URL
//	-t duration   request timeout
//	-s string     token store driver
//	-d string     sqlite database file
//	-r string     redis address
//	-l string     log level
//
// # JSON schema
//
// Every key is optional. request_timeout uses timex.Duration, so it can be
// a string like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000/api",
//	  "request_timeout": "15s",
//	  "token_store": "redis",
//	  "redis_addr": "127.0.0.1:6379"
//	}
//
// Invalid JSON, dotenv or flag input panics; the CLI cannot run without a
// usable configuration.
package config
