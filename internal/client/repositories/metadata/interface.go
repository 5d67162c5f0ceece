// Package metadata is a small key/value table in the local SQLite database.
// The sqlite token driver keeps the session credentials here and the auth
// service caches the logged-in identity next to them.
package metadata

import "context"

// Repository is the key/value contract.
type Repository interface {
	// Get returns an error wrapping common.ErrorNotFound when key is absent.
	Get(ctx context.Context, key string) (string, error)
	// Lookup returns the subset of keys that exist.
	Lookup(ctx context.Context, keys ...string) (map[string]string, error)
	// Put upserts all values in one statement.
	Put(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
