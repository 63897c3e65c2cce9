package store

import "context"

// KV defines the key-value store the rest of the application persists
// through. Every value is JSON text; collections are stored and rewritten
// whole, never patched in place.
type KV interface {
	// Get returns the raw value for key, or nil if the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Has(ctx context.Context, key string) (bool, error)
	// Remove deletes key and reports whether anything was removed.
	Remove(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}
