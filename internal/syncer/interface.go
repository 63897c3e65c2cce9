package syncer

import "context"

// Syncer seeds entity keys into the key-value store on first access.
type Syncer interface {
	// EnsureLoaded seeds key from its source chain if the store has no
	// entry for it yet. It is a no-op for already-seeded keys. When every
	// source fails, the key is left unseeded so a later call can retry,
	// and readers degrade to an empty collection.
	EnsureLoaded(ctx context.Context, key string) error
}
