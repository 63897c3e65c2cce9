package fixtures

import "context"

// Loader defines the interface for fetching fixture files.
// This allows for mock implementations to be used in tests.
type Loader interface {
	// Fetch returns the raw JSON body of the named fixture file, e.g.
	// "coaches.json". A cached copy is returned without I/O while fresh.
	Fetch(ctx context.Context, name string) ([]byte, error)
}
