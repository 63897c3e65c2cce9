package fixtures

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"courtside/internal/metrics"
)

// cacheTTL is how long a fetched fixture is served from memory before the
// next Fetch hits the network again.
const cacheTTL = 5 * time.Minute

type cacheEntry struct {
	data      []byte
	timestamp time.Time
}

// HTTPLoader fetches fixture files over HTTP with a short-lived in-memory
// cache keyed by URL.
type HTTPLoader struct {
	httpClient *http.Client
	baseURL    string
	metrics    metrics.Metrics

	mu    sync.Mutex
	cache map[string]cacheEntry
	now   func() time.Time
}

// DecodeCollection normalizes a fixture body into a flat slice. Fixture
// files are either a bare JSON array or a wrapped object such as
// {"grounds": [...]}; the shape is resolved here, at the decode boundary,
// and never branched on again deeper in the call chain.
func DecodeCollection[T any](raw []byte, wrapperKeys ...string) ([]T, error) {
	var collection []T
	if err := json.Unmarshal(raw, &collection); err == nil {
		return collection, nil
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("fixture body is neither an array nor an object: %w", err)
	}
	for _, key := range wrapperKeys {
		inner, ok := wrapped[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &collection); err != nil {
			return nil, fmt.Errorf("failed to decode wrapped collection %q: %w", key, err)
		}
		return collection, nil
	}
	return nil, fmt.Errorf("fixture object has none of the expected keys %v", wrapperKeys)
}
