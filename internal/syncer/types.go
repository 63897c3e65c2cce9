package syncer

import (
	"sync"

	"courtside/internal/fixtures"
	"courtside/internal/metrics"
	"courtside/internal/notifier"
	"courtside/internal/store"
)

// Source is one place a collection can be seeded from. Sources for a key
// are tried in order; the first one that yields a collection wins.
type Source struct {
	// Fixture is the fixture file name, e.g. "coaches.json".
	Fixture string
	// WrapperKeys are the object keys the collection may be wrapped under
	// when the fixture body is not a bare array.
	WrapperKeys []string
}

// Manager seeds entity keys from their fixture sources exactly once per
// store lifetime. Once a key is present in the store, the local copy is
// authoritative and the fixture is never consulted again. A fixture file
// updated after a deployment has seeded is therefore never picked up;
// clearing the key is the only way to re-seed.
type Manager struct {
	loader   fixtures.Loader
	kv       store.KV
	metrics  metrics.Metrics
	notifier notifier.Notifier
	sources  map[string][]Source

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// DefaultSources maps every entity key to its ordered source chain. The
// aggregate data.json file is the documented fallback for collections
// that also appear as sections inside it.
func DefaultSources() map[string][]Source {
	return map[string][]Source{
		KeyUsers: {
			{Fixture: "users.json", WrapperKeys: []string{"users"}},
			{Fixture: "data.json", WrapperKeys: []string{"sampleUsers"}},
		},
		KeyCoaches: {
			{Fixture: "coaches.json", WrapperKeys: []string{"coaches"}},
			{Fixture: "data.json", WrapperKeys: []string{"featuredCoaches"}},
		},
		KeyGrounds: {
			{Fixture: "grounds.json", WrapperKeys: []string{"grounds"}},
			{Fixture: "data.json", WrapperKeys: []string{"popularVenues"}},
		},
		KeyProducts: {
			{Fixture: "products.json", WrapperKeys: []string{"products"}},
			{Fixture: "data.json", WrapperKeys: []string{"featuredProducts"}},
		},
		KeyGroundBookings: {
			{Fixture: "data.json", WrapperKeys: []string{"groundBookings"}},
		},
		KeyCoachBookings: {
			{Fixture: "data.json", WrapperKeys: []string{"coachBookings"}},
		},
		KeyNews: {
			{Fixture: "news.json", WrapperKeys: []string{"news"}},
			{Fixture: "data.json", WrapperKeys: []string{"newsItems"}},
		},
		KeyApplications: {
			{Fixture: "applications.json", WrapperKeys: []string{"applications"}},
		},
		KeyActivity: {
			{Fixture: "activity.json", WrapperKeys: []string{"activity"}},
		},
	}
}

// AllKeys returns every seeded collection key in a stable order.
func AllKeys() []string {
	return []string{
		KeyUsers,
		KeyCoaches,
		KeyGrounds,
		KeyProducts,
		KeyGroundBookings,
		KeyCoachBookings,
		KeyNews,
		KeyApplications,
		KeyActivity,
	}
}

// Store keys for every seeded collection.
const (
	KeyUsers          = "users"
	KeyCoaches        = "coaches"
	KeyGrounds        = "grounds"
	KeyProducts       = "products"
	KeyGroundBookings = "groundBookings"
	KeyCoachBookings  = "coachBookings"
	KeyNews           = "newsData"
	KeyApplications   = "applications"
	KeyActivity       = "activity"
)
