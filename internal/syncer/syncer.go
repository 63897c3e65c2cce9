package syncer

import (
	"context"
	"encoding/json"
	"sync"

	"courtside/internal/fixtures"
	"courtside/internal/metrics"
	"courtside/internal/notifier"
	"courtside/internal/store"

	"github.com/charmbracelet/log"
)

// New creates a new Manager with the given source chains.
func New(loader fixtures.Loader, kv store.KV, metricsSvc metrics.Metrics, notifier notifier.Notifier, sources map[string][]Source) *Manager {
	return &Manager{
		loader:   loader,
		kv:       kv,
		metrics:  metricsSvc,
		notifier: notifier,
		sources:  sources,
		locks:    make(map[string]*sync.Mutex),
	}
}

var _ Syncer = (*Manager)(nil)

// keyLock returns the mutex that serializes seeding for one key.
func (m *Manager) keyLock(key string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	return lock
}

// EnsureLoaded transitions key from unseeded to seeded exactly once.
// Concurrent calls for the same unseeded key result in a single fetch and
// a single store write.
func (m *Manager) EnsureLoaded(ctx context.Context, key string) error {
	lock := m.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	seeded, err := m.kv.Has(ctx, key)
	if err != nil {
		return err
	}
	if seeded {
		log.Debug("Key already seeded, local copy is authoritative", "key", key)
		return nil
	}

	chain, ok := m.sources[key]
	if !ok {
		log.Warn("No source chain configured for key", "key", key)
		return nil
	}

	var lastErr error
	for _, source := range chain {
		body, err := m.loader.Fetch(ctx, source.Fixture)
		if err != nil {
			log.Warn("Fixture source failed, trying next", "key", key, "fixture", source.Fixture, "error", err)
			lastErr = err
			continue
		}

		collection, err := fixtures.DecodeCollection[json.RawMessage](body, source.WrapperKeys...)
		if err != nil {
			log.Warn("Fixture source undecodable, trying next", "key", key, "fixture", source.Fixture, "error", err)
			lastErr = err
			continue
		}

		normalized, err := json.Marshal(collection)
		if err != nil {
			lastErr = err
			continue
		}

		if err := m.kv.Set(ctx, key, normalized); err != nil {
			m.metrics.IncStoreWriteFailures()
			if notifErr := m.notifier.SendWriteFailure(key, err.Error()); notifErr != nil {
				log.Error("Failed to report store write failure", "error", notifErr)
			}
			return err
		}

		m.metrics.IncSeeds()
		log.Info("Seeded collection from fixture", "key", key, "fixture", source.Fixture, "count", len(collection))
		return nil
	}

	// Every source failed. The key stays unseeded so a later call retries;
	// readers see an empty collection in the meantime.
	m.metrics.IncSeedFailures()
	reason := "no sources configured"
	if lastErr != nil {
		reason = lastErr.Error()
	}
	log.Error("All sources failed for key, degrading to empty", "key", key, "reason", reason)
	if err := m.notifier.SendSeedFailure(key, reason); err != nil {
		log.Error("Failed to report seed failure", "error", err)
	}
	return nil
}
