package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	fixtureFetches       int
	fixtureCacheHits     int
	fixtureFetchFailures int
	seeds                int
	seedFailures         int
	storeWriteFailures   int
	notifSent            int
	notifFailed          int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

var _ Metrics = (*Mock)(nil)

func (m *Mock) IncFixtureFetches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixtureFetches++
}

func (m *Mock) IncFixtureCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixtureCacheHits++
}

func (m *Mock) IncFixtureFetchFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fixtureFetchFailures++
}

func (m *Mock) IncSeeds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seeds++
}

func (m *Mock) IncSeedFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seedFailures++
}

func (m *Mock) IncStoreWriteFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeWriteFailures++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// FixtureFetches returns the number of times IncFixtureFetches was called.
func (m *Mock) FixtureFetches() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fixtureFetches
}

// FixtureCacheHits returns the number of times IncFixtureCacheHits was called.
func (m *Mock) FixtureCacheHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fixtureCacheHits
}

// Seeds returns the number of times IncSeeds was called.
func (m *Mock) Seeds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seeds
}

// SeedFailures returns the number of times IncSeedFailures was called.
func (m *Mock) SeedFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.seedFailures
}

// StoreWriteFailures returns the number of times IncStoreWriteFailures was called.
func (m *Mock) StoreWriteFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.storeWriteFailures
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
