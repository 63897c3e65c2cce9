package notifier

import "sync"

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SeedFailureCalls []struct {
		Key    string
		Reason string
	}
	WriteFailureCalls []struct {
		Key    string
		Reason string
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

var _ Notifier = (*Mock)(nil)

func (m *Mock) SendSeedFailure(key string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SeedFailureCalls = append(m.SeedFailureCalls, struct {
		Key    string
		Reason string
	}{key, reason})
	return nil
}

func (m *Mock) SendWriteFailure(key string, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WriteFailureCalls = append(m.WriteFailureCalls, struct {
		Key    string
		Reason string
	}{key, reason})
	return nil
}

// SeedFailures returns the recorded seed failure calls.
func (m *Mock) SeedFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.SeedFailureCalls)
}

// WriteFailures returns the recorded write failure calls.
func (m *Mock) WriteFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.WriteFailureCalls)
}
