package fixtures

import (
	"context"
	"sync"
)

// MockLoader is a mock implementation of the Loader interface for testing.
// It is safe for concurrent use.
type MockLoader struct {
	mu sync.Mutex

	// Spies for method calls
	FetchFunc func(name string) ([]byte, error)

	// Call records
	FetchCalls []string
}

// NewMockLoader creates a new mock instance.
func NewMockLoader() *MockLoader {
	return &MockLoader{}
}

var _ Loader = (*MockLoader)(nil)

// Reset clears all call records.
func (m *MockLoader) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCalls = nil
}

func (m *MockLoader) Fetch(ctx context.Context, name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchCalls = append(m.FetchCalls, name)
	if m.FetchFunc != nil {
		return m.FetchFunc(name)
	}
	return []byte(`[]`), nil
}

// CallCount returns the number of Fetch calls made for the given name.
func (m *MockLoader) CallCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.FetchCalls {
		if call == name {
			count++
		}
	}
	return count
}
