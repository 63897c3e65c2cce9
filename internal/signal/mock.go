package signal

import (
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// MockBus is a mock implementation of Bus for testing.
// It is safe for concurrent use.
type MockBus struct {
	mu sync.Mutex

	// Spies for method calls
	SendMessageFunc func(topic EventType, data any) error

	// Call records
	SendMessageCalls []SendMessageCall
}

// SendMessageCall holds the arguments for a call to SendMessage.
type SendMessageCall struct {
	Topic EventType
	Data  any
}

// NewMock creates a new mock Bus.
func NewMock() *MockBus {
	return &MockBus{}
}

var _ Bus = (*MockBus)(nil)

// Reset clears all call records.
func (m *MockBus) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = nil
}

// SendMessage records the call and executes the mock function if provided.
func (m *MockBus) SendMessage(topic EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = append(m.SendMessageCalls, SendMessageCall{Topic: topic, Data: data})
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(topic, data)
	}
	return nil
}

// ProcessMessage decodes MessagePack data, matching the real client.
func (m *MockBus) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}

// Published returns the number of SendMessage calls for the given topic.
func (m *MockBus) Published(topic EventType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, call := range m.SendMessageCalls {
		if call.Topic == topic {
			count++
		}
	}
	return count
}
