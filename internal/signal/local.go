package signal

import (
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// localBus is used when no Pub/Sub project is configured. Published
// events go nowhere; incoming push payloads still decode so the refresh
// endpoint keeps working behind a proxy that injects them.
type localBus struct{}

// NewLocal creates a Bus that never leaves the process.
func NewLocal() Bus {
	return &localBus{}
}

var _ Bus = (*localBus)(nil)

func (l *localBus) SendMessage(topic EventType, data any) error {
	log.Debug("Dropping signal, no bus configured", "topic", topic)
	return nil
}

func (l *localBus) ProcessMessage(data []byte, returnValue any) error {
	return msgpack.Unmarshal(data, returnValue)
}
