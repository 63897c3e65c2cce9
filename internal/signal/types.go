package signal

import "cloud.google.com/go/pubsub"

// EventType names a Pub/Sub topic the application publishes on.
type EventType string

const (
	// TopicSessionChanged is published whenever the current-user session
	// key changes, so other instances can refresh auth display state.
	// It carries no merge semantics: concurrent edits stay last-write-wins.
	TopicSessionChanged EventType = "session-changed"
)

type client struct {
	client   *pubsub.Client
	teardown func()
}

// SessionEvent is the payload published on TopicSessionChanged.
type SessionEvent struct {
	Email     string `msgpack:"email"`
	Action    string `msgpack:"action"` // "login" or "logout"
	Timestamp int64  `msgpack:"timestamp"`
}
