package notifier

// Notifier defines a high-level interface for reporting operational events.
// This decouples the rest of the application from the specific notification
// provider (e.g., Slack).
type Notifier interface {
	// SendSeedFailure reports that every data source for an entity key
	// failed during seeding.
	SendSeedFailure(key string, reason string) error
	// SendWriteFailure reports a failed key-value store write, the
	// server-side analog of a quota-exceeded notice.
	SendWriteFailure(key string, reason string) error
}
