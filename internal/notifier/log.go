package notifier

import "github.com/charmbracelet/log"

// LogNotifier writes alerts to the application log. It is the fallback
// when no Slack credentials are configured.
type LogNotifier struct{}

// NewLog creates a log-only Notifier.
func NewLog() *LogNotifier {
	return &LogNotifier{}
}

var _ Notifier = (*LogNotifier)(nil)

func (l *LogNotifier) SendSeedFailure(key string, reason string) error {
	log.Error("Seed failure", "key", key, "reason", reason)
	return nil
}

func (l *LogNotifier) SendWriteFailure(key string, reason string) error {
	log.Error("Store write failure", "key", key, "reason", reason)
	return nil
}
