package notifier

import "log"

// NoopNotifier logs reports to stdout when email is not configured.
type NoopNotifier struct{}

func (NoopNotifier) Send(subject, body string) error {
	log.Printf("[INFO] Notification (email disabled): %s\n%s", subject, body)
	return nil
}
