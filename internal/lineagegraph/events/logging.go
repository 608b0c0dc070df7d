package events

import "github.com/sirupsen/logrus"

// Logging is a Publisher that logs every event at debug level via
// logrus, useful during development and in tests that want to observe
// the autowiring/event path without standing up a real sink.
type Logging struct {
	log *logrus.Entry
}

// NewLogging builds a Logging publisher using the given base logger, or
// logrus.StandardLogger() if log is nil.
func NewLogging(log *logrus.Logger) *Logging {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Logging{log: log.WithField("component", "events")}
}

func (l *Logging) Publish(e Event) {
	l.log.WithFields(logrus.Fields{
		"kind":       string(e.Kind),
		"node_id":    e.NodeID.String(),
		"session_id": e.SessionID.String(),
		"at":         e.At,
	}).Debug(e.Detail)
}

var _ Publisher = (*Logging)(nil)
