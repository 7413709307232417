package notifier

import (
	"log/slog"
)

const (
	SEVERITY_INFO    = "info"
	SEVERITY_WARNING = "warning"
	SEVERITY_ERROR   = "error"
)

// Notifier is the notification boundary: a fire-and-forget sink for user-
// and operator-facing events (save success/failure, validation-blocked
// navigation). Implementations must never propagate delivery errors back to
// the caller.
type Notifier interface {
	Notify(severity string, message string)
}

// SlogNotifier writes notifications to the structured log. It is the sink
// that is always wired.
type SlogNotifier struct{}

func (SlogNotifier) Notify(severity string, message string) {
	switch severity {
	case SEVERITY_ERROR:
		slog.Error(message, slog.String("source", "notifier"))
	case SEVERITY_WARNING:
		slog.Warn(message, slog.String("source", "notifier"))
	default:
		slog.Info(message, slog.String("source", "notifier"))
	}
}

// MultiNotifier fans one event out to every configured sink.
type MultiNotifier struct {
	Sinks []Notifier
}

func (m MultiNotifier) Notify(severity string, message string) {
	for _, sink := range m.Sinks {
		sink.Notify(severity, message)
	}
}
