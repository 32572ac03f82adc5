package logger

import (
	"log/slog"
)

// Component tags log records with the emitting subsystem under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// Empty identifiers produce an empty Attr so broadcast records stay clean.
func UserID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("user_id", id)
}

// NotificationID records the notification identifier under "notification_id".
func NotificationID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("notification_id", id)
}

// Channel records a delivery channel tag under the key "channel".
func Channel(name string) slog.Attr {
	return slog.String("channel", name)
}

// Count records an integer quantity under the key "count".
func Count(n int64) slog.Attr {
	return slog.Int64("count", n)
}
