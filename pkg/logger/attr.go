package logger

import (
	"log/slog"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the user identifier under the key "user_id".
// If id is nil, it returns an empty Attr.
func UserID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("user_id", id)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	return slog.String("request_id", id)
}

// RemoteIP records the client address under the key "remote_ip".
func RemoteIP(ip string) slog.Attr {
	return slog.String("remote_ip", ip)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// State records a state transition as "from" and "to" under the key "state".
func State(from, to string) slog.Attr {
	return slog.Group("state", slog.String("from", from), slog.String("to", to))
}

// Driver records a backend driver name under the key "driver".
func Driver(name string) slog.Attr {
	return slog.String("driver", name)
}
