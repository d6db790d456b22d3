package logger

import (
	"log/slog"
	"reflect"
	"strconv"
	"time"
)

// Group creates a slog group attribute from the provided attributes.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// Error records err under "error". A nil error yields an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Errors groups the non-nil errors under "errors".
func Errors(errs ...error) slog.Attr {
	as := make([]slog.Attr, 0, len(errs))
	for i, err := range errs {
		if err != nil {
			as = append(as, slog.Any(strconv.Itoa(i), err))
		}
	}
	if len(as) == 0 {
		return slog.Attr{}
	}
	return slog.Attr{Key: "errors", Value: slog.GroupValue(as...)}
}

// UserID records the user identifier under "user_id".
func UserID(id any) slog.Attr { return optional("user_id", id) }

// SessionID records the browser session identifier under "session_id".
func SessionID(id any) slog.Attr { return optional("session_id", id) }

// RequestID records the request identifier under "request_id".
func RequestID(id any) slog.Attr { return optional("request_id", id) }

// NotificationID records a notification identifier under "notification_id".
func NotificationID(id any) slog.Attr { return optional("notification_id", id) }

// Role records a role under "role". Accepts a value or a pointer; nil pointers
// are logged as "none" so a missing role is visible in access logs.
func Role(role any) slog.Attr { return rank("role", role) }

// Tier records a subscription tier under "tier", same rules as Role.
func Tier(tier any) slog.Attr { return rank("tier", tier) }

// Path records a request path under "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}

// Reason records a decision reason under "reason".
func Reason(r string) slog.Attr {
	return slog.String("reason", r)
}

// Component records the component name under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Duration records d under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

func optional(key string, v any) slog.Attr {
	if v == nil {
		return slog.Attr{}
	}
	if s, ok := v.(string); ok && s == "" {
		return slog.Attr{}
	}
	return slog.Any(key, v)
}

func rank(key string, v any) slog.Attr {
	if v == nil {
		return slog.String(key, "none")
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return slog.String(key, "none")
		}
		v = rv.Elem().Interface()
	}
	return slog.Any(key, v)
}
