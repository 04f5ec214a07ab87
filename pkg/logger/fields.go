package logger

import "time"

// Common field constructors for structured logging

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration creates a duration field in milliseconds
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.Milliseconds()}
}

// DurationMs creates a duration field from milliseconds
func DurationMs(key string, ms int64) Field {
	return Field{Key: key, Value: ms}
}

// Any creates a field with any value
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// --- Domain-specific field helpers ---

// UserID creates a user_id field
func UserID(id int64) Field {
	return Field{Key: "user_id", Value: id}
}

// Component creates a component field
func Component(name string) Field {
	return Field{Key: "component", Value: name}
}

// OptionName creates an option_name field
func OptionName(name string) Field {
	return Field{Key: "option_name", Value: name}
}

// NoticeType creates a notice_type field
func NoticeType(t string) Field {
	return Field{Key: "notice_type", Value: t}
}

// Capability creates a capability field
func Capability(name string) Field {
	return Field{Key: "capability", Value: name}
}

// ObjectKey creates an object_key field for backup uploads
func ObjectKey(key string) Field {
	return Field{Key: "object_key", Value: key}
}

// Status creates a status field
func Status(status int) Field {
	return Field{Key: "status", Value: status}
}

// Method creates an HTTP method field
func Method(method string) Field {
	return Field{Key: "method", Value: method}
}

// Path creates an HTTP path field
func Path(path string) Field {
	return Field{Key: "path", Value: path}
}

// RemoteIP creates a remote_ip field
func RemoteIP(ip string) Field {
	return Field{Key: "remote_ip", Value: ip}
}

// Operation creates an operation field
func Operation(op string) Field {
	return Field{Key: "operation", Value: op}
}
