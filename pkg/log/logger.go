package log

import "time"

// Logger provides structured logging capabilities.
// The CLI backs it with zerolog; library callers may plug in their own.
type Logger interface {
	// Debug logs per-tensor and per-shard detail, off by default.
	Debug(msg string, fields ...Field)

	// Info logs run progress.
	Info(msg string, fields ...Field)

	// Warn logs recoverable problems such as a failed shard or a
	// tensor name collision.
	Warn(msg string, fields ...Field)

	// Error logs failures that end the run.
	Error(msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// ByteSize is a byte count rendered in human units by adapters.
type ByteSize int64

// String creates a string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field.
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field.
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

// Bytes creates a byte-size field.
func Bytes(key string, n int64) Field {
	return Field{Key: key, Value: ByteSize(n)}
}

// Err creates an error field with key "error".
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Any creates a field with any value.
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
