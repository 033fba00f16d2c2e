package log

import "github.com/arloliu/gwf/gps"

// Logger receives the reader's and writer's diagnostics. Implementations must
// tolerate being called with no fields.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is a key-value pair attached to a log line. Value holds one of the
// types built by the constructors below.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field { return Field{Key: key, Value: value} }
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// GPS renders t as decimal GPS seconds.
func GPS(key string, t gps.Time) Field { return Field{Key: key, Value: t} }

// Span renders s as "[start ... end)".
func Span(key string, s gps.Span) Field { return Field{Key: key, Value: s} }

// Err attaches err under the key "error".
func Err(err error) Field { return Field{Key: "error", Value: err} }
