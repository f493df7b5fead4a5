package delegates

import (
	"github.com/drblury/protoargs/internal/runtime/args"
	loggingpkg "github.com/drblury/protoargs/internal/runtime/logging"
)

// Logging writes every value to a ServiceLogger, at trace level unless
// built with NewLoggingAt.
type Logging struct {
	logger loggingpkg.ServiceLogger
	level  loggingpkg.Level
}

var _ args.Delegate = (*Logging)(nil)

func NewLogging(logger loggingpkg.ServiceLogger) *Logging {
	return NewLoggingAt(logger, loggingpkg.LevelTrace)
}

// NewLoggingAt logs every value at level.
func NewLoggingAt(logger loggingpkg.ServiceLogger, level loggingpkg.Level) *Logging {
	if logger == nil {
		panic("protoargs: logging delegate requires a logger")
	}
	return &Logging{logger: logger, level: level}
}

func (l *Logging) log(key args.Key, v Value) {
	loggingpkg.Log(l.logger, l.level, "arg", loggingpkg.LogFields{
		"flat_key":   key.FlatKey,
		"key":        key.Key,
		"value_type": v.Type.String(),
		"value":      v.Interface(),
	})
}

func (l *Logging) AddInteger(key args.Key, value int64)          { l.log(key, IntValue(value)) }
func (l *Logging) AddUnsignedInteger(key args.Key, value uint64) { l.log(key, UintValue(value)) }
func (l *Logging) AddBoolean(key args.Key, value bool)           { l.log(key, BoolValue(value)) }
func (l *Logging) AddDouble(key args.Key, value float64)         { l.log(key, RealValue(value)) }
func (l *Logging) AddString(key args.Key, value string)          { l.log(key, StringValue(value)) }
