package logger

import (
	"log/slog"

	"github.com/philipp01105/envlog/alert"
	"github.com/philipp01105/envlog/core"
	"github.com/philipp01105/envlog/handler"
)

// Logger is a named, leveled logger (immutable)
type Logger struct {
	reg     *Registry
	name    string
	handler handler.Handler
	level   core.Level
	fields  []core.Field
}

// Option customizes a Logger created with New.
type Option func(*Logger)

// WithLevel overrides the registry threshold
func WithLevel(level core.Level) Option {
	return func(l *Logger) { l.level = level }
}

// WithHandler overrides the registry handler
func WithHandler(h handler.Handler) Option {
	return func(l *Logger) { l.handler = h }
}

// WithFields adds default fields to all log entries
func WithFields(fields ...core.Field) Option {
	return func(l *Logger) { l.fields = append(l.fields, fields...) }
}

// New creates an uncached Logger named name. A nil reg means Default().
func New(reg *Registry, name string, opts ...Option) *Logger {
	if reg == nil {
		reg = Default()
	}
	l := &Logger{
		reg:     reg,
		name:    name,
		handler: reg.handler,
		level:   reg.threshold,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.handler == nil {
		l.handler = handler.Nop{}
	}
	return l
}

// Name returns the logger name
func (l *Logger) Name() string { return l.name }

// Level returns the minimum level the logger writes
func (l *Logger) Level() core.Level { return l.level }

// Enabled reports whether records at level are written
func (l *Logger) Enabled(level core.Level) bool { return level >= l.level }

// Extend returns a new Logger named "<name>.<sub>". It starts from the
// registry configuration; options given to New are not inherited.
func (l *Logger) Extend(sub string) *Logger {
	name := sub
	if l.name != "" {
		name = l.name + "." + sub
	}
	return New(l.reg, name)
}

// With creates a new Logger with additional fields (immutable operation)
func (l *Logger) With(fields ...core.Field) *Logger {
	newFields := make([]core.Field, len(l.fields)+len(fields))
	copy(newFields, l.fields)
	copy(newFields[len(l.fields):], fields)

	return &Logger{
		reg:     l.reg,
		name:    l.name,
		handler: l.handler,
		level:   l.level,
		fields:  newFields,
	}
}

// Slog returns a log/slog Logger writing through this logger's handler
func (l *Logger) Slog() *slog.Logger {
	return slog.New(handler.NewSlogHandler(l.handler, l.name, l.level, l.fields...))
}

// log builds the entry and hands it to the handler. Callers have
// already checked the level.
func (l *Logger) log(level core.Level, msg string, fields []core.Field) {
	entry := core.GetEntry()
	entry.Level = level
	entry.Name = l.name
	entry.Message = msg

	if len(l.fields) > 0 {
		entry.Fields = append(entry.Fields, l.fields...)
	}
	if len(fields) > 0 {
		entry.Fields = append(entry.Fields, fields...)
	}

	if err := l.handler.Handle(entry); err != nil {
		l.reg.reportWriteError(err)
	}
	core.PutEntry(entry)
}

// Trace logs a trace message
func (l *Logger) Trace(msg string, fields ...core.Field) {
	if core.TraceLevel < l.level {
		return
	}
	l.log(core.TraceLevel, msg, fields)
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...core.Field) {
	if core.DebugLevel < l.level {
		return
	}
	l.log(core.DebugLevel, msg, fields)
}

// Details logs a verbose detail message
func (l *Logger) Details(msg string, fields ...core.Field) {
	if core.DetailsLevel < l.level {
		return
	}
	l.log(core.DetailsLevel, msg, fields)
}

// Log logs a message at log level
func (l *Logger) Log(msg string, fields ...core.Field) {
	if core.LogLevel < l.level {
		return
	}
	l.log(core.LogLevel, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...core.Field) {
	if core.InfoLevel < l.level {
		return
	}
	l.log(core.InfoLevel, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...core.Field) {
	if core.WarnLevel < l.level {
		return
	}
	l.log(core.WarnLevel, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...core.Field) {
	if core.ErrorLevel < l.level {
		return
	}
	l.log(core.ErrorLevel, msg, fields)
}

// Critical logs a critical message and, when alerts are enabled, sends
// it to the alert channel in the background.
func (l *Logger) Critical(msg string, fields ...core.Field) {
	if core.CriticalLevel < l.level {
		return
	}
	l.log(core.CriticalLevel, msg, fields)

	if l.reg.dispatcher == nil {
		return
	}
	all := fields
	if len(l.fields) > 0 {
		all = append(append(make([]core.Field, 0, len(l.fields)+len(fields)), l.fields...), fields...)
	}
	l.reg.dispatcher.DispatchFunc(alert.Build(l.name, msg, all), l.alertFailed)
}

// alertFailed must not call Critical. The failure is written even when
// the logger's level is above error.
func (l *Logger) alertFailed(a alert.Alert, err error) {
	l.log(core.ErrorLevel, "Failed to send critical alert", []core.Field{String("alert", a.Title), Err(err)})
}
