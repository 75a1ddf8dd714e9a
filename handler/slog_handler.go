package handler

import (
	"context"
	"log/slog"

	"github.com/philipp01105/envlog/core"
)

// SlogHandler is an adapter that implements slog.Handler on top of a
// Handler. Records are written under a fixed logger name.
type SlogHandler struct {
	handler Handler
	name    string
	level   core.Level
	attrs   []core.Field
	group   string
}

// NewSlogHandler creates a new slog.Handler adapter wrapping the given
// Handler. fields are added to every record.
func NewSlogHandler(h Handler, name string, level core.Level, fields ...core.Field) *SlogHandler {
	return &SlogHandler{
		handler: h,
		name:    name,
		level:   level,
		attrs:   append([]core.Field(nil), fields...),
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return SlogLevel(level) >= s.level
}

// Handle converts a slog.Record to a core.Entry and passes it to the wrapped handler.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	entry := core.GetEntry()
	defer core.PutEntry(entry)

	if !record.Time.IsZero() {
		entry.Time = record.Time
	}
	entry.Level = SlogLevel(record.Level)
	entry.Name = s.name
	entry.Message = record.Message

	if len(s.attrs) > 0 {
		entry.Fields = append(entry.Fields, s.attrs...)
	}
	record.Attrs(func(a slog.Attr) bool {
		if f, ok := slogAttrToField(s.group, a); ok {
			entry.Fields = append(entry.Fields, f)
		}
		return true
	})

	return s.handler.Handle(entry)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(attrs))
	copy(newAttrs, s.attrs)
	for _, a := range attrs {
		if f, ok := slogAttrToField(s.group, a); ok {
			newAttrs = append(newAttrs, f)
		}
	}
	return &SlogHandler{
		handler: s.handler,
		name:    s.name,
		level:   s.level,
		attrs:   newAttrs,
		group:   s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	newAttrs := make([]core.Field, len(s.attrs))
	copy(newAttrs, s.attrs)
	return &SlogHandler{
		handler: s.handler,
		name:    s.name,
		level:   s.level,
		attrs:   newAttrs,
		group:   newGroup,
	}
}

// SlogLevel maps a slog.Level onto the severity scale. Levels below
// debug become trace; levels at or above error become error.
func SlogLevel(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// slogAttrToField converts a slog.Attr to a core.Field, prepending the
// group prefix if present. Empty attrs are dropped.
func slogAttrToField(group string, a slog.Attr) (core.Field, bool) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return core.Field{}, false
	}

	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return core.Field{Key: key, Type: core.StringType, Str: a.Value.String()}, true
	case slog.KindInt64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()}, true
	case slog.KindUint64:
		return core.Field{Key: key, Type: core.Int64Type, Int64: int64(a.Value.Uint64())}, true
	case slog.KindFloat64:
		return core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()}, true
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: val}, true
	case slog.KindTime:
		return core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()}, true
	case slog.KindDuration:
		return core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())}, true
	case slog.KindGroup:
		members := a.Value.Group()
		m := make(core.Map, 0, len(members))
		for _, member := range members {
			if f, ok := slogAttrToField("", member); ok {
				m = append(m, f)
			}
		}
		if len(m) == 0 {
			return core.Field{}, false
		}
		return core.Field{Key: key, Type: core.ObjectType, Object: m}, true
	default:
		if err, ok := a.Value.Any().(error); ok {
			return core.Field{Key: key, Type: core.ErrorType, Str: err.Error()}, true
		}
		return core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()}, true
	}
}
