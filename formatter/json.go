package formatter

import (
	"io"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/philipp01105/envlog/core"
)

// ISO8601 is the timestamp layout of JSON records: UTC with milliseconds.
const ISO8601 = "2006-01-02T15:04:05.000Z07:00"

// Record keys
const (
	LevelKey    = "level"
	TimeKey     = "time"
	NameKey     = "name"
	MessageKey  = "msg"
	PIDKey      = "pid"
	HostnameKey = "hostname"
)

// JSONFormatter writes one JSON object per line using zap's encoder.
type JSONFormatter struct {
	enc zapcore.Encoder
}

// NewJSONFormatter creates the full record formatter: level, time, name,
// msg, pid, hostname and the call fields merged in.
func NewJSONFormatter(cfg Config, b Bindings) *JSONFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = ISO8601
	}
	encCfg := encoderConfig(cfg.Levels)
	encCfg.TimeKey = TimeKey
	encCfg.NameKey = NameKey
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(cfg.TimestampFormat)

	enc := zapcore.NewJSONEncoder(encCfg)
	enc.AddInt(PIDKey, b.PID)
	enc.AddString(HostnameKey, b.Hostname)
	return &JSONFormatter{enc: enc}
}

// NewBrowserFormatter creates the minimal formatter: level code, msg and
// call fields only.
func NewBrowserFormatter() *JSONFormatter {
	encCfg := encoderConfig(LevelShortCode)
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(ISO8601)
	return &JSONFormatter{enc: zapcore.NewJSONEncoder(encCfg)}
}

func encoderConfig(levels LevelEncoding) zapcore.EncoderConfig {
	cfg := zapcore.EncoderConfig{
		LevelKey:       LevelKey,
		MessageKey:     MessageKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    shortCodeLevelEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	if levels == LevelNumeric {
		cfg.EncodeLevel = numericLevelEncoder
	}
	return cfg
}

func shortCodeLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(core.ShortCodeOf(int(l)))
}

func numericLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendInt(int(l))
}

// Format formats an entry as JSON
func (f *JSONFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf, err := f.encode(entry)
	if err != nil {
		return nil, err
	}
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	buf.Free()
	return result, nil
}

// FormatTo formats an entry as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf, err := f.encode(entry)
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	buf.Free()
	return err
}

// encode is safe for concurrent use: the zap encoder clones itself per entry.
func (f *JSONFormatter) encode(entry *core.Entry) (*buffer.Buffer, error) {
	fields := make([]zapcore.Field, len(entry.Fields))
	for i, field := range entry.Fields {
		fields[i] = zapField(field)
	}
	return f.enc.EncodeEntry(zapcore.Entry{
		Level:      zapcore.Level(entry.Level),
		Time:       entry.Time.UTC(),
		LoggerName: entry.Name,
		Message:    entry.Message,
	}, fields)
}

// zapField converts a field without reflection for every type but Any.
func zapField(f core.Field) zapcore.Field {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return zap.String(f.Key, f.Str)
	case core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return zap.Time(f.Key, time.Unix(0, f.Int64).UTC())
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	case core.ObjectType:
		return zap.Object(f.Key, loggableMarshaler{f.Object})
	default:
		switch v := f.Any.(type) {
		case core.Loggable:
			return zap.Object(f.Key, loggableMarshaler{v})
		case error:
			return zap.String(f.Key, v.Error())
		default:
			return zap.Any(f.Key, v)
		}
	}
}

// loggableMarshaler renders a Loggable as a nested JSON object.
type loggableMarshaler struct {
	l core.Loggable
}

func (m loggableMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if m.l == nil {
		return nil
	}
	for _, f := range m.l.LogFields() {
		zapField(f).AddTo(enc)
	}
	return nil
}
