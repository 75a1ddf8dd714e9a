package pretty

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/philipp01105/envlog/core"
	"github.com/philipp01105/envlog/formatter"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options configures a Writer.
type Options struct {
	// Color is auto, always or never. Auto colours only terminals.
	Color string
	// TimestampFormat is the clock layout (default formatter.DefaultTextTimestamp)
	TimestampFormat string
}

// Writer renders line-delimited JSON records as condensed text. Input
// lines that are not JSON objects are copied through unchanged.
type Writer struct {
	out     io.Writer
	text    *formatter.TextFormatter
	mu      sync.Mutex
	pending []byte
}

// NewWriter returns a Writer rendering to out.
func NewWriter(out io.Writer, opts Options) (*Writer, error) {
	if out == nil {
		return nil, errors.New("pretty: nil output writer")
	}
	return &Writer{
		out: out,
		text: formatter.NewTextFormatter(formatter.Config{
			TimestampFormat: opts.TimestampFormat,
			Color:           useColor(out, opts.Color),
		}),
	}, nil
}

func useColor(out io.Writer, mode string) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write renders every complete line in p. A trailing partial line is
// kept until the next Write.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data := p
	if len(w.pending) > 0 {
		w.pending = append(w.pending, p...)
		data = w.pending
	}

	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			break
		}
		if err := w.renderLine(data[:i]); err != nil {
			w.pending = append(w.pending[:0], data[i+1:]...)
			return len(p), err
		}
		data = data[i+1:]
	}
	w.pending = append(w.pending[:0], data...)
	return len(p), nil
}

// Flush renders a buffered partial line, if any.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	err := w.renderLine(w.pending)
	w.pending = w.pending[:0]
	return err
}

func (w *Writer) renderLine(line []byte) error {
	entry, ok := parseRecord(line)
	if !ok {
		_, err := w.out.Write(append(append([]byte(nil), line...), '\n'))
		return err
	}
	return w.text.FormatTo(entry, w.out)
}

// Keys consumed by the renderer and not repeated as fields
var skipKeys = map[string]bool{
	formatter.LevelKey:    true,
	formatter.TimeKey:     true,
	formatter.NameKey:     true,
	formatter.MessageKey:  true,
	formatter.PIDKey:      true,
	formatter.HostnameKey: true,
}

// parseRecord decodes one JSON object keeping the order of its keys.
func parseRecord(line []byte) (*core.Entry, bool) {
	dec := json.NewDecoder(bytes.NewReader(line))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, false
	}

	entry := &core.Entry{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := tok.(string)
		if !ok {
			return nil, false
		}
		var value interface{}
		if err := dec.Decode(&value); err != nil {
			return nil, false
		}

		switch key {
		case formatter.LevelKey:
			entry.Level = parseLevel(value)
		case formatter.TimeKey:
			if s, ok := value.(string); ok {
				entry.Time, _ = time.Parse(time.RFC3339Nano, s)
			}
		case formatter.NameKey:
			entry.Name, _ = value.(string)
		case formatter.MessageKey:
			entry.Message, _ = value.(string)
		}
		if skipKeys[key] {
			continue
		}
		entry.Fields = append(entry.Fields, toField(key, value))
	}
	return entry, true
}

// parseLevel accepts the numeric weight and, for records produced by
// other configurations, the short code.
func parseLevel(v interface{}) core.Level {
	switch lv := v.(type) {
	case json.Number:
		n, err := lv.Int64()
		if err != nil || n < -128 || n > 127 {
			return 0
		}
		return core.Level(n)
	case string:
		for _, s := range core.Levels() {
			if s.ShortCode == lv || s.Name == lv {
				return s.Level
			}
		}
	}
	return 0
}

func toField(key string, v interface{}) core.Field {
	switch val := v.(type) {
	case string:
		return core.Field{Key: key, Type: core.StringType, Str: val}
	case bool:
		b := int64(0)
		if val {
			b = 1
		}
		return core.Field{Key: key, Type: core.BoolType, Int64: b}
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return core.Field{Key: key, Type: core.Int64Type, Int64: n}
		}
		f, _ := val.Float64()
		return core.Field{Key: key, Type: core.Float64Type, Float64: f}
	default:
		// Nested values are shown as compact JSON
		raw, err := json.Marshal(val)
		if err != nil {
			return core.Field{Key: key, Type: core.AnyType, Any: val}
		}
		return core.Field{Key: key, Type: core.StringType, Str: string(raw)}
	}
}
