package formatter

import (
	"bytes"
	"io"

	"github.com/philipp01105/envlog/core"
)

// DefaultTextTimestamp is the clock-only layout of the text formatter.
const DefaultTextTimestamp = "15:04:05.000"

const colorReset = "\x1b[0m"

// levelColors maps weights to ANSI colour sequences
var levelColors = map[core.Level]string{
	core.TraceLevel:    "\x1b[90m",
	core.DebugLevel:    "\x1b[34m",
	core.DetailsLevel:  "\x1b[36m",
	core.LogLevel:      "\x1b[37m",
	core.InfoLevel:     "\x1b[32m",
	core.WarnLevel:     "\x1b[33m",
	core.ErrorLevel:    "\x1b[31m",
	core.CriticalLevel: "\x1b[1;41;97m",
}

// TextFormatter formats entries as condensed, human-readable lines:
//
//	<time> <LEVEL> (<name>): <message> <key=value ...>
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTextTimestamp
	}
	return &TextFormatter{Config: cfg}
}

// Format formats an entry as text
func (f *TextFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(entry, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an entry and writes it directly to the writer
func (f *TextFormatter) FormatTo(entry *core.Entry, w io.Writer) error {
	buf := getBuffer()

	f.formatToBuffer(entry, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// formatToBuffer writes the formatted entry into the given buffer
func (f *TextFormatter) formatToBuffer(entry *core.Entry, buf *bytes.Buffer) {
	if !entry.Time.IsZero() {
		buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), f.TimestampFormat))
		buf.WriteByte(' ')
	}

	color, colored := levelColors[entry.Level]
	colored = colored && f.Color
	if colored {
		buf.WriteString(color)
	}
	buf.WriteString(entry.Level.ShortCode())
	if colored {
		buf.WriteString(colorReset)
	}

	if entry.Name != "" {
		buf.WriteString(" (")
		buf.WriteString(entry.Name)
		buf.WriteByte(')')
	}
	buf.WriteString(": ")

	buf.WriteString(entry.Message)

	for _, field := range entry.Fields {
		buf.WriteByte(' ')
		buf.WriteString(field.Key)
		buf.WriteByte('=')
		buf.WriteString(field.StringValue())
	}

	buf.WriteByte('\n')
}
