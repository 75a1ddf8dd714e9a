package formatter

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/philipp01105/envlog/core"
)

// Formatter defines the interface for log formatters
type Formatter interface {
	// Format formats a log entry into bytes, including the trailing newline
	Format(entry *core.Entry) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats a log entry and writes it to w with a single Write
	FormatTo(entry *core.Entry, w io.Writer) error
}

// LevelEncoding selects how the level key is written.
type LevelEncoding int

const (
	// LevelShortCode writes the three letter code (INF, ERR, ...).
	LevelShortCode LevelEncoding = iota
	// LevelNumeric writes the raw weight so a downstream renderer can
	// apply its own mapping.
	LevelNumeric
)

// Config holds common formatter configuration
type Config struct {
	// Levels selects the level representation
	Levels LevelEncoding
	// TimestampFormat specifies the time layout (empty for the formatter default)
	TimestampFormat string
	// Color enables ANSI colouring in the text formatter
	Color bool
}

// Bindings are the per-process fields attached to every full record.
type Bindings struct {
	PID      int
	Hostname string
}

var (
	processBindings     Bindings
	processBindingsOnce sync.Once
)

// ProcessBindings returns the bindings of the running process. They are
// computed on first use.
func ProcessBindings() Bindings {
	processBindingsOnce.Do(func() {
		host, err := os.Hostname()
		if err != nil {
			host = "unknown"
		}
		processBindings = Bindings{PID: os.Getpid(), Hostname: host}
	})
	return processBindings
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
