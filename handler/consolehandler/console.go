package consolehandler

import (
	"io"
	"os"
	"sync"

	"github.com/philipp01105/envlog/core"
	"github.com/philipp01105/envlog/formatter"
)

// lockedWriter wraps an io.Writer with a mutex, acquiring the lock only
// for Write calls. Formatters prepare data in their own pooled buffers
// and call Write once, so the lock is held only during the actual I/O.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	n, err = lw.w.Write(p)
	lw.mu.Unlock()
	return
}

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: JSONFormatter with process bindings)
	Formatter formatter.Formatter
	// Lock serializes writes. Handlers sharing one Writer must share the
	// Lock as well; nil gives the handler a lock of its own.
	Lock *sync.Mutex
}

// ConsoleHandler writes one formatted record per Write call
type ConsoleHandler struct {
	formatter       formatter.Formatter
	writerFormatter formatter.WriterFormatter
	lw              lockedWriter
	closeOnce       sync.Once
	closed          chan struct{}
}

// NewConsoleHandler creates a new synchronous console handler
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewJSONFormatter(formatter.Config{}, formatter.ProcessBindings())
	}
	if cfg.Lock == nil {
		cfg.Lock = new(sync.Mutex)
	}

	h := &ConsoleHandler{
		formatter: cfg.Formatter,
		lw:        lockedWriter{mu: cfg.Lock, w: cfg.Writer},
		closed:    make(chan struct{}),
	}
	// Cache WriterFormatter for the single-write path
	h.writerFormatter, _ = cfg.Formatter.(formatter.WriterFormatter)
	return h
}

// Handle formats and writes an entry. Entries handed in after Close are
// dropped.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	select {
	case <-h.closed:
		return nil
	default:
	}

	if h.writerFormatter != nil {
		return h.writerFormatter.FormatTo(entry, &h.lw)
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	_, err = h.lw.Write(data)
	return err
}

// Close marks the handler closed. The underlying writer is not closed.
func (h *ConsoleHandler) Close() error {
	h.closeOnce.Do(func() { close(h.closed) })
	return nil
}
