package handler

import (
	"github.com/philipp01105/envlog/core"
)

// Handler defines the interface for log handlers. Handle must be safe
// for concurrent use and must write each entry as one unit.
type Handler interface {
	// Handle processes a log entry. The entry is only valid for the
	// duration of the call.
	Handle(entry *core.Entry) error

	// Close closes the handler and releases resources
	Close() error
}

// Nop is a Handler that discards everything.
type Nop struct{}

// Handle implements Handler
func (Nop) Handle(*core.Entry) error { return nil }

// Close implements Handler
func (Nop) Close() error { return nil }
