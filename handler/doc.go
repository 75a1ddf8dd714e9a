// Package handler provides the Handler interface and the building blocks
// that write formatted log entries to their destinations.
//
// Handlers are synchronous: Handle returns after the record has been
// handed to the writer. Each record is written with a single Write call
// under the handler's lock, so concurrent callers never interleave bytes
// within one record.
//
// Built-in handlers:
//
//   - consolehandler writes to any io.Writer (default: stdout).
//   - filehandler writes to a file with size-based rotation and backup
//     pruning.
//   - MultiHandler fans a single entry out to several handlers and joins
//     their errors with multierr.
//   - SlogHandler adapts a Handler to log/slog.Handler, so code written
//     against the standard library logs through the same sink.
package handler
