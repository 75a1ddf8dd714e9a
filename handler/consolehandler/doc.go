// Package consolehandler provides the console handler that writes
// formatted log entries to any io.Writer (default: os.Stdout).
//
// The handler is synchronous. Formatting happens outside the lock and
// the finished record is written with one Write call while the lock is
// held, so records from concurrent goroutines never interleave. Several
// handlers can share a writer by sharing the Lock in ConsoleConfig.
package consolehandler
