// Package core defines the shared types used across envlog.
//
// It provides the Level type with the eight-step severity scale
// (trace, debug, details, log, info, warn, error, critical), the Entry
// type that represents a single log record, and the Field type for
// structured key-value pairs.
//
// Levels are weights rather than ordinals: trace is 10, critical is 60.
// Threshold checks are plain integer comparisons, and the weights are
// what the development pipeline writes into the level key before the
// pretty renderer maps them back to names.
//
// Entry objects are pooled via sync.Pool. Callers get an Entry with
// GetEntry and must return it with PutEntry once the handler has
// consumed it.
//
// Field is a tagged union over the common primitive types plus Object,
// which carries a Loggable. Loggable values describe themselves as
// fields on demand, so nothing is rendered for records that are
// filtered out by the level check.
package core
