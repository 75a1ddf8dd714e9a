// Package formatter defines how log entries are serialized into bytes.
//
// JSONFormatter produces line-delimited JSON records through zap's
// zapcore JSON encoder. The full variant writes level, time, name, msg,
// pid and hostname followed by the call fields; the browser variant
// writes level, msg and call fields only. The level key is either the
// three letter short code or, for the development pipeline, the raw
// numeric weight. The pretty renderer downstream maps the weight itself,
// so the level is never formatted twice.
//
// TextFormatter renders the condensed human-readable form used by the
// pretty renderer, with optional ANSI colouring per level. It uses a
// pooled bytes.Buffer and Append-style functions on the write path.
//
// Both formatters implement Formatter and WriterFormatter. Handlers
// prefer WriterFormatter so that a record reaches the writer in a single
// Write call.
package formatter
