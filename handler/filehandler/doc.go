// Package filehandler provides a handler that appends formatted log
// records to a file.
//
// When MaxSize is set, the file is rotated before a record would push
// it past the limit: the current file is renamed with a sortable
// timestamp suffix and a fresh file is opened under the original name.
// MaxBackups bounds the number of rotated files kept on disk.
//
// Records are written straight to the file without buffering, because
// loggers live for the whole process and are never flushed on exit.
package filehandler
