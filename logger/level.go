package logger

import (
	"github.com/philipp01105/envlog/core"
)

// Level Re-export type and constants for convenience
type Level = core.Level

const (
	TraceLevel    = core.TraceLevel
	DebugLevel    = core.DebugLevel
	DetailsLevel  = core.DetailsLevel
	LogLevel      = core.LogLevel
	InfoLevel     = core.InfoLevel
	WarnLevel     = core.WarnLevel
	ErrorLevel    = core.ErrorLevel
	CriticalLevel = core.CriticalLevel
)

// ParseLevel converts a level name to a Level. The second result is
// false for names outside the scale.
func ParseLevel(s string) (Level, bool) {
	return core.ParseLevel(s)
}
