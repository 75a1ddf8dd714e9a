package core

import "strings"

// Level is the weight of a severity. Higher weights are more severe.
type Level int8

const (
	// TraceLevel for step-by-step execution tracing
	TraceLevel Level = 10
	// DebugLevel for debugging information
	DebugLevel Level = 20
	// DetailsLevel for verbose detail (development default)
	DetailsLevel Level = 25
	// LogLevel for plain log output
	LogLevel Level = 30
	// InfoLevel for general informational messages (production default)
	InfoLevel Level = 35
	// WarnLevel for warning messages
	WarnLevel Level = 40
	// ErrorLevel for error messages
	ErrorLevel Level = 50
	// CriticalLevel for events that are escalated to the alert channel
	CriticalLevel Level = 60
)

// UnknownCode is the display code for weights outside the scale.
const UnknownCode = "UNK"

// Severity describes one row of the severity table.
type Severity struct {
	Name      string
	Level     Level
	ShortCode string
}

// severities is ordered by weight. Lookups below depend on that.
var severities = [...]Severity{
	{Name: "trace", Level: TraceLevel, ShortCode: "TRC"},
	{Name: "debug", Level: DebugLevel, ShortCode: "DBG"},
	{Name: "details", Level: DetailsLevel, ShortCode: "DTL"},
	{Name: "log", Level: LogLevel, ShortCode: "LOG"},
	{Name: "info", Level: InfoLevel, ShortCode: "INF"},
	{Name: "warn", Level: WarnLevel, ShortCode: "WRN"},
	{Name: "error", Level: ErrorLevel, ShortCode: "ERR"},
	{Name: "critical", Level: CriticalLevel, ShortCode: "CRT"},
}

// Levels returns the severity table in ascending order of weight.
func Levels() []Severity {
	out := make([]Severity, len(severities))
	copy(out, severities[:])
	return out
}

func lookup(l Level) (Severity, bool) {
	for _, s := range severities {
		if s.Level == l {
			return s, true
		}
	}
	return Severity{}, false
}

// String returns the level name
func (l Level) String() string {
	if s, ok := lookup(l); ok {
		return s.Name
	}
	return "unknown"
}

// ShortCode returns the three letter display code, or UnknownCode.
func (l Level) ShortCode() string {
	return ShortCodeOf(int(l))
}

// Known reports whether l is one of the declared levels.
func (l Level) Known() bool {
	_, ok := lookup(l)
	return ok
}

// ShortCodeOf maps a raw weight to its display code.
func ShortCodeOf(weight int) string {
	for _, s := range severities {
		if int(s.Level) == weight {
			return s.ShortCode
		}
	}
	return UnknownCode
}

// ParseLevel converts a level name to a Level. Names are matched
// case-insensitively; the second result is false for unknown names.
func ParseLevel(name string) (Level, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range severities {
		if s.Name == name {
			return s.Level, true
		}
	}
	return 0, false
}
