package env

import (
	"os"
	"strings"
)

// Profile is the output configuration selected for an Environment.
type Profile int

const (
	// ProfileDevelopment selects the human readable, coloured output.
	ProfileDevelopment Profile = iota
	// ProfileProduction selects line-delimited JSON records.
	ProfileProduction
	// ProfileBrowser selects the minimal synchronous output.
	ProfileBrowser
)

// String returns the profile name
func (p Profile) String() string {
	switch p {
	case ProfileDevelopment:
		return "development"
	case ProfileProduction:
		return "production"
	case ProfileBrowser:
		return "browser"
	default:
		return "unknown"
	}
}

// Signals are the ambient facts Resolve decides on.
type Signals struct {
	HasWindow    bool
	HasDocument  bool
	HasNavigator bool
	HasProcess   bool
	// UserAgent is navigator.userAgent when a navigator exists.
	UserAgent string
	// Production is set when APP_ENV or NODE_ENV is "production".
	Production bool
	// FrameworkMarkers lists environment variable names that identify
	// a framework-hosted server render.
	FrameworkMarkers []string
}

// Environment is the resolved runtime context.
type Environment struct {
	IsRealBrowser     bool
	IsFrameworkHosted bool
	IsProduction      bool
}

// Profile returns the output configuration for e.
func (e Environment) Profile() Profile {
	switch {
	case e.IsRealBrowser:
		return ProfileBrowser
	case e.IsProduction:
		return ProfileProduction
	default:
		return ProfileDevelopment
	}
}

// serverAgents identify JavaScript hosts that expose a navigator global
// without being a browser.
var serverAgents = []string{"Node.js", "Deno", "Bun"}

// Resolve turns signals into an Environment. It has no side effects.
func Resolve(s Signals) Environment {
	browserGlobals := s.HasWindow && s.HasDocument && s.HasNavigator
	return Environment{
		IsRealBrowser:     browserGlobals && !s.HasProcess && !isServerAgent(s.UserAgent),
		IsFrameworkHosted: (s.HasWindow && s.HasProcess) || len(s.FrameworkMarkers) > 0,
		IsProduction:      s.Production,
	}
}

func isServerAgent(ua string) bool {
	for _, a := range serverAgents {
		if strings.Contains(ua, a) {
			return true
		}
	}
	return false
}

// Variable names consulted by Detect.
const (
	AppEnvVar  = "APP_ENV"
	NodeEnvVar = "NODE_ENV"
)

// frameworkPrefixes and frameworkNames mark framework-hosted renders.
var (
	frameworkPrefixes = []string{"NEXT_PUBLIC_"}
	frameworkNames    = []string{"NEXT_RUNTIME"}
)

// Detect gathers the signals of the running process.
func Detect() Signals {
	s := probeGlobals()
	s.Production = IsProductionValue(os.Getenv(AppEnvVar)) || IsProductionValue(os.Getenv(NodeEnvVar))
	s.FrameworkMarkers = frameworkMarkers(os.Environ())
	return s
}

// IsProductionValue reports whether an environment name means production.
func IsProductionValue(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "production")
}

func frameworkMarkers(environ []string) []string {
	var markers []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if isFrameworkMarker(name) {
			markers = append(markers, name)
		}
	}
	return markers
}

func isFrameworkMarker(name string) bool {
	for _, n := range frameworkNames {
		if name == n {
			return true
		}
	}
	for _, p := range frameworkPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}
