package logger

import (
	"sync"

	"github.com/philipp01105/envlog/config"
	"github.com/philipp01105/envlog/env"
)

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// Default returns the process registry. The configuration and the
// environment are resolved on first call and never again.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry(config.Load(), env.Resolve(env.Detect()))
	})
	return defaultRegistry
}

// Get returns the cached Logger for name from the process registry
func Get(name string) *Logger {
	return Default().Logger(name)
}
