// Package logger is the public API of envlog. Most users only need to
// import this package.
//
// Loggers are named and leveled. Get returns the cached Logger for a
// name from the process registry, which resolves the configuration and
// the runtime environment exactly once:
//
//	log := logger.Get("api")
//	log.Info("ready", logger.Int("port", 8080))
//
// Eight methods cover the severity scale: Trace, Debug, Details, Log,
// Info, Warn, Error and Critical. Records below the threshold return
// before any work is done, so field values implementing core.Loggable
// are never serialized for them. The threshold defaults to details in
// development and info in production and browser builds; LOG_LEVEL
// overrides it.
//
// Extend derives a child name:
//
//	billing := log.Extend("billing") // "api.billing"
//
// Critical records are escalated to the configured incoming webhook in
// the background. A failed delivery is logged at error level by the
// same logger.
//
// Programs that want explicit wiring build their own Registry:
//
//	reg := logger.NewRegistry(config.Load(), env.Resolve(env.Detect()))
//	log := reg.Logger("worker")
//
// Loggers are immutable and safe for concurrent use. Each record is
// written with a single Write call under a lock shared by all loggers
// of a registry, so concurrent records never interleave.
package logger
