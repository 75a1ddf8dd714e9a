// Package env works out which runtime context the process is running in.
//
// Signals are gathered once with Detect and turned into an Environment
// by the pure function Resolve. Under GOOS=js GOARCH=wasm the signals
// come from the JavaScript globals (window, document, navigator,
// process); everywhere else only environment variables contribute.
//
// Resolve always checks for a real browser first. A module running in a
// server-side JavaScript host (Node.js, Deno, Bun) or under a framework
// server render sees some browser-like globals but is not a browser.
// Framework-hosted detection is reported but does not change the
// profile.
package env
