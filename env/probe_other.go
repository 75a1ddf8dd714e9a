//go:build !(js && wasm)

package env

// Native builds always run as an operating system process.
func probeGlobals() Signals {
	return Signals{HasProcess: true}
}
