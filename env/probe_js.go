//go:build js && wasm

package env

import "syscall/js"

func probeGlobals() Signals {
	global := js.Global()
	present := func(name string) bool {
		v := global.Get(name)
		return !v.IsUndefined() && !v.IsNull()
	}

	s := Signals{
		HasWindow:    present("window"),
		HasDocument:  present("document"),
		HasNavigator: present("navigator"),
		HasProcess:   present("process"),
	}
	if s.HasNavigator {
		if ua := global.Get("navigator").Get("userAgent"); ua.Type() == js.TypeString {
			s.UserAgent = ua.String()
		}
	}
	return s
}
