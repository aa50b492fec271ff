//go:build windows

package registry

import "github.com/joshuapare/regkit/internal/osreg"

// Native returns a Registry over the live Windows registry of this machine.
// Operations hit the OS directly; use a memreg.Store for hermetic tests.
func Native() *Registry {
	return New(osreg.New())
}
