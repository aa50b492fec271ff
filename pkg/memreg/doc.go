// Package memreg is an in-memory emulation of the registry store backend.
// It implements types.Backend over a flat map of full key paths, matching
// the observable contract of the native store: handle lifecycle, access
// enforcement, auto-vivifying key creation, sorted enumeration, and
// FILETIME last-write timestamps.
//
// The emulation is intended for tests and non-Windows environments. It is
// never persisted; see pkg/registry for the navigation layer built on top.
package memreg
