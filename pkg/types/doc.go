// Package types defines the shared vocabulary of the registry layer:
// value types and payloads, access masks, well-known roots, handles,
// the typed error taxonomy, and the Backend capability set that both
// the in-memory emulation and the native Windows store implement.
//
// The package is deliberately passive: no I/O, no store state. Higher
// layers (pkg/registry, pkg/memreg) depend on it; it depends on nothing
// but the standard library.
package types
