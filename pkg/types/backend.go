package types

// Handle references a position in a store for backend calls: either a Root
// token (perpetually open) or an opaque open-key handle minted by a Backend.
// Backends only accept handles they minted themselves (or roots).
type Handle interface {
	// RegistryHandle is a marker restricting implementations to root tokens
	// and backend-owned handle types.
	RegistryHandle()
}

// KeyInfo summarizes a key: direct subkey count, value count, and the
// last-modified timestamp in FILETIME units (backend contract fidelity).
type KeyInfo struct {
	SubkeyN   int
	ValueN    int
	LastWrite Filetime
}

// Backend is the capability set the key layer requires from any store,
// real or emulated. All operations are synchronous and single-shot.
//
// Error contract: missing keys/values surface as ErrNotFound, missing
// access rights and structural violations as ErrAccessDenied, enumeration
// exhaustion as ErrNoMoreItems, and handle misuse (closed handle,
// unrecognized root token) as generic OS-class errors.
type Backend interface {
	// CreateKey opens subKey below h with the given access, creating it and
	// any missing ancestors first.
	CreateKey(h Handle, subKey string, access Access) (Handle, error)

	// OpenKey opens an existing subKey below h with the given access.
	OpenKey(h Handle, subKey string, access Access) (Handle, error)

	// Close invalidates h. Closing a root or an already-closed handle is a no-op.
	Close(h Handle) error

	// SetValue stores a named value ("" for the default value) on the key.
	SetValue(h Handle, name string, v Value) error

	// QueryValue returns a named value.
	QueryValue(h Handle, name string) (Value, error)

	// DeleteValue removes a named value.
	DeleteValue(h Handle, name string) error

	// DeleteKey removes the direct child subKey of h. The child must have no
	// children of its own; recursion is the caller's responsibility.
	DeleteKey(h Handle, subKey string) error

	// EnumSubkey returns the i-th direct child name in stable sorted order.
	EnumSubkey(h Handle, i int) (string, error)

	// EnumValue returns the i-th value as (name, value) in stable sorted
	// order, the default value first.
	EnumValue(h Handle, i int) (string, Value, error)

	// QueryInfo returns subkey/value counts and the last-write timestamp.
	QueryInfo(h Handle) (KeyInfo, error)
}
