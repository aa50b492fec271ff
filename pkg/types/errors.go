package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNotFound   ErrKind = iota // missing key or value
	ErrKindPermission                // insufficient access rights or structural constraint
	ErrKindState                     // invalid operation for current state (already open, not open)
	ErrKindBadInput                  // malformed input (empty segment, unknown root, negative depth)
	ErrKindType                      // requested decode doesn't match the value's RegType
	ErrKindOS                        // generic backend failure (closed handle, bad root token)
)

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels commonly returned by backends and the key layer.
var (
	// ErrNotFound indicates a missing key or value.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
	// ErrNoMoreItems marks enumeration exhaustion. It shares the not-found
	// kind but has a distinct identity so loops can terminate on it without
	// treating it as a hard failure.
	ErrNoMoreItems = &Error{Kind: ErrKindNotFound, Msg: "no more items"}
	// ErrAccessDenied indicates the handle lacks the required access rights,
	// or a structural constraint was violated (deleting a key with children).
	ErrAccessDenied = &Error{Kind: ErrKindPermission, Msg: "access denied"}
	// ErrAlreadyOpen indicates an open was attempted on an open key.
	ErrAlreadyOpen = &Error{Kind: ErrKindState, Msg: "key is already open"}
	// ErrNotOpen indicates an operation that requires an open key.
	ErrNotOpen = &Error{Kind: ErrKindState, Msg: "key is not open"}
	// ErrTypeMismatch indicates the requested decode doesn't match the value type.
	ErrTypeMismatch = &Error{Kind: ErrKindType, Msg: "registry value has different type"}
	// ErrHandleClosed indicates a backend call through a closed handle.
	ErrHandleClosed = &Error{Kind: ErrKindOS, Msg: "handle is closed"}
	// ErrInvalidRoot indicates a root token outside the recognized well-known set.
	ErrInvalidRoot = &Error{Kind: ErrKindOS, Msg: "invalid predefined root"}
)

// kindOf extracts the ErrKind from err, if it carries one.
func kindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// IsNotFound reports whether err is a missing-key/value condition.
// ErrNoMoreItems also satisfies it; use IsNoMoreItems to tell them apart.
func IsNotFound(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrKindNotFound
}

// IsNoMoreItems reports whether err marks enumeration exhaustion.
func IsNoMoreItems(err error) bool {
	return errors.Is(err, ErrNoMoreItems)
}

// IsPermission reports whether err is an access or structural-constraint failure.
func IsPermission(err error) bool {
	k, ok := kindOf(err)
	return ok && k == ErrKindPermission
}
