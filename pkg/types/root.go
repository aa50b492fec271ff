package types

import (
	"fmt"
	"strings"
)

// Root is a well-known registry root token. The values match the Windows
// HKEY_* pseudo-handles. A Root is itself a valid Handle: roots are
// perpetually open and never closed.
type Root uint32

const (
	HKEY_CLASSES_ROOT     Root = 0x80000000
	HKEY_CURRENT_USER     Root = 0x80000001
	HKEY_LOCAL_MACHINE    Root = 0x80000002
	HKEY_USERS            Root = 0x80000003
	HKEY_PERFORMANCE_DATA Root = 0x80000004
	HKEY_CURRENT_CONFIG   Root = 0x80000005
	HKEY_DYN_DATA         Root = 0x80000006
)

// RegistryHandle marks Root as a Handle.
func (Root) RegistryHandle() {}

// recognizedRoots is the set backends accept. HKEY_PERFORMANCE_DATA and
// HKEY_DYN_DATA exist as constants but are not part of the contract.
var recognizedRoots = map[Root]string{
	HKEY_CLASSES_ROOT:   "HKEY_CLASSES_ROOT",
	HKEY_CURRENT_USER:   "HKEY_CURRENT_USER",
	HKEY_LOCAL_MACHINE:  "HKEY_LOCAL_MACHINE",
	HKEY_USERS:          "HKEY_USERS",
	HKEY_CURRENT_CONFIG: "HKEY_CURRENT_CONFIG",
}

// rootTokens maps every accepted spelling (long name and short alias,
// already upper-cased) to its root.
var rootTokens = map[string]Root{
	"HKEY_CLASSES_ROOT":   HKEY_CLASSES_ROOT,
	"HKCR":                HKEY_CLASSES_ROOT,
	"HKEY_CURRENT_USER":   HKEY_CURRENT_USER,
	"HKCU":                HKEY_CURRENT_USER,
	"HKEY_LOCAL_MACHINE":  HKEY_LOCAL_MACHINE,
	"HKLM":                HKEY_LOCAL_MACHINE,
	"HKEY_USERS":          HKEY_USERS,
	"HKU":                 HKEY_USERS,
	"HKEY_CURRENT_CONFIG": HKEY_CURRENT_CONFIG,
	"HKCC":                HKEY_CURRENT_CONFIG,
}

// Recognized reports whether r is one of the well-known roots backends accept.
func (r Root) Recognized() bool {
	_, ok := recognizedRoots[r]
	return ok
}

// String returns the canonical long name for recognized roots and a hex
// rendering otherwise.
func (r Root) String() string {
	if name, ok := recognizedRoots[r]; ok {
		return name
	}
	return fmt.Sprintf("0x%08X", uint32(r))
}

// ParseRoot resolves a root token spelling (long name or short alias,
// any case) to its Root. Unknown tokens fail with a bad-input error.
func ParseRoot(token string) (Root, error) {
	r, ok := rootTokens[strings.ToUpper(strings.TrimSpace(token))]
	if !ok {
		return 0, &Error{Kind: ErrKindBadInput, Msg: fmt.Sprintf("unknown registry root %q", token)}
	}
	return r, nil
}
