package types

import "fmt"

// RegType enumerates Windows registry value types.
// (The numbers align with Windows definitions.)
type RegType uint32

const (
	REG_NONE      RegType = 0
	REG_SZ        RegType = 1
	REG_EXPAND_SZ RegType = 2
	REG_BINARY    RegType = 3
	REG_DWORD     RegType = 4
	REG_DWORD_LE  RegType = 4 // alias for clarity
	REG_DWORD_BE  RegType = 5
	REG_LINK      RegType = 6
	REG_MULTI_SZ  RegType = 7
	REG_QWORD     RegType = 11
)

// String implements the Stringer interface for RegType.
func (t RegType) String() string {
	switch t {
	case REG_NONE:
		return "REG_NONE"
	case REG_SZ:
		return "REG_SZ"
	case REG_EXPAND_SZ:
		return "REG_EXPAND_SZ"
	case REG_BINARY:
		return "REG_BINARY"
	case REG_DWORD:
		return "REG_DWORD"
	case REG_DWORD_BE:
		return "REG_DWORD_BE"
	case REG_LINK:
		return "REG_LINK"
	case REG_MULTI_SZ:
		return "REG_MULTI_SZ"
	case REG_QWORD:
		return "REG_QWORD"
	default:
		return fmt.Sprintf("UNKNOWN_TYPE_%d", int32(t))
	}
}

// IsString reports whether t is one of the string-payload types.
func (t RegType) IsString() bool {
	return t == REG_SZ || t == REG_EXPAND_SZ
}

// Value is a tagged registry value: a type tag plus the raw payload in the
// backend's wire representation (little-endian integers, UTF-16LE strings
// with terminators). Decoding to Go types is the caller's concern; see
// the codecs in pkg/registry.
type Value struct {
	Type RegType
	Data []byte
}

// Clone returns a deep copy of v so backends can hand out values without
// aliasing their internal storage.
func (v Value) Clone() Value {
	if v.Data == nil {
		return Value{Type: v.Type}
	}
	d := make([]byte, len(v.Data))
	copy(d, v.Data)
	return Value{Type: v.Type, Data: d}
}
