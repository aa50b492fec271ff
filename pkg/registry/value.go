package registry

import (
	"fmt"

	"github.com/joshuapare/regkit/internal/valcodec"
	"github.com/joshuapare/regkit/pkg/types"
)

// Infer maps a Go value to a tagged registry value, the single pure
// inference table for dict-style assignment:
//
//	types.Value  -> passthrough (explicit type)
//	nil          -> REG_NONE
//	int kinds    -> REG_DWORD (64-bit kinds -> REG_QWORD)
//	[]byte       -> REG_BINARY
//	[]string     -> REG_MULTI_SZ (also []any of strings)
//	string       -> REG_SZ
//	anything else -> REG_SZ via fmt.Sprint
func Infer(v any) (types.Value, error) {
	switch t := v.(type) {
	case types.Value:
		return t, nil
	case nil:
		return types.Value{Type: types.REG_NONE}, nil
	case int:
		return types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(uint32(int64(t)))}, nil
	case int8:
		return types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(uint32(int64(t)))}, nil
	case int16:
		return types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(uint32(int64(t)))}, nil
	case int32:
		return types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(uint32(t))}, nil
	case uint8:
		return types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(uint32(t))}, nil
	case uint16:
		return types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(uint32(t))}, nil
	case uint32:
		return types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(t)}, nil
	case int64:
		return types.Value{Type: types.REG_QWORD, Data: valcodec.EncodeQWORD(uint64(t))}, nil
	case uint64:
		return types.Value{Type: types.REG_QWORD, Data: valcodec.EncodeQWORD(t)}, nil
	case []byte:
		return types.Value{Type: types.REG_BINARY, Data: t}, nil
	case []string:
		data, err := valcodec.EncodeMulti(t)
		if err != nil {
			return types.Value{}, err
		}
		return types.Value{Type: types.REG_MULTI_SZ, Data: data}, nil
	case []any:
		// Generic decoders (YAML, JSON) hand string lists back as []any.
		ss := make([]string, len(t))
		for i, e := range t {
			s, ok := e.(string)
			if !ok {
				return types.Value{}, &types.Error{Kind: types.ErrKindBadInput, Msg: fmt.Sprintf("cannot infer a registry type for list element %T", e)}
			}
			ss[i] = s
		}
		data, err := valcodec.EncodeMulti(ss)
		if err != nil {
			return types.Value{}, err
		}
		return types.Value{Type: types.REG_MULTI_SZ, Data: data}, nil
	case string:
		data, err := valcodec.EncodeString(t)
		if err != nil {
			return types.Value{}, err
		}
		return types.Value{Type: types.REG_SZ, Data: data}, nil
	default:
		data, err := valcodec.EncodeString(fmt.Sprint(t))
		if err != nil {
			return types.Value{}, err
		}
		return types.Value{Type: types.REG_SZ, Data: data}, nil
	}
}

// Decode is the inverse of Infer: it turns a tagged value into the natural
// Go representation. A binary value with a nil payload decodes to an empty
// byte slice, never nil, normalizing a backend quirk. Unknown types decode
// to their raw payload.
func Decode(v types.Value) (any, error) {
	switch v.Type {
	case types.REG_NONE:
		return nil, nil
	case types.REG_SZ, types.REG_EXPAND_SZ:
		return valcodec.DecodeString(v.Data)
	case types.REG_DWORD:
		return valcodec.DecodeDWORD(v.Data, false)
	case types.REG_DWORD_BE:
		return valcodec.DecodeDWORD(v.Data, true)
	case types.REG_QWORD:
		return valcodec.DecodeQWORD(v.Data)
	case types.REG_MULTI_SZ:
		return valcodec.DecodeMulti(v.Data)
	case types.REG_BINARY:
		if v.Data == nil {
			return []byte{}, nil
		}
		return v.Data, nil
	default:
		return v.Data, nil
	}
}

// String builds an explicit REG_SZ value.
func String(s string) types.Value {
	data, _ := valcodec.EncodeString(s)
	return types.Value{Type: types.REG_SZ, Data: data}
}

// ExpandString builds an explicit REG_EXPAND_SZ value.
func ExpandString(s string) types.Value {
	data, _ := valcodec.EncodeString(s)
	return types.Value{Type: types.REG_EXPAND_SZ, Data: data}
}

// DWORD builds an explicit REG_DWORD value.
func DWORD(v uint32) types.Value {
	return types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(v)}
}

// QWORD builds an explicit REG_QWORD value.
func QWORD(v uint64) types.Value {
	return types.Value{Type: types.REG_QWORD, Data: valcodec.EncodeQWORD(v)}
}

// Binary builds an explicit REG_BINARY value.
func Binary(b []byte) types.Value {
	return types.Value{Type: types.REG_BINARY, Data: b}
}

// MultiString builds an explicit REG_MULTI_SZ value.
func MultiString(ss []string) types.Value {
	data, _ := valcodec.EncodeMulti(ss)
	return types.Value{Type: types.REG_MULTI_SZ, Data: data}
}

// None builds an explicit REG_NONE value.
func None() types.Value {
	return types.Value{Type: types.REG_NONE}
}
