// Package valcodec encodes and decodes raw registry value payloads.
// Strings travel as UTF-16LE with terminators, integers little-endian,
// matching what the native store holds on the wire.
package valcodec

import (
	"encoding/binary"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/regkit/pkg/types"
)

var (
	utf16leEnc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	utf16Dec   = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
)

// EncodeUTF16LE transcodes s to UTF-16LE without a BOM or terminator.
func EncodeUTF16LE(s string) ([]byte, error) {
	out, _, err := transform.Bytes(utf16leEnc.NewEncoder(), []byte(s))
	return out, err
}

// DecodeUTF16LE transcodes UTF-16 bytes (little-endian unless a BOM says
// otherwise) to a UTF-8 string. Odd trailing bytes are dropped.
func DecodeUTF16LE(b []byte) (string, error) {
	if len(b)%2 == 1 {
		b = b[:len(b)-1]
	}
	out, _, err := transform.Bytes(utf16Dec.NewDecoder(), b)
	return string(out), err
}

// EncodeString builds a REG_SZ / REG_EXPAND_SZ payload: UTF-16LE with a
// single null terminator.
func EncodeString(s string) ([]byte, error) {
	out, err := EncodeUTF16LE(s)
	if err != nil {
		return nil, err
	}
	return append(out, 0, 0), nil
}

// DecodeString decodes a string payload, tolerating a missing terminator.
func DecodeString(b []byte) (string, error) {
	s, err := DecodeUTF16LE(b)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(s, "\x00"), nil
}

// EncodeMulti builds a REG_MULTI_SZ payload: each string null-terminated,
// the list closed by an extra null.
func EncodeMulti(ss []string) ([]byte, error) {
	var buf []byte
	for _, s := range ss {
		enc, err := EncodeString(s)
		if err != nil {
			return nil, err
		}
		buf = append(buf, enc...)
	}
	return append(buf, 0, 0), nil
}

// DecodeMulti splits a REG_MULTI_SZ payload into its strings. Empty entries
// produced by the trailing terminator are discarded.
func DecodeMulti(b []byte) ([]string, error) {
	s, err := DecodeUTF16LE(b)
	if err != nil {
		return nil, err
	}
	s = strings.TrimRight(s, "\x00")
	if s == "" {
		return nil, nil
	}
	return strings.Split(s, "\x00"), nil
}

// EncodeDWORD builds a little-endian REG_DWORD payload.
func EncodeDWORD(v uint32) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return b[:]
}

// DecodeDWORD reads a 32-bit payload; bigEndian selects REG_DWORD_BE layout.
func DecodeDWORD(b []byte, bigEndian bool) (uint32, error) {
	if len(b) < 4 {
		return 0, &types.Error{Kind: types.ErrKindType, Msg: "dword payload shorter than 4 bytes"}
	}
	if bigEndian {
		return binary.BigEndian.Uint32(b), nil
	}
	return binary.LittleEndian.Uint32(b), nil
}

// EncodeQWORD builds a little-endian REG_QWORD payload.
func EncodeQWORD(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

// DecodeQWORD reads a 64-bit little-endian payload.
func DecodeQWORD(b []byte) (uint64, error) {
	if len(b) < 8 {
		return 0, &types.Error{Kind: types.ErrKindType, Msg: "qword payload shorter than 8 bytes"}
	}
	return binary.LittleEndian.Uint64(b), nil
}
