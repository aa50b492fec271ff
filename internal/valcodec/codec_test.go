package valcodec

import (
	"bytes"
	"errors"
	"testing"

	"github.com/joshuapare/regkit/pkg/types"
)

func TestStringRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"hello",
		"path\\with\\backslashes",
		"abcd_äöüß",
		"symbols $£€",
	}
	for _, s := range tests {
		data, err := EncodeString(s)
		if err != nil {
			t.Fatalf("EncodeString(%q): %v", s, err)
		}
		if len(data) < 2 || data[len(data)-1] != 0 || data[len(data)-2] != 0 {
			t.Errorf("EncodeString(%q) missing null terminator", s)
		}
		got, err := DecodeString(data)
		if err != nil {
			t.Fatalf("DecodeString: %v", err)
		}
		if got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}

func TestDecodeStringWithoutTerminator(t *testing.T) {
	// "hi" in UTF-16LE with no terminator.
	got, err := DecodeString([]byte{'h', 0, 'i', 0})
	if err != nil {
		t.Fatal(err)
	}
	if got != "hi" {
		t.Errorf("got %q", got)
	}
}

func TestMultiRoundTrip(t *testing.T) {
	in := []string{"one", "two", "three"}
	data, err := EncodeMulti(in)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeMulti(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(in) {
		t.Fatalf("got %d strings, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("entry %d: %q != %q", i, got[i], in[i])
		}
	}
}

func TestMultiEmpty(t *testing.T) {
	data, err := EncodeMulti(nil)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeMulti(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("empty list round trip produced %v", got)
	}
}

func TestDWORD(t *testing.T) {
	data := EncodeDWORD(0x01020304)
	if !bytes.Equal(data, []byte{0x04, 0x03, 0x02, 0x01}) {
		t.Errorf("little-endian layout wrong: %x", data)
	}
	le, err := DecodeDWORD(data, false)
	if err != nil || le != 0x01020304 {
		t.Errorf("DecodeDWORD LE = %x, %v", le, err)
	}
	be, err := DecodeDWORD(data, true)
	if err != nil || be != 0x04030201 {
		t.Errorf("DecodeDWORD BE = %x, %v", be, err)
	}
}

func TestQWORD(t *testing.T) {
	data := EncodeQWORD(0x1122334455667788)
	got, err := DecodeQWORD(data)
	if err != nil || got != 0x1122334455667788 {
		t.Errorf("DecodeQWORD = %x, %v", got, err)
	}
}

func TestShortPayloads(t *testing.T) {
	_, err := DecodeDWORD([]byte{1, 2}, false)
	var te *types.Error
	if !errors.As(err, &te) || te.Kind != types.ErrKindType {
		t.Errorf("short dword should fail with a type error, got %v", err)
	}
	if _, err := DecodeQWORD([]byte{1, 2, 3}); err == nil {
		t.Error("short qword should fail")
	}
}
