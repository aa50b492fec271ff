package regtext

import (
	"fmt"
	"strings"

	"github.com/joshuapare/regkit/internal/valcodec"
	"github.com/joshuapare/regkit/pkg/types"
)

// Emitter accumulates .reg v5 text, one section at a time. Callers drive it
// with the subtree's keys in traversal order and finish with Bytes.
type Emitter struct {
	sb strings.Builder
}

// NewEmitter returns an emitter primed with the version 5.00 header.
func NewEmitter() *Emitter {
	e := &Emitter{}
	e.sb.WriteString(RegFileHeader + CRLF)
	return e
}

// BeginKey opens a new [path] section.
func (e *Emitter) BeginKey(path string) {
	e.sb.WriteString(CRLF + KeyOpenBracket + path + KeyCloseBracket + CRLF)
}

// DeleteKey emits a [-path] section marking the key for deletion.
func (e *Emitter) DeleteKey(path string) {
	e.sb.WriteString(CRLF + KeyOpenBracket + DeleteKeyPrefix + path + KeyCloseBracket + CRLF)
}

// Value emits one value line in the current section.
func (e *Emitter) Value(name string, v types.Value) error {
	payload, err := FormatPayload(v)
	if err != nil {
		return err
	}
	e.sb.WriteString(FormatName(name) + ValueAssignment + payload + CRLF)
	return nil
}

// DeleteValue emits a "name"=- line in the current section.
func (e *Emitter) DeleteValue(name string) {
	e.sb.WriteString(FormatName(name) + ValueAssignment + DeleteValueToken + CRLF)
}

// String returns the accumulated text.
func (e *Emitter) String() string { return e.sb.String() }

// Bytes returns the accumulated text in the requested encoding.
func (e *Emitter) Bytes(enc string, withBOM bool) ([]byte, error) {
	return EncodeOutput(e.sb.String(), enc, withBOM)
}

// FormatName renders a value name: @ for the default value, quoted and
// escaped otherwise.
func FormatName(name string) string {
	if name == "" {
		return DefaultValuePrefix
	}
	return Quote + escapeString(name) + Quote
}

// FormatPayload renders a value payload in .reg notation. Strings stay
// readable as quoted text, dwords use the dword: form, and every other type
// falls back to typed hex so the registry type survives a round trip.
func FormatPayload(v types.Value) (string, error) {
	switch v.Type {
	case types.REG_SZ:
		s, err := valcodec.DecodeString(v.Data)
		if err != nil {
			return "", err
		}
		return Quote + escapeString(s) + Quote, nil
	case types.REG_DWORD:
		n, err := valcodec.DecodeDWORD(v.Data, false)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(DWORDPrefix+"%08x", n), nil
	case types.REG_BINARY:
		return HexPrefix + formatHex(v.Data), nil
	default:
		return fmt.Sprintf(HexTypeFormat, uint32(v.Type)) + formatHex(v.Data), nil
	}
}

func escapeString(s string) string {
	s = strings.ReplaceAll(s, Backslash, EscapedBackslash)
	s = strings.ReplaceAll(s, Quote, EscapedQuote)
	return s
}

// formatHex renders bytes as a comma-separated hex list on a single line.
func formatHex(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, HexByteSeparator)
}
