package regtext

import (
	"bytes"
	"errors"
	"strings"

	"github.com/joshuapare/regkit/internal/valcodec"
)

var errUnsupportedEncoding = errors.New("regtext: unsupported encoding")

// DecodeInput converts .reg file bytes to UTF-8 text. A BOM wins over the
// declared encoding; without one, enc decides ("" means UTF-8).
func DecodeInput(data []byte, enc string) (string, error) {
	if bytes.HasPrefix(data, UTF16LEBOM) {
		return valcodec.DecodeUTF16LE(data[len(UTF16LEBOM):])
	}
	if bytes.HasPrefix(data, UTF8BOM) {
		return string(data[len(UTF8BOM):]), nil
	}
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		return string(data), nil
	case EncodingUTF16LE:
		return valcodec.DecodeUTF16LE(data)
	default:
		return "", errUnsupportedEncoding
	}
}

// EncodeOutput converts finished .reg text to the requested encoding,
// prefixing a BOM when asked.
func EncodeOutput(text string, enc string, withBOM bool) ([]byte, error) {
	switch strings.ToUpper(enc) {
	case "", EncodingUTF8:
		if withBOM {
			return append(append([]byte{}, UTF8BOM...), text...), nil
		}
		return []byte(text), nil
	case EncodingUTF16LE:
		encoded, err := valcodec.EncodeUTF16LE(text)
		if err != nil {
			return nil, err
		}
		if withBOM {
			return append(append([]byte{}, UTF16LEBOM...), encoded...), nil
		}
		return encoded, nil
	default:
		return nil, errUnsupportedEncoding
	}
}
