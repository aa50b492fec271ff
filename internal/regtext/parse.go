package regtext

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/regkit/internal/valcodec"
	"github.com/joshuapare/regkit/pkg/types"
)

// Parse converts .reg text into an ordered edit list. The input may be UTF-8
// or UTF-16LE (BOM-aware, see DecodeInput); the version 5.00 header is
// mandatory. Hex payloads may span lines via trailing-backslash continuations.
func Parse(data []byte, enc string) ([]Op, error) {
	text, err := DecodeInput(data, enc)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	seenHeader := false
	seenKeys := make(map[string]bool)
	var ops []Op
	var current string
	var pending string

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trim := strings.TrimSpace(line)

		if pending != "" {
			// Continuation body of a hex payload.
			pending += trim
			if strings.HasSuffix(pending, Backslash) {
				pending = strings.TrimSpace(strings.TrimSuffix(pending, Backslash))
				continue
			}
			op, err := parseValueLine(current, pending)
			if err != nil {
				return nil, err
			}
			ops = append(ops, op)
			pending = ""
			continue
		}

		if trim == "" || strings.HasPrefix(trim, CommentPrefix) {
			continue
		}
		if !seenHeader {
			if trim != RegFileHeader {
				return nil, errors.New("regtext: missing version 5.00 header")
			}
			seenHeader = true
			continue
		}
		if strings.HasPrefix(trim, KeyOpenBracket) {
			if !strings.HasSuffix(trim, KeyCloseBracket) {
				return nil, fmt.Errorf("regtext: malformed section %q", trim)
			}
			section := strings.TrimSuffix(strings.TrimPrefix(trim, KeyOpenBracket), KeyCloseBracket)
			if strings.HasPrefix(section, DeleteKeyPrefix) {
				ops = append(ops, OpDeleteKey{Path: strings.TrimSpace(section[1:])})
				current = ""
				continue
			}
			current = section
			if !seenKeys[current] {
				ops = append(ops, OpCreateKey{Path: current})
				seenKeys[current] = true
			}
			continue
		}
		if current == "" {
			return nil, fmt.Errorf("regtext: value outside any section: %q", trim)
		}
		if strings.HasSuffix(trim, Backslash) && isHexLine(trim) {
			pending = strings.TrimSpace(strings.TrimSuffix(trim, Backslash))
			continue
		}
		op, err := parseValueLine(current, trim)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if pending != "" {
		return nil, errors.New("regtext: unterminated hex continuation")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if !seenHeader {
		return nil, errors.New("regtext: missing version 5.00 header")
	}
	return ops, nil
}

// isHexLine reports whether a value line carries a hex payload, the only
// payload kind that may use line continuations.
func isHexLine(line string) bool {
	eq := strings.Index(line, ValueAssignment)
	if eq < 0 {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(line[eq+1:]), "hex")
}

func parseValueLine(path, line string) (Op, error) {
	if strings.HasPrefix(line, DefaultValuePrefix) {
		rest := line[len(DefaultValuePrefix):]
		if !strings.HasPrefix(rest, ValueAssignment) {
			return nil, fmt.Errorf("regtext: missing '=' in %q", line)
		}
		return parsePayload(path, "", rest[1:])
	}
	if !strings.HasPrefix(line, Quote) {
		return nil, fmt.Errorf("regtext: malformed value line %q", line)
	}
	end := findClosingQuote(line)
	if end < 0 {
		return nil, fmt.Errorf("regtext: unterminated value name in %q", line)
	}
	name := unescapeString(line[1:end])
	rest := line[end+1:]
	if !strings.HasPrefix(rest, ValueAssignment) {
		return nil, fmt.Errorf("regtext: missing '=' in %q", line)
	}
	return parsePayload(path, name, rest[1:])
}

func parsePayload(path, name, payload string) (Op, error) {
	payload = strings.TrimSpace(payload)
	if payload == DeleteValueToken {
		return OpDeleteValue{Path: path, Name: name}, nil
	}
	if strings.HasPrefix(payload, Quote) {
		if len(payload) < 2 || !strings.HasSuffix(payload, Quote) {
			return nil, fmt.Errorf("regtext: unterminated string %q", payload)
		}
		data, err := valcodec.EncodeString(unescapeString(payload[1 : len(payload)-1]))
		if err != nil {
			return nil, err
		}
		return OpSetValue{Path: path, Name: name, Value: types.Value{Type: types.REG_SZ, Data: data}}, nil
	}
	if strings.HasPrefix(payload, DWORDPrefix) {
		digits := payload[len(DWORDPrefix):]
		if len(digits) != DWORDHexLength {
			return nil, fmt.Errorf("regtext: invalid dword %q", payload)
		}
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("regtext: invalid dword %q: %w", payload, err)
		}
		v := types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(uint32(n))}
		return OpSetValue{Path: path, Name: name, Value: v}, nil
	}
	if strings.HasPrefix(payload, "hex") {
		typ, data, err := parseHexPayload(payload)
		if err != nil {
			return nil, err
		}
		return OpSetValue{Path: path, Name: name, Value: types.Value{Type: typ, Data: data}}, nil
	}
	return nil, fmt.Errorf("regtext: unsupported payload %q", payload)
}

// parseHexPayload handles hex: and hex(t): forms. The parenthesized type is a
// raw registry type number in hex, so hex(2): carries REG_EXPAND_SZ, hex(7):
// REG_MULTI_SZ and hex(b): REG_QWORD.
func parseHexPayload(payload string) (types.RegType, []byte, error) {
	typ := types.REG_BINARY
	colon := strings.Index(payload, ":")
	if colon < 0 {
		return 0, nil, fmt.Errorf("regtext: malformed hex payload %q", payload)
	}
	prefix := payload[:colon]
	if open := strings.Index(prefix, "("); open >= 0 {
		closing := strings.Index(prefix, ")")
		if closing <= open {
			return 0, nil, fmt.Errorf("regtext: malformed hex type in %q", payload)
		}
		n, err := strconv.ParseUint(prefix[open+1:closing], 16, 32)
		if err != nil {
			return 0, nil, fmt.Errorf("regtext: invalid hex type in %q: %w", payload, err)
		}
		typ = types.RegType(n)
	}
	data, err := parseHexBytes(payload[colon+1:])
	if err != nil {
		return 0, nil, err
	}
	return typ, data, nil
}

// parseHexBytes decodes a comma-separated hex byte list, tolerating
// whitespace, stray continuation backslashes and single-digit bytes.
func parseHexBytes(body string) ([]byte, error) {
	out := make([]byte, 0, len(body)/3+1)
	for _, part := range strings.Split(body, HexByteSeparator) {
		part = strings.TrimSpace(strings.ReplaceAll(part, Backslash, ""))
		if part == "" {
			continue
		}
		b, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("regtext: invalid hex byte %q: %w", part, err)
		}
		out = append(out, byte(b))
	}
	return out, nil
}

// findClosingQuote locates the unescaped closing quote of a name that starts
// with a quote at position 0. An escaped quote is preceded by an odd number
// of backslashes.
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		backslashes := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			backslashes++
		}
		if backslashes%2 == 1 {
			continue
		}
		return i
	}
	return -1
}

func unescapeString(s string) string {
	if !strings.Contains(s, Backslash) {
		return s
	}
	s = strings.ReplaceAll(s, EscapedBackslash, Backslash)
	s = strings.ReplaceAll(s, EscapedQuote, Quote)
	return s
}
