// Package regtext reads and writes the Windows Registry Editor version 5.00
// text format. Parse produces an ordered edit list; Emitter builds export
// text section by section. The package is pure text plumbing and never
// touches a store.
package regtext

const (
	// RegFileHeader is the required first line of a version 5.00 .reg file.
	RegFileHeader = "Windows Registry Editor Version 5.00"

	// KeyOpenBracket marks the start of a key section line.
	KeyOpenBracket = "["

	// KeyCloseBracket marks the end of a key section line.
	KeyCloseBracket = "]"

	// DeleteKeyPrefix inside a section marks the key for deletion.
	DeleteKeyPrefix = "-"

	// DefaultValuePrefix addresses the key's default value.
	DefaultValuePrefix = "@"

	// ValueAssignment separates a value name from its payload.
	ValueAssignment = "="

	// DeleteValueToken as a payload marks the value for deletion.
	DeleteValueToken = "-"

	// CommentPrefix starts a comment line.
	CommentPrefix = ";"

	// Quote delimits value names and string payloads.
	Quote = `"`

	// Backslash is the path separator and escape character.
	Backslash = `\`

	// EscapedBackslash and EscapedQuote are the two .reg escapes.
	EscapedBackslash = `\\`
	EscapedQuote     = `\"`

	// CRLF terminates every emitted line.
	CRLF = "\r\n"

	// DWORDPrefix identifies a dword payload.
	DWORDPrefix = "dword:"

	// HexPrefix identifies a binary payload; typed payloads use HexTypeFormat.
	HexPrefix = "hex:"

	// HexTypeFormat renders a typed hex prefix, e.g. hex(2): or hex(b):.
	HexTypeFormat = "hex(%x):"

	// HexByteSeparator separates bytes in a hex payload.
	HexByteSeparator = ","

	// DWORDHexLength is the digit count of a dword payload.
	DWORDHexLength = 8

	// EncodingUTF8 and EncodingUTF16LE name the supported text encodings.
	EncodingUTF8    = "UTF-8"
	EncodingUTF16LE = "UTF-16LE"
)

var (
	// UTF16LEBOM is the byte order mark of UTF-16LE text.
	UTF16LEBOM = []byte{0xFF, 0xFE}

	// UTF8BOM is the byte order mark of UTF-8 text.
	UTF8BOM = []byte{0xEF, 0xBB, 0xBF}
)
