package regtext

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/internal/valcodec"
	"github.com/joshuapare/regkit/pkg/types"
)

const sample = "Windows Registry Editor Version 5.00\r\n" +
	"\r\n" +
	"[HKEY_CURRENT_USER\\Software\\MyApp]\r\n" +
	"@=\"default text\"\r\n" +
	"\"count\"=dword:00000003\r\n" +
	"\"blob\"=hex:01,02,ff\r\n" +
	"\"expand\"=hex(2):25,00,54,00,45,00,4d,00,50,00,25,00,00,00\r\n" +
	"\r\n" +
	"[-HKEY_CURRENT_USER\\Software\\Stale]\r\n" +
	"\r\n" +
	"[HKEY_CURRENT_USER\\Software\\MyApp\\Sub]\r\n" +
	"\"gone\"=-\r\n"

func TestParseSample(t *testing.T) {
	ops, err := Parse([]byte(sample), "")
	require.NoError(t, err)
	require.Len(t, ops, 8)

	assert.Equal(t, OpCreateKey{Path: `HKEY_CURRENT_USER\Software\MyApp`}, ops[0])

	set, ok := ops[1].(OpSetValue)
	require.True(t, ok)
	assert.Equal(t, "", set.Name)
	assert.Equal(t, types.REG_SZ, set.Value.Type)
	s, err := valcodec.DecodeString(set.Value.Data)
	require.NoError(t, err)
	assert.Equal(t, "default text", s)

	count, ok := ops[2].(OpSetValue)
	require.True(t, ok)
	assert.Equal(t, "count", count.Name)
	assert.Equal(t, types.REG_DWORD, count.Value.Type)
	n, err := valcodec.DecodeDWORD(count.Value.Data, false)
	require.NoError(t, err)
	assert.Equal(t, uint32(3), n)

	blob, ok := ops[3].(OpSetValue)
	require.True(t, ok)
	assert.Equal(t, types.REG_BINARY, blob.Value.Type)
	assert.Equal(t, []byte{0x01, 0x02, 0xff}, blob.Value.Data)

	expand, ok := ops[4].(OpSetValue)
	require.True(t, ok)
	assert.Equal(t, types.REG_EXPAND_SZ, expand.Value.Type)
	es, err := valcodec.DecodeString(expand.Value.Data)
	require.NoError(t, err)
	assert.Equal(t, "%TEMP%", es)

	assert.Equal(t, OpDeleteKey{Path: `HKEY_CURRENT_USER\Software\Stale`}, ops[5])
	assert.Equal(t, OpCreateKey{Path: `HKEY_CURRENT_USER\Software\MyApp\Sub`}, ops[6])
	assert.Equal(t, OpDeleteValue{Path: `HKEY_CURRENT_USER\Software\MyApp\Sub`, Name: "gone"}, ops[7])
}

func TestParseRequiresHeader(t *testing.T) {
	_, err := Parse([]byte("[HKEY_CURRENT_USER\\Software]\r\n"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")

	_, err = Parse(nil, "")
	require.Error(t, err)
}

func TestParseHexContinuation(t *testing.T) {
	text := RegFileHeader + "\r\n" +
		"[HKEY_CURRENT_USER\\Software\\MyApp]\r\n" +
		"\"blob\"=hex:01,02,\\\r\n" +
		"  03,04\r\n"
	ops, err := Parse([]byte(text), "")
	require.NoError(t, err)
	require.Len(t, ops, 2)
	set, ok := ops[1].(OpSetValue)
	require.True(t, ok)
	assert.Equal(t, []byte{1, 2, 3, 4}, set.Value.Data)
}

func TestParseEscapedNames(t *testing.T) {
	text := RegFileHeader + "\r\n" +
		"[HKEY_CURRENT_USER\\Software\\MyApp]\r\n" +
		"\"quoted \\\" name\"=\"a \\\\ b\"\r\n"
	ops, err := Parse([]byte(text), "")
	require.NoError(t, err)
	require.Len(t, ops, 2)
	set := ops[1].(OpSetValue)
	assert.Equal(t, `quoted " name`, set.Name)
	s, err := valcodec.DecodeString(set.Value.Data)
	require.NoError(t, err)
	assert.Equal(t, `a \ b`, s)
}

func TestParseQWORDHexType(t *testing.T) {
	text := RegFileHeader + "\r\n" +
		"[HKEY_CURRENT_USER\\Software\\MyApp]\r\n" +
		"\"big\"=hex(b):88,77,66,55,44,33,22,11\r\n"
	ops, err := Parse([]byte(text), "")
	require.NoError(t, err)
	set := ops[1].(OpSetValue)
	assert.Equal(t, types.REG_QWORD, set.Value.Type)
	n, err := valcodec.DecodeQWORD(set.Value.Data)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1122334455667788), n)
}

func TestParseValueOutsideSection(t *testing.T) {
	text := RegFileHeader + "\r\n" + "\"orphan\"=dword:00000001\r\n"
	_, err := Parse([]byte(text), "")
	require.Error(t, err)
}

func TestParseUTF16LEWithBOM(t *testing.T) {
	encoded, err := EncodeOutput(sample, EncodingUTF16LE, true)
	require.NoError(t, err)
	ops, err := Parse(encoded, "")
	require.NoError(t, err)
	assert.Len(t, ops, 8)
}

func TestParseDeclaredUTF16LE(t *testing.T) {
	encoded, err := EncodeOutput(sample, EncodingUTF16LE, false)
	require.NoError(t, err)
	ops, err := Parse(encoded, EncodingUTF16LE)
	require.NoError(t, err)
	assert.Len(t, ops, 8)
}

func TestEmitterRoundTrip(t *testing.T) {
	em := NewEmitter()
	em.BeginKey(`HKEY_CURRENT_USER\Software\MyApp`)

	sz, err := valcodec.EncodeString("hello")
	require.NoError(t, err)
	require.NoError(t, em.Value("", types.Value{Type: types.REG_SZ, Data: sz}))
	require.NoError(t, em.Value("count", types.Value{Type: types.REG_DWORD, Data: valcodec.EncodeDWORD(3)}))
	require.NoError(t, em.Value("blob", types.Value{Type: types.REG_BINARY, Data: []byte{0xde, 0xad}}))
	multi, err := valcodec.EncodeMulti([]string{"a", "b"})
	require.NoError(t, err)
	require.NoError(t, em.Value("list", types.Value{Type: types.REG_MULTI_SZ, Data: multi}))
	em.DeleteValue("old")
	em.DeleteKey(`HKEY_CURRENT_USER\Software\Stale`)

	text := em.String()
	assert.True(t, strings.HasPrefix(text, RegFileHeader))
	assert.Contains(t, text, "@=\"hello\"")
	assert.Contains(t, text, "\"count\"=dword:00000003")
	assert.Contains(t, text, "\"blob\"=hex:de,ad")
	assert.Contains(t, text, "\"list\"=hex(7):")
	assert.Contains(t, text, "\"old\"=-")
	assert.Contains(t, text, "[-HKEY_CURRENT_USER\\Software\\Stale]")

	ops, err := Parse([]byte(text), "")
	require.NoError(t, err)

	var names []string
	for _, op := range ops {
		if set, ok := op.(OpSetValue); ok {
			names = append(names, set.Name)
			if set.Name == "list" {
				assert.Equal(t, types.REG_MULTI_SZ, set.Value.Type)
				ss, err := valcodec.DecodeMulti(set.Value.Data)
				require.NoError(t, err)
				assert.Equal(t, []string{"a", "b"}, ss)
			}
		}
	}
	assert.Equal(t, []string{"", "count", "blob", "list"}, names)
}

func TestEncodeOutputUnsupported(t *testing.T) {
	_, err := EncodeOutput("x", "EBCDIC", false)
	assert.Error(t, err)
	_, err = DecodeInput([]byte("x"), "EBCDIC")
	assert.Error(t, err)
}
