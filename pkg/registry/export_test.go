package registry

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

func seedExportFixture(t *testing.T, r *Registry) *Key {
	t.Helper()
	k, err := r.CurrentUser("Software", "MyApp")
	require.NoError(t, err)
	opened, err := k.Create()
	require.NoError(t, err)
	defer opened.Close()

	require.NoError(t, opened.Set("", "default text"))
	require.NoError(t, opened.Set("count", uint32(3)))
	require.NoError(t, opened.Set("list", []string{"a", "b"}))

	sub, err := opened.Subkey("Settings")
	require.NoError(t, err)
	so, err := sub.Create()
	require.NoError(t, err)
	defer so.Close()
	require.NoError(t, so.Set("theme", "dark"))
	return k
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestRegistry(t)
	k := seedExportFixture(t, src)

	tree, err := k.Export()
	require.NoError(t, err)
	assert.Equal(t, "default text", tree.Values[""])
	assert.Equal(t, uint32(3), tree.Values["count"])
	assert.Equal(t, []string{"a", "b"}, tree.Values["list"])
	require.Contains(t, tree.Keys, "Settings")
	assert.Equal(t, "dark", tree.Keys["Settings"].Values["theme"])

	// Import into a fresh registry and export again.
	dst := newTestRegistry(t)
	dk, err := dst.CurrentUser("Software", "MyApp")
	require.NoError(t, err)
	require.NoError(t, dk.Import(tree, false))

	tree2, err := dk.Export()
	require.NoError(t, err)
	assert.Equal(t, tree.Values, tree2.Values)
	require.Contains(t, tree2.Keys, "Settings")
	assert.Equal(t, tree.Keys["Settings"].Values, tree2.Keys["Settings"].Values)
}

func TestImportWithoutRemoveMerges(t *testing.T) {
	r := newTestRegistry(t)
	k := seedExportFixture(t, r)

	opened, err := k.OpenWrite()
	require.NoError(t, err)
	require.NoError(t, opened.Set("extra", "kept"))
	require.NoError(t, opened.Close())

	tree := NewTree()
	tree.Values["count"] = uint32(9)
	require.NoError(t, k.Import(tree, false))

	ro, err := k.Open()
	require.NoError(t, err)
	defer ro.Close()
	n, err := ro.GetDWORD("count")
	require.NoError(t, err)
	assert.Equal(t, uint32(9), n)
	s, err := ro.GetString("extra")
	require.NoError(t, err)
	assert.Equal(t, "kept", s)
}

func TestImportWithRemoveMirrors(t *testing.T) {
	r := newTestRegistry(t)
	k := seedExportFixture(t, r)

	tree := NewTree()
	tree.Values["only"] = "survivor"
	sub := NewTree()
	sub.Values["fresh"] = uint32(1)
	tree.Keys["New"] = sub

	require.NoError(t, k.Import(tree, true))

	opened, err := k.Open()
	require.NoError(t, err)
	defer opened.Close()

	names, err := opened.ValueNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, names)

	subkeys, err := opened.SubkeyNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"New"}, subkeys)

	settings, err := k.Subkey("Settings")
	require.NoError(t, err)
	exists, err := settings.Exists()
	require.NoError(t, err)
	assert.False(t, exists, "remove must delete subtrees absent from the tree")
}

func TestImportTypedValues(t *testing.T) {
	r := newTestRegistry(t)
	k, err := r.CurrentUser("Software", "MyApp")
	require.NoError(t, err)

	tree := NewTree()
	tree.Values["exp"] = ExpandString("%TEMP%")
	require.NoError(t, k.Import(tree, false))

	opened, err := k.Open()
	require.NoError(t, err)
	defer opened.Close()
	v, err := opened.GetValue("exp")
	require.NoError(t, err)
	assert.Equal(t, types.REG_EXPAND_SZ, v.Type)
}

func TestImportNilTree(t *testing.T) {
	r := newTestRegistry(t)
	k, err := r.CurrentUser("Software", "MyApp")
	require.NoError(t, err)
	require.Error(t, k.Import(nil, false))
}

func TestTreeYAMLRoundTrip(t *testing.T) {
	src := newTestRegistry(t)
	k := seedExportFixture(t, src)
	tree, err := k.Export()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tree.EncodeYAML(&buf))
	assert.Contains(t, buf.String(), "Settings")
	assert.Contains(t, buf.String(), "theme")

	decoded, err := DecodeYAMLTree(&buf)
	require.NoError(t, err)
	require.Contains(t, decoded.Keys, "Settings")
	assert.Equal(t, "dark", decoded.Keys["Settings"].Values["theme"])

	// A decoded tree imports cleanly; YAML widens integer types, which the
	// inference table absorbs.
	dst := newTestRegistry(t)
	dk, err := dst.CurrentUser("Software", "MyApp")
	require.NoError(t, err)
	require.NoError(t, dk.Import(decoded, false))
}

func TestDump(t *testing.T) {
	r := newTestRegistry(t)
	k := seedExportFixture(t, r)

	var buf bytes.Buffer
	require.NoError(t, k.Dump(&buf))
	out := buf.String()
	assert.Contains(t, out, "[MyApp]")
	assert.Contains(t, out, "@ = default text (REG_SZ)")
	assert.Contains(t, out, "count = 3 (REG_DWORD)")
	assert.Contains(t, out, "  [Settings]")
	assert.Contains(t, out, "theme = dark (REG_SZ)")
}
