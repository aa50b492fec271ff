package registry

import (
	"github.com/joshuapare/regkit/internal/valcodec"
	"github.com/joshuapare/regkit/pkg/types"
)

// Value access requires an open key; every method here fails with
// ErrNotOpen otherwise. The empty name addresses the key's default value.

// Item is one named value as enumerated from a key.
type Item struct {
	Name  string
	Value types.Value
}

// SetValue stores a value with an explicit registry type.
func (k *Key) SetValue(name string, v types.Value) error {
	if err := k.ensureOpen(); err != nil {
		return err
	}
	return k.reg.backend.SetValue(k.handle, name, v)
}

// Set stores a value, inferring the registry type from the Go type via
// Infer. Pass a types.Value to pick the type explicitly.
func (k *Key) Set(name string, v any) error {
	tv, err := Infer(v)
	if err != nil {
		return err
	}
	return k.SetValue(name, tv)
}

// GetValue returns a named value with its type tag.
func (k *Key) GetValue(name string) (types.Value, error) {
	if err := k.ensureOpen(); err != nil {
		return types.Value{}, err
	}
	return k.reg.backend.QueryValue(k.handle, name)
}

// Get returns a named value decoded to its natural Go type.
func (k *Key) Get(name string) (any, error) {
	v, err := k.GetValue(name)
	if err != nil {
		return nil, err
	}
	return Decode(v)
}

// GetTyped returns a named value decoded alongside its registry type.
func (k *Key) GetTyped(name string) (any, types.RegType, error) {
	v, err := k.GetValue(name)
	if err != nil {
		return nil, 0, err
	}
	decoded, err := Decode(v)
	if err != nil {
		return nil, 0, err
	}
	return decoded, v.Type, nil
}

// GetDefault returns a named value decoded, or fallback when the value is
// absent. Other failures propagate.
func (k *Key) GetDefault(name string, fallback any) (any, error) {
	v, err := k.Get(name)
	if err != nil {
		if types.IsNotFound(err) {
			return fallback, nil
		}
		return nil, err
	}
	return v, nil
}

// GetString decodes a REG_SZ or REG_EXPAND_SZ value.
func (k *Key) GetString(name string) (string, error) {
	v, err := k.GetValue(name)
	if err != nil {
		return "", err
	}
	if !v.Type.IsString() {
		return "", types.ErrTypeMismatch
	}
	return valcodec.DecodeString(v.Data)
}

// GetStrings decodes a REG_MULTI_SZ value.
func (k *Key) GetStrings(name string) ([]string, error) {
	v, err := k.GetValue(name)
	if err != nil {
		return nil, err
	}
	if v.Type != types.REG_MULTI_SZ {
		return nil, types.ErrTypeMismatch
	}
	return valcodec.DecodeMulti(v.Data)
}

// GetDWORD decodes a REG_DWORD or REG_DWORD_BE value.
func (k *Key) GetDWORD(name string) (uint32, error) {
	v, err := k.GetValue(name)
	if err != nil {
		return 0, err
	}
	if v.Type != types.REG_DWORD && v.Type != types.REG_DWORD_BE {
		return 0, types.ErrTypeMismatch
	}
	return valcodec.DecodeDWORD(v.Data, v.Type == types.REG_DWORD_BE)
}

// GetQWORD decodes a REG_QWORD value.
func (k *Key) GetQWORD(name string) (uint64, error) {
	v, err := k.GetValue(name)
	if err != nil {
		return 0, err
	}
	if v.Type != types.REG_QWORD {
		return 0, types.ErrTypeMismatch
	}
	return valcodec.DecodeQWORD(v.Data)
}

// GetBytes returns the raw payload of a named value regardless of type.
// A nil payload comes back as an empty slice.
func (k *Key) GetBytes(name string) ([]byte, error) {
	v, err := k.GetValue(name)
	if err != nil {
		return nil, err
	}
	if v.Data == nil {
		return []byte{}, nil
	}
	return v.Data, nil
}

// DeleteValue removes a named value.
func (k *Key) DeleteValue(name string) error {
	if err := k.ensureOpen(); err != nil {
		return err
	}
	return k.reg.backend.DeleteValue(k.handle, name)
}

// Items enumerates all values in backend order: the default value first,
// the rest sorted by name.
func (k *Key) Items() ([]Item, error) {
	if err := k.ensureOpen(); err != nil {
		return nil, err
	}
	var items []Item
	for i := 0; ; i++ {
		name, v, err := k.reg.backend.EnumValue(k.handle, i)
		if err != nil {
			if types.IsNoMoreItems(err) {
				return items, nil
			}
			return nil, err
		}
		items = append(items, Item{Name: name, Value: v})
	}
}

// ValueNames returns the value names in enumeration order.
func (k *Key) ValueNames() ([]string, error) {
	items, err := k.Items()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, it := range items {
		names[i] = it.Name
	}
	return names, nil
}

// SubkeyNames returns the direct child key names in enumeration order.
func (k *Key) SubkeyNames() ([]string, error) {
	if err := k.ensureOpen(); err != nil {
		return nil, err
	}
	var names []string
	for i := 0; ; i++ {
		name, err := k.reg.backend.EnumSubkey(k.handle, i)
		if err != nil {
			if types.IsNoMoreItems(err) {
				return names, nil
			}
			return nil, err
		}
		names = append(names, name)
	}
}

// Subkeys returns unopened child keys, parented to this key so that while
// it stays open their resolution takes the one-hop fast path.
func (k *Key) Subkeys() ([]*Key, error) {
	names, err := k.SubkeyNames()
	if err != nil {
		return nil, err
	}
	keys := make([]*Key, 0, len(names))
	for _, name := range names {
		child, err := k.Subkey(name)
		if err != nil {
			return nil, err
		}
		keys = append(keys, child)
	}
	return keys, nil
}

// Info returns subkey/value counts and the last-write timestamp.
func (k *Key) Info() (types.KeyInfo, error) {
	if err := k.ensureOpen(); err != nil {
		return types.KeyInfo{}, err
	}
	return k.reg.backend.QueryInfo(k.handle)
}
