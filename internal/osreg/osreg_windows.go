//go:build windows

// Package osreg adapts the live Windows registry to the backend contract.
// It is a thin translation layer: raw value payloads are decoded just far
// enough to drive the typed syscall wrappers, and OS error codes are mapped
// onto the shared error taxonomy.
package osreg

import (
	"errors"
	"fmt"
	"sort"
	"syscall"

	xreg "golang.org/x/sys/windows/registry"

	"github.com/joshuapare/regkit/internal/valcodec"
	"github.com/joshuapare/regkit/pkg/types"
)

// Backend implements types.Backend over golang.org/x/sys/windows/registry.
type Backend struct{}

// New returns a backend bound to the live registry of this machine.
func New() *Backend { return &Backend{} }

var _ types.Backend = (*Backend)(nil)

// handle wraps an open HKEY. A zero key means closed.
type handle struct {
	key xreg.Key
}

func (*handle) RegistryHandle() {}

// sysKey unwraps a handle to the underlying HKEY. Root tokens pass through
// unchanged since their numeric values are the OS pseudo-handles.
func (b *Backend) sysKey(h types.Handle) (xreg.Key, error) {
	switch t := h.(type) {
	case types.Root:
		if !t.Recognized() {
			return 0, types.ErrInvalidRoot
		}
		return xreg.Key(t), nil
	case *handle:
		if t.key == 0 {
			return 0, types.ErrHandleClosed
		}
		return t.key, nil
	default:
		return 0, &types.Error{Kind: types.ErrKindOS, Msg: fmt.Sprintf("foreign handle %T", h)}
	}
}

func (b *Backend) CreateKey(h types.Handle, subKey string, access types.Access) (types.Handle, error) {
	parent, err := b.sysKey(h)
	if err != nil {
		return nil, err
	}
	k, _, err := xreg.CreateKey(parent, subKey, uint32(access))
	if err != nil {
		return nil, mapErr(err)
	}
	return &handle{key: k}, nil
}

func (b *Backend) OpenKey(h types.Handle, subKey string, access types.Access) (types.Handle, error) {
	parent, err := b.sysKey(h)
	if err != nil {
		return nil, err
	}
	k, err := xreg.OpenKey(parent, subKey, uint32(access))
	if err != nil {
		return nil, mapErr(err)
	}
	return &handle{key: k}, nil
}

func (b *Backend) Close(h types.Handle) error {
	switch t := h.(type) {
	case types.Root:
		return nil
	case *handle:
		if t.key == 0 {
			return nil
		}
		k := t.key
		t.key = 0
		return mapErr(k.Close())
	default:
		return &types.Error{Kind: types.ErrKindOS, Msg: fmt.Sprintf("foreign handle %T", h)}
	}
}

// SetValue decodes the raw payload far enough to call the typed setter for
// the value's registry type. Types without a dedicated syscall wrapper
// (REG_NONE, REG_DWORD_BE and friends) are stored as binary.
func (b *Backend) SetValue(h types.Handle, name string, v types.Value) error {
	k, err := b.sysKey(h)
	if err != nil {
		return err
	}
	switch v.Type {
	case types.REG_SZ:
		s, err := valcodec.DecodeString(v.Data)
		if err != nil {
			return err
		}
		return mapErr(k.SetStringValue(name, s))
	case types.REG_EXPAND_SZ:
		s, err := valcodec.DecodeString(v.Data)
		if err != nil {
			return err
		}
		return mapErr(k.SetExpandStringValue(name, s))
	case types.REG_MULTI_SZ:
		ss, err := valcodec.DecodeMulti(v.Data)
		if err != nil {
			return err
		}
		return mapErr(k.SetStringsValue(name, ss))
	case types.REG_DWORD:
		n, err := valcodec.DecodeDWORD(v.Data, false)
		if err != nil {
			return err
		}
		return mapErr(k.SetDWordValue(name, n))
	case types.REG_QWORD:
		n, err := valcodec.DecodeQWORD(v.Data)
		if err != nil {
			return err
		}
		return mapErr(k.SetQWordValue(name, n))
	default:
		return mapErr(k.SetBinaryValue(name, v.Data))
	}
}

func (b *Backend) QueryValue(h types.Handle, name string) (types.Value, error) {
	k, err := b.sysKey(h)
	if err != nil {
		return types.Value{}, err
	}
	buf := make([]byte, 64)
	for {
		n, typ, err := k.GetValue(name, buf)
		if err == nil {
			return types.Value{Type: types.RegType(typ), Data: append([]byte(nil), buf[:n]...)}, nil
		}
		if errors.Is(err, syscall.ERROR_MORE_DATA) {
			buf = make([]byte, n)
			continue
		}
		return types.Value{}, mapErr(err)
	}
}

func (b *Backend) DeleteValue(h types.Handle, name string) error {
	k, err := b.sysKey(h)
	if err != nil {
		return err
	}
	return mapErr(k.DeleteValue(name))
}

func (b *Backend) DeleteKey(h types.Handle, subKey string) error {
	k, err := b.sysKey(h)
	if err != nil {
		return err
	}
	return mapErr(xreg.DeleteKey(k, subKey))
}

// EnumSubkey adapts index-based enumeration over ReadSubKeyNames. Names are
// re-read and re-sorted per call, trading speed for a stable order that
// matches the emulated store.
func (b *Backend) EnumSubkey(h types.Handle, i int) (string, error) {
	k, err := b.sysKey(h)
	if err != nil {
		return "", err
	}
	names, err := k.ReadSubKeyNames(-1)
	if err != nil {
		return "", mapErr(err)
	}
	sort.Strings(names)
	if i < 0 || i >= len(names) {
		return "", types.ErrNoMoreItems
	}
	return names[i], nil
}

// EnumValue adapts index-based enumeration over ReadValueNames, default
// value first then lexicographic.
func (b *Backend) EnumValue(h types.Handle, i int) (string, types.Value, error) {
	k, err := b.sysKey(h)
	if err != nil {
		return "", types.Value{}, err
	}
	names, err := k.ReadValueNames(-1)
	if err != nil {
		return "", types.Value{}, mapErr(err)
	}
	sort.Slice(names, func(a, b int) bool {
		if (names[a] == "") != (names[b] == "") {
			return names[a] == ""
		}
		return names[a] < names[b]
	})
	if i < 0 || i >= len(names) {
		return "", types.Value{}, types.ErrNoMoreItems
	}
	v, err := b.QueryValue(h, names[i])
	if err != nil {
		return "", types.Value{}, err
	}
	return names[i], v, nil
}

func (b *Backend) QueryInfo(h types.Handle) (types.KeyInfo, error) {
	k, err := b.sysKey(h)
	if err != nil {
		return types.KeyInfo{}, err
	}
	stat, err := k.Stat()
	if err != nil {
		return types.KeyInfo{}, mapErr(err)
	}
	return types.KeyInfo{
		SubkeyN:   int(stat.SubKeyCount),
		ValueN:    int(stat.ValueCount),
		LastWrite: types.FiletimeOf(stat.ModTime()),
	}, nil
}

// mapErr translates OS error codes into the shared taxonomy, wrapping so the
// original code stays reachable through errors.Is.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, xreg.ErrNotExist):
		return &types.Error{Kind: types.ErrKindNotFound, Msg: "registry: not found", Err: types.ErrNotFound}
	case errors.Is(err, syscall.ERROR_ACCESS_DENIED):
		return &types.Error{Kind: types.ErrKindPermission, Msg: "registry: access denied", Err: types.ErrAccessDenied}
	default:
		return &types.Error{Kind: types.ErrKindOS, Msg: "registry", Err: err}
	}
}
