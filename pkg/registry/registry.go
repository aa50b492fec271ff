package registry

import (
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// Registry binds the key-node layer to a concrete backend. It carries no
// mutable state of its own; root keys are minted fresh on every call.
type Registry struct {
	backend types.Backend
}

// New returns a Registry over the given backend.
func New(b types.Backend) *Registry {
	return &Registry{backend: b}
}

// Backend returns the store this registry operates on.
func (r *Registry) Backend() types.Backend { return r.backend }

// rootNode mints an unopened root key. Root keys are perpetually open in the
// sense that their handle is the root token itself.
func (r *Registry) rootNode(root types.Root, display string) *Key {
	return &Key{reg: r, root: root, name: display, handle: root}
}

// RootKey returns a key for the given root token, optionally navigated to a
// descendant. The key is not opened.
func (r *Registry) RootKey(root types.Root, sub ...string) (*Key, error) {
	return r.rootNode(root, root.String()).Subkey(sub...)
}

// ClassesRoot returns a key under HKEY_CLASSES_ROOT.
func (r *Registry) ClassesRoot(sub ...string) (*Key, error) {
	return r.RootKey(types.HKEY_CLASSES_ROOT, sub...)
}

// CurrentUser returns a key under HKEY_CURRENT_USER.
func (r *Registry) CurrentUser(sub ...string) (*Key, error) {
	return r.RootKey(types.HKEY_CURRENT_USER, sub...)
}

// LocalMachine returns a key under HKEY_LOCAL_MACHINE.
func (r *Registry) LocalMachine(sub ...string) (*Key, error) {
	return r.RootKey(types.HKEY_LOCAL_MACHINE, sub...)
}

// Users returns a key under HKEY_USERS.
func (r *Registry) Users(sub ...string) (*Key, error) {
	return r.RootKey(types.HKEY_USERS, sub...)
}

// CurrentConfig returns a key under HKEY_CURRENT_CONFIG.
func (r *Registry) CurrentConfig(sub ...string) (*Key, error) {
	return r.RootKey(types.HKEY_CURRENT_CONFIG, sub...)
}

// FromParts builds a key from explicit path parts. The first part must be a
// root token (long name or short alias, any case); the spelling used is
// preserved for display, while identity comparisons normalize it.
func (r *Registry) FromParts(parts ...string) (*Key, error) {
	if len(parts) == 0 {
		return nil, &types.Error{Kind: types.ErrKindBadInput, Msg: "parts cannot be empty"}
	}
	root, err := types.ParseRoot(parts[0])
	if err != nil {
		return nil, err
	}
	display := strings.ToUpper(strings.TrimSpace(parts[0]))
	return r.rootNode(root, display).Subkey(parts[1:]...)
}

// FromPath builds a key from a full path string such as
// "HKEY_CURRENT_USER\\Software\\MyApp" or "HKCU/Software/MyApp". Either
// separator is accepted; empty segments are discarded.
func (r *Registry) FromPath(path string) (*Key, error) {
	parts := splitParts(strings.TrimSpace(path))
	if len(parts) == 0 {
		return nil, &types.Error{Kind: types.ErrKindBadInput, Msg: "path cannot be empty"}
	}
	return r.FromParts(parts...)
}
