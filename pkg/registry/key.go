package registry

import (
	"fmt"
	"strings"

	"github.com/joshuapare/regkit/pkg/types"
)

// Key is a lazy, possibly-unopened description of a registry tree position:
// a parent link (another Key, or a root token for root nodes), a relative
// name that may span several path segments, and an optional live handle.
//
// Keys are cheap to construct and join; the store is only contacted by the
// explicit open/create/delete operations and the value accessors.
type Key struct {
	reg    *Registry
	parent *Key         // nil for root nodes
	root   types.Root   // set on root nodes only
	name   string       // relative name, possibly multi-segment; display name for roots
	handle types.Handle // nil while closed; the root token itself for roots
}

// OpenOptions controls how Open acquires a handle.
type OpenOptions struct {
	// Create creates the key (and any missing ancestors) if it does not
	// exist. Create implies Write.
	Create bool
	// Write requests write access in addition to read.
	Write bool
}

// DeleteOptions controls Delete behavior.
type DeleteOptions struct {
	// Recursive deletes the whole subtree, deepest keys first. Without it,
	// deleting a key that has children fails with a permission error.
	Recursive bool
	// MissingOK turns deletion of an absent key into a no-op.
	MissingOK bool
}

// Subkey returns a descendant key by relative path parts. Parts may contain
// separators; empty parts are rejected. With no parts it returns Dup.
// Pure navigation: the store is not contacted.
func (k *Key) Subkey(parts ...string) (*Key, error) {
	if len(parts) == 0 {
		return k.Dup(), nil
	}
	for _, p := range parts {
		if p == "" {
			return nil, &types.Error{Kind: types.ErrKindBadInput, Msg: "key names cannot be empty"}
		}
	}
	return &Key{reg: k.reg, parent: k, name: joinNames(parts...)}, nil
}

// Joinpath is an alias for Subkey.
func (k *Key) Joinpath(parts ...string) (*Key, error) { return k.Subkey(parts...) }

// Dup returns a new, unopened copy of this key. Root keys keep their
// perpetual root handle.
func (k *Key) Dup() *Key {
	d := &Key{reg: k.reg, parent: k.parent, root: k.root, name: k.name}
	if k.IsRoot() {
		d.handle = k.handle
	}
	return d
}

// Name returns the final lexical path part of this key.
func (k *Key) Name() string {
	parts := splitParts(k.name)
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// IsRoot reports whether this key is a registry root.
func (k *Key) IsRoot() bool { return k.parent == nil }

// IsOpen reports whether this key holds a live handle. Root keys are always
// open.
func (k *Key) IsOpen() bool { return k.handle != nil }

// Handle returns the live backend handle, or ErrNotOpen.
func (k *Key) Handle() (types.Handle, error) {
	if k.handle == nil {
		return nil, types.ErrNotOpen
	}
	return k.handle, nil
}

// resolve returns a (handle, relative-path) pair for backend calls. When the
// immediate parent is open its live handle is spliced with this key's own
// name — the one-hop fast path. Otherwise resolution recurses upward,
// joining relative names until an open ancestor (at worst the root token)
// is found.
func (k *Key) resolve() (types.Handle, string) {
	if k.parent == nil {
		return k.root, ""
	}
	if k.parent.IsOpen() {
		return k.parent.handle, k.name
	}
	h, n := k.parent.resolve()
	return h, joinNames(n, k.name)
}

// resolveFull joins the full display path from the root token downward,
// ignoring any intermediate open state, so identity is stable as keys open
// and close.
func (k *Key) resolveFull() (types.Root, string) {
	if k.parent == nil {
		return k.root, k.name
	}
	r, n := k.parent.resolveFull()
	return r, joinNames(n, k.name)
}

// Path returns the full path as spelled at construction time, e.g.
// "HKCU\\Software\\MyApp".
func (k *Key) Path() string {
	_, n := k.resolveFull()
	return n
}

// CanonicalPath returns the full path with the root normalized to its
// canonical long name, e.g. "HKEY_CURRENT_USER\\Software\\MyApp".
func (k *Key) CanonicalPath() string {
	root, name := k.resolveFull()
	parts := splitParts(name)
	if len(parts) > 0 {
		parts = parts[1:]
	}
	if len(parts) == 0 {
		return root.String()
	}
	return root.String() + sep + strings.Join(parts, sep)
}

// CanonicalParts returns the canonical path split into segments.
func (k *Key) CanonicalParts() []string { return splitParts(k.CanonicalPath()) }

// Parts returns the display path segments, root token included.
func (k *Key) Parts() []string { return splitParts(k.Path()) }

// ID returns the case-folded canonical path. Two keys naming the same
// logical position have equal IDs regardless of root alias or case, so IDs
// serve as map keys and sort keys.
func (k *Key) ID() string { return strings.ToLower(k.CanonicalPath()) }

// Equal reports whether both keys name the same logical position.
func (k *Key) Equal(other *Key) bool {
	return other != nil && k.ID() == other.ID()
}

// Compare orders keys by their canonical, case-folded paths.
func (k *Key) Compare(other *Key) int {
	return strings.Compare(k.ID(), other.ID())
}

func (k *Key) String() string { return k.Path() }

// Parent returns the lexical parent key (one path segment up), computed
// without store access. Root keys have no parent.
func (k *Key) Parent() *Key {
	parts := splitParts(k.name)
	if k.parent == nil {
		return nil
	}
	if len(parts) <= 1 {
		return k.parent.Dup()
	}
	return &Key{reg: k.reg, parent: k.parent, name: joinNames(parts[:len(parts)-1]...)}
}

// Parents returns the lexical ancestors from the immediate parent up to and
// including the root.
func (k *Key) Parents() []*Key {
	var out []*Key
	for cur := k.Parent(); cur != nil; cur = cur.Parent() {
		out = append(out, cur)
	}
	return out
}

// OpenHandle opens this key in place. It is the low-level primitive behind
// Open and Create; most callers want those instead, which leave the
// receiver untouched.
//
// Access is read-only unless write is set; create implies write. A backend
// not-found result surfaces as a lookup error naming the key.
func (k *Key) OpenHandle(create, write bool) error {
	if k.IsOpen() {
		return types.ErrAlreadyOpen
	}
	access := types.KEY_READ
	if create || write {
		access |= types.KEY_WRITE
	}
	h, name := k.resolve()

	var (
		opened types.Handle
		err    error
	)
	if create {
		opened, err = k.reg.backend.CreateKey(h, name, access)
	} else {
		opened, err = k.reg.backend.OpenKey(h, name, access)
	}
	if err != nil {
		if types.IsNotFound(err) {
			return &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("key %q not found", k.Path()), Err: err}
		}
		return err
	}
	k.handle = opened
	return nil
}

// OpenWith navigates to a descendant (per Subkey) and opens that copy,
// leaving the receiver untouched. Root keys are perpetually open, so a root
// destination is returned as-is.
func (k *Key) OpenWith(opts OpenOptions, sub ...string) (*Key, error) {
	key, err := k.Subkey(sub...)
	if err != nil {
		return nil, err
	}
	if key.IsRoot() {
		return key, nil
	}
	if err := key.OpenHandle(opts.Create, opts.Write); err != nil {
		return nil, err
	}
	return key, nil
}

// Open returns a new key opened read-only.
func (k *Key) Open(sub ...string) (*Key, error) {
	return k.OpenWith(OpenOptions{}, sub...)
}

// OpenWrite returns a new key opened for reading and writing.
func (k *Key) OpenWrite(sub ...string) (*Key, error) {
	return k.OpenWith(OpenOptions{Write: true}, sub...)
}

// Create returns a new key opened for writing, created if necessary.
func (k *Key) Create(sub ...string) (*Key, error) {
	return k.OpenWith(OpenOptions{Create: true, Write: true}, sub...)
}

// Exists reports whether the key exists, probing with a transient
// open/close cycle when it is not already open. Lookup failure means false;
// any other failure propagates.
func (k *Key) Exists() (bool, error) {
	if k.IsOpen() {
		return true, nil
	}
	if err := k.OpenHandle(false, false); err != nil {
		if types.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, k.Close()
}

// Close releases the handle. Closing an unopened key or a root is a no-op.
func (k *Key) Close() error {
	if !k.IsOpen() || k.IsRoot() {
		return nil
	}
	h := k.handle
	k.handle = nil
	return k.reg.backend.Close(h)
}

// Delete removes the key. The key must not be held open by this node, and
// roots cannot be deleted. With Recursive, every child is deleted first,
// deepest keys first, layering tree semantics over the backend's
// non-recursive delete.
func (k *Key) Delete(opts DeleteOptions) error {
	if k.IsRoot() {
		return &types.Error{Kind: types.ErrKindBadInput, Msg: "cannot delete a root key"}
	}
	if k.IsOpen() {
		return &types.Error{Kind: types.ErrKindState, Msg: "cannot delete an open key"}
	}
	exists, err := k.Exists()
	if err != nil {
		return err
	}
	if !exists {
		if opts.MissingOK {
			return nil
		}
		return &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("key %q not found", k.Path()), Err: types.ErrNotFound}
	}

	if opts.Recursive {
		if err := k.deleteChildren(); err != nil {
			return err
		}
	}
	h, name := k.resolve()
	if err := k.reg.backend.DeleteKey(h, name); err != nil {
		if opts.MissingOK && types.IsNotFound(err) {
			return nil
		}
		return err
	}
	return nil
}

// deleteChildren removes every direct child subtree, holding a transient
// handle on this key so child resolution takes the fast path.
func (k *Key) deleteChildren() error {
	opened, err := k.Open()
	if err != nil {
		return err
	}
	defer func() { _ = opened.Close() }()

	children, err := opened.Subkeys()
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := child.Delete(DeleteOptions{Recursive: true, MissingOK: true}); err != nil {
			return err
		}
	}
	return nil
}

// ensureOpen guards the operations that require a live handle.
func (k *Key) ensureOpen() error {
	if !k.IsOpen() {
		return types.ErrNotOpen
	}
	return nil
}
