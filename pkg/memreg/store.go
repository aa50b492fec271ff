package memreg

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/joshuapare/regkit/pkg/types"
)

const sep = `\`

// keyRecord holds one key's values ("" is the default value) and its
// last-modified time, kept at nanosecond precision and exposed through
// QueryInfo in FILETIME units.
type keyRecord struct {
	values   map[string]types.Value
	modified time.Time
}

// Store is the in-memory backend: a map from full case-sensitive key path
// (canonical root name, backslash-joined segments) to its record.
//
// A mutex makes each individual operation atomic; there is no cross-operation
// transactionality, and enumeration recomputes from live state per index, so
// structural changes during an enumeration loop can skip or repeat entries.
//
// Mutations touch only the immediate parent's timestamp; updates are not
// bubbled further up the tree.
type Store struct {
	mu   sync.Mutex
	keys map[string]*keyRecord
	last time.Time // floor for the next timestamp, keeps FILETIMEs strictly increasing
}

// New returns an empty store.
func New() *Store {
	return &Store{keys: make(map[string]*keyRecord)}
}

// Reset discards every key and value.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[string]*keyRecord)
}

// Has reports whether the full path has been created. Intended for tests.
func (s *Store) Has(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.keys[path]
	return ok
}

// now returns a wall-clock timestamp at least one FILETIME unit (100ns)
// after the previous one, so successive touches remain distinguishable
// after conversion.
func (s *Store) now() time.Time {
	t := time.Now()
	if floor := s.last.Add(100 * time.Nanosecond); t.Before(floor) {
		t = floor
	}
	s.last = t
	return t
}

// record returns the entry for path, creating an empty one on first
// reference (auto-vivification, matching the native store's behavior for
// paths reached through a live handle).
func (s *Store) record(path string) *keyRecord {
	rec, ok := s.keys[path]
	if !ok {
		rec = &keyRecord{values: make(map[string]types.Value), modified: s.now()}
		s.keys[path] = rec
	}
	return rec
}

func (s *Store) touch(rec *keyRecord) {
	rec.modified = s.now()
}

// resolve validates h and returns its full path, granted access, and
// whether it is a root token. Roots carry full access implicitly.
func (s *Store) resolve(h types.Handle) (string, types.Access, bool, error) {
	switch t := h.(type) {
	case types.Root:
		if !t.Recognized() {
			return "", 0, false, types.ErrInvalidRoot
		}
		return t.String(), types.KEY_ALL_ACCESS, true, nil
	case *handle:
		if t.closed {
			return "", 0, false, types.ErrHandleClosed
		}
		return t.path, t.access, false, nil
	default:
		return "", 0, false, &types.Error{Kind: types.ErrKindOS, Msg: "handle not minted by this store"}
	}
}

// fullName joins h's path with subKey. A non-root handle requires a
// non-empty subKey, mirroring the native API contract.
func (s *Store) fullName(h types.Handle, subKey string) (string, error) {
	base, _, isRoot, err := s.resolve(h)
	if err != nil {
		return "", err
	}
	if subKey == "" {
		if !isRoot {
			return "", &types.Error{Kind: types.ErrKindOS, Msg: "subkey must be provided for a non-root handle"}
		}
		return base, nil
	}
	return base + sep + subKey, nil
}

func parentPath(path string) (string, bool) {
	i := strings.LastIndex(path, sep)
	if i < 0 {
		return "", false
	}
	return path[:i], true
}

// childNames returns the direct child names of path, unsorted.
func (s *Store) childNames(path string) []string {
	prefix := path + sep
	var names []string
	for k := range s.keys {
		rest, ok := strings.CutPrefix(k, prefix)
		if ok && !strings.Contains(rest, sep) {
			names = append(names, rest)
		}
	}
	return names
}

func (s *Store) hasChildren(path string) bool {
	prefix := path + sep
	for k := range s.keys {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// CreateKey auto-vivifies every ancestor segment and the key itself, then
// touches the immediate parent. It is idempotent and returns a handle with
// the requested access.
func (s *Store) CreateKey(h types.Handle, subKey string, access types.Access) (types.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, granted, isRoot, err := s.resolve(h); err != nil {
		return nil, err
	} else if !isRoot && !granted.Has(types.KEY_CREATE_SUB_KEY) {
		return nil, types.ErrAccessDenied
	}
	full, err := s.fullName(h, subKey)
	if err != nil {
		return nil, err
	}
	parts := strings.Split(full, sep)
	for i := 1; i <= len(parts); i++ {
		s.record(strings.Join(parts[:i], sep))
	}
	if parent, ok := parentPath(full); ok {
		if rec, exists := s.keys[parent]; exists {
			s.touch(rec)
		}
	}
	return &handle{path: full, access: access}, nil
}

// OpenKey fails with a not-found error when the path was never created.
func (s *Store) OpenKey(h types.Handle, subKey string, access types.Access) (types.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	full, err := s.fullName(h, subKey)
	if err != nil {
		return nil, err
	}
	if _, ok := s.keys[full]; !ok {
		return nil, &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("key %q not found", full), Err: types.ErrNotFound}
	}
	return &handle{path: full, access: access}, nil
}

// Close invalidates h. Roots and already-closed handles are no-ops.
func (s *Store) Close(h types.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch t := h.(type) {
	case types.Root:
		return nil
	case *handle:
		t.closed = true
		return nil
	default:
		return &types.Error{Kind: types.ErrKindOS, Msg: "handle not minted by this store"}
	}
}

// SetValue stores a named value and touches the key. The default value
// (empty name) must carry a string type.
func (s *Store) SetValue(h types.Handle, name string, v types.Value) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, granted, isRoot, err := s.resolve(h)
	if err != nil {
		return err
	}
	if !isRoot && !granted.Has(types.KEY_SET_VALUE) {
		return types.ErrAccessDenied
	}
	if name == "" && !v.Type.IsString() {
		return &types.Error{Kind: types.ErrKindBadInput, Msg: "default value must be a string"}
	}
	rec := s.record(path)
	rec.values[name] = v.Clone()
	s.touch(rec)
	return nil
}

// QueryValue returns a named value, or a not-found error if absent.
func (s *Store) QueryValue(h types.Handle, name string) (types.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, granted, isRoot, err := s.resolve(h)
	if err != nil {
		return types.Value{}, err
	}
	if !isRoot && !granted.Has(types.KEY_QUERY_VALUE) {
		return types.Value{}, types.ErrAccessDenied
	}
	rec := s.record(path)
	v, ok := rec.values[name]
	if !ok {
		return types.Value{}, &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("value %q not found", name), Err: types.ErrNotFound}
	}
	return v.Clone(), nil
}

// DeleteValue removes a named value and touches the key.
func (s *Store) DeleteValue(h types.Handle, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, granted, isRoot, err := s.resolve(h)
	if err != nil {
		return err
	}
	if !isRoot && !granted.Has(types.KEY_SET_VALUE) {
		return types.ErrAccessDenied
	}
	rec := s.record(path)
	if _, ok := rec.values[name]; !ok {
		return &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("value %q not found", name), Err: types.ErrNotFound}
	}
	delete(rec.values, name)
	s.touch(rec)
	return nil
}

// DeleteKey removes the direct child subKey of h. A child that still has
// children of its own fails with a permission error; recursion is the
// caller's responsibility. The parent's timestamp is touched.
func (s *Store) DeleteKey(h types.Handle, subKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	full, err := s.fullName(h, subKey)
	if err != nil {
		return err
	}
	if s.hasChildren(full) {
		return &types.Error{Kind: types.ErrKindPermission, Msg: "cannot delete a key that has subkeys", Err: types.ErrAccessDenied}
	}
	if _, ok := s.keys[full]; !ok {
		return &types.Error{Kind: types.ErrKindNotFound, Msg: fmt.Sprintf("key %q not found", full), Err: types.ErrNotFound}
	}
	delete(s.keys, full)
	if parent, ok := parentPath(full); ok {
		if rec, exists := s.keys[parent]; exists {
			s.touch(rec)
		}
	}
	return nil
}

// EnumSubkey returns the i-th direct child name in lexicographic order,
// or ErrNoMoreItems once i passes the count.
func (s *Store) EnumSubkey(h types.Handle, i int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, granted, isRoot, err := s.resolve(h)
	if err != nil {
		return "", err
	}
	if !isRoot && !granted.Has(types.KEY_ENUMERATE_SUB_KEYS) {
		return "", types.ErrAccessDenied
	}
	names := s.childNames(path)
	sort.Strings(names)
	if i < 0 || i >= len(names) {
		return "", types.ErrNoMoreItems
	}
	return names[i], nil
}

// EnumValue returns the i-th (name, value) pair, the default value first and
// the rest in lexicographic order, or ErrNoMoreItems once i passes the count.
func (s *Store) EnumValue(h types.Handle, i int) (string, types.Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, granted, isRoot, err := s.resolve(h)
	if err != nil {
		return "", types.Value{}, err
	}
	if !isRoot && !granted.Has(types.KEY_QUERY_VALUE) {
		return "", types.Value{}, types.ErrAccessDenied
	}
	rec := s.record(path)
	names := make([]string, 0, len(rec.values))
	for n := range rec.values {
		names = append(names, n)
	}
	sort.Slice(names, func(a, b int) bool {
		if names[a] == "" || names[b] == "" {
			return names[a] == ""
		}
		return names[a] < names[b]
	})
	if i < 0 || i >= len(names) {
		return "", types.Value{}, types.ErrNoMoreItems
	}
	return names[i], rec.values[names[i]].Clone(), nil
}

// QueryInfo returns subkey/value counts and the last-write FILETIME.
func (s *Store) QueryInfo(h types.Handle) (types.KeyInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, granted, isRoot, err := s.resolve(h)
	if err != nil {
		return types.KeyInfo{}, err
	}
	if !isRoot && !granted.Has(types.KEY_QUERY_VALUE|types.KEY_ENUMERATE_SUB_KEYS) {
		return types.KeyInfo{}, types.ErrAccessDenied
	}
	rec := s.record(path)
	return types.KeyInfo{
		SubkeyN:   len(s.childNames(path)),
		ValueN:    len(rec.values),
		LastWrite: types.FiletimeOf(rec.modified),
	}, nil
}

var _ types.Backend = (*Store)(nil)
