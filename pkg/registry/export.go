package registry

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/joshuapare/regkit/pkg/types"
)

// Tree is the detached form of a subtree: nested child trees plus decoded
// values, keyed by name. The empty value name addresses the default value.
// Trees marshal cleanly to YAML for persistence and fixtures.
type Tree struct {
	Keys   map[string]*Tree `yaml:"keys,omitempty"`
	Values map[string]any   `yaml:"values,omitempty"`
}

// NewTree returns an empty tree with both maps allocated.
func NewTree() *Tree {
	return &Tree{Keys: map[string]*Tree{}, Values: map[string]any{}}
}

// EncodeYAML writes the tree as YAML.
func (t *Tree) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return err
	}
	return enc.Close()
}

// DecodeYAMLTree reads a tree from YAML.
func DecodeYAMLTree(r io.Reader) (*Tree, error) {
	var t Tree
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Export captures the subtree rooted at this key as a detached tree. Values
// are decoded to their natural Go types. The key is opened transiently and
// left as it was found.
func (k *Key) Export() (*Tree, error) {
	opened, err := k.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = opened.Close() }()

	t := NewTree()
	items, err := opened.Items()
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		decoded, err := Decode(it.Value)
		if err != nil {
			return nil, err
		}
		t.Values[it.Name] = decoded
	}

	children, err := opened.Subkeys()
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		sub, err := child.Export()
		if err != nil {
			return nil, err
		}
		t.Keys[child.Name()] = sub
	}
	return t, nil
}

// Import writes a detached tree into the subtree rooted at this key, creating
// the key and any descendants as needed. Value entries holding a types.Value
// are stored with that explicit type; everything else goes through Infer.
//
// With remove set, values and child keys present in the store but absent from
// the tree are deleted, making the subtree an exact mirror of the tree.
func (k *Key) Import(t *Tree, remove bool) error {
	if t == nil {
		return &types.Error{Kind: types.ErrKindBadInput, Msg: "nil tree"}
	}
	opened, err := k.Create()
	if err != nil {
		return err
	}
	defer func() { _ = opened.Close() }()

	for name, v := range t.Values {
		if err := opened.Set(name, v); err != nil {
			return fmt.Errorf("import value %q under %q: %w", name, k.Path(), err)
		}
	}
	for name, sub := range t.Keys {
		child, err := opened.Subkey(name)
		if err != nil {
			return err
		}
		if err := child.Import(sub, remove); err != nil {
			return err
		}
	}

	if remove {
		names, err := opened.ValueNames()
		if err != nil {
			return err
		}
		for _, name := range names {
			if _, ok := t.Values[name]; ok {
				continue
			}
			if err := opened.DeleteValue(name); err != nil {
				return err
			}
		}
		subkeys, err := opened.SubkeyNames()
		if err != nil {
			return err
		}
		for _, name := range subkeys {
			if _, ok := t.Keys[name]; ok {
				continue
			}
			child, err := opened.Subkey(name)
			if err != nil {
				return err
			}
			if err := child.Delete(DeleteOptions{Recursive: true, MissingOK: true}); err != nil {
				return err
			}
		}
	}
	return nil
}

// Dump writes an indented textual rendering of the subtree, one key or value
// per line, for debugging and golden tests.
func (k *Key) Dump(w io.Writer) error {
	return k.dump(w, 0)
}

func (k *Key) dump(w io.Writer, depth int) error {
	opened, err := k.Open()
	if err != nil {
		return err
	}
	defer func() { _ = opened.Close() }()

	indent := ""
	for i := 0; i < depth; i++ {
		indent += "  "
	}
	if _, err := fmt.Fprintf(w, "%s[%s]\n", indent, k.Name()); err != nil {
		return err
	}
	items, err := opened.Items()
	if err != nil {
		return err
	}
	for _, it := range items {
		decoded, err := Decode(it.Value)
		if err != nil {
			return err
		}
		name := it.Name
		if name == "" {
			name = "@"
		}
		if _, err := fmt.Fprintf(w, "%s  %s = %v (%s)\n", indent, name, decoded, it.Value.Type); err != nil {
			return err
		}
	}
	children, err := opened.Subkeys()
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := child.dump(w, depth+1); err != nil {
			return err
		}
	}
	return nil
}
