package registry

import (
	"fmt"
	"strings"

	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
)

// RegExportOptions controls ExportReg output.
type RegExportOptions struct {
	// Encoding selects the output text encoding: "UTF-8" (default) or
	// "UTF-16LE".
	Encoding string
	// WithBOM prefixes a byte order mark.
	WithBOM bool
}

// RegParseOptions controls ImportReg input handling.
type RegParseOptions struct {
	// InputEncoding declares the text encoding when no BOM is present:
	// "UTF-8" (default) or "UTF-16LE". A BOM always wins.
	InputEncoding string
}

// ExportReg renders the subtree rooted at this key as Windows Registry
// Editor version 5.00 text. Section paths are canonical, so the output
// imports cleanly regardless of the alias the key was built with.
func (k *Key) ExportReg(opts RegExportOptions) ([]byte, error) {
	em := regtext.NewEmitter()
	if err := k.exportRegKey(em); err != nil {
		return nil, err
	}
	return em.Bytes(opts.Encoding, opts.WithBOM)
}

func (k *Key) exportRegKey(em *regtext.Emitter) error {
	opened, err := k.Open()
	if err != nil {
		return err
	}
	defer func() { _ = opened.Close() }()

	em.BeginKey(k.CanonicalPath())
	items, err := opened.Items()
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := em.Value(it.Name, it.Value); err != nil {
			return err
		}
	}
	children, err := opened.Subkeys()
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := child.exportRegKey(em); err != nil {
			return err
		}
	}
	return nil
}

// ImportReg applies .reg text to the registry: sections create keys, value
// lines set values, [-path] sections delete subtrees and "name"=- lines
// delete values. Edits apply in file order; the first failure aborts with
// the remaining edits unapplied.
func (r *Registry) ImportReg(data []byte, opts RegParseOptions) error {
	ops, err := regtext.Parse(data, opts.InputEncoding)
	if err != nil {
		return err
	}
	// Handles for sections already created this import, so value edits
	// reuse them instead of reopening per line.
	open := make(map[string]*Key)
	defer func() {
		for _, k := range open {
			_ = k.Close()
		}
	}()

	section := func(path string) (*Key, error) {
		if k, ok := open[path]; ok {
			return k, nil
		}
		key, err := r.FromPath(path)
		if err != nil {
			return nil, err
		}
		opened, err := key.Create()
		if err != nil {
			return nil, err
		}
		open[path] = opened
		return opened, nil
	}

	for _, op := range ops {
		switch op := op.(type) {
		case regtext.OpCreateKey:
			if _, err := section(op.Path); err != nil {
				return fmt.Errorf("import key %q: %w", op.Path, err)
			}
		case regtext.OpSetValue:
			k, err := section(op.Path)
			if err != nil {
				return fmt.Errorf("import key %q: %w", op.Path, err)
			}
			if err := k.SetValue(op.Name, op.Value); err != nil {
				return fmt.Errorf("import value %q under %q: %w", op.Name, op.Path, err)
			}
		case regtext.OpDeleteValue:
			k, err := section(op.Path)
			if err != nil {
				return fmt.Errorf("import key %q: %w", op.Path, err)
			}
			if err := k.DeleteValue(op.Name); err != nil && !types.IsNotFound(err) {
				return fmt.Errorf("delete value %q under %q: %w", op.Name, op.Path, err)
			}
		case regtext.OpDeleteKey:
			for path, k := range open {
				if path == op.Path || strings.HasPrefix(path, op.Path+sep) {
					_ = k.Close()
					delete(open, path)
				}
			}
			key, err := r.FromPath(op.Path)
			if err != nil {
				return fmt.Errorf("delete key %q: %w", op.Path, err)
			}
			if err := key.Delete(DeleteOptions{Recursive: true, MissingOK: true}); err != nil {
				return fmt.Errorf("delete key %q: %w", op.Path, err)
			}
		}
	}
	return nil
}
