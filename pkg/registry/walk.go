package registry

import (
	"slices"

	"github.com/joshuapare/regkit/pkg/types"
)

// WalkEntry is one visited key: an unopened duplicate of the node plus its
// direct subkey and value names. In top-down walks the callback may trim
// Subkeys in place (or reassign the field) to prune which children are
// descended into; siblings already visited are unaffected.
type WalkEntry struct {
	Key     *Key
	Subkeys []string
	Values  []string
}

// WalkFunc is invoked once per visited key. Returning a non-nil error
// aborts the whole walk and surfaces that error from Walk.
type WalkFunc func(e *WalkEntry) error

// WalkOptions controls traversal. The zero value walks top-down without a
// depth limit.
type WalkOptions struct {
	// BottomUp yields a key after its children instead of before. Pruning
	// has no effect in bottom-up walks.
	BottomUp bool

	// MaxDepth bounds recursion below the start key: nil is unlimited, 0
	// visits only the start key, and a negative value fails the walk before
	// any traversal.
	MaxDepth *int

	// OnError receives non-lookup failures on a branch; the branch is
	// skipped either way. Lookup failures (a child vanished between
	// enumeration and descent) are skipped silently.
	OnError func(err error)
}

// DepthLimit is a convenience for populating WalkOptions.MaxDepth.
func DepthLimit(n int) *int { return &n }

// walkStop wraps a callback error so it aborts the traversal instead of
// being treated as a skippable branch failure.
type walkStop struct{ err error }

func (w *walkStop) Error() string { return w.err.Error() }

// Walk traverses the subtree rooted at this key, opening each visited key
// transiently to capture its subkey and value names. A lookup failure on a
// child skips that branch; other child failures are reported through
// OnError and skipped. Failure to open the start key aborts the walk.
func (k *Key) Walk(opts *WalkOptions, fn WalkFunc) error {
	if fn == nil {
		return &types.Error{Kind: types.ErrKindBadInput, Msg: "nil walk callback"}
	}
	cfg := walkConfig{maxDepth: -1}
	if opts != nil {
		cfg.bottomUp = opts.BottomUp
		cfg.onError = opts.OnError
		if opts.MaxDepth != nil {
			if *opts.MaxDepth < 0 {
				return &types.Error{Kind: types.ErrKindBadInput, Msg: "max depth must be >= 0"}
			}
			cfg.maxDepth = *opts.MaxDepth
		}
	}
	err := k.walk(cfg, fn, 0)
	if stop, ok := err.(*walkStop); ok {
		return stop.err
	}
	return err
}

type walkConfig struct {
	bottomUp bool
	maxDepth int // -1 = unlimited
	onError  func(err error)
}

func (k *Key) walk(cfg walkConfig, fn WalkFunc, depth int) error {
	opened, err := k.Open()
	if err != nil {
		return err
	}
	defer func() { _ = opened.Close() }()

	subkeys, err := opened.SubkeyNames()
	if err != nil {
		return err
	}
	values, err := opened.ValueNames()
	if err != nil {
		return err
	}
	entry := &WalkEntry{Key: opened.Dup(), Subkeys: subkeys, Values: values}

	if !cfg.bottomUp {
		if err := fn(entry); err != nil {
			return &walkStop{err: err}
		}
	}

	if cfg.maxDepth < 0 || depth < cfg.maxDepth {
		// Snapshot after the callback so pruning applies, while mutation
		// during descent cannot disturb the iteration itself.
		for _, name := range slices.Clone(entry.Subkeys) {
			child, subErr := opened.Subkey(name)
			if subErr != nil {
				continue
			}
			if walkErr := child.walk(cfg, fn, depth+1); walkErr != nil {
				if _, stop := walkErr.(*walkStop); stop {
					return walkErr
				}
				if types.IsNotFound(walkErr) {
					continue
				}
				if cfg.onError != nil {
					cfg.onError(walkErr)
				}
				continue
			}
		}
	}

	if cfg.bottomUp {
		if err := fn(entry); err != nil {
			return &walkStop{err: err}
		}
	}
	return nil
}
