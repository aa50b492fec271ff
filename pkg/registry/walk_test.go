package registry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/regkit/pkg/types"
)

// buildTree creates a small fixture:
//
//	MyApp
//	├── alpha
//	│   └── deep
//	├── beta
//	└── gamma
func buildTree(t *testing.T, r *Registry) *Key {
	t.Helper()
	k, err := r.CurrentUser("Software", "MyApp")
	require.NoError(t, err)
	for _, rel := range []string{`alpha\deep`, "beta", "gamma"} {
		sub, err := k.Subkey(rel)
		require.NoError(t, err)
		opened, err := sub.Create()
		require.NoError(t, err)
		require.NoError(t, opened.Set("tag", rel))
		require.NoError(t, opened.Close())
	}
	return k
}

func TestWalkTopDown(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	var visited []string
	err := k.Walk(nil, func(e *WalkEntry) error {
		visited = append(visited, e.Key.Name())
		assert.False(t, e.Key.IsOpen(), "entry key must be an unopened duplicate")
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"MyApp", "alpha", "deep", "beta", "gamma"}, visited)
}

func TestWalkBottomUp(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	var visited []string
	err := k.Walk(&WalkOptions{BottomUp: true}, func(e *WalkEntry) error {
		visited = append(visited, e.Key.Name())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"deep", "alpha", "beta", "gamma", "MyApp"}, visited)
}

func TestWalkMaxDepthZero(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	var visited []string
	err := k.Walk(&WalkOptions{MaxDepth: DepthLimit(0)}, func(e *WalkEntry) error {
		visited = append(visited, e.Key.Name())
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, e.Subkeys)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"MyApp"}, visited)
}

func TestWalkMaxDepthOne(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	var visited []string
	err := k.Walk(&WalkOptions{MaxDepth: DepthLimit(1)}, func(e *WalkEntry) error {
		visited = append(visited, e.Key.Name())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"MyApp", "alpha", "beta", "gamma"}, visited)
}

func TestWalkNegativeDepth(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	calls := 0
	err := k.Walk(&WalkOptions{MaxDepth: DepthLimit(-1)}, func(e *WalkEntry) error {
		calls++
		return nil
	})
	require.Error(t, err)
	var te *types.Error
	require.ErrorAs(t, err, &te)
	assert.Equal(t, types.ErrKindBadInput, te.Kind)
	assert.Zero(t, calls, "no key may be visited before validation fails")
}

func TestWalkPruning(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	var visited []string
	err := k.Walk(nil, func(e *WalkEntry) error {
		visited = append(visited, e.Key.Name())
		if e.Key.Name() == "MyApp" {
			// Drop alpha; its subtree must never be entered.
			pruned := e.Subkeys[:0]
			for _, name := range e.Subkeys {
				if name != "alpha" {
					pruned = append(pruned, name)
				}
			}
			e.Subkeys = pruned
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"MyApp", "beta", "gamma"}, visited)
}

func TestWalkCallbackErrorAborts(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	boom := errors.New("boom")
	var visited []string
	err := k.Walk(nil, func(e *WalkEntry) error {
		visited = append(visited, e.Key.Name())
		if e.Key.Name() == "alpha" {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"MyApp", "alpha"}, visited)
}

func TestWalkMissingStartKey(t *testing.T) {
	r := newTestRegistry(t)
	k, err := r.CurrentUser("Software", "Nothing")
	require.NoError(t, err)
	err = k.Walk(nil, func(e *WalkEntry) error { return nil })
	require.Error(t, err)
	assert.True(t, types.IsNotFound(err))
}

func TestWalkVanishedChildSkipped(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	var visited []string
	err := k.Walk(nil, func(e *WalkEntry) error {
		visited = append(visited, e.Key.Name())
		if e.Key.Name() == "MyApp" {
			// Remove beta between enumeration and descent.
			beta, err := k.Subkey("beta")
			require.NoError(t, err)
			require.NoError(t, beta.Delete(DeleteOptions{Recursive: true}))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"MyApp", "alpha", "deep", "gamma"}, visited)
}

func TestWalkValuesListed(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)

	err := k.Walk(nil, func(e *WalkEntry) error {
		if e.Key.Name() == "beta" {
			assert.Equal(t, []string{"tag"}, e.Values)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestWalkFromRoot(t *testing.T) {
	r := newTestRegistry(t)
	buildTree(t, r)

	root, err := r.CurrentUser()
	require.NoError(t, err)
	var visited []string
	err = root.Walk(nil, func(e *WalkEntry) error {
		visited = append(visited, e.Key.Name())
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"HKEY_CURRENT_USER", "Software", "MyApp", "alpha", "deep", "beta", "gamma"}, visited)
}

func TestWalkNilCallback(t *testing.T) {
	r := newTestRegistry(t)
	k := buildTree(t, r)
	err := k.Walk(nil, nil)
	require.Error(t, err)
}
