// Package registry provides object-oriented navigation over a hierarchical
// registry store. Keys are lazy descriptions of tree positions: constructing
// and joining them touches no backend state, and a key resolves itself
// through its parent chain on demand, splicing in the nearest open ancestor's
// handle when one exists.
//
// A Registry binds the navigation layer to a types.Backend — the in-memory
// emulation (pkg/memreg) or, on Windows, the native store:
//
//	reg := registry.New(memreg.New())
//	key, err := reg.CurrentUser("Software", "MyApp")
//	opened, err := key.Create()
//	defer opened.Close()
//	err = opened.Set("count", 3)
//
// Every open pairs with a Close; Close is idempotent and a no-op on root
// keys, whose handles are perpetual root tokens rather than owned resources.
package registry
