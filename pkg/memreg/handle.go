package memreg

import "github.com/joshuapare/regkit/pkg/types"

// handle is the open-key token minted by Store. It carries the resolved
// full path and the access rights granted at open time. Closing flips a
// flag; a closed handle fails every store operation with an OS-class error.
type handle struct {
	path   string
	access types.Access
	closed bool
}

func (*handle) RegistryHandle() {}
