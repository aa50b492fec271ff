package regtext

import "github.com/joshuapare/regkit/pkg/types"

// Op is one edit described by a .reg file, applied in file order.
type Op interface{ regOp() }

// OpCreateKey ensures a key exists.
type OpCreateKey struct {
	Path string
}

// OpDeleteKey removes a key and its subtree ([-path] section form).
type OpDeleteKey struct {
	Path string
}

// OpSetValue stores one value under a key.
type OpSetValue struct {
	Path  string
	Name  string
	Value types.Value
}

// OpDeleteValue removes one value ("name"=- form).
type OpDeleteValue struct {
	Path string
	Name string
}

func (OpCreateKey) regOp()  {}
func (OpDeleteKey) regOp()  {}
func (OpSetValue) regOp()   {}
func (OpDeleteValue) regOp() {}
