package ffi

import (
	"strconv"

	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/types"
)

const stringName = "string"

// pointer resolves every pointer form to a C pointer. Only const byte
// pointers with a 0 sentinel become host strings; all others are handles.
func (r *resolver) pointer(n *ast.PointerType, path []string) *types.Descriptor {
	child := r.resolve(n.Elem, extend(path, "*"))
	if child == nil {
		return nil
	}

	shape := &types.Shape{
		Kind:           types.ShapePointer,
		Child:          child.ABI,
		Const:          n.Const,
		Volatile:       n.Volatile,
		NullTerminated: zeroSentinel(n.Sentinel),
		PtrSize:        types.PtrC,
	}

	host, name := types.HostHandle, unknownName
	if shape.IsString() {
		host, name = types.HostString, stringName
	}

	return &types.Descriptor{
		Name: r.name(name),
		Host: r.intern(&types.HostType{Kind: host}),
		ABI:  shape,
	}
}

func zeroSentinel(lit *ast.NumberLit) bool {
	if lit == nil {
		return false
	}
	v, err := strconv.ParseUint(lit.Value, 0, 64)
	return err == nil && v == 0
}
