package ffi

import (
	"fmt"
	"sync/atomic"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/types"
)

// missingParamName replaces the name of an unnamed parameter.
const missingParamName = "$"

var functionIDs atomic.Uint64

// nextFunctionID returns a process-unique, monotonically increasing id.
func nextFunctionID() uint64 {
	return functionIDs.Add(1)
}

func (r *resolver) function(n *ast.FnProto, path []string) *types.Descriptor {
	name := n.Name
	if name == "" {
		r.engine.report.Report(errors.MissingName(r.loc, path, "function"))
		name = unknownName
	}
	path = extend(path, name)

	if n.Variadic {
		r.unsupported(path, "variadic function %q is not supported", name)
	}

	ret := &types.Descriptor{
		Host: r.intern(&types.HostType{Kind: types.HostVoid}),
		ABI:  types.VoidShape(),
	}
	if n.Return != nil {
		if ret = r.resolve(n.Return, extend(path, "return")); ret == nil {
			return nil
		}
	}

	host := &types.HostType{
		Kind:   types.HostFunction,
		Params: make([]types.HostField, 0, len(n.Params)),
		Return: ret.Host,
	}
	shape := &types.Shape{
		Kind:     types.ShapeFunction,
		CallConv: types.CallConvC,
		Params:   make([]*types.Shape, 0, len(n.Params)),
		Return:   ret.ABI,
	}

	for i, p := range n.Params {
		pname := p.Name
		if pname == "" {
			r.engine.report.Report(errors.MissingName(r.loc, path, fmt.Sprintf("parameter %d", i+1)))
			pname = missingParamName
		}
		pd := r.resolve(p.Type, extend(path, pname))
		if pd == nil {
			return nil
		}
		host.Params = append(host.Params, types.HostField{Name: r.name(pname), Type: pd.Host})
		shape.Params = append(shape.Params, pd.ABI)
	}

	return &types.Descriptor{
		Name: r.name(name),
		Host: r.intern(host),
		ABI:  shape,
		ID:   nextFunctionID(),
	}
}
