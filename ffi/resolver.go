package ffi

import (
	"fmt"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/symtab"
	"github.com/wippyai/zdef/types"
)

// unknownName names descriptors that have no declared identifier.
const unknownName = "unknown"

// resolver walks one declaration tree. Every resolve method returns nil
// only after a diagnostic explaining the failure has been reported.
type resolver struct {
	engine  *Engine
	symbols symtab.Resolver
	loc     errors.Location
	mode    Mode
}

func (r *resolver) resolve(node ast.Node, path []string) *types.Descriptor {
	switch n := node.(type) {
	case *ast.FnProto:
		return r.function(n, path)
	case *ast.Ident:
		return r.ident(n, path)
	case *ast.PointerType:
		return r.pointer(n, path)
	case *ast.VarDecl:
		return r.varDecl(n, path)
	case *ast.Field:
		return r.field(n, path)
	case *ast.Container:
		return r.container(n, unknownName, path)
	}
	r.unsupported(path, "%s is not supported", ast.Kind(node))
	return nil
}

func (r *resolver) varDecl(n *ast.VarDecl, path []string) *types.Descriptor {
	if r.mode == ModeTypeExpression && n.Type != nil {
		return r.resolve(n.Type, path)
	}

	path = extend(path, n.Name)
	c, ok := n.Init.(*ast.Container)
	if !ok {
		r.unsupported(path, "%s %q must be initialized with an extern struct, found %s",
			ast.Kind(n), n.Name, ast.Kind(n.Init))
		return nil
	}
	return r.container(c, n.Name, path)
}

func (r *resolver) field(n *ast.Field, path []string) *types.Descriptor {
	path = extend(path, n.Name)
	if n.Type == nil {
		r.unsupported(path, "field %q has no type", n.Name)
		return nil
	}
	d := r.resolve(n.Type, path)
	if d == nil {
		return nil
	}
	return d.WithName(r.name(n.Name))
}

// ident resolves a type name: scalar table first, then declared structs.
// Unknown names report and fall back to void.
func (r *resolver) ident(n *ast.Ident, path []string) *types.Descriptor {
	if shape, kind, ok := types.LookupScalar(n.Name, r.engine.calc.PointerBits()); ok {
		return &types.Descriptor{
			Name: r.name(n.Name),
			Host: r.intern(&types.HostType{Kind: kind}),
			ABI:  shape,
		}
	}

	if r.symbols != nil {
		if d, ok := r.symbols.Lookup(n.Name); ok && d != nil {
			return &types.Descriptor{
				Name:    r.name(n.Name),
				Host:    r.intern(d.Host),
				ABI:     d.ABI,
				Offsets: d.Offsets,
			}
		}
	}

	r.engine.report.Report(errors.UnknownType(r.loc, path, n.Name))
	return &types.Descriptor{
		Name: r.name(n.Name),
		Host: r.intern(&types.HostType{Kind: types.HostVoid}),
		ABI:  types.VoidShape(),
	}
}

func (r *resolver) intern(h *types.HostType) *types.HostType {
	return r.engine.registry.Intern(h)
}

func (r *resolver) name(s string) string {
	return r.engine.alloc.Copy(s)
}

func (r *resolver) unsupported(path []string, format string, args ...any) {
	r.engine.report.Report(errors.Unsupported(r.loc, path, fmt.Sprintf(format, args...)))
}

// extend appends without sharing the backing array of path.
func extend(path []string, elem ...string) []string {
	out := make([]string, 0, len(path)+len(elem))
	out = append(out, path...)
	return append(out, elem...)
}
