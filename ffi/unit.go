package ffi

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/ffi/internal/parser"
	"github.com/wippyai/zdef/types"
)

// ParseUnit resolves every declaration of a binding file in order. Each
// `const Name = extern struct {...};` is defined in the engine's unit scope
// so later declarations, in this or later units, can refer to it by name.
//
// Unlike ParseDeclaration, a syntax error only drops the declaration it
// occurs in. The returned descriptors are those that resolved; the error
// combines every diagnostic reported for the unit.
func (e *Engine) ParseUnit(src, file string) ([]*types.Descriptor, error) {
	mark := e.diags.Len()

	at := func(pos ast.Pos) errors.Location {
		return errors.Location{File: file, Line: pos.Line, Column: pos.Col}
	}
	tree, _ := e.parse(parser.Parse, src, at)

	var out []*types.Descriptor
	for _, decl := range tree.Decls {
		dc := &DeclContext{
			Symbols:  e.unit,
			Location: at(decl.Position()),
		}
		d := e.resolver(dc, ModeDeclaration).resolve(decl, nil)
		if d == nil {
			continue
		}
		if v, ok := decl.(*ast.VarDecl); ok && d.IsStruct() {
			e.unit.Define(v.Name, d)
		}
		out = append(out, d)
	}

	e.log.Debug("unit resolved",
		zap.String("file", file),
		zap.Int("declarations", len(tree.Decls)),
		zap.Int("resolved", len(out)),
	)

	var err error
	for _, d := range e.diags.Since(mark) {
		err = multierr.Append(err, d)
	}
	return out, err
}
