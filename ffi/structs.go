package ffi

import (
	stderrors "errors"
	"fmt"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/ffi/internal/ast"
	"github.com/wippyai/zdef/types"
)

var containerLayouts = map[string]types.ContainerLayout{
	"":       types.LayoutAuto,
	"extern": types.LayoutExtern,
	"packed": types.LayoutPacked,
}

// container lays out a struct declaration. Anything other than an extern
// struct is reported, but a layout is still computed.
func (r *resolver) container(n *ast.Container, name string, path []string) *types.Descriptor {
	if n.Layout != "extern" || n.Keyword != "struct" {
		r.engine.report.Report(errors.LayoutConstraint(r.loc, path,
			fmt.Sprintf("%s must be an extern struct", describeContainer(n))))
	}

	fields := make([]*types.Descriptor, 0, len(n.Fields))
	seen := make(map[string]bool, len(n.Fields))
	for _, f := range n.Fields {
		d := r.resolve(f, path)
		if d == nil {
			return nil
		}
		if d.ABI.Kind == types.ShapeFunction {
			r.unsupported(extend(path, f.Name), "field %q has function type, use a pointer", f.Name)
			return nil
		}
		if seen[d.Name] {
			r.unsupported(extend(path, f.Name), "duplicate field %q", f.Name)
		}
		seen[d.Name] = true
		fields = append(fields, d)
	}

	shapes := make([]*types.Shape, len(fields))
	for i, f := range fields {
		shapes[i] = f.ABI
	}
	st, err := r.engine.calc.Struct(shapes)
	if err != nil {
		var le *errors.Error
		if stderrors.As(err, &le) {
			le.Location = r.loc
			le.Path = path
			r.engine.report.Report(le)
		} else {
			r.engine.report.Report(errors.Wrap(errors.PhaseLayout, errors.KindOverflow, err, "struct layout failed"))
		}
		return nil
	}

	shape := &types.Shape{
		Kind:   types.ShapeStruct,
		Layout: containerLayouts[n.Layout],
		Fields: make([]types.ShapeField, len(fields)),
		Size:   st.Size,
		Align:  st.Align,
	}
	host := &types.HostType{
		Kind:   types.HostStruct,
		Fields: make([]types.HostField, len(fields)),
	}
	offsets := make([]types.FieldOffset, len(fields))
	for i, f := range fields {
		shape.Fields[i] = types.ShapeField{Name: f.Name, Shape: f.ABI, Offset: st.Offsets[i]}
		host.Fields[i] = types.HostField{Name: f.Name, Type: f.Host}
		offsets[i] = types.FieldOffset{Name: f.Name, Offset: st.Offsets[i]}
	}

	return &types.Descriptor{
		Name:    r.name(name),
		Host:    r.intern(host),
		ABI:     shape,
		Offsets: offsets,
	}
}

func describeContainer(n *ast.Container) string {
	if n.Layout == "" {
		return n.Keyword
	}
	return n.Layout + " " + n.Keyword
}
