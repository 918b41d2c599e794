// Package witgen projects resolved descriptors onto WebAssembly Interface
// Types so extern structs and prototypes can be described to component-model
// tooling.
//
// Scalars map by width and signedness. Null-terminated byte pointers become
// string; every other pointer becomes a u64 handle. Structs become records
// with kebab-case field names. Void is only valid as a function result.
package witgen

import (
	"fmt"
	"strings"
	"unicode"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/types"
)

// Func is a function signature in WIT terms. Result is nil for void.
type Func struct {
	Result wit.Type
	Name   string
	Params []wit.Field
}

// String renders the signature in WIT syntax.
func (f *Func) String() string {
	var b strings.Builder
	b.WriteString(f.Name)
	b.WriteString(": func(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Name)
		b.WriteString(": ")
		b.WriteString(TypeName(p.Type))
	}
	b.WriteByte(')')
	if f.Result != nil {
		b.WriteString(" -> ")
		b.WriteString(TypeName(f.Result))
	}
	return b.String()
}

// Type projects an ABI shape onto a WIT type.
func Type(s *types.Shape) (wit.Type, error) {
	return project(s, nil)
}

func project(s *types.Shape, path []string) (wit.Type, error) {
	if s == nil {
		return nil, errors.InvalidInput(errors.PhaseProject, "nil shape")
	}
	switch s.Kind {
	case types.ShapeBool:
		return wit.Bool{}, nil
	case types.ShapeInt:
		return intType(s, path)
	case types.ShapeFloat:
		if s.Bits == 32 {
			return wit.F32{}, nil
		}
		return wit.F64{}, nil
	case types.ShapePointer:
		if s.IsString() {
			return wit.String{}, nil
		}
		return wit.U64{}, nil
	case types.ShapeStruct:
		return record(s, path)
	}
	return nil, errors.New(errors.PhaseProject, errors.KindUnsupported).
		Path(path...).
		Type(s.String()).
		Detail("%s has no WIT value representation", s.Kind).
		Build()
}

func intType(s *types.Shape, path []string) (wit.Type, error) {
	switch {
	case s.Bits == 8 && s.Signed:
		return wit.S8{}, nil
	case s.Bits == 8:
		return wit.U8{}, nil
	case s.Bits == 16 && s.Signed:
		return wit.S16{}, nil
	case s.Bits == 16:
		return wit.U16{}, nil
	case s.Bits == 32 && s.Signed:
		return wit.S32{}, nil
	case s.Bits == 32:
		return wit.U32{}, nil
	case s.Bits == 64 && s.Signed:
		return wit.S64{}, nil
	case s.Bits == 64:
		return wit.U64{}, nil
	}
	return nil, errors.New(errors.PhaseProject, errors.KindUnsupported).
		Path(path...).
		Type(s.String()).
		Detail("integer width %d", s.Bits).
		Build()
}

func record(s *types.Shape, path []string) (*wit.TypeDef, error) {
	if len(s.Fields) == 0 {
		return nil, errors.New(errors.PhaseProject, errors.KindUnsupported).
			Path(path...).
			Detail("WIT records need at least one field").
			Build()
	}
	fields := make([]wit.Field, 0, len(s.Fields))
	for _, f := range s.Fields {
		t, err := project(f.Shape, append(path[:len(path):len(path)], f.Name))
		if err != nil {
			return nil, err
		}
		fields = append(fields, wit.Field{Name: Ident(f.Name), Type: t})
	}
	return &wit.TypeDef{Kind: &wit.Record{Fields: fields}}, nil
}

// Record projects a struct descriptor onto a named WIT record.
func Record(d *types.Descriptor) (*wit.TypeDef, error) {
	if d == nil || !d.IsStruct() {
		return nil, errors.InvalidInput(errors.PhaseProject, "record requires a struct descriptor")
	}
	td, err := record(d.ABI, []string{d.Name})
	if err != nil {
		return nil, err
	}
	name := Ident(d.Name)
	td.Name = &name
	return td, nil
}

// Function projects a function descriptor onto a WIT signature.
func Function(d *types.Descriptor) (*Func, error) {
	if d == nil || !d.IsFunction() {
		return nil, errors.InvalidInput(errors.PhaseProject, "function requires a function descriptor")
	}
	if len(d.Host.Params) != len(d.ABI.Params) {
		return nil, errors.InvalidInput(errors.PhaseProject, "host and ABI parameter lists differ")
	}

	f := &Func{Name: Ident(d.Name), Params: make([]wit.Field, len(d.ABI.Params))}
	for i, p := range d.ABI.Params {
		name := d.Host.Params[i].Name
		t, err := project(p, []string{d.Name, name})
		if err != nil {
			return nil, err
		}
		f.Params[i] = wit.Field{Name: Ident(name), Type: t}
	}

	if d.ABI.Return != nil && d.ABI.Return.Kind != types.ShapeVoid {
		t, err := project(d.ABI.Return, []string{d.Name, "return"})
		if err != nil {
			return nil, err
		}
		f.Result = t
	}
	return f, nil
}

// Ident converts a C identifier into a WIT kebab-case identifier:
// "msg_len" and "msgLen" both become "msg-len".
func Ident(name string) string {
	var b strings.Builder
	prevLower := false
	for _, r := range name {
		switch {
		case r == '_' || r == '$':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "-") {
				b.WriteByte('-')
			}
			prevLower = false
		case unicode.IsUpper(r):
			if prevLower {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			prevLower = false
		default:
			b.WriteRune(r)
			prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "arg"
	}
	return out
}

// TypeName renders a WIT type reference.
func TypeName(t wit.Type) string {
	switch v := t.(type) {
	case wit.Bool:
		return "bool"
	case wit.S8:
		return "s8"
	case wit.U8:
		return "u8"
	case wit.S16:
		return "s16"
	case wit.U16:
		return "u16"
	case wit.S32:
		return "s32"
	case wit.U32:
		return "u32"
	case wit.S64:
		return "s64"
	case wit.U64:
		return "u64"
	case wit.F32:
		return "f32"
	case wit.F64:
		return "f64"
	case wit.String:
		return "string"
	case *wit.TypeDef:
		if v.Name != nil {
			return *v.Name
		}
		if r, ok := v.Kind.(*wit.Record); ok {
			parts := make([]string, len(r.Fields))
			for i, f := range r.Fields {
				parts[i] = f.Name + ": " + TypeName(f.Type)
			}
			return "record { " + strings.Join(parts, ", ") + " }"
		}
	}
	return fmt.Sprintf("%T", t)
}
