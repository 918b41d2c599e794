package types

import (
	"strconv"
	"strings"
)

// ShapeKind is the C-ABI type category
type ShapeKind uint8

const (
	ShapeVoid ShapeKind = iota
	ShapeInt
	ShapeFloat
	ShapeBool
	ShapePointer
	ShapeStruct
	ShapeFunction
)

var shapeKindNames = [...]string{
	ShapeVoid:     "void",
	ShapeInt:      "int",
	ShapeFloat:    "float",
	ShapeBool:     "bool",
	ShapePointer:  "pointer",
	ShapeStruct:   "struct",
	ShapeFunction: "fn",
}

func (k ShapeKind) String() string {
	if int(k) < len(shapeKindNames) {
		return shapeKindNames[k]
	}
	return "unknown"
}

// PointerSize is the pointer flavour. Pointers crossing the C boundary are
// always PtrC: nullable, single address, no length.
type PointerSize uint8

const (
	PtrOne PointerSize = iota
	PtrMany
	PtrSlice
	PtrC
)

// ContainerLayout is the layout qualifier of a container declaration
type ContainerLayout uint8

const (
	LayoutAuto ContainerLayout = iota
	LayoutExtern
	LayoutPacked
)

func (l ContainerLayout) String() string {
	switch l {
	case LayoutExtern:
		return "extern"
	case LayoutPacked:
		return "packed"
	}
	return "auto"
}

// CallingConvention of a function shape. Only C is supported.
type CallingConvention uint8

const (
	CallConvC CallingConvention = iota
)

func (c CallingConvention) String() string {
	return "C"
}

// Shape is the C-ABI view of a type.
//
// Int and Float shapes always carry Bits. Pointer shapes keep their child
// shape and qualifiers for marshalling. Struct shapes carry ordered fields
// with byte offsets plus the computed Size and Align.
type Shape struct {
	Child    *Shape       // ShapePointer
	Return   *Shape       // ShapeFunction
	Fields   []ShapeField // ShapeStruct, in declaration order
	Params   []*Shape     // ShapeFunction, in declaration order
	Size     uint32       // ShapeStruct
	Align    uint32       // ShapeStruct
	Kind     ShapeKind
	Bits     uint8 // ShapeInt, ShapeFloat
	Signed   bool  // ShapeInt
	Const    bool  // ShapePointer
	Volatile bool  // ShapePointer

	// NullTerminated is set for pointers declared with a 0 sentinel.
	NullTerminated bool
	PtrSize        PointerSize
	Layout         ContainerLayout
	CallConv       CallingConvention
	Variadic       bool
}

// ShapeField is one struct member with its computed byte offset.
type ShapeField struct {
	Shape  *Shape
	Name   string
	Offset uint32
}

// Field returns the named struct field.
func (s *Shape) Field(name string) (ShapeField, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return ShapeField{}, false
}

// IsString reports whether the pointer shape is a null-terminated const byte
// pointer, the only pointer form projected to a host string.
func (s *Shape) IsString() bool {
	return s.Kind == ShapePointer &&
		s.Const &&
		s.NullTerminated &&
		s.Child != nil &&
		s.Child.Kind == ShapeInt &&
		s.Child.Bits == 8
}

// String renders the shape in declaration syntax.
func (s *Shape) String() string {
	if s == nil {
		return "<nil>"
	}
	var b strings.Builder
	s.write(&b)
	return b.String()
}

func (s *Shape) write(b *strings.Builder) {
	switch s.Kind {
	case ShapeVoid:
		b.WriteString("void")
	case ShapeBool:
		b.WriteString("bool")
	case ShapeInt:
		if s.Signed {
			b.WriteByte('i')
		} else {
			b.WriteByte('u')
		}
		b.WriteString(strconv.Itoa(int(s.Bits)))
	case ShapeFloat:
		b.WriteByte('f')
		b.WriteString(strconv.Itoa(int(s.Bits)))
	case ShapePointer:
		switch {
		case s.NullTerminated:
			b.WriteString("[*:0]")
		case s.PtrSize == PtrC:
			b.WriteString("[*c]")
		case s.PtrSize == PtrMany:
			b.WriteString("[*]")
		default:
			b.WriteByte('*')
		}
		if s.Const {
			b.WriteString("const ")
		}
		if s.Volatile {
			b.WriteString("volatile ")
		}
		s.Child.write(b)
	case ShapeStruct:
		if s.Layout != LayoutAuto {
			b.WriteString(s.Layout.String())
			b.WriteByte(' ')
		}
		b.WriteString("struct {")
		for i, f := range s.Fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte(' ')
			b.WriteString(f.Name)
			b.WriteString(": ")
			f.Shape.write(b)
		}
		if len(s.Fields) > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('}')
	case ShapeFunction:
		b.WriteString("fn (")
		for i, p := range s.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			p.write(b)
		}
		b.WriteString(") callconv(.")
		b.WriteString(s.CallConv.String())
		b.WriteString(") ")
		if s.Return == nil {
			b.WriteString("void")
		} else {
			s.Return.write(b)
		}
	default:
		b.WriteString(s.Kind.String())
	}
}
