package types

// Scalar tables. Both are fixed; a name resolves only if present in both.
//
// The host projection is lossy by design: host numbers have no width, so
// u32 and i64 travel as floats, and u64/usize cannot be represented
// losslessly by a host number at all and become opaque handles.

// Bits value standing for "platform pointer width", filled in at lookup.
const pointerWidth = 0

var abiScalars = map[string]Shape{
	"u8":    {Kind: ShapeInt, Bits: 8},
	"i8":    {Kind: ShapeInt, Bits: 8, Signed: true},
	"u16":   {Kind: ShapeInt, Bits: 16},
	"i16":   {Kind: ShapeInt, Bits: 16, Signed: true},
	"u32":   {Kind: ShapeInt, Bits: 32},
	"i32":   {Kind: ShapeInt, Bits: 32, Signed: true},
	"u64":   {Kind: ShapeInt, Bits: 64},
	"i64":   {Kind: ShapeInt, Bits: 64, Signed: true},
	"usize": {Kind: ShapeInt, Bits: pointerWidth},
	"f32":   {Kind: ShapeFloat, Bits: 32},
	"f64":   {Kind: ShapeFloat, Bits: 64},
	"bool":  {Kind: ShapeBool},
	"void":  {Kind: ShapeVoid},
}

var hostScalars = map[string]HostKind{
	"u8":    HostInteger,
	"i8":    HostInteger,
	"u16":   HostInteger,
	"i16":   HostInteger,
	"i32":   HostInteger,
	"u32":   HostFloat,
	"i64":   HostFloat,
	"f32":   HostFloat,
	"f64":   HostFloat,
	"u64":   HostHandle,
	"usize": HostHandle,
	"bool":  HostBool,
	"void":  HostVoid,
}

// LookupScalar returns the ABI shape and host kind of a primitive type name.
// ptrBits is the target pointer width used for usize.
func LookupScalar(name string, ptrBits uint8) (*Shape, HostKind, bool) {
	shape, ok := abiScalars[name]
	if !ok {
		return nil, 0, false
	}
	host, ok := hostScalars[name]
	if !ok {
		return nil, 0, false
	}
	if shape.Kind == ShapeInt && shape.Bits == pointerWidth {
		shape.Bits = ptrBits
	}
	return &shape, host, true
}

// ScalarNames lists the primitive type names in a stable order.
func ScalarNames() []string {
	return []string{"u8", "i8", "u16", "i16", "i32", "u32", "i64", "u64", "usize", "f32", "f64", "bool", "void"}
}

// VoidShape returns a fresh void shape.
func VoidShape() *Shape {
	return &Shape{Kind: ShapeVoid}
}
