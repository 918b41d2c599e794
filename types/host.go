package types

import "strings"

// HostKind is the host-side type category
type HostKind uint8

const (
	HostVoid HostKind = iota
	HostInteger
	HostFloat
	HostBool
	HostString
	HostHandle
	HostStruct
	HostFunction
)

var hostKindNames = [...]string{
	HostVoid:     "void",
	HostInteger:  "int",
	HostFloat:    "float",
	HostBool:     "bool",
	HostString:   "string",
	HostHandle:   "handle",
	HostStruct:   "struct",
	HostFunction: "fn",
}

func (k HostKind) String() string {
	if int(k) < len(hostKindNames) {
		return hostKindNames[k]
	}
	return "unknown"
}

// IsScalar reports whether the kind carries no nested types.
func (k HostKind) IsScalar() bool {
	return k <= HostHandle
}

// HostType is the runtime's view of a foreign type.
// Struct and function host types reference their children by pointer; after
// interning those children are canonical registry entries.
type HostType struct {
	Return *HostType
	Fields []HostField // HostStruct, in declaration order
	Params []HostField // HostFunction, in declaration order
	Kind   HostKind
}

// HostField is one entry of an ordered name to host type map.
type HostField struct {
	Type *HostType
	Name string
}

// Field returns the named struct field type.
func (h *HostType) Field(name string) (*HostType, bool) {
	for _, f := range h.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// Param returns the named function parameter type.
func (h *HostType) Param(name string) (*HostType, bool) {
	for _, p := range h.Params {
		if p.Name == name {
			return p.Type, true
		}
	}
	return nil, false
}

// String renders the host type structurally. Two host types are equal
// exactly when their strings are equal; the registry keys on it.
func (h *HostType) String() string {
	if h == nil {
		return "<nil>"
	}
	var b strings.Builder
	h.write(&b)
	return b.String()
}

func (h *HostType) write(b *strings.Builder) {
	switch h.Kind {
	case HostStruct:
		b.WriteString("struct{")
		writeHostFields(b, h.Fields)
		b.WriteByte('}')
	case HostFunction:
		b.WriteString("fn(")
		writeHostFields(b, h.Params)
		b.WriteString(") ")
		if h.Return == nil {
			b.WriteString(HostVoid.String())
		} else {
			h.Return.write(b)
		}
	default:
		b.WriteString(h.Kind.String())
	}
}

func writeHostFields(b *strings.Builder, fields []HostField) {
	for i, f := range fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		if f.Type == nil {
			b.WriteString("<nil>")
		} else {
			f.Type.write(b)
		}
	}
}
