package types

import "fmt"

// Descriptor is the result of resolving one declaration or sub-expression.
//
// Only Name may change after construction: a containing struct field
// back-fills it with the declared field name.
type Descriptor struct {
	Host    *HostType
	ABI     *Shape
	Name    string
	Offsets []FieldOffset // struct descriptors only, in declaration order
	ID      uint64        // function descriptors only, process-unique
}

// FieldOffset maps a struct field name to its byte offset.
type FieldOffset struct {
	Name   string
	Offset uint32
}

// Offset returns the byte offset of the named struct field.
func (d *Descriptor) Offset(field string) (uint32, bool) {
	for _, fo := range d.Offsets {
		if fo.Name == field {
			return fo.Offset, true
		}
	}
	return 0, false
}

// IsStruct reports whether the descriptor is a foreign struct.
func (d *Descriptor) IsStruct() bool {
	return d.ABI != nil && d.ABI.Kind == ShapeStruct
}

// IsFunction reports whether the descriptor is a function prototype.
func (d *Descriptor) IsFunction() bool {
	return d.ABI != nil && d.ABI.Kind == ShapeFunction
}

// WithName returns a shallow copy carrying a different name.
func (d *Descriptor) WithName(name string) *Descriptor {
	cp := *d
	cp.Name = name
	return &cp
}

func (d *Descriptor) String() string {
	if d == nil {
		return "<nil>"
	}
	switch {
	case d.IsFunction():
		return fmt.Sprintf("fn %s: %s", d.Name, d.ABI)
	case d.IsStruct():
		return fmt.Sprintf("const %s = %s", d.Name, d.ABI)
	default:
		return fmt.Sprintf("%s: %s", d.Name, d.ABI)
	}
}
