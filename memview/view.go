package memview

import (
	"math"

	"github.com/wippyai/zdef"
	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/layout"
	"github.com/wippyai/zdef/types"
)

// MaxStringSize bounds reads of null-terminated strings.
const MaxStringSize = 1 << 20

// View is one struct instance at a fixed address.
type View struct {
	mem     zdef.Memory
	desc    *types.Descriptor
	path    []string
	base    uint32
	ptrSize uint32
}

// New creates a view of the struct described by desc at base. ptrSize must
// match the pointer width the descriptor was resolved with; 0 selects the
// platform width.
func New(mem zdef.Memory, desc *types.Descriptor, base uint32, ptrSize uint32) (*View, error) {
	if desc == nil || !desc.IsStruct() {
		return nil, errors.InvalidInput(errors.PhaseRead, "view requires a struct descriptor")
	}
	if ptrSize == 0 {
		ptrSize = layout.PlatformPointerSize
	}
	if ptrSize != 4 && ptrSize != 8 {
		return nil, errors.InvalidInput(errors.PhaseRead, "pointer size must be 4 or 8")
	}
	return &View{mem: mem, desc: desc, base: base, ptrSize: ptrSize, path: []string{desc.Name}}, nil
}

// Base is the struct's address.
func (v *View) Base() uint32 {
	return v.base
}

// Size is the struct's size including tail padding.
func (v *View) Size() uint32 {
	return v.desc.ABI.Size
}

// Descriptor returns the viewed struct's descriptor.
func (v *View) Descriptor() *types.Descriptor {
	return v.desc
}

type fieldRef struct {
	shape *types.Shape
	host  *types.HostType
	path  []string
	addr  uint32
}

func (v *View) lookup(phase errors.Phase, name string) (fieldRef, error) {
	f, ok := v.desc.ABI.Field(name)
	if !ok {
		return fieldRef{}, errors.FieldUnknown(phase, v.path, name)
	}
	host, _ := v.desc.Host.Field(name)
	addr, ok := layout.SafeAddU32(v.base, f.Offset)
	if !ok {
		return fieldRef{}, errors.Overflow(phase, v.fieldPath(name), uint64(v.base)+uint64(f.Offset), "u32 address")
	}
	return fieldRef{shape: f.Shape, host: host, addr: addr, path: v.fieldPath(name)}, nil
}

func (v *View) fieldPath(name string) []string {
	p := make([]string, 0, len(v.path)+1)
	p = append(p, v.path...)
	return append(p, name)
}

// Get reads a field as a host value. String fields are dereferenced; use
// Pointer for the raw address. Struct fields return a *View.
func (v *View) Get(name string) (any, error) {
	ref, err := v.lookup(errors.PhaseRead, name)
	if err != nil {
		return nil, err
	}

	switch ref.shape.Kind {
	case types.ShapeStruct:
		return v.sub(name, ref), nil
	case types.ShapeVoid:
		return nil, nil
	case types.ShapePointer:
		ptr, err := v.readPointer(ref.addr)
		if err != nil {
			return nil, err
		}
		if ref.host != nil && ref.host.Kind == types.HostString {
			return v.readCString(ptr, ref.path)
		}
		return ptr, nil
	case types.ShapeFunction:
		return v.readPointer(ref.addr)
	}

	raw, err := v.readScalar(ref.shape, ref.addr)
	if err != nil {
		return nil, err
	}
	return project(ref.shape, ref.host, raw), nil
}

// Pointer reads a pointer field's address.
func (v *View) Pointer(name string) (uint64, error) {
	ref, err := v.lookup(errors.PhaseRead, name)
	if err != nil {
		return 0, err
	}
	if ref.shape.Kind != types.ShapePointer && ref.shape.Kind != types.ShapeFunction {
		return 0, errors.TypeMismatch(errors.PhaseRead, ref.path, "pointer", ref.shape.String())
	}
	return v.readPointer(ref.addr)
}

// String reads the null-terminated string a String field points to.
func (v *View) String(name string) (string, error) {
	ref, err := v.lookup(errors.PhaseRead, name)
	if err != nil {
		return "", err
	}
	if !ref.shape.IsString() {
		return "", errors.TypeMismatch(errors.PhaseRead, ref.path, "string", ref.shape.String())
	}
	ptr, err := v.readPointer(ref.addr)
	if err != nil {
		return "", err
	}
	return v.readCString(ptr, ref.path)
}

// Field returns a view of a nested struct field.
func (v *View) Field(name string) (*View, error) {
	ref, err := v.lookup(errors.PhaseRead, name)
	if err != nil {
		return nil, err
	}
	if ref.shape.Kind != types.ShapeStruct {
		return nil, errors.TypeMismatch(errors.PhaseRead, ref.path, "struct", ref.shape.String())
	}
	return v.sub(name, ref), nil
}

func (v *View) sub(name string, ref fieldRef) *View {
	offsets := make([]types.FieldOffset, len(ref.shape.Fields))
	for i, f := range ref.shape.Fields {
		offsets[i] = types.FieldOffset{Name: f.Name, Offset: f.Offset}
	}
	return &View{
		mem:     v.mem,
		desc:    &types.Descriptor{Name: name, Host: ref.host, ABI: ref.shape, Offsets: offsets},
		base:    ref.addr,
		ptrSize: v.ptrSize,
		path:    ref.path,
	}
}

// Set writes a Go value into a field. Integers are range checked against
// the field's declared width. Pointer and handle fields take addresses.
func (v *View) Set(name string, value any) error {
	ref, err := v.lookup(errors.PhaseWrite, name)
	if err != nil {
		return err
	}

	switch ref.shape.Kind {
	case types.ShapeBool:
		b, ok := value.(bool)
		if !ok {
			return errors.TypeMismatch(errors.PhaseWrite, ref.path, typeName(value), "bool")
		}
		var n uint8
		if b {
			n = 1
		}
		return v.mem.WriteU8(ref.addr, n)

	case types.ShapeFloat:
		f, ok := toFloat(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseWrite, ref.path, typeName(value), ref.shape.String())
		}
		if ref.shape.Bits == 32 {
			if !math.IsInf(f, 0) && !math.IsNaN(f) && math.Abs(f) > math.MaxFloat32 {
				return errors.Overflow(errors.PhaseWrite, ref.path, f, "f32")
			}
			return v.mem.WriteU32(ref.addr, math.Float32bits(float32(f)))
		}
		return v.mem.WriteU64(ref.addr, math.Float64bits(f))

	case types.ShapeInt:
		raw, err := encodeInt(ref.shape, value, ref.path)
		if err != nil {
			return err
		}
		return v.writeScalar(ref.shape.Bits, ref.addr, raw)

	case types.ShapePointer, types.ShapeFunction:
		addr, ok := toUint(value)
		if !ok {
			return errors.TypeMismatch(errors.PhaseWrite, ref.path, typeName(value), ref.shape.String())
		}
		if v.ptrSize == 4 && addr > math.MaxUint32 {
			return errors.Overflow(errors.PhaseWrite, ref.path, addr, "32-bit pointer")
		}
		return v.writeScalar(uint8(v.ptrSize*8), ref.addr, addr)
	}

	return errors.TypeMismatch(errors.PhaseWrite, ref.path, typeName(value), ref.shape.String())
}

func (v *View) readPointer(addr uint32) (uint64, error) {
	if v.ptrSize == 4 {
		p, err := v.mem.ReadU32(addr)
		return uint64(p), err
	}
	return v.mem.ReadU64(addr)
}

func (v *View) readScalar(s *types.Shape, addr uint32) (uint64, error) {
	if s.Kind == types.ShapeBool {
		b, err := v.mem.ReadU8(addr)
		return uint64(b), err
	}
	switch s.Bits {
	case 8:
		b, err := v.mem.ReadU8(addr)
		return uint64(b), err
	case 16:
		h, err := v.mem.ReadU16(addr)
		return uint64(h), err
	case 32:
		w, err := v.mem.ReadU32(addr)
		return uint64(w), err
	default:
		return v.mem.ReadU64(addr)
	}
}

func (v *View) writeScalar(bits uint8, addr uint32, raw uint64) error {
	switch bits {
	case 8:
		return v.mem.WriteU8(addr, uint8(raw))
	case 16:
		return v.mem.WriteU16(addr, uint16(raw))
	case 32:
		return v.mem.WriteU32(addr, uint32(raw))
	default:
		return v.mem.WriteU64(addr, raw)
	}
}

func (v *View) readCString(ptr uint64, path []string) (string, error) {
	if ptr == 0 {
		return "", nil
	}
	if ptr > math.MaxUint32 {
		return "", errors.OutOfBounds(errors.PhaseRead, path, math.MaxUint32, 0)
	}
	start := uint32(ptr)
	buf := make([]byte, 0, 32)
	for i := uint32(0); i < MaxStringSize; i++ {
		addr, ok := layout.SafeAddU32(start, i)
		if !ok {
			break
		}
		b, err := v.mem.ReadU8(addr)
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
	return "", errors.New(errors.PhaseRead, errors.KindOverflow).
		Path(path...).
		Detail("string exceeds maximum %d bytes without terminator", MaxStringSize).
		Build()
}
