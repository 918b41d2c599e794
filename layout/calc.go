package layout

import (
	"math"
	"math/bits"

	"github.com/wippyai/zdef/types"
)

// PlatformPointerSize is the pointer width of the host process in bytes.
const PlatformPointerSize = bits.UintSize / 8

// Info is the size and alignment of one shape
type Info struct {
	Size  uint32
	Align uint32
}

// Struct is the computed layout of a struct
type Struct struct {
	Offsets []uint32
	End     uint32 // running offset after the last field, before tail padding
	Size    uint32
	Align   uint32
}

// Calculator computes layouts for a target pointer width
type Calculator struct {
	PointerSize uint32
}

// NewCalculator creates a calculator; a zero pointer size selects the platform width.
func NewCalculator(pointerSize uint32) *Calculator {
	if pointerSize == 0 {
		pointerSize = PlatformPointerSize
	}
	return &Calculator{PointerSize: pointerSize}
}

// PointerBits is the pointer width in bits.
func (c *Calculator) PointerBits() uint8 {
	return uint8(c.PointerSize * 8)
}

// Calculate returns the size and alignment of s.
func (c *Calculator) Calculate(s *types.Shape) Info {
	if s == nil {
		return Info{Size: 0, Align: 1}
	}
	switch s.Kind {
	case types.ShapeInt, types.ShapeFloat:
		n := uint32(s.Bits) / 8
		if n == 0 {
			n = 1
		}
		return Info{Size: n, Align: n}
	case types.ShapeBool:
		return Info{Size: 1, Align: 1}
	case types.ShapePointer, types.ShapeFunction:
		return Info{Size: c.PointerSize, Align: c.PointerSize}
	case types.ShapeStruct:
		align := s.Align
		if align == 0 {
			align = 1
		}
		return Info{Size: s.Size, Align: align}
	default:
		return Info{Size: 0, Align: 1}
	}
}

// Struct lays out fields in order. After placing field i, the running
// offset is padded to the alignment of field i+1.
func (c *Calculator) Struct(fields []*types.Shape) (Struct, error) {
	if len(fields) == 0 {
		return Struct{Size: 0, Align: 1}, nil
	}

	infos := make([]Info, len(fields))
	for i, f := range fields {
		infos[i] = c.Calculate(f)
	}

	offsets := make([]uint32, len(fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for i, info := range infos {
		offsets[i] = offset

		if info.Align > maxAlign {
			maxAlign = info.Align
		}

		next, ok := SafeAddU32(offset, info.Size)
		if !ok {
			return Struct{}, overflowError(i)
		}
		offset = next

		if i+1 < len(infos) {
			next, ok = SafeAddU32(offset, Padding(offset, infos[i+1].Align))
			if !ok {
				return Struct{}, overflowError(i)
			}
			offset = next
		}
	}

	size, ok := SafeAddU32(offset, Padding(offset, maxAlign))
	if !ok {
		return Struct{}, overflowError(len(fields) - 1)
	}

	return Struct{
		Offsets: offsets,
		End:     offset,
		Size:    size,
		Align:   maxAlign,
	}, nil
}

// Padding returns the bytes needed to round offset up to align.
func Padding(offset, align uint32) uint32 {
	if align == 0 {
		return 0
	}
	return (align - offset%align) % align
}

// AlignTo rounds offset up to a multiple of align.
func AlignTo(offset, align uint32) uint32 {
	return offset + Padding(offset, align)
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}
