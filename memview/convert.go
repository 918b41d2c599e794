package memview

import (
	"fmt"
	"math"

	"github.com/wippyai/zdef/errors"
	"github.com/wippyai/zdef/types"
)

// project converts raw scalar bits into the host value model.
func project(s *types.Shape, host *types.HostType, raw uint64) any {
	if s.Kind == types.ShapeBool {
		return raw != 0
	}
	if s.Kind == types.ShapeFloat {
		if s.Bits == 32 {
			return float64(math.Float32frombits(uint32(raw)))
		}
		return math.Float64frombits(raw)
	}

	signed := s.Signed
	var n int64
	if signed {
		n = signExtend(raw, s.Bits)
	}

	kind := types.HostInteger
	if host != nil {
		kind = host.Kind
	}
	switch kind {
	case types.HostFloat:
		if signed {
			return float64(n)
		}
		return float64(raw)
	case types.HostHandle:
		return raw
	}
	if signed {
		return n
	}
	return int64(raw)
}

func signExtend(raw uint64, bits uint8) int64 {
	shift := 64 - uint(bits)
	return int64(raw<<shift) >> shift
}

// encodeInt range checks value against the shape and returns its bits.
func encodeInt(s *types.Shape, value any, path []string) (uint64, error) {
	target := s.String()
	bits := uint(s.Bits)

	if f, ok := value.(float64); ok {
		if f != math.Trunc(f) {
			return 0, errors.TypeMismatch(errors.PhaseWrite, path, "non-integral float64", target)
		}
		if s.Signed {
			if math.IsInf(f, 0) || f < -(1<<63) || f >= 1<<63 {
				return 0, errors.Overflow(errors.PhaseWrite, path, f, target)
			}
			value = int64(f)
		} else {
			if math.IsInf(f, 0) || f < 0 || f >= 1<<64 {
				return 0, errors.Overflow(errors.PhaseWrite, path, f, target)
			}
			value = uint64(f)
		}
	}

	if n, ok := toInt(value); ok {
		if s.Signed {
			lo, hi := int64(-1)<<(bits-1), int64(1)<<(bits-1)-1
			if bits == 64 {
				lo, hi = math.MinInt64, math.MaxInt64
			}
			if n < lo || n > hi {
				return 0, errors.Overflow(errors.PhaseWrite, path, n, target)
			}
			return uint64(n) & mask(bits), nil
		}
		if n < 0 || (bits < 64 && uint64(n) > mask(bits)) {
			return 0, errors.Overflow(errors.PhaseWrite, path, n, target)
		}
		return uint64(n), nil
	}

	if u, ok := toUint(value); ok {
		if bits < 64 && u > mask(bits) {
			return 0, errors.Overflow(errors.PhaseWrite, path, u, target)
		}
		if s.Signed && u > math.MaxInt64>>(64-bits) {
			return 0, errors.Overflow(errors.PhaseWrite, path, u, target)
		}
		return u, nil
	}

	return 0, errors.TypeMismatch(errors.PhaseWrite, path, typeName(value), target)
}

func mask(bits uint) uint64 {
	if bits >= 64 {
		return math.MaxUint64
	}
	return 1<<bits - 1
}

func toInt(value any) (int64, bool) {
	switch n := value.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	}
	return 0, false
}

func toUint(value any) (uint64, bool) {
	switch n := value.(type) {
	case uint:
		return uint64(n), true
	case uint8:
		return uint64(n), true
	case uint16:
		return uint64(n), true
	case uint32:
		return uint64(n), true
	case uint64:
		return n, true
	case uintptr:
		return uint64(n), true
	}
	if n, ok := toInt(value); ok && n >= 0 {
		return uint64(n), true
	}
	return 0, false
}

func toFloat(value any) (float64, bool) {
	switch f := value.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	if n, ok := toInt(value); ok {
		return float64(n), true
	}
	if u, ok := toUint(value); ok {
		return float64(u), true
	}
	return 0, false
}

func typeName(value any) string {
	if value == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", value)
}
