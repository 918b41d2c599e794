package memview

import (
	"encoding/binary"

	"github.com/wippyai/zdef"
	"github.com/wippyai/zdef/errors"
)

// Bytes is little-endian memory backed by a Go slice.
type Bytes []byte

var (
	_ zdef.Memory      = Bytes(nil)
	_ zdef.MemorySizer = Bytes(nil)
)

func (b Bytes) bounds(offset, length uint32) error {
	if uint64(offset)+uint64(length) > uint64(len(b)) {
		return errors.OutOfBounds(errors.PhaseRead, nil, offset, uint32(len(b)))
	}
	return nil
}

func (b Bytes) Size() uint32 {
	return uint32(len(b))
}

func (b Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	if err := b.bounds(offset, length); err != nil {
		return nil, err
	}
	return b[offset : offset+length], nil
}

func (b Bytes) Write(offset uint32, data []byte) error {
	if err := b.bounds(offset, uint32(len(data))); err != nil {
		return writeErr(err)
	}
	copy(b[offset:], data)
	return nil
}

func (b Bytes) ReadU8(offset uint32) (uint8, error) {
	if err := b.bounds(offset, 1); err != nil {
		return 0, err
	}
	return b[offset], nil
}

func (b Bytes) ReadU16(offset uint32) (uint16, error) {
	if err := b.bounds(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[offset:]), nil
}

func (b Bytes) ReadU32(offset uint32) (uint32, error) {
	if err := b.bounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[offset:]), nil
}

func (b Bytes) ReadU64(offset uint32) (uint64, error) {
	if err := b.bounds(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[offset:]), nil
}

func (b Bytes) WriteU8(offset uint32, value uint8) error {
	if err := b.bounds(offset, 1); err != nil {
		return writeErr(err)
	}
	b[offset] = value
	return nil
}

func (b Bytes) WriteU16(offset uint32, value uint16) error {
	if err := b.bounds(offset, 2); err != nil {
		return writeErr(err)
	}
	binary.LittleEndian.PutUint16(b[offset:], value)
	return nil
}

func (b Bytes) WriteU32(offset uint32, value uint32) error {
	if err := b.bounds(offset, 4); err != nil {
		return writeErr(err)
	}
	binary.LittleEndian.PutUint32(b[offset:], value)
	return nil
}

func (b Bytes) WriteU64(offset uint32, value uint64) error {
	if err := b.bounds(offset, 8); err != nil {
		return writeErr(err)
	}
	binary.LittleEndian.PutUint64(b[offset:], value)
	return nil
}

func writeErr(err error) error {
	if e, ok := err.(*errors.Error); ok {
		e.Phase = errors.PhaseWrite
	}
	return err
}
