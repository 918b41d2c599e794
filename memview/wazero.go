package memview

import (
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/zdef"
	"github.com/wippyai/zdef/errors"
)

var (
	_ zdef.Memory      = (*WazeroMemory)(nil)
	_ zdef.MemorySizer = (*WazeroMemory)(nil)
)

// WazeroMemory adapts wazero linear memory to zdef.Memory.
type WazeroMemory struct {
	mem api.Memory
}

func NewWazeroMemory(mem api.Memory) *WazeroMemory {
	return &WazeroMemory{mem: mem}
}

func (m *WazeroMemory) Size() uint32 {
	return m.mem.Size()
}

func (m *WazeroMemory) readErr(offset, length uint32) error {
	return errors.New(errors.PhaseRead, errors.KindOutOfBounds).
		Value(offset).
		Detail("read out of bounds: offset=%d, length=%d, memory=%d", offset, length, m.mem.Size()).
		Build()
}

func (m *WazeroMemory) writeErr(offset, length uint32) error {
	return errors.New(errors.PhaseWrite, errors.KindOutOfBounds).
		Value(offset).
		Detail("write out of bounds: offset=%d, length=%d, memory=%d", offset, length, m.mem.Size()).
		Build()
}

func (m *WazeroMemory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, m.readErr(offset, length)
	}
	return data, nil
}

func (m *WazeroMemory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return m.writeErr(offset, uint32(len(data)))
	}
	return nil
}

func (m *WazeroMemory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, m.readErr(offset, 1)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU16(offset uint32) (uint16, error) {
	v, ok := m.mem.ReadUint16Le(offset)
	if !ok {
		return 0, m.readErr(offset, 2)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, m.readErr(offset, 4)
	}
	return v, nil
}

func (m *WazeroMemory) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, m.readErr(offset, 8)
	}
	return v, nil
}

func (m *WazeroMemory) WriteU8(offset uint32, value uint8) error {
	if !m.mem.WriteByte(offset, value) {
		return m.writeErr(offset, 1)
	}
	return nil
}

func (m *WazeroMemory) WriteU16(offset uint32, value uint16) error {
	if !m.mem.WriteUint16Le(offset, value) {
		return m.writeErr(offset, 2)
	}
	return nil
}

func (m *WazeroMemory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return m.writeErr(offset, 4)
	}
	return nil
}

func (m *WazeroMemory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return m.writeErr(offset, 8)
	}
	return nil
}
