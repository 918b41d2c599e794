package zdef

import "strings"

// Memory represents linear memory holding native struct data
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU16(offset uint32, value uint16) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
}

// MemorySizer provides the current size of linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// StringAllocator copies declaration text into runtime-managed strings.
// Names stored in descriptors must not alias the declaration source.
type StringAllocator interface {
	Copy(s string) string
}

// CloneAllocator is the default StringAllocator backed by the Go heap.
type CloneAllocator struct{}

// Copy returns a copy of s that does not share memory with it.
func (CloneAllocator) Copy(s string) string {
	return strings.Clone(s)
}
