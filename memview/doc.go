// Package memview reads and writes resolved extern structs in linear memory.
//
// A View pairs a struct descriptor with a base address. Field access uses the
// byte offsets computed during layout and converts between memory and the
// host value model:
//
//	Integer  int64
//	Float    float64
//	Bool     bool
//	Handle   uint64 (u64, usize and non-string pointers)
//	String   string via Get, the pointer itself via Pointer
//	Struct   *View
//
// Memory is anything implementing zdef.Memory. Bytes wraps a Go slice;
// WazeroMemory wraps the linear memory of a wazero module instance.
package memview
