// Package zdef provides the FFI declaration engine of the scripting runtime.
//
// Scripts bind native C-ABI libraries by writing small declarations in a
// constrained Zig-like grammar ("zdef" text). This library parses that text
// and resolves every type reference into a descriptor carrying both the
// C-ABI shape used for memory layout and native calls, and the coarser host
// type used by the runtime's own type system.
//
// # Architecture Overview
//
//	zdef/            Root package with Memory and StringAllocator interfaces
//	├── ffi/         Declaration engine: parsing, resolution, caching
//	├── types/       Descriptor, host type, ABI shape, scalar tables
//	├── layout/      C struct layout (size, alignment, offsets)
//	├── registry/    Host type interning
//	├── symtab/      Symbol table for declared foreign structs
//	├── diag/        Diagnostic collection
//	├── errors/      Structured error types
//	├── memview/     Typed struct field access over linear memory
//	├── witgen/      Projection of descriptors onto WIT types
//	└── cmd/zdef/    Declaration explorer CLI
//
// # Quick Start
//
//	eng := ffi.New(ffi.DefaultOptions())
//
//	d, err := eng.ParseTypeExpression("[*:0]const u8")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(d.Host) // string
//
//	point, err := eng.ParseDeclaration(
//	    "const Point = extern struct { x: i32, y: f64 };", nil, ffi.ModeDeclaration)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	off, _ := point.Offset("y") // 8
//
// # Host Type Projection
//
// Host types are coarser than ABI shapes. The scalar projection is fixed:
//
//   - u8, i8, u16, i16, i32: integer
//   - u32, i64, f32, f64: float
//   - u64, usize: opaque handle
//   - bool: bool, void: void
//
// Pointers declared as [*:0]const u8 are host strings; every other pointer is
// an opaque handle.
//
// # Thread Safety
//
// An ffi.Engine is NOT thread-safe. It is driven by a single compilation
// pipeline; use one engine per goroutine or synchronize access.
package zdef
