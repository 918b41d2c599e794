// Package layout provides C-ABI layout calculations for resolved shapes.
//
// This package computes size, alignment, and field offsets the way a C
// compiler lays out an extern struct. The results determine how foreign
// structs are read from and written to native memory.
//
// # Layout Rules
//
//   - Scalars: size equals alignment (u8=1, i32=4, f64=8, etc.)
//   - Pointers: platform pointer width
//   - Structs: fields placed in declaration order; after each field the
//     running offset is padded to the alignment of the following field
//   - Struct size is padded to the largest member alignment so arrays of
//     the struct keep every element aligned
//
// # Usage
//
//	calc := layout.NewCalculator(8)
//	st, err := calc.Struct(fieldShapes)
//	// st.Offsets, st.Size, st.Align available
package layout
