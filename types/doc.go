// Package types defines the descriptors produced by declaration resolution.
//
// A Descriptor pairs a name with two views of the same type:
//
//   - HostType: the runtime's own coarse type category (integer, float,
//     string, opaque handle, foreign struct, function). Host types are
//     interned by a registry so structurally equal host types are
//     pointer-equal.
//   - Shape: the C-ABI shape (exact widths, pointer qualifiers, struct
//     field offsets, calling convention) used for memory layout and native
//     call marshalling.
//
// The fixed scalar tables mapping primitive names to both views live in
// scalar.go.
package types
