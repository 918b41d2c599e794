// Package ffi resolves zdef declaration text into type descriptors.
//
// An Engine accepts two kinds of requests:
//
//	ParseTypeExpression("[*:0]const u8")                  // cached, one parse per text
//	ParseDeclaration("fn acos(value: f64) f64;", dc, ModeDeclaration)
//
// Both parse the text, require exactly one top-level declaration and walk it,
// resolving identifiers against the scalar tables and then the symbol table
// of previously declared extern structs. Struct members are laid out with
// C rules; functions always use the C calling convention.
//
// Syntax errors fail the call. Semantic problems are reported as diagnostics
// and resolution continues with a fallback value (void for unknown names,
// placeholder names for unnamed functions and parameters) so that a whole
// binding file can be checked in one pass. ParseUnit does exactly that.
//
// Host types of every descriptor are interned through the engine's Registry,
// so two structurally equal declarations yield pointer-equal host types.
//
// An Engine is not safe for concurrent use.
package ffi
