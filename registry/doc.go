// Package registry interns host types.
//
// Interning deduplicates structurally equal host types into one canonical
// value so the runtime can compare types by pointer. Struct and function
// host types are interned children first, so every canonical entry only
// references other canonical entries and the containment graph stays acyclic.
//
// A Registry belongs to one runtime instance and lives as long as it does.
// It is not safe for concurrent use.
package registry
