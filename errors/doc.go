// Package errors provides structured error types for the zdef library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). Declaration diagnostics additionally carry the Location of the
// declaration that produced them and the path of the offending sub-expression.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindUnknownType).
//		At(loc).
//		Path("Point", "x").
//		Detail("unknown type %q", "i33").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownType(loc, path, "i33")
//	err := errors.OutOfBounds(errors.PhaseRead, path, 10, 5)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
