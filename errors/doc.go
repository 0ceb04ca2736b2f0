// Package errors provides structured error types for the goply library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes rich context: the element and property
// being processed, the byte offset into the document, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRead, errors.KindTypeMismatch).
//		At("vertex", "x").
//		Offset(412).
//		Detail("expected a number, got %q", tok).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Capacity(written, capacity, requested)
//	err := errors.UnexpectedEOF(errors.PhaseRead, "face", "vertex_indices")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
