// Package errors provides structured error types for the asset generators.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the table or artifact it concerns, a element path, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindShape).
//		Table("TRI_TABLE").
//		Path("row", "17").
//		Detail("row has %d entries, max 16", n).
//		Build()
//
// Or use convenience constructors for the two fatal categories:
//
//	err := errors.Validation("EDGE_TABLE", "expected 256 entries, got %d", n)
//	err := errors.IO("write", path, cause)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
