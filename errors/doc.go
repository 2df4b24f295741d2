// Package errors provides structured error types for the A-XDR codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the field path, the A-XDR type involved, the offending
// value and the cursor position at which the failure was detected.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseEncode, errors.KindConstraint).
//		Path("reading", "status").
//		Type("enum").
//		Value(7).
//		Detail("value outside [0, 3]").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Constraint(errors.PhaseEncode, path, 7, "value outside [0, 3]")
//	err := errors.Overflow(errors.PhaseDecode, path, 4, 1)
//
// The four codec kinds (overflow, constraint, invalid_value, invalid_type) have
// phase-less sentinels; errors.Is matches them against an Error of any phase.
package errors
