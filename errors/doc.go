// Package errors provides structured error types for the lldb-go bindings.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the entity kind and field involved, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMarshal, errors.KindInvalidUTF8).
//		Entity("SBEvent").
//		Field("data_flavor").
//		Detail("foreign text is not UTF-8").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidUTF8("SBEvent", "data_flavor", raw)
//	err := errors.UseAfterClose("SBInstruction", "mnemonic")
//
// Foreign contract violations (nil or malformed text from the library,
// access to a closed wrapper) are raised as panics carrying an *Error;
// IsContractViolation recognises them after recover.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
