// Package sys declares the foreign boundary of the lldb bindings.
//
// A Library owns every debugger object. Callers receive opaque references,
// one distinct Go type per entity kind so that an InstructionRef can never be
// passed where an EventRef is expected, and talk to the objects only through
// Library functions:
//
//	XIsValid         validity predicate, cheap and synchronous
//	CloneX           mint an independent reference to a copy
//	DisposeX         release a reference; exactly once per reference
//	XGetDescription  render into a Stream
//	XGet...          field getters
//
// Text comes back as a CString: a pointer to a NUL-terminated buffer that the
// Library keeps alive until the owning reference is disposed. Optional numeric
// fields are exposed as an IsValid/Get pair and never as sentinel values.
//
// This package contains no behavior. The root package wraps references in
// owned values; package native provides an implementation.
package sys
