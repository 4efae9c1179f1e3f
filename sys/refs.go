package sys

import "unsafe"

// Opaque references, one distinct type per entity kind. They are
// address-sized tokens meaningful only to the Library that issued them;
// the zero value is never valid.
type (
	EventRef           uintptr
	InstructionRef     uintptr
	InstructionListRef uintptr
	ProcessInfoRef     uintptr
	AddressRef         uintptr
	BroadcasterRef     uintptr
	FileSpecRef        uintptr
	TargetRef          uintptr
	DataRef            uintptr
	StreamRef          uintptr
)

// Ref is satisfied by every opaque reference type.
type Ref interface {
	~uintptr
}

// CString points at a NUL-terminated byte buffer owned by the Library.
// The buffer stays valid until the handle it was read from is disposed or
// the next call on that handle, whichever comes first. nil means no buffer.
type CString = unsafe.Pointer

// PID is a process identifier as reported by the Library.
type PID = uint64

// InvalidPID is reported for processes without a known identifier.
const InvalidPID PID = 0
