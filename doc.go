// Package lldb wraps the opaque handles of a debugger scripting library in
// owned Go values.
//
// The library itself (package sys describes its surface, package native
// implements it) does all of the debugging work. This package only decides
// when a handle is valid, who releases it, and how foreign text crosses into
// Go.
//
// # Architecture Overview
//
//	lldb/               Owned wrappers: Event, Instruction, ProcessInfo, ...
//	├── sys/            Foreign boundary: opaque refs and the Library interface
//	├── native/         Pure Go Library: handle table, targets, disassembly, /proc
//	├── resource/       Generic handle table with kinds and generations
//	├── projection/     JSON projection of process info
//	├── errors/         Structured error types
//	└── cmd/sbinspect/  Command line inspector
//
// # Quick Start
//
//	lib := native.NewWithDefaults()
//	defer lib.Close()
//
//	info, err := lldb.ProcessInfoForPID(lib, uint64(os.Getpid()))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer info.Close()
//
//	fmt.Println(info.Name())
//	if uid, ok := info.UserID(); ok {
//	    fmt.Println("uid", uid)
//	}
//
// # Construction
//
// Raw references become wrappers only through a gate (WrapEvent,
// WrapInstruction, WrapProcessInfo, ...). A reference the library reports as
// invalid yields (nil, false); no wrapper exists and nothing is released.
// Handle-typed fields (an event's broadcaster, an instruction's address) go
// through the same gate.
//
// # Ownership
//
// Each wrapper owns exactly one reference. Close releases it with exactly one
// dispose call; further Close calls are no-ops. Wrappers that become
// unreachable without Close are released by a runtime cleanup, but relying on
// it delays the release until the next garbage collection, so prefer:
//
//	ev, ok := lldb.WrapEvent(lib, raw)
//	if !ok {
//	    return
//	}
//	defer ev.Close()
//
// Clone asks the library for an independent copy; closing one never affects
// the other.
//
// # Validity
//
// A wrapper can go stale when the library tears the object down on its own
// (a process exits, a target is destroyed). IsValid re-queries the library.
// Other accessors do not re-check; their results on a stale handle are
// whatever the library returns for it. Package native returns no text for
// stale handles, so check IsValid before reading text from a wrapper that
// may have gone stale.
//
// # Text
//
// Text accessors copy the library's buffer into a Go string before returning,
// so results never dangle. A nil or non-UTF-8 buffer is a broken library
// contract: the accessor panics with an *errors.Error (see
// errors.IsContractViolation) instead of returning substitute text. Any
// accessor called after Close panics the same way.
//
// # Thread Safety
//
// Wrappers may be shared between goroutines. Accessors take a read lock on
// the handle, Close takes the write lock, so Close waits for in-flight calls.
// Concurrent reads are only as safe as the Library's own handle operations;
// package native is safe for all kinds.
package lldb
