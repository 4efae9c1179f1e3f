// Package native is a pure-Go implementation of sys.Library.
//
// Every object the library hands out lives in a resource.UnifiedTable and
// is addressed by a generation-checked handle, so a disposed reference never
// aliases a newer object. Disposing an unknown or already disposed handle
// is counted and reported to observers instead of corrupting state.
//
// # Objects
//
//   - Events and broadcasters. BroadcastEvent stamps the sender on an event;
//     listener delivery is not modelled.
//   - Targets, loaded from ELF executables or from in-memory images built
//     with CreateTargetFromImage. Instructions are decoded with
//     golang.org/x/arch and rendered in Intel, AT&T or Plan 9 syntax.
//   - Process snapshots read from procfs on Linux, or from the running
//     process elsewhere.
//   - Streams, file specs, addresses and data buffers.
//
// # Text
//
// Text getters return pointers to NUL-terminated buffers owned by the
// library. A buffer is never mutated after it is returned, so it stays
// readable for as long as the caller holds the pointer.
//
// # Concurrency
//
// All entry points are safe for concurrent use. Immutable objects
// (instructions, addresses, file specs, data, process snapshots, targets)
// need no locking beyond the table's; events and streams guard their
// mutable state with their own mutex.
package native
