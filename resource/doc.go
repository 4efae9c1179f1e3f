// Package resource provides the handle table behind the native library.
//
// Every foreign object (event, instruction, process snapshot, target, ...)
// lives in a table slot and is named by an opaque Handle. Callers on the
// other side of the boundary only ever see the Handle, never the value.
//
// # Handle Lifecycle
//
// A slot moves through three states:
//
//	live    - created, valid, value reachable through Get
//	stale   - still owned by the caller, but the object behind it was torn
//	          down (Invalidate); Get fails, Remove still succeeds
//	free    - removed; the slot is recycled with a new generation
//
// # Handle Table
//
// The UnifiedTable maps handles to Go values:
//
//	table := resource.NewTable()
//
//	// Insert a value, get a handle
//	handle := table.Insert(kind, myValue)
//
//	// Retrieve value by handle
//	value, ok := table.Get(handle)
//
//	// Remove and get value (dispose)
//	value, ok := table.Remove(handle)
//
// # Kind Safety
//
// Handles are tagged with the kind they were created for:
//
//	value, ok := table.GetTyped(eventHandle, KindEvent)       // ok
//	value, ok := table.GetTyped(eventHandle, KindInstruction) // !ok
//
// # Generations
//
// Handles encode a slot index and a generation counter. When a slot is
// recycled its generation advances, so a removed handle never resolves to the
// object that later reuses the slot, and a second Remove is reported to
// observers as EventRejected instead of freeing someone else's object.
//
// # Observers
//
// Register observers to track lifecycle events:
//
//	table.Subscribe(observer)
//
// Observers see EventCreated, EventDropped, EventInvalidated and
// EventRejected. Tests use them to count disposes per handle.
package resource
