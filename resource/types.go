package resource

// Handle is an opaque reference to a resource in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

const (
	indexBits = 20
	indexMask = 1<<indexBits - 1
	genMask   = 1<<(32-indexBits) - 1

	// MaxSlots is the number of slots a single table can address.
	MaxSlots = indexMask
)

func makeHandle(idx int, gen uint32) Handle {
	return Handle(uint32(idx+1) | (gen&genMask)<<indexBits)
}

func (h Handle) index() int {
	return int(uint32(h)&indexMask) - 1
}

func (h Handle) generation() uint32 {
	return uint32(h) >> indexBits & genMask
}

// Kind tags a handle with the entity kind it was created for.
type Kind uint32

// Event types for resource lifecycle notifications.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
	EventInvalidated
	EventRejected
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	case EventInvalidated:
		return "invalidated"
	case EventRejected:
		return "rejected"
	}
	return "unknown"
}

// Event represents a resource lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Kind   Kind
	Type   EventType
}

// Observer receives notifications about resource lifecycle events.
type Observer interface {
	OnResourceEvent(Event)
}

// Backend provides the underlying storage mechanism for resources.
type Backend interface {
	// Create stores a value and returns a handle.
	Create(kind Kind, value any) (Handle, error)

	// Get retrieves a live value by handle.
	Get(handle Handle) (any, bool)

	// Drop frees the slot and returns (value, true) if the handle was owned.
	// Stale handles can still be dropped.
	Drop(handle Handle) (any, bool)

	// Invalidate marks a live handle stale without freeing its slot.
	Invalidate(handle Handle) (any, bool)

	// Close releases all resources held by the backend.
	Close() error
}

// Table manages resources with kind information and observer support.
type Table interface {
	// Insert adds a value and returns its handle.
	Insert(kind Kind, value any) Handle

	// Get retrieves a live value by handle.
	Get(handle Handle) (any, bool)

	// GetTyped retrieves a value only if it matches the expected kind.
	GetTyped(handle Handle, kind Kind) (any, bool)

	// Remove frees a resource and returns (value, true) if found.
	Remove(handle Handle) (any, bool)

	// Invalidate marks a resource stale.
	Invalidate(handle Handle) bool

	// Subscribe adds an observer for lifecycle events.
	Subscribe(Observer)

	// Unsubscribe removes an observer.
	Unsubscribe(Observer)

	// Len returns the number of allocated resources, stale ones included.
	Len() int

	// Clear drops all resources.
	Clear()

	// Close releases all resources and stops accepting operations.
	Close() error
}

// TypedTable provides type-safe access to resources of a specific kind.
type TypedTable[T any] interface {
	// Insert adds a value and returns its handle.
	Insert(value T) Handle

	// Get retrieves a live value by handle.
	Get(handle Handle) (T, bool)

	// Remove frees a resource and returns (value, true) if found.
	Remove(handle Handle) (T, bool)

	// Len returns the number of allocated resources of this kind.
	Len() int

	// Each iterates over all live resources of this kind.
	Each(func(Handle, T) bool)
}

// Dropper is optionally implemented by resource values that need cleanup.
type Dropper interface {
	Drop()
}

// Validator is optionally implemented by values whose liveness depends on
// state outside the table, e.g. a snapshot of a process that has exited.
type Validator interface {
	Valid() bool
}
