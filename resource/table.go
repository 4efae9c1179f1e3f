package resource

import (
	"sync"
	"sync/atomic"
)

// UnifiedTable implements the Table interface using a LocalBackend for storage.
type UnifiedTable struct {
	backend   *LocalBackend
	observers []Observer
	obsMu     sync.RWMutex
	closed    bool
	closeMu   sync.RWMutex
	rejected  atomic.Uint64
}

// NewTable creates a new unified table with a LocalBackend.
func NewTable() *UnifiedTable {
	return &UnifiedTable{
		backend: NewLocalBackend(),
	}
}

// Insert adds a value and returns its handle. Returns 0 once the table is
// closed or out of slots.
func (t *UnifiedTable) Insert(kind Kind, value any) Handle {
	t.closeMu.RLock()
	if t.closed {
		t.closeMu.RUnlock()
		return 0
	}
	t.closeMu.RUnlock()

	handle, err := t.backend.Create(kind, value)
	if err != nil {
		return 0
	}

	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		Kind:   kind,
		Value:  value,
	})

	return handle
}

// Get retrieves a live value by handle.
func (t *UnifiedTable) Get(handle Handle) (any, bool) {
	return t.backend.Get(handle)
}

// GetTyped retrieves a value only if it matches the expected kind.
func (t *UnifiedTable) GetTyped(handle Handle, kind Kind) (any, bool) {
	actual, ok := t.backend.Kind(handle)
	if !ok || actual != kind {
		return nil, false
	}
	return t.backend.Get(handle)
}

// KindOf returns the kind tag of an allocated handle.
func (t *UnifiedTable) KindOf(handle Handle) (Kind, bool) {
	return t.backend.Kind(handle)
}

// Valid reports whether handle is live, of the given kind, and its value
// (when it implements Validator) still reports itself valid.
func (t *UnifiedTable) Valid(handle Handle, kind Kind) bool {
	v, ok := t.GetTyped(handle, kind)
	if !ok {
		return false
	}
	if val, ok := v.(Validator); ok {
		return val.Valid()
	}
	return true
}

// Remove frees a resource and returns (value, true) if found.
// Removing a handle that is not allocated is reported as EventRejected.
func (t *UnifiedTable) Remove(handle Handle) (any, bool) {
	kind, _ := t.backend.Kind(handle)
	value, ok := t.backend.Drop(handle)
	if !ok {
		t.rejected.Add(1)
		t.notify(Event{
			Type:   EventRejected,
			Handle: handle,
		})
		return nil, false
	}

	if d, ok := value.(Dropper); ok {
		d.Drop()
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		Kind:   kind,
		Value:  value,
	})

	return value, true
}

// RemoveTyped frees a resource only if it matches the expected kind.
func (t *UnifiedTable) RemoveTyped(handle Handle, kind Kind) (any, bool) {
	actual, ok := t.backend.Kind(handle)
	if ok && actual != kind {
		t.rejected.Add(1)
		t.notify(Event{
			Type:   EventRejected,
			Handle: handle,
			Kind:   actual,
		})
		return nil, false
	}
	return t.Remove(handle)
}

// Invalidate marks a resource stale: it stays allocated until removed, but
// Get and GetTyped no longer resolve it.
func (t *UnifiedTable) Invalidate(handle Handle) bool {
	kind, _ := t.backend.Kind(handle)
	value, ok := t.backend.Invalidate(handle)
	if !ok {
		return false
	}

	t.notify(Event{
		Type:   EventInvalidated,
		Handle: handle,
		Kind:   kind,
		Value:  value,
	})
	return true
}

// Rejected returns how many removals named a handle that was not allocated.
func (t *UnifiedTable) Rejected() uint64 {
	return t.rejected.Load()
}

// Subscribe adds an observer for lifecycle events.
func (t *UnifiedTable) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Unsubscribe removes an observer.
func (t *UnifiedTable) Unsubscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	for i, obs := range t.observers {
		if obs == o {
			t.observers = append(t.observers[:i], t.observers[i+1:]...)
			return
		}
	}
}

// Len returns the number of allocated resources.
func (t *UnifiedTable) Len() int {
	return t.backend.Len()
}

// Each iterates over all live resources.
func (t *UnifiedTable) Each(fn func(Handle, Kind, any) bool) {
	t.backend.Each(fn)
}

// Clear drops all resources, stale ones included.
func (t *UnifiedTable) Clear() {
	for _, h := range t.backend.Handles() {
		t.Remove(h)
	}
}

// Close releases all resources and stops accepting operations.
func (t *UnifiedTable) Close() error {
	t.closeMu.Lock()
	t.closed = true
	t.closeMu.Unlock()

	return t.backend.Close()
}

// Backend returns the underlying backend.
func (t *UnifiedTable) Backend() *LocalBackend {
	return t.backend
}

func (t *UnifiedTable) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}

var (
	_ Backend = (*LocalBackend)(nil)
	_ Table   = (*UnifiedTable)(nil)
)
