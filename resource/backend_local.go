package resource

import (
	"errors"
	"sync"
)

var (
	ErrClosed    = errors.New("resource backend closed")
	ErrExhausted = errors.New("resource backend has no free slots")
)

// LocalBackend is an in-memory resource backend with generation tracking.
type LocalBackend struct {
	entries  []entry
	freeList []int
	mu       sync.RWMutex
	closed   bool
}

type entry struct {
	value any
	kind  Kind
	gen   uint32
	live  bool
	stale bool
}

// NewLocalBackend creates a new in-memory backend.
func NewLocalBackend() *LocalBackend {
	return &LocalBackend{
		entries:  make([]entry, 0, 64),
		freeList: make([]int, 0, 16),
	}
}

// Create stores a value and returns a handle.
func (b *LocalBackend) Create(kind Kind, value any) (Handle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrClosed
	}

	if len(b.freeList) > 0 {
		idx := b.freeList[len(b.freeList)-1]
		b.freeList = b.freeList[:len(b.freeList)-1]
		e := &b.entries[idx]
		e.value = value
		e.kind = kind
		e.live = true
		e.stale = false
		return makeHandle(idx, e.gen), nil
	}

	if len(b.entries) >= MaxSlots {
		return 0, ErrExhausted
	}

	b.entries = append(b.entries, entry{
		kind:  kind,
		value: value,
		live:  true,
	})
	return makeHandle(len(b.entries)-1, 0), nil
}

// lookup returns the slot for handle if it is allocated under the handle's
// generation. Caller must hold b.mu.
func (b *LocalBackend) lookup(handle Handle) *entry {
	if handle == 0 {
		return nil
	}
	idx := handle.index()
	if idx < 0 || idx >= len(b.entries) {
		return nil
	}
	e := &b.entries[idx]
	if !e.live || e.gen&genMask != handle.generation() {
		return nil
	}
	return e
}

// Get retrieves a live value by handle.
func (b *LocalBackend) Get(handle Handle) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	if e == nil || e.stale {
		return nil, false
	}
	return e.value, true
}

// Drop frees the slot and returns (value, true) if the handle was allocated.
func (b *LocalBackend) Drop(handle Handle) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil {
		return nil, false
	}

	value := e.value
	e.value = nil
	e.live = false
	e.stale = false
	e.gen++
	b.freeList = append(b.freeList, handle.index())

	return value, true
}

// Invalidate marks a live handle stale and returns its value.
func (b *LocalBackend) Invalidate(handle Handle) (any, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	e := b.lookup(handle)
	if e == nil || e.stale {
		return nil, false
	}
	e.stale = true
	return e.value, true
}

// Allocated reports whether handle names an allocated slot, stale or not.
func (b *LocalBackend) Allocated(handle Handle) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lookup(handle) != nil
}

// Close releases all resources.
func (b *LocalBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	for i := range b.entries {
		if b.entries[i].live {
			if d, ok := b.entries[i].value.(Dropper); ok {
				d.Drop()
			}
			b.entries[i].live = false
			b.entries[i].value = nil
		}
	}

	b.entries = nil
	b.freeList = nil
	return nil
}

// Kind returns the kind tag for an allocated handle.
func (b *LocalBackend) Kind(handle Handle) (Kind, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	e := b.lookup(handle)
	if e == nil {
		return 0, false
	}
	return e.kind, true
}

// Len returns the number of allocated resources.
func (b *LocalBackend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, e := range b.entries {
		if e.live {
			count++
		}
	}
	return count
}

// Each iterates over all live, non-stale resources.
func (b *LocalBackend) Each(fn func(Handle, Kind, any) bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for i, e := range b.entries {
		if e.live && !e.stale {
			if !fn(makeHandle(i, e.gen), e.kind, e.value) {
				break
			}
		}
	}
}

// Handles returns every allocated handle, stale ones included.
func (b *LocalBackend) Handles() []Handle {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []Handle
	for i, e := range b.entries {
		if e.live {
			out = append(out, makeHandle(i, e.gen))
		}
	}
	return out
}
