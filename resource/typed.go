package resource

// Typed is a TypedTable view over a UnifiedTable restricted to one kind.
type Typed[T any] struct {
	table *UnifiedTable
	kind  Kind
}

var _ TypedTable[int] = (*Typed[int])(nil)

// NewTyped returns a view of table that only stores and resolves values of kind.
func NewTyped[T any](table *UnifiedTable, kind Kind) *Typed[T] {
	return &Typed[T]{table: table, kind: kind}
}

// Kind returns the kind tag of this view.
func (t *Typed[T]) Kind() Kind {
	return t.kind
}

// Insert adds a value and returns its handle.
func (t *Typed[T]) Insert(value T) Handle {
	return t.table.Insert(t.kind, value)
}

// Get retrieves a live value by handle.
func (t *Typed[T]) Get(handle Handle) (T, bool) {
	var zero T
	v, ok := t.table.GetTyped(handle, t.kind)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Valid reports whether handle resolves to a live value of this kind.
func (t *Typed[T]) Valid(handle Handle) bool {
	return t.table.Valid(handle, t.kind)
}

// Remove frees a resource and returns (value, true) if found.
func (t *Typed[T]) Remove(handle Handle) (T, bool) {
	var zero T
	v, ok := t.table.RemoveTyped(handle, t.kind)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Len returns the number of allocated resources of this kind.
func (t *Typed[T]) Len() int {
	count := 0
	for _, h := range t.table.backend.Handles() {
		if k, ok := t.table.backend.Kind(h); ok && k == t.kind {
			count++
		}
	}
	return count
}

// Each iterates over all live resources of this kind.
func (t *Typed[T]) Each(fn func(Handle, T) bool) {
	t.table.Each(func(h Handle, k Kind, v any) bool {
		if k != t.kind {
			return true
		}
		typed, ok := v.(T)
		if !ok {
			return true
		}
		return fn(h, typed)
	})
}
