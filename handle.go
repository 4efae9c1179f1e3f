package lldb

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

// Entity names used in logs and errors.
const (
	entityEvent           = "SBEvent"
	entityBroadcaster     = "SBBroadcaster"
	entityInstruction     = "SBInstruction"
	entityInstructionList = "SBInstructionList"
	entityProcessInfo     = "SBProcessInfo"
	entityAddress         = "SBAddress"
	entityFileSpec        = "SBFileSpec"
	entityTarget          = "SBTarget"
	entityData            = "SBData"
	entityStream          = "SBStream"
)

// handle owns one foreign reference. The read lock is held for the duration
// of every foreign call made with raw; release takes the write lock.
type handle[R sys.Ref] struct {
	mu       sync.RWMutex
	raw      R
	entity   string
	dispose  func(R)
	cleanup  runtime.Cleanup
	released bool
}

// own takes ownership of raw. raw must already have passed the validity gate.
func own[R sys.Ref](raw R, entity string, dispose func(R)) *handle[R] {
	h := &handle[R]{raw: raw, entity: entity, dispose: dispose}
	h.cleanup = runtime.AddCleanup(h, func(raw R) {
		Logger().Debug("releasing unreachable handle",
			zap.String("entity", entity),
			zap.Uintptr("raw", uintptr(raw)))
		dispose(raw)
	}, raw)
	return h
}

// gate reports whether raw may be wrapped.
func gate[R sys.Ref](raw R, entity string, valid func(R) bool) bool {
	if valid(raw) {
		return true
	}
	Logger().Debug("rejected invalid handle",
		zap.String("entity", entity),
		zap.Uintptr("raw", uintptr(raw)))
	return false
}

// release disposes the reference once. It reports whether this call did it.
func (h *handle[R]) release() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return false
	}
	h.released = true
	h.cleanup.Stop()
	h.dispose(h.raw)
	return true
}

// valid re-queries the library unless the handle was released.
func (h *handle[R]) valid(fn func(R) bool) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.released {
		return false
	}
	return fn(h.raw)
}

// closed reports whether release already ran.
func (h *handle[R]) closed() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.released
}

// call runs fn with the owned reference. Calls through a released handle
// panic with a use-after-close error.
func call[R sys.Ref, T any](h *handle[R], field string, fn func(R) T) T {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.released {
		panic(errors.UseAfterClose(h.entity, field))
	}
	return fn(h.raw)
}

// callText is call for accessors returning foreign text.
func callText[R sys.Ref](h *handle[R], field string, fn func(R) sys.CString) string {
	return call(h, field, func(raw R) string {
		return text(fn(raw), h.entity, field)
	})
}

// requireArg panics with a nil-argument error unless present is true.
func requireArg(present bool, entity, field string) {
	if !present {
		panic(errors.NilArgument(entity, field))
	}
}

// withTarget runs fn with the target's reference, or the zero reference when
// t is nil. The target's read lock is held for the duration of fn.
func withTarget[T any](t *Target, field string, fn func(sys.TargetRef) T) T {
	if t == nil {
		return fn(0)
	}
	return call(t.h, field, fn)
}
