package lldb

import (
	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

// Broadcaster is a source of events.
type Broadcaster struct {
	lib sys.Library
	h   *handle[sys.BroadcasterRef]
}

// WrapBroadcaster takes ownership of raw if the library reports it valid.
func WrapBroadcaster(lib sys.Library, raw sys.BroadcasterRef) (*Broadcaster, bool) {
	if !gate(raw, entityBroadcaster, lib.BroadcasterIsValid) {
		return nil, false
	}
	return &Broadcaster{lib: lib, h: own(raw, entityBroadcaster, lib.DisposeBroadcaster)}, true
}

// NewBroadcaster creates a broadcaster with the given name and class.
func NewBroadcaster(lib sys.Library, name, class string) (*Broadcaster, error) {
	raw := lib.CreateBroadcaster(name, class)
	b, ok := WrapBroadcaster(lib, raw)
	if !ok {
		if raw != 0 {
			lib.DisposeBroadcaster(raw)
		}
		return nil, errors.InvalidHandle(errors.PhaseWrap, entityBroadcaster, uintptr(raw))
	}
	return b, nil
}

// IsValid re-queries the library.
func (b *Broadcaster) IsValid() bool {
	return b.h.valid(b.lib.BroadcasterIsValid)
}

// Name returns the broadcaster's name.
func (b *Broadcaster) Name() string {
	return callText(b.h, "name", b.lib.BroadcasterGetName)
}

// Equal reports whether both wrappers refer to the same broadcaster.
func (b *Broadcaster) Equal(other *Broadcaster) bool {
	requireArg(other != nil, entityBroadcaster, "is_equal")
	if other == b {
		return !b.h.closed()
	}
	return call(b.h, "is_equal", func(raw sys.BroadcasterRef) bool {
		return call(other.h, "is_equal", func(o sys.BroadcasterRef) bool {
			return b.lib.BroadcasterIsEqual(raw, o)
		})
	})
}

// BroadcastEvent marks e as sent by b.
func (b *Broadcaster) BroadcastEvent(e *Event) bool {
	requireArg(e != nil, entityBroadcaster, "broadcast_event")
	return call(b.h, "broadcast_event", func(raw sys.BroadcasterRef) bool {
		return call(e.h, "broadcast_event", func(er sys.EventRef) bool {
			return b.lib.BroadcasterBroadcastEvent(raw, er)
		})
	})
}

// Clone returns an independent copy owned by the caller.
func (b *Broadcaster) Clone() (*Broadcaster, bool) {
	return WrapBroadcaster(b.lib, call(b.h, "clone", b.lib.CloneBroadcaster))
}

// String implements fmt.Stringer.
func (b *Broadcaster) String() string {
	if b.h.closed() {
		return entityBroadcaster + " { <closed> }"
	}
	return entityBroadcaster + " { " + b.Name() + " }"
}

// Close releases the broadcaster. It is safe to call more than once.
func (b *Broadcaster) Close() error {
	b.h.release()
	return nil
}
