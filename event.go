package lldb

import (
	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

// Event is a single broadcast notification.
type Event struct {
	lib sys.Library
	h   *handle[sys.EventRef]
}

// WrapEvent takes ownership of raw if the library reports it valid.
// An invalid raw yields (nil, false) and is left untouched.
func WrapEvent(lib sys.Library, raw sys.EventRef) (*Event, bool) {
	if !gate(raw, entityEvent, lib.EventIsValid) {
		return nil, false
	}
	return &Event{lib: lib, h: own(raw, entityEvent, lib.DisposeEvent)}, true
}

// NewEvent creates an event of the given type and data flavor.
func NewEvent(lib sys.Library, eventType uint32, flavor string) (*Event, error) {
	raw := lib.CreateEvent(eventType, flavor)
	e, ok := WrapEvent(lib, raw)
	if !ok {
		if raw != 0 {
			lib.DisposeEvent(raw)
		}
		return nil, errors.InvalidHandle(errors.PhaseWrap, entityEvent, uintptr(raw))
	}
	return e, nil
}

// IsValid re-queries the library.
func (e *Event) IsValid() bool {
	return e.h.valid(e.lib.EventIsValid)
}

// DataFlavor names the kind of data the event carries.
func (e *Event) DataFlavor() string {
	return callText(e.h, "data_flavor", e.lib.EventGetDataFlavor)
}

// EventType returns the broadcaster-specific event type bits.
func (e *Event) EventType() uint32 {
	return call(e.h, "event_type", e.lib.EventGetType)
}

// Broadcaster returns the broadcaster that sent the event, if any.
func (e *Event) Broadcaster() (*Broadcaster, bool) {
	raw := call(e.h, "broadcaster", e.lib.EventGetBroadcaster)
	return WrapBroadcaster(e.lib, raw)
}

// BroadcasterClass returns the class name of the sending broadcaster.
func (e *Event) BroadcasterClass() string {
	return callText(e.h, "broadcaster_class", e.lib.EventGetBroadcasterClass)
}

// BroadcasterMatches reports whether b is the broadcaster that sent the
// event. Identity is decided by the library, not by comparing names.
func (e *Event) BroadcasterMatches(b *Broadcaster) bool {
	requireArg(b != nil, entityEvent, "broadcaster_matches")
	return call(e.h, "broadcaster_matches", func(raw sys.EventRef) bool {
		return call(b.h, "broadcaster_matches", func(br sys.BroadcasterRef) bool {
			return e.lib.EventBroadcasterMatchesRef(raw, br)
		})
	})
}

// Clone returns an independent copy owned by the caller.
func (e *Event) Clone() (*Event, bool) {
	return WrapEvent(e.lib, call(e.h, "clone", e.lib.CloneEvent))
}

// Description returns the library's rendering of the event.
func (e *Event) Description() string {
	return describe(e.lib, e.h, e.lib.EventGetDescription)
}

// String implements fmt.Stringer.
func (e *Event) String() string {
	return render(e.lib, e.h, e.lib.EventGetDescription)
}

// Close releases the event. It is safe to call more than once.
func (e *Event) Close() error {
	e.h.release()
	return nil
}
