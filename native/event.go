package native

import (
	"fmt"
	"sync"

	"github.com/wippyai/lldb-go/sys"
)

type event struct {
	typ    uint32
	flavor cstr

	mu     sync.Mutex
	sender *broadcaster
}

func (e *event) broadcaster() *broadcaster {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sender
}

type broadcaster struct {
	name  cstr
	class cstr
}

// CreateEvent creates an event of the given type. flavor names the kind of
// data the event carries and is stored unvalidated.
func (l *Library) CreateEvent(eventType uint32, flavor string) sys.EventRef {
	return insert[sys.EventRef](l.events, &event{typ: eventType, flavor: newCStr(flavor)})
}

func (l *Library) EventIsValid(e sys.EventRef) bool {
	return isValid(l.events, e)
}

func (l *Library) CloneEvent(e sys.EventRef) sys.EventRef {
	ev, ok := lookup(l.events, e)
	if !ok {
		return 0
	}
	return insert[sys.EventRef](l.events, &event{typ: ev.typ, flavor: ev.flavor, sender: ev.broadcaster()})
}

func (l *Library) DisposeEvent(e sys.EventRef) {
	l.dispose(uintptr(e), KindEvent)
}

func (l *Library) EventGetDescription(e sys.EventRef, s sys.StreamRef) bool {
	ev, ok := lookup(l.events, e)
	if !ok {
		return false
	}
	st, ok := lookup(l.streams, s)
	if !ok {
		return false
	}
	fmt.Fprintf(st, "%p Event: type = 0x%08x, flavor = %s", ev, ev.typ, ev.flavor)
	if b := ev.broadcaster(); b != nil {
		fmt.Fprintf(st, ", broadcaster = %s (%s)", b.name, b.class)
	}
	return true
}

func (l *Library) EventGetDataFlavor(e sys.EventRef) sys.CString {
	ev, ok := lookup(l.events, e)
	if !ok {
		return nil
	}
	return ev.flavor.ptr()
}

func (l *Library) EventGetType(e sys.EventRef) uint32 {
	ev, ok := lookup(l.events, e)
	if !ok {
		return 0
	}
	return ev.typ
}

// EventGetBroadcaster returns a new reference to the event's sender, or 0
// when the event was never broadcast.
func (l *Library) EventGetBroadcaster(e sys.EventRef) sys.BroadcasterRef {
	ev, ok := lookup(l.events, e)
	if !ok {
		return 0
	}
	b := ev.broadcaster()
	if b == nil {
		return 0
	}
	return insert[sys.BroadcasterRef](l.broadcasters, b)
}

func (l *Library) EventGetBroadcasterClass(e sys.EventRef) sys.CString {
	ev, ok := lookup(l.events, e)
	if !ok {
		return nil
	}
	if b := ev.broadcaster(); b != nil {
		return b.class.ptr()
	}
	return emptyCStr.ptr()
}

func (l *Library) EventBroadcasterMatchesRef(e sys.EventRef, b sys.BroadcasterRef) bool {
	ev, ok := lookup(l.events, e)
	if !ok {
		return false
	}
	bc, ok := lookup(l.broadcasters, b)
	if !ok {
		return false
	}
	return ev.broadcaster() == bc
}

// CreateBroadcaster creates an event source.
func (l *Library) CreateBroadcaster(name, class string) sys.BroadcasterRef {
	return insert[sys.BroadcasterRef](l.broadcasters, &broadcaster{name: newCStr(name), class: newCStr(class)})
}

func (l *Library) BroadcasterIsValid(b sys.BroadcasterRef) bool {
	return isValid(l.broadcasters, b)
}

// CloneBroadcaster returns a second reference to the same broadcaster.
func (l *Library) CloneBroadcaster(b sys.BroadcasterRef) sys.BroadcasterRef {
	bc, ok := lookup(l.broadcasters, b)
	if !ok {
		return 0
	}
	return insert[sys.BroadcasterRef](l.broadcasters, bc)
}

func (l *Library) DisposeBroadcaster(b sys.BroadcasterRef) {
	l.dispose(uintptr(b), KindBroadcaster)
}

func (l *Library) BroadcasterGetName(b sys.BroadcasterRef) sys.CString {
	bc, ok := lookup(l.broadcasters, b)
	if !ok {
		return nil
	}
	return bc.name.ptr()
}

func (l *Library) BroadcasterIsEqual(b, other sys.BroadcasterRef) bool {
	x, ok := lookup(l.broadcasters, b)
	if !ok {
		return false
	}
	y, ok := lookup(l.broadcasters, other)
	return ok && x == y
}

// BroadcasterBroadcastEvent records b as the sender of e.
func (l *Library) BroadcasterBroadcastEvent(b sys.BroadcasterRef, e sys.EventRef) bool {
	bc, ok := lookup(l.broadcasters, b)
	if !ok {
		return false
	}
	ev, ok := lookup(l.events, e)
	if !ok {
		return false
	}
	ev.mu.Lock()
	ev.sender = bc
	ev.mu.Unlock()
	return true
}
