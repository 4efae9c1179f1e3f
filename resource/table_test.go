package resource

import (
	"testing"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

func (o *testObserver) count(typ EventType, h Handle) int {
	n := 0
	for _, e := range o.events {
		if e.Type == typ && e.Handle == h {
			n++
		}
	}
	return n
}

func TestUnifiedTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if _, ok = table.GetTyped(h, 1); !ok {
		t.Fatal("GetTyped with correct kind failed")
	}
	if _, ok = table.GetTyped(h, 2); ok {
		t.Fatal("GetTyped with wrong kind should fail")
	}

	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestUnifiedTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(1, "test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated {
		t.Fatal("Expected EventCreated")
	}
	if obs.events[0].Handle != h {
		t.Fatal("Wrong handle in event")
	}

	table.Invalidate(h)
	if obs.count(EventInvalidated, h) != 1 {
		t.Fatal("Expected EventInvalidated")
	}

	table.Remove(h)
	if obs.count(EventDropped, h) != 1 {
		t.Fatal("Expected EventDropped")
	}

	table.Remove(h)
	if obs.count(EventRejected, h) != 1 {
		t.Fatal("Expected EventRejected for a second Remove")
	}
	if table.Rejected() != 1 {
		t.Fatalf("Expected Rejected() == 1, got %d", table.Rejected())
	}

	table.Unsubscribe(obs)
	n := len(obs.events)
	table.Insert(1, "test2")
	if len(obs.events) != n {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestUnifiedTable_RemoveTyped(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "event")
	if _, ok := table.RemoveTyped(h, 2); ok {
		t.Fatal("RemoveTyped with wrong kind should fail")
	}
	if _, ok := table.Get(h); !ok {
		t.Fatal("Wrong-kind removal must leave the resource alone")
	}
	if _, ok := table.RemoveTyped(h, 1); !ok {
		t.Fatal("RemoveTyped with correct kind failed")
	}
}

type validity struct{ ok bool }

func (v *validity) Valid() bool { return v.ok }

func TestUnifiedTable_Valid(t *testing.T) {
	table := NewTable()
	v := &validity{ok: true}

	h := table.Insert(1, v)
	if !table.Valid(h, 1) {
		t.Fatal("Expected handle to be valid")
	}
	if table.Valid(h, 2) {
		t.Fatal("Wrong kind should not be valid")
	}

	v.ok = false
	if table.Valid(h, 1) {
		t.Fatal("Validator reporting false should make the handle invalid")
	}

	v.ok = true
	table.Invalidate(h)
	if table.Valid(h, 1) {
		t.Fatal("Stale handle should not be valid")
	}
}

func TestUnifiedTable_Clear(t *testing.T) {
	table := NewTable()

	table.Insert(1, "a")
	h := table.Insert(1, "b")
	table.Insert(1, "c")
	table.Invalidate(h)

	if table.Len() != 3 {
		t.Fatal("Expected Len() == 3")
	}

	table.Clear()

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Clear")
	}
}

func TestUnifiedTable_Close(t *testing.T) {
	table := NewTable()

	table.Insert(1, "a")
	table.Insert(1, "b")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if h := table.Insert(1, "c"); h != 0 {
		t.Fatal("Expected Insert to fail after Close")
	}
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestUnifiedTable_DropperInterface(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, d)
	table.Remove(h)
	table.Remove(h)

	if d.count != 1 {
		t.Fatalf("Expected Drop to be called once, got %d", d.count)
	}
}

func TestTyped(t *testing.T) {
	table := NewTable()
	strs := NewTyped[string](table, 1)
	ints := NewTyped[int](table, 2)

	hs := strs.Insert("hello")
	hi := ints.Insert(42)

	if v, ok := strs.Get(hs); !ok || v != "hello" {
		t.Fatalf("Expected 'hello', got %q (ok=%v)", v, ok)
	}
	if _, ok := strs.Get(hi); ok {
		t.Fatal("String view must not resolve an int handle")
	}
	if _, ok := ints.Remove(hs); ok {
		t.Fatal("Int view must not remove a string handle")
	}

	if strs.Len() != 1 || ints.Len() != 1 {
		t.Fatalf("Expected one of each, got %d strings and %d ints", strs.Len(), ints.Len())
	}

	seen := 0
	ints.Each(func(h Handle, v int) bool {
		seen++
		if v != 42 {
			t.Errorf("Expected 42, got %d", v)
		}
		return true
	})
	if seen != 1 {
		t.Fatalf("Expected Each to visit 1 value, got %d", seen)
	}

	if v, ok := ints.Remove(hi); !ok || v != 42 {
		t.Fatalf("Remove = %d, %v", v, ok)
	}
	if ints.Valid(hi) {
		t.Fatal("Removed handle should not be valid")
	}
}
