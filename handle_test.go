package lldb

import (
	stderrors "errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/native"
	"github.com/wippyai/lldb-go/resource"
	"github.com/wippyai/lldb-go/sys"
)

type disposeCounter struct {
	mu       sync.Mutex
	dropped  map[resource.Kind]int
	rejected int
}

func (c *disposeCounter) OnResourceEvent(e resource.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch e.Type {
	case resource.EventDropped:
		c.dropped[e.Kind]++
	case resource.EventRejected:
		c.rejected++
	}
}

func (c *disposeCounter) drops(k resource.Kind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped[k]
}

func newLibrary(t *testing.T) (*native.Library, *disposeCounter) {
	t.Helper()
	lib := native.New(native.Options{})
	c := &disposeCounter{dropped: make(map[resource.Kind]int)}
	lib.Subscribe(c)
	t.Cleanup(func() {
		if n := lib.Rejected(); n != 0 {
			t.Errorf("library rejected %d disposes", n)
		}
		lib.Close()
	})
	return lib, c
}

// mustPanic runs fn and returns the recovered value.
func mustPanic(t *testing.T, fn func()) (v any) {
	t.Helper()
	defer func() {
		v = recover()
		if v == nil {
			t.Fatal("expected panic")
		}
	}()
	fn()
	return nil
}

func panicKind(t *testing.T, v any) errors.Kind {
	t.Helper()
	var e *errors.Error
	err, ok := v.(error)
	if !ok || !stderrors.As(err, &e) {
		t.Fatalf("panic value %v is not *errors.Error", v)
	}
	return e.Kind
}

func TestGate_InvalidIssuesNoDispose(t *testing.T) {
	lib, c := newLibrary(t)

	if e, ok := WrapEvent(lib, 0); ok || e != nil {
		t.Fatal("null handle should not wrap")
	}
	if _, ok := WrapEvent(lib, sys.EventRef(12345)); ok {
		t.Fatal("unknown handle should not wrap")
	}

	raw := lib.CreateEvent(1, "x")
	lib.Invalidate(uintptr(raw))
	if _, ok := WrapEvent(lib, raw); ok {
		t.Fatal("invalidated handle should not wrap")
	}
	if n := c.drops(native.KindEvent); n != 0 {
		t.Fatalf("gate issued %d disposes", n)
	}
	lib.DisposeEvent(raw)
}

func TestClose_DisposesExactlyOnce(t *testing.T) {
	lib, c := newLibrary(t)

	e, err := NewEvent(lib, 1, "StateChanged")
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if !e.h.release() {
		t.Fatal("first release should dispose")
	}
	if e.h.release() {
		t.Fatal("second release should be a no-op")
	}
	e.Close()
	if n := c.drops(native.KindEvent); n != 1 {
		t.Errorf("disposed %d times, want 1", n)
	}
	if lib.Live() != 0 {
		t.Errorf("Live = %d", lib.Live())
	}
}

// dropEvent creates an event and lets the wrapper become unreachable.
//
//go:noinline
func dropEvent(t *testing.T, lib *native.Library) {
	t.Helper()
	if _, err := NewEvent(lib, 1, "dropped"); err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
}

func TestCleanup_ReleasesUnreachable(t *testing.T) {
	lib, c := newLibrary(t)

	dropEvent(t, lib)
	closed, err := NewEvent(lib, 2, "closed")
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	closed.Close()

	deadline := time.Now().Add(5 * time.Second)
	for lib.Live() != 0 && time.Now().Before(deadline) {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
	if n := lib.Live(); n != 0 {
		t.Fatalf("Live = %d after GC, want 0", n)
	}

	// A closed wrapper going out of scope must not dispose again.
	runtime.KeepAlive(closed)
	for i := 0; i < 3; i++ {
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
	if n := c.drops(native.KindEvent); n != 2 {
		t.Errorf("dropped %d events, want 2", n)
	}
	if n := lib.Rejected(); n != 0 {
		t.Errorf("Rejected = %d, want 0", n)
	}
}

func TestUseAfterClose(t *testing.T) {
	lib, _ := newLibrary(t)

	e, _ := NewEvent(lib, 1, "StateChanged")
	e.Close()

	if e.IsValid() {
		t.Error("closed wrapper should report invalid")
	}
	v := mustPanic(t, func() { e.DataFlavor() })
	if panicKind(t, v) != errors.KindUseAfterClose {
		t.Errorf("panic = %v", v)
	}
	if !errors.IsContractViolation(v) {
		t.Error("use after close is a contract violation")
	}
	if got := e.String(); got != "SBEvent { <closed> }" {
		t.Errorf("String = %q", got)
	}
	mustPanic(t, func() { e.Clone() })
}

func TestConcurrentAccess(t *testing.T) {
	lib, c := newLibrary(t)

	e, _ := NewEvent(lib, 3, "StateChanged")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				if e.DataFlavor() != "StateChanged" || e.EventType() != 3 {
					t.Error("inconsistent read")
					return
				}
			}
		}()
	}
	wg.Wait()

	var closers sync.WaitGroup
	for i := 0; i < 4; i++ {
		closers.Add(1)
		go func() {
			defer closers.Done()
			e.Close()
		}()
	}
	closers.Wait()
	if n := c.drops(native.KindEvent); n != 1 {
		t.Errorf("concurrent Close disposed %d times", n)
	}
}

func TestLogger(t *testing.T) {
	if Logger() == nil {
		t.Fatal("default logger should not be nil")
	}
	SetLogger(nil)
	if Logger() == nil {
		t.Fatal("SetLogger(nil) should restore the no-op logger")
	}
}

func TestNilArguments(t *testing.T) {
	lib, _ := newLibrary(t)

	b, _ := NewBroadcaster(lib, "lldb.process", "lldb.process")
	defer b.Close()
	e, _ := NewEvent(lib, 1, "StateChanged")
	defer e.Close()
	tg := newImageTarget(t, lib, arm64Image, FlavorDefault)

	tests := []struct {
		name string
		fn   func()
	}{
		{"Event.BroadcasterMatches", func() { e.BroadcasterMatches(nil) }},
		{"Broadcaster.Equal", func() { b.Equal(nil) }},
		{"Broadcaster.BroadcastEvent", func() { b.BroadcastEvent(nil) }},
		{"Target.ReadInstructions", func() { tg.ReadInstructions(nil, 1, FlavorDefault) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustPanic(t, tt.fn)
			if panicKind(t, v) != errors.KindNilPointer {
				t.Errorf("panic = %v", v)
			}
			if !errors.IsContractViolation(v) {
				t.Error("nil argument should be a contract violation")
			}
		})
	}
}

// rejectStreams hands out streams it then reports invalid.
type rejectStreams struct {
	*native.Library
}

func (rejectStreams) StreamIsValid(sys.StreamRef) bool {
	return false
}

func TestNewStream_DisposesRejected(t *testing.T) {
	lib, c := newLibrary(t)
	bad := rejectStreams{lib}

	if _, err := NewStream(bad); err == nil {
		t.Fatal("expected error for a rejected stream")
	}
	if n := c.drops(native.KindStream); n != 1 {
		t.Errorf("disposed %d streams, want 1", n)
	}

	core, logs := observer.New(zap.WarnLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	e, _ := NewEvent(bad, 1, "StateChanged")
	defer e.Close()
	if got := e.Description(); got != "" {
		t.Errorf("Description = %q, want empty", got)
	}
	if logs.FilterMessage("cannot render description").Len() != 1 {
		t.Errorf("logged %v", logs.All())
	}
	if n := lib.LiveOf(native.KindStream); n != 0 {
		t.Errorf("%d streams still live", n)
	}
}
