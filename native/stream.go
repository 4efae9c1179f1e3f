package native

import (
	"sync"

	"github.com/wippyai/lldb-go/sys"
)

type stream struct {
	mu  sync.Mutex
	buf []byte
}

// Write appends p to the stream.
func (s *stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = append(s.buf, p...)
	return len(p), nil
}

func (s *stream) snapshot() cstr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newCStr(string(s.buf))
}

func (s *stream) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buf)
}

func (s *stream) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf = s.buf[:0]
}

// CreateStream creates an empty stream.
func (l *Library) CreateStream() sys.StreamRef {
	return insert[sys.StreamRef](l.streams, &stream{})
}

func (l *Library) StreamIsValid(s sys.StreamRef) bool {
	return isValid(l.streams, s)
}

func (l *Library) DisposeStream(s sys.StreamRef) {
	l.dispose(uintptr(s), KindStream)
}

// StreamGetData returns a copy of the contents taken at the time of the call.
func (l *Library) StreamGetData(s sys.StreamRef) sys.CString {
	st, ok := lookup(l.streams, s)
	if !ok {
		return nil
	}
	return st.snapshot().ptr()
}

func (l *Library) StreamGetSize(s sys.StreamRef) uint64 {
	st, ok := lookup(l.streams, s)
	if !ok {
		return 0
	}
	return uint64(st.size())
}

func (l *Library) StreamClear(s sys.StreamRef) {
	if st, ok := lookup(l.streams, s); ok {
		st.reset()
	}
}
