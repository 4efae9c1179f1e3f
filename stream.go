package lldb

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

// Stream is a growable text buffer owned by the library. Descriptions of
// other handles are rendered into it.
type Stream struct {
	lib sys.Library
	h   *handle[sys.StreamRef]
}

// WrapStream takes ownership of raw if the library reports it valid.
func WrapStream(lib sys.Library, raw sys.StreamRef) (*Stream, bool) {
	if !gate(raw, entityStream, lib.StreamIsValid) {
		return nil, false
	}
	return &Stream{lib: lib, h: own(raw, entityStream, lib.DisposeStream)}, true
}

// NewStream creates an empty stream.
func NewStream(lib sys.Library) (*Stream, error) {
	raw := lib.CreateStream()
	s, ok := WrapStream(lib, raw)
	if !ok {
		if raw != 0 {
			lib.DisposeStream(raw)
		}
		return nil, errors.InvalidHandle(errors.PhaseWrap, entityStream, uintptr(raw))
	}
	return s, nil
}

// IsValid re-queries the library.
func (s *Stream) IsValid() bool {
	return s.h.valid(s.lib.StreamIsValid)
}

// Data returns a copy of the stream contents.
func (s *Stream) Data() string {
	return callText(s.h, "data", s.lib.StreamGetData)
}

// Len returns the size of the contents in bytes.
func (s *Stream) Len() int {
	return int(call(s.h, "size", s.lib.StreamGetSize))
}

// Clear empties the stream.
func (s *Stream) Clear() {
	call(s.h, "clear", func(raw sys.StreamRef) struct{} {
		s.lib.StreamClear(raw)
		return struct{}{}
	})
}

// Close releases the stream.
func (s *Stream) Close() error {
	s.h.release()
	return nil
}

// describe renders a handle's description through a temporary stream.
func describe[R sys.Ref](lib sys.Library, h *handle[R], fn func(R, sys.StreamRef) bool) string {
	s, err := NewStream(lib)
	if err != nil {
		Logger().Warn("cannot render description",
			zap.String("entity", h.entity),
			zap.Error(err))
		return ""
	}
	defer s.Close()

	call(h, "description", func(raw R) bool {
		return call(s.h, "description", func(sr sys.StreamRef) bool {
			return fn(raw, sr)
		})
	})
	return s.Data()
}

// render formats a description the way String methods report it.
func render[R sys.Ref](lib sys.Library, h *handle[R], fn func(R, sys.StreamRef) bool) string {
	if h.closed() {
		return fmt.Sprintf("%s { <closed> }", h.entity)
	}
	return fmt.Sprintf("%s { %s }", h.entity, describe(lib, h, fn))
}
