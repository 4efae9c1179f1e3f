package lldb

import (
	"unicode/utf8"
	"unsafe"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

// maxText bounds the terminator scan.
const maxText = 1 << 20

// text copies a NUL-terminated library buffer into a Go string. The buffer
// stays owned by the library. nil, unterminated or non-UTF-8 buffers panic
// with a marshal error.
func text(p sys.CString, entity, field string) string {
	b := cbytes(p, entity, field)
	if !utf8.Valid(b) {
		panic(errors.InvalidUTF8(entity, field, b))
	}
	return string(b)
}

// cbytes returns a view of the buffer up to, not including, the NUL.
func cbytes(p sys.CString, entity, field string) []byte {
	if p == nil {
		panic(errors.NilText(entity, field))
	}
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
		if n == maxText {
			panic(errors.New(errors.PhaseMarshal, errors.KindInvalidData).
				Entity(entity).
				Field(field).
				Detail("no terminator within %d bytes", maxText).
				Build())
		}
	}
	return unsafe.Slice((*byte)(p), n)
}
