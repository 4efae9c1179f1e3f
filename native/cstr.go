package native

import (
	"unsafe"

	"github.com/wippyai/lldb-go/sys"
)

// cstr is a NUL-terminated byte buffer. Once handed out it is never written.
type cstr []byte

func newCStr(s string) cstr {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}

func (c cstr) ptr() sys.CString {
	if len(c) == 0 {
		return nil
	}
	return unsafe.Pointer(&c[0])
}

func (c cstr) String() string {
	if len(c) == 0 {
		return ""
	}
	return string(c[:len(c)-1])
}

var emptyCStr = newCStr("")
