package lldb

import (
	"testing"
	"unsafe"

	"github.com/wippyai/lldb-go/errors"
)

func ptr(b []byte) unsafe.Pointer {
	return unsafe.Pointer(&b[0])
}

func TestText(t *testing.T) {
	tests := []struct {
		name string
		buf  []byte
		want string
	}{
		{"empty", []byte{0}, ""},
		{"ascii", []byte("StateChanged\x00"), "StateChanged"},
		{"utf8", []byte("größe\x00"), "größe"},
		{"stops at first nul", []byte("ab\x00cd\x00"), "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text(ptr(tt.buf), entityEvent, "data_flavor"); got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestText_Copies(t *testing.T) {
	buf := []byte("abc\x00")
	s := text(ptr(buf), entityEvent, "data_flavor")
	buf[0] = 'x'
	if s != "abc" {
		t.Errorf("text aliases the foreign buffer: %q", s)
	}
}

func TestText_ContractViolations(t *testing.T) {
	tests := []struct {
		name string
		p    unsafe.Pointer
		kind errors.Kind
	}{
		{"nil", nil, errors.KindNilPointer},
		{"invalid utf8", ptr([]byte{'o', 0xff, 'k', 0}), errors.KindInvalidUTF8},
		{"truncated sequence", ptr([]byte{0xe2, 0x82, 0}), errors.KindInvalidUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := mustPanic(t, func() { text(tt.p, entityEvent, "data_flavor") })
			if k := panicKind(t, v); k != tt.kind {
				t.Errorf("kind = %s, want %s", k, tt.kind)
			}
			if !errors.IsContractViolation(v) {
				t.Error("expected a contract violation")
			}
		})
	}
}

func TestText_Unterminated(t *testing.T) {
	buf := make([]byte, maxText+1)
	for i := range buf[:maxText] {
		buf[i] = 'a'
	}
	v := mustPanic(t, func() { text(ptr(buf), entityStream, "data") })
	if k := panicKind(t, v); k != errors.KindInvalidData {
		t.Errorf("kind = %s", k)
	}
}
