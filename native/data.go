package native

import (
	"fmt"

	"github.com/wippyai/lldb-go/sys"
)

type data struct {
	bytes []byte
}

func (l *Library) newDataRef(b []byte) sys.DataRef {
	return insert[sys.DataRef](l.datas, &data{bytes: append([]byte(nil), b...)})
}

func (l *Library) DataIsValid(d sys.DataRef) bool {
	return isValid(l.datas, d)
}

func (l *Library) CloneData(d sys.DataRef) sys.DataRef {
	dt, ok := lookup(l.datas, d)
	if !ok {
		return 0
	}
	return insert[sys.DataRef](l.datas, dt)
}

func (l *Library) DisposeData(d sys.DataRef) {
	l.dispose(uintptr(d), KindData)
}

func (l *Library) DataGetDescription(d sys.DataRef, s sys.StreamRef) bool {
	dt, ok := lookup(l.datas, d)
	if !ok {
		return false
	}
	st, ok := lookup(l.streams, s)
	if !ok {
		return false
	}
	fmt.Fprintf(st, "% x", dt.bytes)
	return true
}

func (l *Library) DataGetByteSize(d sys.DataRef) uint64 {
	dt, ok := lookup(l.datas, d)
	if !ok {
		return 0
	}
	return uint64(len(dt.bytes))
}

// DataReadRawData copies bytes starting at offset into buf and returns the
// number copied.
func (l *Library) DataReadRawData(d sys.DataRef, offset uint64, buf []byte) int {
	dt, ok := lookup(l.datas, d)
	if !ok || offset >= uint64(len(dt.bytes)) {
		return 0
	}
	return copy(buf, dt.bytes[offset:])
}
