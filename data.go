package lldb

import (
	"github.com/wippyai/lldb-go/sys"
)

// Data is a library-owned byte buffer.
type Data struct {
	lib sys.Library
	h   *handle[sys.DataRef]
}

// WrapData takes ownership of raw if the library reports it valid.
func WrapData(lib sys.Library, raw sys.DataRef) (*Data, bool) {
	if !gate(raw, entityData, lib.DataIsValid) {
		return nil, false
	}
	return &Data{lib: lib, h: own(raw, entityData, lib.DisposeData)}, true
}

// IsValid re-queries the library.
func (d *Data) IsValid() bool {
	return d.h.valid(d.lib.DataIsValid)
}

// ByteSize returns the buffer length.
func (d *Data) ByteSize() int {
	return int(call(d.h, "byte_size", d.lib.DataGetByteSize))
}

// Bytes returns a copy of the buffer.
func (d *Data) Bytes() []byte {
	return call(d.h, "bytes", func(raw sys.DataRef) []byte {
		buf := make([]byte, d.lib.DataGetByteSize(raw))
		n := d.lib.DataReadRawData(raw, 0, buf)
		return buf[:n]
	})
}

// ReadAt copies bytes starting at off into p.
func (d *Data) ReadAt(p []byte, off int64) int {
	if off < 0 {
		return 0
	}
	return call(d.h, "read_raw_data", func(raw sys.DataRef) int {
		return d.lib.DataReadRawData(raw, uint64(off), p)
	})
}

// Clone returns an independent copy owned by the caller.
func (d *Data) Clone() (*Data, bool) {
	return WrapData(d.lib, call(d.h, "clone", d.lib.CloneData))
}

// Description returns the library's rendering of the buffer.
func (d *Data) Description() string {
	return describe(d.lib, d.h, d.lib.DataGetDescription)
}

// String implements fmt.Stringer.
func (d *Data) String() string {
	return render(d.lib, d.h, d.lib.DataGetDescription)
}

// Close releases the buffer. It is safe to call more than once.
func (d *Data) Close() error {
	d.h.release()
	return nil
}
