package lldb

import (
	"github.com/wippyai/lldb-go/sys"
)

// InvalidAddress is reported for addresses that cannot be resolved.
const InvalidAddress = ^uint64(0)

// Address is a section-relative location in a module.
type Address struct {
	lib sys.Library
	h   *handle[sys.AddressRef]
}

// WrapAddress takes ownership of raw if the library reports it valid.
func WrapAddress(lib sys.Library, raw sys.AddressRef) (*Address, bool) {
	if !gate(raw, entityAddress, lib.AddressIsValid) {
		return nil, false
	}
	return &Address{lib: lib, h: own(raw, entityAddress, lib.DisposeAddress)}, true
}

// IsValid re-queries the library.
func (a *Address) IsValid() bool {
	return a.h.valid(a.lib.AddressIsValid)
}

// FileAddress returns the address as laid out in the object file.
func (a *Address) FileAddress() uint64 {
	return call(a.h, "file_address", a.lib.AddressGetFileAddress)
}

// LoadAddress returns the address in t's address space, or InvalidAddress
// when t does not load the containing module.
func (a *Address) LoadAddress(t *Target) uint64 {
	return call(a.h, "load_address", func(raw sys.AddressRef) uint64 {
		return withTarget(t, "load_address", func(tr sys.TargetRef) uint64 {
			return a.lib.AddressGetLoadAddress(raw, tr)
		})
	})
}

// Clone returns an independent copy owned by the caller.
func (a *Address) Clone() (*Address, bool) {
	return WrapAddress(a.lib, call(a.h, "clone", a.lib.CloneAddress))
}

// Description returns the library's rendering of the address.
func (a *Address) Description() string {
	return describe(a.lib, a.h, a.lib.AddressGetDescription)
}

// String implements fmt.Stringer.
func (a *Address) String() string {
	return render(a.lib, a.h, a.lib.AddressGetDescription)
}

// Close releases the address. It is safe to call more than once.
func (a *Address) Close() error {
	a.h.release()
	return nil
}
