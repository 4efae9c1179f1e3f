package native

import (
	"fmt"

	"github.com/wippyai/lldb-go/sys"
)

// InvalidAddress is reported for addresses that cannot be resolved.
const InvalidAddress = ^uint64(0)

// address is a file address, optionally inside a section of an image.
type address struct {
	file    uint64
	img     *image
	section *section
}

func (a *address) loadAddress(t *target) uint64 {
	if a.img == nil {
		return a.file
	}
	if t == nil || t.img != a.img {
		return InvalidAddress
	}
	return a.file
}

func (l *Library) newAddressRef(a *address) sys.AddressRef {
	return insert[sys.AddressRef](l.addresses, a)
}

func (l *Library) AddressIsValid(a sys.AddressRef) bool {
	return isValid(l.addresses, a)
}

func (l *Library) CloneAddress(a sys.AddressRef) sys.AddressRef {
	ad, ok := lookup(l.addresses, a)
	if !ok {
		return 0
	}
	return l.newAddressRef(ad)
}

func (l *Library) DisposeAddress(a sys.AddressRef) {
	l.dispose(uintptr(a), KindAddress)
}

func (l *Library) AddressGetDescription(a sys.AddressRef, s sys.StreamRef) bool {
	ad, ok := lookup(l.addresses, a)
	if !ok {
		return false
	}
	st, ok := lookup(l.streams, s)
	if !ok {
		return false
	}
	if ad.section == nil {
		fmt.Fprintf(st, "0x%016x", ad.file)
		return true
	}
	fmt.Fprintf(st, "%s[0x%016x]", ad.section.name, ad.file)
	if sym, ok := ad.img.symbolize(ad.file); ok {
		fmt.Fprintf(st, " (%s)", sym)
	}
	return true
}

func (l *Library) AddressGetFileAddress(a sys.AddressRef) uint64 {
	ad, ok := lookup(l.addresses, a)
	if !ok {
		return InvalidAddress
	}
	return ad.file
}

// AddressGetLoadAddress returns the address in t, or InvalidAddress when t
// does not contain the address's image. Absolute addresses load anywhere.
func (l *Library) AddressGetLoadAddress(a sys.AddressRef, t sys.TargetRef) uint64 {
	ad, ok := lookup(l.addresses, a)
	if !ok {
		return InvalidAddress
	}
	tg, _ := lookup(l.targets, t)
	return ad.loadAddress(tg)
}
