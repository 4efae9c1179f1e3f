package lldb

import (
	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

// Disassembly flavors understood by the native library. An empty flavor
// selects the target's default.
const (
	FlavorDefault = ""
	FlavorIntel   = "intel"
	FlavorATT     = "att"
	FlavorPlan9   = "plan9"
)

// Target is a debug target: an executable plus the symbols used to resolve
// addresses and instruction text.
type Target struct {
	lib sys.Library
	h   *handle[sys.TargetRef]
}

// WrapTarget takes ownership of raw if the library reports it valid.
func WrapTarget(lib sys.Library, raw sys.TargetRef) (*Target, bool) {
	if !gate(raw, entityTarget, lib.TargetIsValid) {
		return nil, false
	}
	return &Target{lib: lib, h: own(raw, entityTarget, lib.DisposeTarget)}, true
}

// NewTarget loads the executable at path. flavor sets the default
// disassembly syntax for instructions resolved against this target.
func NewTarget(lib sys.Library, path, flavor string) (*Target, error) {
	raw := lib.CreateTarget(path, flavor)
	t, ok := WrapTarget(lib, raw)
	if !ok {
		if raw != 0 {
			lib.DisposeTarget(raw)
		}
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidHandle).
			Entity(entityTarget).
			Detail("cannot create target for %q", path).
			Build()
	}
	return t, nil
}

// IsValid re-queries the library.
func (t *Target) IsValid() bool {
	return t.h.valid(t.lib.TargetIsValid)
}

// Executable returns the target's main executable.
func (t *Target) Executable() (*FileSpec, bool) {
	return WrapFileSpec(t.lib, call(t.h, "executable", t.lib.TargetGetExecutable))
}

// Triple returns the target triple, e.g. "x86_64-unknown-linux".
func (t *Target) Triple() string {
	return callText(t.h, "triple", t.lib.TargetGetTriple)
}

// ResolveLoadAddress maps a load address to a section-relative address.
func (t *Target) ResolveLoadAddress(addr uint64) (*Address, bool) {
	raw := call(t.h, "resolve_load_address", func(raw sys.TargetRef) sys.AddressRef {
		return t.lib.TargetResolveLoadAddress(raw, addr)
	})
	return WrapAddress(t.lib, raw)
}

// ReadInstructions disassembles up to count instructions starting at addr.
func (t *Target) ReadInstructions(addr *Address, count int, flavor string) (*InstructionList, bool) {
	requireArg(addr != nil, entityTarget, "read_instructions")
	if count <= 0 {
		return nil, false
	}
	raw := call(t.h, "read_instructions", func(raw sys.TargetRef) sys.InstructionListRef {
		return call(addr.h, "read_instructions", func(ar sys.AddressRef) sys.InstructionListRef {
			return t.lib.TargetReadInstructions(raw, ar, uint32(count), flavor)
		})
	})
	return WrapInstructionList(t.lib, raw)
}

// Clone returns an independent copy owned by the caller.
func (t *Target) Clone() (*Target, bool) {
	return WrapTarget(t.lib, call(t.h, "clone", t.lib.CloneTarget))
}

// Description returns the library's rendering of the target.
func (t *Target) Description() string {
	return describe(t.lib, t.h, t.lib.TargetGetDescription)
}

// String implements fmt.Stringer.
func (t *Target) String() string {
	return render(t.lib, t.h, t.lib.TargetGetDescription)
}

// Close releases the target. It is safe to call more than once.
func (t *Target) Close() error {
	t.h.release()
	return nil
}
