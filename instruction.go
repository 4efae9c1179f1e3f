package lldb

import (
	"github.com/wippyai/lldb-go/sys"
)

// Instruction is one decoded machine instruction.
//
// Mnemonic, Operands, Comment and Data resolve symbols against the target
// passed to each call. The instruction keeps no affinity to any target, so
// two targets may legitimately render the same instruction differently.
// A nil target resolves without symbol information.
type Instruction struct {
	lib sys.Library
	h   *handle[sys.InstructionRef]
}

// WrapInstruction takes ownership of raw if the library reports it valid.
func WrapInstruction(lib sys.Library, raw sys.InstructionRef) (*Instruction, bool) {
	if !gate(raw, entityInstruction, lib.InstructionIsValid) {
		return nil, false
	}
	return &Instruction{lib: lib, h: own(raw, entityInstruction, lib.DisposeInstruction)}, true
}

// IsValid re-queries the library.
func (i *Instruction) IsValid() bool {
	return i.h.valid(i.lib.InstructionIsValid)
}

// Address returns the address of the instruction.
func (i *Instruction) Address() (*Address, bool) {
	return WrapAddress(i.lib, call(i.h, "address", i.lib.InstructionGetAddress))
}

func (i *Instruction) targetText(t *Target, field string, fn func(sys.InstructionRef, sys.TargetRef) sys.CString) string {
	return call(i.h, field, func(raw sys.InstructionRef) string {
		return withTarget(t, field, func(tr sys.TargetRef) string {
			return text(fn(raw, tr), entityInstruction, field)
		})
	})
}

// Mnemonic returns the opcode text, e.g. "mov".
func (i *Instruction) Mnemonic(t *Target) string {
	return i.targetText(t, "mnemonic", i.lib.InstructionGetMnemonic)
}

// Operands returns the operand text.
func (i *Instruction) Operands(t *Target) string {
	return i.targetText(t, "operands", i.lib.InstructionGetOperands)
}

// Comment returns symbolic annotations, e.g. the name of a branch target.
func (i *Instruction) Comment(t *Target) string {
	return i.targetText(t, "comment", i.lib.InstructionGetComment)
}

// Data returns the raw instruction bytes.
func (i *Instruction) Data(t *Target) (*Data, bool) {
	raw := call(i.h, "data", func(raw sys.InstructionRef) sys.DataRef {
		return withTarget(t, "data", func(tr sys.TargetRef) sys.DataRef {
			return i.lib.InstructionGetData(raw, tr)
		})
	})
	return WrapData(i.lib, raw)
}

// ByteSize returns the encoded length in bytes.
func (i *Instruction) ByteSize() int {
	return int(call(i.h, "byte_size", i.lib.InstructionGetByteSize))
}

// IsBranch reports whether the instruction can change control flow.
func (i *Instruction) IsBranch() bool {
	return call(i.h, "is_branch", i.lib.InstructionDoesBranch)
}

// HasDelaySlot reports whether the following instruction executes before
// the branch takes effect.
func (i *Instruction) HasDelaySlot() bool {
	return call(i.h, "has_delay_slot", i.lib.InstructionHasDelaySlot)
}

// Clone returns an independent copy owned by the caller.
func (i *Instruction) Clone() (*Instruction, bool) {
	return WrapInstruction(i.lib, call(i.h, "clone", i.lib.CloneInstruction))
}

// Description returns the library's rendering of the instruction.
func (i *Instruction) Description() string {
	return describe(i.lib, i.h, i.lib.InstructionGetDescription)
}

// String implements fmt.Stringer.
func (i *Instruction) String() string {
	return render(i.lib, i.h, i.lib.InstructionGetDescription)
}

// Close releases the instruction. It is safe to call more than once.
func (i *Instruction) Close() error {
	i.h.release()
	return nil
}
