package lldb

import (
	"iter"

	"github.com/wippyai/lldb-go/sys"
)

// InstructionList is the result of a disassembly request.
type InstructionList struct {
	lib sys.Library
	h   *handle[sys.InstructionListRef]
}

// WrapInstructionList takes ownership of raw if the library reports it valid.
func WrapInstructionList(lib sys.Library, raw sys.InstructionListRef) (*InstructionList, bool) {
	if !gate(raw, entityInstructionList, lib.InstructionListIsValid) {
		return nil, false
	}
	return &InstructionList{lib: lib, h: own(raw, entityInstructionList, lib.DisposeInstructionList)}, true
}

// IsValid re-queries the library.
func (l *InstructionList) IsValid() bool {
	return l.h.valid(l.lib.InstructionListIsValid)
}

// Len returns the number of instructions.
func (l *InstructionList) Len() int {
	return int(call(l.h, "size", l.lib.InstructionListGetSize))
}

// At returns an owned instruction at idx.
func (l *InstructionList) At(idx int) (*Instruction, bool) {
	if idx < 0 {
		return nil, false
	}
	raw := call(l.h, "instruction_at_index", func(raw sys.InstructionListRef) sys.InstructionRef {
		return l.lib.InstructionListGetInstructionAtIndex(raw, uint64(idx))
	})
	return WrapInstruction(l.lib, raw)
}

// All iterates over the instructions in order. Each yielded instruction is
// closed when the loop body returns; Clone it to keep it.
func (l *InstructionList) All() iter.Seq2[int, *Instruction] {
	return func(yield func(int, *Instruction) bool) {
		n := l.Len()
		for idx := 0; idx < n; idx++ {
			inst, ok := l.At(idx)
			if !ok {
				continue
			}
			more := yield(idx, inst)
			inst.Close()
			if !more {
				return
			}
		}
	}
}

// Clone returns an independent copy owned by the caller.
func (l *InstructionList) Clone() (*InstructionList, bool) {
	return WrapInstructionList(l.lib, call(l.h, "clone", l.lib.CloneInstructionList))
}

// Description returns the library's rendering of the list, one instruction per line.
func (l *InstructionList) Description() string {
	return describe(l.lib, l.h, l.lib.InstructionListGetDescription)
}

// String implements fmt.Stringer.
func (l *InstructionList) String() string {
	return render(l.lib, l.h, l.lib.InstructionListGetDescription)
}

// Close releases the list. Instructions taken from it stay valid.
func (l *InstructionList) Close() error {
	l.h.release()
	return nil
}
