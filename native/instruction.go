package native

import (
	"fmt"
	"strings"

	"github.com/wippyai/lldb-go/native/internal/disasm"
	"github.com/wippyai/lldb-go/sys"
)

type instruction struct {
	img  *image
	sec  *section
	addr uint64
	inst disasm.Inst

	// flavor was requested when reading; empty defers to the rendering target.
	flavor disasm.Flavor
	// origin is the default flavor of the target the instruction was read from.
	origin disasm.Flavor
}

type rendered struct {
	mnemonic string
	operands string
	comment  string
}

func (in *instruction) render(flavor disasm.Flavor, sym disasm.Symbolizer) rendered {
	if in.flavor != "" {
		flavor = in.flavor
	}
	m, o := in.inst.Text(in.addr, flavor)
	return rendered{mnemonic: m, operands: o, comment: in.inst.Comment(in.addr, sym)}
}

// renderFor resolves text against t. A nil target, or one built for another
// architecture, renders without symbols in the default syntax.
func (in *instruction) renderFor(t *target) rendered {
	if t == nil || t.img.arch != in.img.arch {
		return in.render("", nil)
	}
	return in.render(t.flavor, t.img.symbolizer())
}

func (in *instruction) describe() string {
	r := in.render(in.origin, in.img.symbolizer())
	var b strings.Builder
	fmt.Fprintf(&b, "0x%x: %-8s %s", in.addr, r.mnemonic, r.operands)
	if r.comment != "" {
		fmt.Fprintf(&b, " ; %s", r.comment)
	}
	return strings.TrimRight(b.String(), " ")
}

type instructionList struct {
	insts []*instruction
}

func (l *Library) InstructionIsValid(i sys.InstructionRef) bool {
	return isValid(l.instructions, i)
}

func (l *Library) CloneInstruction(i sys.InstructionRef) sys.InstructionRef {
	in, ok := lookup(l.instructions, i)
	if !ok {
		return 0
	}
	return insert[sys.InstructionRef](l.instructions, in)
}

func (l *Library) DisposeInstruction(i sys.InstructionRef) {
	l.dispose(uintptr(i), KindInstruction)
}

func (l *Library) InstructionGetDescription(i sys.InstructionRef, s sys.StreamRef) bool {
	in, ok := lookup(l.instructions, i)
	if !ok {
		return false
	}
	st, ok := lookup(l.streams, s)
	if !ok {
		return false
	}
	fmt.Fprint(st, in.describe())
	return true
}

func (l *Library) InstructionGetAddress(i sys.InstructionRef) sys.AddressRef {
	in, ok := lookup(l.instructions, i)
	if !ok {
		return 0
	}
	return l.newAddressRef(&address{file: in.addr, img: in.img, section: in.sec})
}

func (l *Library) instructionText(i sys.InstructionRef, t sys.TargetRef, pick func(rendered) string) sys.CString {
	in, ok := lookup(l.instructions, i)
	if !ok {
		return nil
	}
	tg, _ := lookup(l.targets, t)
	return newCStr(pick(in.renderFor(tg))).ptr()
}

func (l *Library) InstructionGetMnemonic(i sys.InstructionRef, t sys.TargetRef) sys.CString {
	return l.instructionText(i, t, func(r rendered) string { return r.mnemonic })
}

func (l *Library) InstructionGetOperands(i sys.InstructionRef, t sys.TargetRef) sys.CString {
	return l.instructionText(i, t, func(r rendered) string { return r.operands })
}

func (l *Library) InstructionGetComment(i sys.InstructionRef, t sys.TargetRef) sys.CString {
	return l.instructionText(i, t, func(r rendered) string { return r.comment })
}

func (l *Library) InstructionGetData(i sys.InstructionRef, _ sys.TargetRef) sys.DataRef {
	in, ok := lookup(l.instructions, i)
	if !ok {
		return 0
	}
	return l.newDataRef(in.inst.Bytes)
}

func (l *Library) InstructionGetByteSize(i sys.InstructionRef) uint64 {
	in, ok := lookup(l.instructions, i)
	if !ok {
		return 0
	}
	return uint64(in.inst.Len())
}

func (l *Library) InstructionDoesBranch(i sys.InstructionRef) bool {
	in, ok := lookup(l.instructions, i)
	return ok && in.inst.IsBranch()
}

// InstructionHasDelaySlot is always false: neither supported architecture
// has delay slots.
func (l *Library) InstructionHasDelaySlot(i sys.InstructionRef) bool {
	return false
}

func (l *Library) InstructionListIsValid(li sys.InstructionListRef) bool {
	return isValid(l.lists, li)
}

func (l *Library) CloneInstructionList(li sys.InstructionListRef) sys.InstructionListRef {
	list, ok := lookup(l.lists, li)
	if !ok {
		return 0
	}
	return insert[sys.InstructionListRef](l.lists, list)
}

func (l *Library) DisposeInstructionList(li sys.InstructionListRef) {
	l.dispose(uintptr(li), KindInstructionList)
}

func (l *Library) InstructionListGetDescription(li sys.InstructionListRef, s sys.StreamRef) bool {
	list, ok := lookup(l.lists, li)
	if !ok {
		return false
	}
	st, ok := lookup(l.streams, s)
	if !ok {
		return false
	}
	for i, in := range list.insts {
		if i > 0 {
			fmt.Fprintln(st)
		}
		fmt.Fprint(st, in.describe())
	}
	return true
}

func (l *Library) InstructionListGetSize(li sys.InstructionListRef) uint64 {
	list, ok := lookup(l.lists, li)
	if !ok {
		return 0
	}
	return uint64(len(list.insts))
}

// InstructionListGetInstructionAtIndex returns a new reference to the
// instruction at idx, or 0 when idx is out of range.
func (l *Library) InstructionListGetInstructionAtIndex(li sys.InstructionListRef, idx uint64) sys.InstructionRef {
	list, ok := lookup(l.lists, li)
	if !ok || idx >= uint64(len(list.insts)) {
		return 0
	}
	return insert[sys.InstructionRef](l.instructions, list.insts[idx])
}
