package disasm

import (
	"strings"

	"golang.org/x/arch/x86/x86asm"
)

type x86Inst struct {
	inst x86asm.Inst
}

func decodeX86(code []byte) Inst {
	inst, err := x86asm.Decode(code, 64)
	// Truncated input decodes to Op 0 without an error.
	if err != nil || inst.Len == 0 || inst.Op == 0 {
		return Inst{Arch: AMD64, Bytes: clone(code[:1]), bad: true}
	}
	return Inst{Arch: AMD64, Bytes: clone(code[:inst.Len]), impl: x86Inst{inst: inst}}
}

func noSymbols(uint64) (string, uint64) {
	return "", 0
}

func (x x86Inst) render(pc uint64, flavor Flavor) string {
	switch flavor {
	case ATT:
		return x86asm.GNUSyntax(x.inst, pc, noSymbols)
	case Plan9:
		return x86asm.GoSyntax(x.inst, pc, noSymbols)
	}
	return x86asm.IntelSyntax(x.inst, pc, noSymbols)
}

var x86Branches = map[string]bool{
	"CALL": true, "RET": true, "LCALL": true, "LJMP": true, "LRET": true,
	"LOOP": true, "LOOPE": true, "LOOPNE": true,
	"IRET": true, "IRETD": true, "IRETQ": true,
	"SYSCALL": true, "SYSRET": true, "INT": true,
}

func (x x86Inst) branch() bool {
	name := x.inst.Op.String()
	return strings.HasPrefix(name, "J") || x86Branches[name]
}

func (x x86Inst) target(pc uint64) (uint64, bool) {
	if !x.branch() {
		return 0, false
	}
	for _, a := range x.inst.Args {
		if rel, ok := a.(x86asm.Rel); ok {
			return pc + uint64(x.inst.Len) + uint64(int64(rel)), true
		}
	}
	return 0, false
}

func (x x86Inst) ref(pc uint64) (uint64, bool) {
	for _, a := range x.inst.Args {
		if m, ok := a.(x86asm.Mem); ok && m.Base == x86asm.RIP {
			return pc + uint64(x.inst.Len) + uint64(m.Disp), true
		}
	}
	return 0, false
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
