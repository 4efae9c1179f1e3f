package disasm

import (
	"encoding/binary"

	"golang.org/x/arch/arm64/arm64asm"
)

type arm64Inst struct {
	inst arm64asm.Inst
}

func decodeARM64(code []byte) Inst {
	if len(code) < 4 {
		return Inst{Arch: ARM64, Bytes: clone(code), bad: true}
	}
	inst, err := arm64asm.Decode(code[:4])
	if err != nil {
		return Inst{Arch: ARM64, Bytes: clone(code[:4]), bad: true}
	}
	return Inst{Arch: ARM64, Bytes: clone(code[:4]), impl: arm64Inst{inst: inst}}
}

func (a arm64Inst) render(pc uint64, flavor Flavor) string {
	if flavor == Plan9 {
		return arm64asm.GoSyntax(a.inst, pc, noSymbols, nil)
	}
	return arm64asm.GNUSyntax(a.inst)
}

var arm64Branches = map[string]bool{
	"B": true, "BL": true, "BR": true, "BLR": true, "RET": true,
	"CBZ": true, "CBNZ": true, "TBZ": true, "TBNZ": true,
	"ERET": true, "SVC": true,
}

func (a arm64Inst) branch() bool {
	return arm64Branches[a.inst.Op.String()]
}

func (a arm64Inst) target(pc uint64) (uint64, bool) {
	if !a.branch() {
		return 0, false
	}
	for _, arg := range a.inst.Args {
		if rel, ok := arg.(arm64asm.PCRel); ok {
			return pc + uint64(int64(rel)), true
		}
	}
	return 0, false
}

func (a arm64Inst) ref(pc uint64) (uint64, bool) {
	for _, arg := range a.inst.Args {
		if rel, ok := arg.(arm64asm.PCRel); ok {
			return pc + uint64(int64(rel)), true
		}
	}
	return 0, false
}

// Word returns the little-endian encoding of an arm64 instruction.
func Word(inst Inst) uint32 {
	if inst.Arch != ARM64 || len(inst.Bytes) < 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(inst.Bytes)
}
