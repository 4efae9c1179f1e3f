// Package disasm decodes and renders machine instructions for the native
// library. It supports x86-64 and arm64 through golang.org/x/arch.
package disasm

import (
	"fmt"
	"strings"
)

// Arch is an instruction set.
type Arch string

const (
	AMD64 Arch = "amd64"
	ARM64 Arch = "arm64"
)

// Flavor selects an assembly syntax.
type Flavor string

const (
	Intel Flavor = "intel"
	ATT   Flavor = "att"
	Plan9 Flavor = "plan9"
)

// ParseFlavor maps a user supplied name to a Flavor. The empty string is
// accepted and returns ("", true) meaning "use the default".
func ParseFlavor(s string) (Flavor, bool) {
	switch strings.ToLower(s) {
	case "":
		return "", true
	case "intel":
		return Intel, true
	case "att", "gnu":
		return ATT, true
	case "plan9", "go":
		return Plan9, true
	}
	return "", false
}

// Symbolizer resolves an address to the symbol containing it.
type Symbolizer func(addr uint64) (name string, base uint64, ok bool)

// Inst is one decoded instruction.
type Inst struct {
	Arch  Arch
	Bytes []byte
	bad   bool
	impl  decoded
}

type decoded interface {
	render(pc uint64, flavor Flavor) string
	branch() bool
	target(pc uint64) (uint64, bool)
	ref(pc uint64) (uint64, bool)
}

// Len returns the encoded length.
func (i Inst) Len() int {
	return len(i.Bytes)
}

// Bad reports whether the bytes did not decode.
func (i Inst) Bad() bool {
	return i.bad
}

// Decode decodes the instruction at the start of code. Undecodable input
// yields a one-unit "(bad)" instruction rather than an error so a listing
// can continue past it.
func Decode(arch Arch, code []byte) (Inst, error) {
	if len(code) == 0 {
		return Inst{}, fmt.Errorf("disasm: no bytes to decode")
	}
	switch arch {
	case AMD64:
		return decodeX86(code), nil
	case ARM64:
		return decodeARM64(code), nil
	}
	return Inst{}, fmt.Errorf("disasm: unsupported architecture %q", arch)
}

// Text renders the instruction at pc and splits it into mnemonic and operands.
func (i Inst) Text(pc uint64, flavor Flavor) (mnemonic, operands string) {
	if i.bad {
		return "(bad)", ""
	}
	if flavor == "" {
		flavor = Intel
	}
	return split(i.impl.render(pc, flavor))
}

// IsBranch reports whether the instruction can transfer control.
func (i Inst) IsBranch() bool {
	return !i.bad && i.impl.branch()
}

// Comment names the symbols referenced by the instruction: the branch
// target, or the address of a pc-relative memory operand.
func (i Inst) Comment(pc uint64, sym Symbolizer) string {
	if i.bad || sym == nil {
		return ""
	}
	addr, ok := i.impl.target(pc)
	if !ok {
		addr, ok = i.impl.ref(pc)
	}
	if !ok {
		return ""
	}
	name, base, ok := sym(addr)
	if !ok {
		return ""
	}
	if addr == base {
		return name
	}
	return fmt.Sprintf("%s+0x%x", name, addr-base)
}

var prefixes = map[string]bool{
	"lock": true, "rep": true, "repe": true, "repne": true, "repz": true, "repnz": true,
	"data16": true, "addr32": true, "bnd": true, "notrack": true, "xacquire": true, "xrelease": true,
}

// split separates the mnemonic, including any leading prefixes, from the operands.
func split(s string) (string, string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}
	n := 0
	for n < len(fields)-1 && prefixes[strings.ToLower(fields[n])] {
		n++
	}
	mnemonic := strings.Join(fields[:n+1], " ")
	rest := strings.TrimSpace(s)
	for _, f := range fields[:n+1] {
		rest = strings.TrimSpace(strings.TrimPrefix(rest, f))
	}
	return mnemonic, rest
}
