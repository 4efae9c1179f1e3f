package lldb

import (
	"bytes"
	"testing"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/native"
)

var arm64Image = native.Image{
	Arch: "arm64",
	Path: "/srv/app",
	Base: 0x4000,
	// nop; bl +4; nop; ret
	Code: []byte{
		0x1f, 0x20, 0x03, 0xd5,
		0x01, 0x00, 0x00, 0x94,
		0x1f, 0x20, 0x03, 0xd5,
		0xc0, 0x03, 0x5f, 0xd6,
	},
	Symbols: []native.Symbol{
		{Name: "start", Addr: 0x4000, Size: 8},
		{Name: "leaf", Addr: 0x4008, Size: 8},
	},
}

func newImageTarget(t *testing.T, lib *native.Library, img native.Image, flavor string) *Target {
	t.Helper()
	tg, ok := WrapTarget(lib, lib.CreateTargetFromImage(img, flavor))
	if !ok {
		t.Fatal("cannot create target")
	}
	t.Cleanup(func() { tg.Close() })
	return tg
}

func readInstructions(t *testing.T, tg *Target, addr uint64, count int, flavor string) *InstructionList {
	t.Helper()
	a, ok := tg.ResolveLoadAddress(addr)
	if !ok {
		t.Fatalf("cannot resolve %#x", addr)
	}
	defer a.Close()
	list, ok := tg.ReadInstructions(a, count, flavor)
	if !ok {
		t.Fatal("ReadInstructions failed")
	}
	t.Cleanup(func() { list.Close() })
	return list
}

func TestInstruction_Scenario(t *testing.T) {
	lib, _ := newLibrary(t)
	gnu := newImageTarget(t, lib, arm64Image, FlavorDefault)
	plan9 := newImageTarget(t, lib, arm64Image, FlavorPlan9)

	list := readInstructions(t, gnu, 0x4000, 1, FlavorDefault)
	inst, ok := list.At(0)
	if !ok {
		t.Fatal("At(0) failed")
	}
	defer inst.Close()

	if inst.ByteSize() != 4 {
		t.Errorf("ByteSize = %d, want 4", inst.ByteSize())
	}
	if inst.IsBranch() {
		t.Error("IsBranch = true")
	}
	if inst.HasDelaySlot() {
		t.Error("HasDelaySlot = true")
	}

	a, b := inst.Mnemonic(gnu), inst.Mnemonic(plan9)
	if a == b {
		t.Errorf("both targets rendered %q", a)
	}
	if a != "nop" || b != "NOOP" {
		t.Errorf("mnemonics = %q, %q", a, b)
	}
	if got := inst.Mnemonic(nil); got != "nop" {
		t.Errorf("nil target mnemonic = %q", got)
	}
}

func TestInstruction_Accessors(t *testing.T) {
	lib, _ := newLibrary(t)
	tg := newImageTarget(t, lib, arm64Image, FlavorDefault)

	list := readInstructions(t, tg, 0x4000, 8, FlavorDefault)
	if list.Len() != 4 {
		t.Fatalf("Len = %d, want 4", list.Len())
	}
	if _, ok := list.At(4); ok {
		t.Error("At past the end should fail")
	}
	if _, ok := list.At(-1); ok {
		t.Error("negative index should fail")
	}

	bl, _ := list.At(1)
	defer bl.Close()
	if !bl.IsBranch() {
		t.Error("bl should branch")
	}
	if got := bl.Comment(tg); got != "leaf" {
		t.Errorf("Comment = %q, want leaf", got)
	}
	if got := bl.Comment(nil); got != "" {
		t.Errorf("Comment(nil) = %q", got)
	}

	addr, ok := bl.Address()
	if !ok {
		t.Fatal("Address failed")
	}
	defer addr.Close()
	if addr.FileAddress() != 0x4004 || addr.LoadAddress(tg) != 0x4004 {
		t.Errorf("address = %#x / %#x", addr.FileAddress(), addr.LoadAddress(tg))
	}
	if addr.LoadAddress(nil) != InvalidAddress {
		t.Error("load address without a target should be invalid")
	}

	data, ok := bl.Data(tg)
	if !ok {
		t.Fatal("Data failed")
	}
	defer data.Close()
	if !bytes.Equal(data.Bytes(), arm64Image.Code[4:8]) {
		t.Errorf("Bytes = % x", data.Bytes())
	}
	tail := make([]byte, 2)
	if n := data.ReadAt(tail, 2); n != 2 || tail[1] != 0x94 {
		t.Errorf("ReadAt = %d % x", n, tail)
	}
}

func TestInstructionList_All(t *testing.T) {
	lib, c := newLibrary(t)
	tg := newImageTarget(t, lib, arm64Image, FlavorDefault)
	list := readInstructions(t, tg, 0x4000, 4, FlavorDefault)

	var mnemonics []string
	var kept *Instruction
	for i, inst := range list.All() {
		mnemonics = append(mnemonics, inst.Mnemonic(tg))
		if i == 3 {
			kept, _ = inst.Clone()
		}
	}
	want := []string{"nop", "bl", "nop", "ret"}
	if len(mnemonics) != len(want) {
		t.Fatalf("mnemonics = %v", mnemonics)
	}
	for i := range want {
		if mnemonics[i] != want[i] {
			t.Errorf("mnemonic %d = %q, want %q", i, mnemonics[i], want[i])
		}
	}
	if n := c.drops(native.KindInstruction); n != 4 {
		t.Errorf("iteration disposed %d instructions, want 4", n)
	}
	if kept == nil || !kept.IsBranch() {
		t.Fatal("clone of the yielded instruction should survive")
	}
	kept.Close()

	for range list.All() {
		break
	}
	if n := c.drops(native.KindInstruction); n != 6 {
		t.Errorf("early break disposed %d total, want 6", n)
	}
}

func TestInstruction_ClosedTarget(t *testing.T) {
	lib, _ := newLibrary(t)
	tg := newImageTarget(t, lib, arm64Image, FlavorDefault)
	list := readInstructions(t, tg, 0x4000, 1, FlavorDefault)
	inst, _ := list.At(0)
	defer inst.Close()

	other, _ := tg.Clone()
	other.Close()
	v := mustPanic(t, func() { inst.Mnemonic(other) })
	if panicKind(t, v) != errors.KindUseAfterClose {
		t.Errorf("panic = %v", v)
	}
}

func TestTarget(t *testing.T) {
	lib, _ := newLibrary(t)
	tg := newImageTarget(t, lib, arm64Image, FlavorDefault)

	if tg.Triple() != "aarch64-unknown-unknown" {
		t.Errorf("Triple = %q", tg.Triple())
	}
	exe, ok := tg.Executable()
	if !ok {
		t.Fatal("Executable failed")
	}
	defer exe.Close()
	if exe.Path() != "/srv/app" || exe.Filename() != "app" || exe.Directory() != "/srv" {
		t.Errorf("executable = %q (%q, %q)", exe.Path(), exe.Directory(), exe.Filename())
	}
	if _, ok := tg.ResolveLoadAddress(0x9000); ok {
		t.Error("address outside the image should not resolve")
	}
	a, _ := tg.ResolveLoadAddress(0x4000)
	defer a.Close()
	if _, ok := tg.ReadInstructions(a, 0, FlavorDefault); ok {
		t.Error("zero count should fail")
	}
	if _, ok := tg.ReadInstructions(a, 1, "masm"); ok {
		t.Error("unknown flavor should fail")
	}
	if got := a.String(); got != "SBAddress { .text[0x0000000000004000] (start) }" {
		t.Errorf("String = %q", got)
	}

	if _, err := NewTarget(lib, "/nonexistent/binary", FlavorDefault); err == nil {
		t.Error("NewTarget should fail for a missing file")
	}
}
