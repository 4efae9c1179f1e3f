package native

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/lldb-go/native/internal/disasm"
	"github.com/wippyai/lldb-go/sys"
)

type target struct {
	img    *image
	flavor disasm.Flavor
}

func (l *Library) newTarget(img *image, flavor string) sys.TargetRef {
	f, ok := disasm.ParseFlavor(flavor)
	if !ok {
		l.log.Debug("unknown disassembly flavor", zap.String("flavor", flavor))
		return 0
	}
	return insert[sys.TargetRef](l.targets, &target{img: img, flavor: f})
}

// CreateTarget loads the ELF executable at path. flavor becomes the default
// syntax for instructions rendered against the target.
func (l *Library) CreateTarget(path, flavor string) sys.TargetRef {
	if _, ok := disasm.ParseFlavor(flavor); !ok {
		l.log.Debug("unknown disassembly flavor", zap.String("flavor", flavor))
		return 0
	}
	img, err := loadELF(path, l.options.SymbolCacheSize)
	if err != nil {
		l.log.Debug("cannot create target", zap.String("path", path), zap.Error(err))
		return 0
	}
	l.log.Debug("target created",
		zap.String("path", path),
		zap.String("triple", img.triple.String()),
		zap.Int("symbols", len(img.symbols)))
	return l.newTarget(img, flavor)
}

// CreateTargetFromImage creates a target over in-memory machine code.
func (l *Library) CreateTargetFromImage(img Image, flavor string) sys.TargetRef {
	im, err := imageFromMemory(img, l.options.SymbolCacheSize)
	if err != nil {
		l.log.Debug("cannot create target from image", zap.Error(err))
		return 0
	}
	return l.newTarget(im, flavor)
}

func (l *Library) TargetIsValid(t sys.TargetRef) bool {
	return isValid(l.targets, t)
}

func (l *Library) CloneTarget(t sys.TargetRef) sys.TargetRef {
	tg, ok := lookup(l.targets, t)
	if !ok {
		return 0
	}
	return insert[sys.TargetRef](l.targets, tg)
}

func (l *Library) DisposeTarget(t sys.TargetRef) {
	l.dispose(uintptr(t), KindTarget)
}

func (l *Library) TargetGetDescription(t sys.TargetRef, s sys.StreamRef) bool {
	tg, ok := lookup(l.targets, t)
	if !ok {
		return false
	}
	st, ok := lookup(l.streams, s)
	if !ok {
		return false
	}
	name := tg.img.path
	if name == "" {
		name = "<memory>"
	}
	fmt.Fprintf(st, "%s (%s)", name, tg.img.triple)
	return true
}

func (l *Library) TargetGetExecutable(t sys.TargetRef) sys.FileSpecRef {
	tg, ok := lookup(l.targets, t)
	if !ok {
		return 0
	}
	return l.newFileSpecRef(tg.img.path)
}

func (l *Library) TargetGetTriple(t sys.TargetRef) sys.CString {
	tg, ok := lookup(l.targets, t)
	if !ok {
		return nil
	}
	return tg.img.triple.ptr()
}

// TargetResolveLoadAddress returns an address inside one of the target's
// executable sections, or 0 when addr is outside all of them.
func (l *Library) TargetResolveLoadAddress(t sys.TargetRef, addr uint64) sys.AddressRef {
	tg, ok := lookup(l.targets, t)
	if !ok {
		return 0
	}
	sec := tg.img.sectionFor(addr)
	if sec == nil {
		return 0
	}
	return l.newAddressRef(&address{file: addr, img: tg.img, section: sec})
}

// TargetReadInstructions decodes up to count instructions starting at a.
// Decoding stops at the end of the containing section. An empty flavor
// leaves the syntax to whichever target later renders the instructions.
func (l *Library) TargetReadInstructions(t sys.TargetRef, a sys.AddressRef, count uint32, flavor string) sys.InstructionListRef {
	tg, ok := lookup(l.targets, t)
	if !ok {
		return 0
	}
	ad, ok := lookup(l.addresses, a)
	if !ok {
		return 0
	}
	if ad.img != nil && ad.img != tg.img {
		return 0
	}
	f, ok := disasm.ParseFlavor(flavor)
	if !ok {
		l.log.Debug("unknown disassembly flavor", zap.String("flavor", flavor))
		return 0
	}
	sec := tg.img.sectionFor(ad.file)
	if sec == nil {
		return 0
	}

	list := &instructionList{}
	pc := ad.file
	for n := uint32(0); n < count && sec.contains(pc); n++ {
		inst, err := disasm.Decode(tg.img.arch, sec.data[pc-sec.addr:])
		if err != nil {
			break
		}
		list.insts = append(list.insts, &instruction{
			img:    tg.img,
			sec:    sec,
			addr:   pc,
			inst:   inst,
			flavor: f,
			origin: tg.flavor,
		})
		pc += uint64(inst.Len())
	}
	return insert[sys.InstructionListRef](l.lists, list)
}
