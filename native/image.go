package native

import (
	"debug/elf"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/native/internal/disasm"
)

// Symbol names a range of code in an image.
type Symbol struct {
	Name string
	Addr uint64
	Size uint64
}

// Image describes machine code loaded from memory rather than from a file.
type Image struct {
	// Arch is "amd64" or "arm64".
	Arch string
	// Path is reported as the target's executable. Optional.
	Path string
	// Base is the file address of Code[0].
	Base    uint64
	Code    []byte
	Symbols []Symbol
}

type section struct {
	name string
	addr uint64
	data []byte
}

func (s *section) contains(addr uint64) bool {
	return addr >= s.addr && addr-s.addr < uint64(len(s.data))
}

type image struct {
	arch     disasm.Arch
	triple   cstr
	path     string
	sections []*section
	symbols  []Symbol
	cache    *lru.Cache
}

type symbolHit struct {
	sym Symbol
	ok  bool
}

func newImage(arch disasm.Arch, os, path string, sections []*section, symbols []Symbol, cacheSize int) (*image, error) {
	var cpu string
	switch arch {
	case disasm.AMD64:
		cpu = "x86_64"
	case disasm.ARM64:
		cpu = "aarch64"
	default:
		return nil, errors.Unsupported(errors.PhaseLoad, "architecture "+string(arch))
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "symbol cache")
	}
	syms := make([]Symbol, 0, len(symbols))
	for _, s := range symbols {
		if s.Name != "" {
			syms = append(syms, s)
		}
	}
	sort.SliceStable(syms, func(i, j int) bool { return syms[i].Addr < syms[j].Addr })
	return &image{
		arch:     arch,
		triple:   newCStr(cpu + "-unknown-" + os),
		path:     path,
		sections: sections,
		symbols:  syms,
		cache:    cache,
	}, nil
}

func imageFromMemory(img Image, cacheSize int) (*image, error) {
	arch := disasm.Arch(img.Arch)
	if len(img.Code) == 0 {
		return nil, errors.InvalidInput(errors.PhaseLoad, "image has no code")
	}
	sec := &section{name: ".text", addr: img.Base, data: append([]byte(nil), img.Code...)}
	return newImage(arch, "unknown", img.Path, []*section{sec}, img.Symbols, cacheSize)
}

func loadELF(path string, cacheSize int) (*image, error) {
	f, err := elf.Open(path)
	if err != nil {
		return nil, errors.Load(path, err)
	}
	defer f.Close()

	var arch disasm.Arch
	switch f.Machine {
	case elf.EM_X86_64:
		arch = disasm.AMD64
	case elf.EM_AARCH64:
		arch = disasm.ARM64
	default:
		return nil, errors.Unsupported(errors.PhaseLoad, "ELF machine "+f.Machine.String())
	}

	var sections []*section
	for _, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_EXECINSTR == 0 {
			continue
		}
		b, err := s.Data()
		if err != nil {
			return nil, errors.Load(path, fmt.Errorf("section %s: %w", s.Name, err))
		}
		sections = append(sections, &section{name: s.Name, addr: s.Addr, data: b})
	}
	if len(sections) == 0 {
		return nil, errors.Load(path, fmt.Errorf("no executable sections"))
	}

	var symbols []Symbol
	for _, read := range []func() ([]elf.Symbol, error){f.Symbols, f.DynamicSymbols} {
		syms, err := read()
		if err != nil {
			continue
		}
		for _, s := range syms {
			if elf.ST_TYPE(s.Info) != elf.STT_FUNC || s.Value == 0 {
				continue
			}
			symbols = append(symbols, Symbol{Name: s.Name, Addr: s.Value, Size: s.Size})
		}
	}

	os := "linux"
	if f.OSABI == elf.ELFOSABI_FREEBSD {
		os = "freebsd"
	}
	return newImage(arch, os, path, sections, symbols, cacheSize)
}

func (img *image) sectionFor(addr uint64) *section {
	for _, s := range img.sections {
		if s.contains(addr) {
			return s
		}
	}
	return nil
}

// lookup finds the symbol containing addr. Symbols without a size extend
// to the next symbol.
func (img *image) lookup(addr uint64) (Symbol, bool) {
	if v, ok := img.cache.Get(addr); ok {
		hit := v.(symbolHit)
		return hit.sym, hit.ok
	}
	var hit symbolHit
	i := sort.Search(len(img.symbols), func(i int) bool { return img.symbols[i].Addr > addr }) - 1
	if i >= 0 {
		s := img.symbols[i]
		if s.Size == 0 || addr-s.Addr < s.Size {
			hit = symbolHit{sym: s, ok: true}
		}
	}
	img.cache.Add(addr, hit)
	return hit.sym, hit.ok
}

func (img *image) symbolize(addr uint64) (string, bool) {
	s, ok := img.lookup(addr)
	if !ok {
		return "", false
	}
	if s.Addr == addr {
		return s.Name, true
	}
	return fmt.Sprintf("%s+%d", s.Name, addr-s.Addr), true
}

func (img *image) symbolizer() disasm.Symbolizer {
	return func(addr uint64) (string, uint64, bool) {
		s, ok := img.lookup(addr)
		return s.Name, s.Addr, ok
	}
}
