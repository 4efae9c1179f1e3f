package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/term"

	lldb "github.com/wippyai/lldb-go"
	"github.com/wippyai/lldb-go/native"
	"github.com/wippyai/lldb-go/projection"
)

func main() {
	var (
		pid         = flag.Uint64("pid", 0, "Process id to describe")
		exe         = flag.String("exe", "", "ELF executable to disassemble")
		addr        = flag.String("addr", "", "Start address (decimal or 0x hex)")
		count       = flag.Int("count", 16, "Number of instructions to disassemble")
		flavor      = flag.String("flavor", "", "Disassembly syntax: intel, att or plan9")
		asJSON      = flag.Bool("json", false, "Print process info as a JSON projection")
		procRoot    = flag.String("proc", "", "procfs root (default: platform default)")
		interactive = flag.Bool("i", false, "Interactive process browser")
		verbose     = flag.Bool("v", false, "Debug logging")
	)
	flag.Parse()

	opts := native.DefaultOptions()
	if *procRoot != "" {
		opts.ProcRoot = *procRoot
	}
	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync()
		lldb.SetLogger(log)
		opts.Logger = log
	}
	lib := native.New(opts)
	defer lib.Close()

	var err error
	switch {
	case *interactive:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			err = fmt.Errorf("interactive mode needs a terminal")
			break
		}
		err = runInteractive(lib)
	case *pid != 0:
		err = describeProcess(lib, *pid, *asJSON)
	case *exe != "":
		err = disassemble(lib, *exe, *addr, *count, *flavor)
	default:
		fmt.Fprintln(os.Stderr, "Usage: sbinspect -pid <pid> [-json]")
		fmt.Fprintln(os.Stderr, "       sbinspect -exe <file> [-addr A] [-count N] [-flavor F]")
		fmt.Fprintln(os.Stderr, "       sbinspect -i  (interactive mode)")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func describeProcess(lib *native.Library, pid uint64, asJSON bool) error {
	p, err := lldb.ProcessInfoForPID(lib, pid)
	if err != nil {
		return err
	}
	defer p.Close()

	if asJSON {
		doc, err := projection.ProcessInfoJSON(p)
		if err != nil {
			return err
		}
		fmt.Println(string(doc))
		for _, f := range projection.Overflowed(p) {
			fmt.Fprintf(os.Stderr, "warning: %s does not fit in int32\n", f)
		}
		return nil
	}
	fmt.Print(formatProcess(p))
	return nil
}

func formatProcess(p *lldb.ProcessInfo) string {
	optional := func(id uint32, ok bool) string {
		if !ok {
			return "-"
		}
		return strconv.FormatUint(uint64(id), 10)
	}
	exe := "-"
	if f, ok := p.ExecutableFile(); ok {
		exe = f.Path()
		f.Close()
	}
	return fmt.Sprintf(
		"Name:       %s\nPID:        %d\nParent:     %d\nExecutable: %s\nUID:        %s\nGID:        %s\nEUID:       %s\nEGID:       %s\n",
		p.Name(), p.ProcessID(), p.ParentProcessID(), exe,
		optional(p.UserID()), optional(p.GroupID()),
		optional(p.EffectiveUserID()), optional(p.EffectiveGroupID()),
	)
}

func disassemble(lib *native.Library, path, addrStr string, count int, flavor string) error {
	t, err := lldb.NewTarget(lib, path, flavor)
	if err != nil {
		return err
	}
	defer t.Close()

	fmt.Printf("Target: %s (%s)\n\n", path, t.Triple())
	if addrStr == "" {
		return fmt.Errorf("-addr is required")
	}
	start, err := strconv.ParseUint(addrStr, 0, 64)
	if err != nil {
		return fmt.Errorf("parse address: %w", err)
	}
	a, ok := t.ResolveLoadAddress(start)
	if !ok {
		return fmt.Errorf("address %#x is not in an executable section", start)
	}
	defer a.Close()

	list, ok := t.ReadInstructions(a, count, flavor)
	if !ok {
		return fmt.Errorf("cannot disassemble at %#x", start)
	}
	defer list.Close()

	for _, inst := range list.All() {
		at := "?"
		if ia, ok := inst.Address(); ok {
			at = fmt.Sprintf("%#x", ia.LoadAddress(t))
			ia.Close()
		}
		line := fmt.Sprintf("%-14s %-8s %s", at, inst.Mnemonic(t), inst.Operands(t))
		if c := inst.Comment(t); c != "" {
			line += " ; " + c
		}
		fmt.Println(line)
	}
	return nil
}
