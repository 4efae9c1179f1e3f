package native

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/lldb-go/resource"
	"github.com/wippyai/lldb-go/sys"
)

// optionalID is an id the platform may be unable to report.
type optionalID struct {
	id    uint32
	valid bool
}

func someID(id uint32) optionalID {
	return optionalID{id: id, valid: true}
}

type processInfo struct {
	name string
	exe  string
	pid  sys.PID
	ppid sys.PID

	uid, gid, euid, egid optionalID
}

// Valid reports whether the snapshot identifies a process.
func (p *processInfo) Valid() bool {
	return p.pid != sys.InvalidPID
}

// snapshot reads the identity of pid from procfs when a root is configured,
// and from the platform otherwise.
func (l *Library) snapshot(pid sys.PID) (*processInfo, error) {
	if l.options.ProcRoot != "" {
		return readProcFS(l.options.ProcRoot, pid)
	}
	return platformSnapshot(pid)
}

// ProcessInfoForPID snapshots the process with the given id, or returns 0
// when it cannot be read.
func (l *Library) ProcessInfoForPID(pid sys.PID) sys.ProcessInfoRef {
	if pid == sys.InvalidPID {
		return 0
	}
	p, err := l.snapshot(pid)
	if err != nil {
		l.log.Debug("process snapshot failed", zap.Uint64("pid", pid), zap.Error(err))
		return 0
	}
	return insert[sys.ProcessInfoRef](l.processes, p)
}

// ProcessExited invalidates every snapshot of pid. The snapshots stay
// allocated until disposed.
func (l *Library) ProcessExited(pid sys.PID) int {
	var stale []uintptr
	l.processes.Each(func(h resource.Handle, p *processInfo) bool {
		if p.pid == pid {
			stale = append(stale, uintptr(h))
		}
		return true
	})
	n := 0
	for _, h := range stale {
		if l.Invalidate(h) {
			n++
		}
	}
	return n
}

func (l *Library) ProcessInfoIsValid(p sys.ProcessInfoRef) bool {
	return isValid(l.processes, p)
}

func (l *Library) CloneProcessInfo(p sys.ProcessInfoRef) sys.ProcessInfoRef {
	pi, ok := lookup(l.processes, p)
	if !ok {
		return 0
	}
	return insert[sys.ProcessInfoRef](l.processes, pi)
}

func (l *Library) DisposeProcessInfo(p sys.ProcessInfoRef) {
	l.dispose(uintptr(p), KindProcessInfo)
}

func (l *Library) ProcessInfoGetDescription(p sys.ProcessInfoRef, s sys.StreamRef) bool {
	pi, ok := lookup(l.processes, p)
	if !ok {
		return false
	}
	st, ok := lookup(l.streams, s)
	if !ok {
		return false
	}
	fmt.Fprintf(st, "pid = %d, parent = %d, name = %s", pi.pid, pi.ppid, pi.name)
	for _, f := range []struct {
		label string
		id    optionalID
	}{
		{"uid", pi.uid},
		{"gid", pi.gid},
		{"euid", pi.euid},
		{"egid", pi.egid},
	} {
		if f.id.valid {
			fmt.Fprintf(st, ", %s = %d", f.label, f.id.id)
		}
	}
	if pi.exe != "" {
		fmt.Fprintf(st, ", executable = %s", pi.exe)
	}
	return true
}

func (l *Library) ProcessInfoGetName(p sys.ProcessInfoRef) sys.CString {
	pi, ok := lookup(l.processes, p)
	if !ok {
		return nil
	}
	return newCStr(pi.name).ptr()
}

func (l *Library) ProcessInfoGetExecutableFile(p sys.ProcessInfoRef) sys.FileSpecRef {
	pi, ok := lookup(l.processes, p)
	if !ok {
		return 0
	}
	return l.newFileSpecRef(pi.exe)
}

func (l *Library) ProcessInfoGetProcessID(p sys.ProcessInfoRef) sys.PID {
	pi, ok := lookup(l.processes, p)
	if !ok {
		return sys.InvalidPID
	}
	return pi.pid
}

func (l *Library) ProcessInfoGetParentProcessID(p sys.ProcessInfoRef) sys.PID {
	pi, ok := lookup(l.processes, p)
	if !ok {
		return sys.InvalidPID
	}
	return pi.ppid
}

func (l *Library) processID(p sys.ProcessInfoRef, pick func(*processInfo) optionalID) optionalID {
	pi, ok := lookup(l.processes, p)
	if !ok {
		return optionalID{}
	}
	return pick(pi)
}

func uidOf(p *processInfo) optionalID  { return p.uid }
func gidOf(p *processInfo) optionalID  { return p.gid }
func euidOf(p *processInfo) optionalID { return p.euid }
func egidOf(p *processInfo) optionalID { return p.egid }

func (l *Library) ProcessInfoUserIDIsValid(p sys.ProcessInfoRef) bool {
	return l.processID(p, uidOf).valid
}

func (l *Library) ProcessInfoGetUserID(p sys.ProcessInfoRef) uint32 {
	return l.processID(p, uidOf).id
}

func (l *Library) ProcessInfoGroupIDIsValid(p sys.ProcessInfoRef) bool {
	return l.processID(p, gidOf).valid
}

func (l *Library) ProcessInfoGetGroupID(p sys.ProcessInfoRef) uint32 {
	return l.processID(p, gidOf).id
}

func (l *Library) ProcessInfoEffectiveUserIDIsValid(p sys.ProcessInfoRef) bool {
	return l.processID(p, euidOf).valid
}

func (l *Library) ProcessInfoGetEffectiveUserID(p sys.ProcessInfoRef) uint32 {
	return l.processID(p, euidOf).id
}

func (l *Library) ProcessInfoEffectiveGroupIDIsValid(p sys.ProcessInfoRef) bool {
	return l.processID(p, egidOf).valid
}

func (l *Library) ProcessInfoGetEffectiveGroupID(p sys.ProcessInfoRef) uint32 {
	return l.processID(p, egidOf).id
}

// ProcessIDs lists the processes a snapshot can be taken of.
func (l *Library) ProcessIDs() ([]sys.PID, error) {
	if l.options.ProcRoot != "" {
		return listProcFS(l.options.ProcRoot)
	}
	return []sys.PID{sys.PID(os.Getpid())}, nil
}
