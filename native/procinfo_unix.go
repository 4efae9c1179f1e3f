//go:build unix && !linux

package native

import (
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

const defaultProcRoot = ""

// platformSnapshot answers for the running process only.
func platformSnapshot(pid sys.PID) (*processInfo, error) {
	if pid != sys.PID(unix.Getpid()) {
		return nil, errors.NotFound(errors.PhaseLoad, "process", strconv.FormatUint(pid, 10))
	}
	p := &processInfo{
		pid:  pid,
		ppid: sys.PID(unix.Getppid()),
		uid:  someID(uint32(unix.Getuid())),
		gid:  someID(uint32(unix.Getgid())),
		euid: someID(uint32(unix.Geteuid())),
		egid: someID(uint32(unix.Getegid())),
	}
	if exe, err := os.Executable(); err == nil {
		p.exe = exe
		p.name = filepath.Base(exe)
	}
	return p, nil
}
