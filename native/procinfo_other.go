//go:build !unix

package native

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

const defaultProcRoot = ""

// platformSnapshot answers for the running process only. The platform has
// no numeric user or group ids, so they are reported invalid.
func platformSnapshot(pid sys.PID) (*processInfo, error) {
	if pid != sys.PID(os.Getpid()) {
		return nil, errors.NotFound(errors.PhaseLoad, "process", strconv.FormatUint(pid, 10))
	}
	p := &processInfo{pid: pid, ppid: sys.PID(os.Getppid())}
	if exe, err := os.Executable(); err == nil {
		p.exe = exe
		p.name = filepath.Base(exe)
	}
	return p, nil
}
