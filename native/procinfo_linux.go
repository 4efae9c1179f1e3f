package native

import (
	"os"
	"strconv"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

const defaultProcRoot = "/proc"

// platformSnapshot answers for the running process only.
func platformSnapshot(pid sys.PID) (*processInfo, error) {
	if pid != sys.PID(os.Getpid()) {
		return nil, errors.NotFound(errors.PhaseLoad, "process", strconv.FormatUint(pid, 10))
	}
	return readProcFS(defaultProcRoot, pid)
}
