package native

import (
	"bufio"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

// readProcFS reads a process snapshot from root/<pid>/status and
// root/<pid>/exe. Ids missing from status are reported invalid.
func readProcFS(root string, pid sys.PID) (*processInfo, error) {
	dir := filepath.Join(root, strconv.FormatUint(pid, 10))
	f, err := os.Open(filepath.Join(dir, "status"))
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound(errors.PhaseLoad, "process", strconv.FormatUint(pid, 10))
		}
		return nil, errors.Load(dir, err)
	}
	defer f.Close()

	p := &processInfo{pid: pid}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Name":
			p.name = strings.ToValidUTF8(value, "\uFFFD")
		case "PPid":
			if n, err := strconv.ParseUint(value, 10, 64); err == nil {
				p.ppid = n
			}
		case "Uid":
			p.uid, p.euid = parseIDs(value)
		case "Gid":
			p.gid, p.egid = parseIDs(value)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Load(dir, err)
	}

	if exe, err := os.Readlink(filepath.Join(dir, "exe")); err == nil {
		p.exe = strings.ToValidUTF8(strings.TrimSuffix(exe, " (deleted)"), "\uFFFD")
	}
	return p, nil
}

// parseIDs reads the real and effective ids from a status line of the form
// "real effective saved filesystem".
func parseIDs(value string) (real, effective optionalID) {
	fields := strings.Fields(value)
	if len(fields) > 0 {
		if n, err := strconv.ParseUint(fields[0], 10, 32); err == nil {
			real = someID(uint32(n))
		}
	}
	if len(fields) > 1 {
		if n, err := strconv.ParseUint(fields[1], 10, 32); err == nil {
			effective = someID(uint32(n))
		}
	}
	return real, effective
}

// listProcFS returns the numeric entries of root in ascending order.
func listProcFS(root string) ([]sys.PID, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Load(root, err)
	}
	var pids []sys.PID
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if n, err := strconv.ParseUint(e.Name(), 10, 64); err == nil && n != 0 {
			pids = append(pids, n)
		}
	}
	slices.Sort(pids)
	return pids, nil
}
