package native

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wippyai/lldb-go/sys"
)

func writeProc(t *testing.T, root string, pid string, status string) {
	t.Helper()
	dir := filepath.Join(root, pid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestProcessInfo_ProcFS(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "42", "Name:\tworker\nState:\tS (sleeping)\nPPid:\t1\nUid:\t1000\t1001\t1000\t1000\n")
	exeLinked := os.Symlink("/usr/bin/worker", filepath.Join(root, "42", "exe")) == nil

	lib := New(Options{ProcRoot: root})
	defer lib.Close()

	p := lib.ProcessInfoForPID(42)
	if p == 0 {
		t.Fatal("ProcessInfoForPID failed")
	}
	if got := goString(lib.ProcessInfoGetName(p)); got != "worker" {
		t.Errorf("name = %q", got)
	}
	if lib.ProcessInfoGetProcessID(p) != 42 || lib.ProcessInfoGetParentProcessID(p) != 1 {
		t.Errorf("pid=%d ppid=%d", lib.ProcessInfoGetProcessID(p), lib.ProcessInfoGetParentProcessID(p))
	}
	if !lib.ProcessInfoUserIDIsValid(p) || lib.ProcessInfoGetUserID(p) != 1000 {
		t.Error("uid should be 1000")
	}
	if !lib.ProcessInfoEffectiveUserIDIsValid(p) || lib.ProcessInfoGetEffectiveUserID(p) != 1001 {
		t.Error("euid should be 1001")
	}
	if lib.ProcessInfoGroupIDIsValid(p) || lib.ProcessInfoEffectiveGroupIDIsValid(p) {
		t.Error("gid is missing from status and should be invalid")
	}

	f := lib.ProcessInfoGetExecutableFile(p)
	if exeLinked {
		if got := goString(lib.FileSpecGetFilename(f)); got != "worker" {
			t.Errorf("executable = %q", got)
		}
		lib.DisposeFileSpec(f)
	} else if f != 0 {
		t.Error("no exe link should mean no executable")
	}

	c := lib.CloneProcessInfo(p)
	if lib.ProcessExited(42) != 2 {
		t.Error("both snapshots should be invalidated")
	}
	if lib.ProcessInfoIsValid(p) || lib.ProcessInfoIsValid(c) {
		t.Error("snapshots of an exited process should be invalid")
	}
	lib.DisposeProcessInfo(p)
	lib.DisposeProcessInfo(c)
	if lib.Live() != 0 || lib.Rejected() != 0 {
		t.Errorf("Live=%d Rejected=%d", lib.Live(), lib.Rejected())
	}
}

func TestProcessInfo_Missing(t *testing.T) {
	lib := New(Options{ProcRoot: t.TempDir()})
	defer lib.Close()

	if lib.ProcessInfoForPID(7) != 0 {
		t.Error("missing process should not snapshot")
	}
	if lib.ProcessInfoForPID(sys.InvalidPID) != 0 {
		t.Error("pid 0 should not snapshot")
	}
}

func TestProcessInfo_Description(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "9", "Name:\tsh\nPPid:\t2\nUid:\t0\t0\t0\t0\nGid:\t5\t6\t5\t5\n")
	lib := New(Options{ProcRoot: root})
	defer lib.Close()

	p := lib.ProcessInfoForPID(9)
	defer lib.DisposeProcessInfo(p)
	desc := describe(t, lib, func(s sys.StreamRef) bool { return lib.ProcessInfoGetDescription(p, s) })
	want := "pid = 9, parent = 2, name = sh, uid = 0, gid = 5, euid = 0, egid = 6"
	if desc != want {
		t.Errorf("description = %q, want %q", desc, want)
	}
}

func TestParseIDs(t *testing.T) {
	tests := []struct {
		in        string
		real, eff optionalID
	}{
		{"1000\t1001\t1000\t1000", someID(1000), someID(1001)},
		{"7", someID(7), optionalID{}},
		{"", optionalID{}, optionalID{}},
		{"x 5", optionalID{}, someID(5)},
	}
	for _, tt := range tests {
		r, e := parseIDs(tt.in)
		if r != tt.real || e != tt.eff {
			t.Errorf("parseIDs(%q) = (%v, %v), want (%v, %v)", tt.in, r, e, tt.real, tt.eff)
		}
	}
}

func TestProcessIDs(t *testing.T) {
	root := t.TempDir()
	writeProc(t, root, "300", "Name:\ta\n")
	writeProc(t, root, "12", "Name:\tb\n")
	if err := os.MkdirAll(filepath.Join(root, "sys"), 0o755); err != nil {
		t.Fatal(err)
	}
	lib := New(Options{ProcRoot: root})
	defer lib.Close()

	pids, err := lib.ProcessIDs()
	if err != nil {
		t.Fatalf("ProcessIDs: %v", err)
	}
	if len(pids) != 2 || pids[0] != 12 || pids[1] != 300 {
		t.Errorf("pids = %v", pids)
	}

	self := New(Options{})
	defer self.Close()
	pids, _ = self.ProcessIDs()
	if len(pids) != 1 || pids[0] != sys.PID(os.Getpid()) {
		t.Errorf("without procfs = %v", pids)
	}
}
