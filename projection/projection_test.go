package projection

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	lldb "github.com/wippyai/lldb-go"
	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/native"
)

func snapshot(t *testing.T, pid, status, exe string) *lldb.ProcessInfo {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, pid)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "status"), []byte(status), 0o644); err != nil {
		t.Fatal(err)
	}
	if exe != "" {
		if err := os.Symlink(exe, filepath.Join(dir, "exe")); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}
	lib := native.New(native.Options{ProcRoot: root})
	t.Cleanup(func() { lib.Close() })

	var n lldb.PID
	for _, c := range pid {
		n = n*10 + lldb.PID(c-'0')
	}
	p, err := lldb.ProcessInfoForPID(lib, n)
	if err != nil {
		t.Fatalf("ProcessInfoForPID: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestProcessInfoJSON(t *testing.T) {
	p := snapshot(t, "4242", "Name:\tbash\nPPid:\t1\nUid:\t1000\t1000\t1000\t1000\n", "/usr/bin/bash")

	doc, err := ProcessInfoJSON(p)
	if err != nil {
		t.Fatalf("ProcessInfoJSON: %v", err)
	}
	got := Select(doc,
		FieldName, FieldFilename, FieldDirectory,
		FieldProcessID, FieldParentProcessID,
		FieldUserID, FieldUserID+ValidSuffix,
		FieldGroupID, FieldGroupID+ValidSuffix,
	)
	if got[0].String() != "bash" || got[1].String() != "bash" || got[2].String() != "/usr/bin" {
		t.Errorf("names = %s %s %s", got[0], got[1], got[2])
	}
	if got[3].Int() != 4242 || got[4].Int() != 1 {
		t.Errorf("pids = %s %s", got[3], got[4])
	}
	if got[5].Int() != 1000 || !got[6].Bool() {
		t.Errorf("uid = %s valid=%s", got[5], got[6])
	}
	if !got[7].Exists() || got[7].Int() != 0 || got[8].Bool() {
		t.Errorf("absent gid = %s valid=%s", got[7], got[8])
	}
	if r := Select(doc, "missing"); r[0].Exists() {
		t.Error("missing path should not exist")
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	p := snapshot(t, "7", "Name:\tinit\nPPid:\t0\nUid:\t0\t0\t0\t0\nGid:\t0\t0\t0\t0\n", "")
	want := Project(p)
	doc, err := want.JSON()
	if err != nil {
		t.Fatal(err)
	}
	got, err := Decode(doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != want {
		t.Errorf("Decode = %+v, want %+v", got, want)
	}
	if !got.GroupIDValid || got.GroupID != 0 {
		t.Error("root gid is valid and zero")
	}

	if _, err := Decode([]byte("{")); err == nil {
		t.Error("Decode should reject invalid JSON")
	}
}

func TestOverflow(t *testing.T) {
	p := snapshot(t, "3000000000", "Name:\tbig\nPPid:\t1\nUid:\t4294967294\t1000\t0\t0\n", "")

	bad := Overflowed(p)
	if len(bad) != 2 || bad[0] != FieldProcessID || bad[1] != FieldUserID {
		t.Errorf("Overflowed = %v", bad)
	}

	r := Project(p)
	if r.ProcessID >= 0 || r.UserID != -2 {
		t.Errorf("narrowed pid=%d uid=%d", r.ProcessID, r.UserID)
	}
	if r.EffectiveUserID != 1000 {
		t.Errorf("euid = %d", r.EffectiveUserID)
	}

	_, err := CheckedJSON(p)
	var e *errors.Error
	if !stderrors.As(err, &e) || e.Kind != errors.KindOverflow || e.Field != FieldProcessID {
		t.Errorf("CheckedJSON err = %v", err)
	}
}

func TestCheckedJSON_InRange(t *testing.T) {
	p := snapshot(t, "10", "Name:\tok\nPPid:\t1\n", "")
	if len(Overflowed(p)) != 0 {
		t.Error("nothing should overflow")
	}
	doc, err := CheckedJSON(p)
	if err != nil {
		t.Fatalf("CheckedJSON: %v", err)
	}
	if Select(doc, FieldUserID+ValidSuffix)[0].Bool() {
		t.Error("uid missing from status should be invalid")
	}
}
