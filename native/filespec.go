package native

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/wippyai/lldb-go/sys"
)

type fileSpec struct {
	dir  cstr
	name cstr
}

func newFileSpec(path string) *fileSpec {
	dir, name := filepath.Split(path)
	if len(dir) > 1 {
		dir = strings.TrimRight(dir, string(filepath.Separator))
	}
	return &fileSpec{dir: newCStr(dir), name: newCStr(name)}
}

// Valid reports whether the spec names anything.
func (f *fileSpec) Valid() bool {
	return len(f.dir) > 1 || len(f.name) > 1
}

func (f *fileSpec) path() string {
	return filepath.Join(f.dir.String(), f.name.String())
}

func (l *Library) newFileSpecRef(path string) sys.FileSpecRef {
	if path == "" {
		return 0
	}
	return insert[sys.FileSpecRef](l.files, newFileSpec(path))
}

func (l *Library) FileSpecIsValid(f sys.FileSpecRef) bool {
	return isValid(l.files, f)
}

func (l *Library) CloneFileSpec(f sys.FileSpecRef) sys.FileSpecRef {
	fs, ok := lookup(l.files, f)
	if !ok {
		return 0
	}
	return insert[sys.FileSpecRef](l.files, fs)
}

func (l *Library) DisposeFileSpec(f sys.FileSpecRef) {
	l.dispose(uintptr(f), KindFileSpec)
}

func (l *Library) FileSpecGetDescription(f sys.FileSpecRef, s sys.StreamRef) bool {
	fs, ok := lookup(l.files, f)
	if !ok {
		return false
	}
	st, ok := lookup(l.streams, s)
	if !ok {
		return false
	}
	fmt.Fprint(st, fs.path())
	return true
}

func (l *Library) FileSpecGetFilename(f sys.FileSpecRef) sys.CString {
	fs, ok := lookup(l.files, f)
	if !ok {
		return nil
	}
	return fs.name.ptr()
}

func (l *Library) FileSpecGetDirectory(f sys.FileSpecRef) sys.CString {
	fs, ok := lookup(l.files, f)
	if !ok {
		return nil
	}
	return fs.dir.ptr()
}
