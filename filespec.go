package lldb

import (
	"path"

	"github.com/wippyai/lldb-go/sys"
)

// FileSpec names a file by directory and filename.
type FileSpec struct {
	lib sys.Library
	h   *handle[sys.FileSpecRef]
}

// WrapFileSpec takes ownership of raw if the library reports it valid.
func WrapFileSpec(lib sys.Library, raw sys.FileSpecRef) (*FileSpec, bool) {
	if !gate(raw, entityFileSpec, lib.FileSpecIsValid) {
		return nil, false
	}
	return &FileSpec{lib: lib, h: own(raw, entityFileSpec, lib.DisposeFileSpec)}, true
}

// IsValid re-queries the library.
func (f *FileSpec) IsValid() bool {
	return f.h.valid(f.lib.FileSpecIsValid)
}

// Filename returns the last path element.
func (f *FileSpec) Filename() string {
	return callText(f.h, "filename", f.lib.FileSpecGetFilename)
}

// Directory returns everything before the filename.
func (f *FileSpec) Directory() string {
	return callText(f.h, "directory", f.lib.FileSpecGetDirectory)
}

// Path joins Directory and Filename.
func (f *FileSpec) Path() string {
	dir := f.Directory()
	if dir == "" {
		return f.Filename()
	}
	return path.Join(dir, f.Filename())
}

// Clone returns an independent copy owned by the caller.
func (f *FileSpec) Clone() (*FileSpec, bool) {
	return WrapFileSpec(f.lib, call(f.h, "clone", f.lib.CloneFileSpec))
}

// Description returns the library's rendering of the file.
func (f *FileSpec) Description() string {
	return describe(f.lib, f.h, f.lib.FileSpecGetDescription)
}

// String implements fmt.Stringer.
func (f *FileSpec) String() string {
	return render(f.lib, f.h, f.lib.FileSpecGetDescription)
}

// Close releases the file spec. It is safe to call more than once.
func (f *FileSpec) Close() error {
	f.h.release()
	return nil
}
