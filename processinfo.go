package lldb

import (
	"strconv"

	"github.com/wippyai/lldb-go/errors"
	"github.com/wippyai/lldb-go/sys"
)

// PID is a process identifier.
type PID = sys.PID

// ProcessInfo is a snapshot of an OS process's identity.
//
// User and group ids are optional: the platform may not report them. Each
// id accessor consults the library's validity query first and returns
// (0, false) when it reports the id unavailable.
type ProcessInfo struct {
	lib sys.Library
	h   *handle[sys.ProcessInfoRef]
}

// WrapProcessInfo takes ownership of raw if the library reports it valid.
func WrapProcessInfo(lib sys.Library, raw sys.ProcessInfoRef) (*ProcessInfo, bool) {
	if !gate(raw, entityProcessInfo, lib.ProcessInfoIsValid) {
		return nil, false
	}
	return &ProcessInfo{lib: lib, h: own(raw, entityProcessInfo, lib.DisposeProcessInfo)}, true
}

// ProcessInfoForPID snapshots the process with the given id.
func ProcessInfoForPID(lib sys.Library, pid PID) (*ProcessInfo, error) {
	raw := lib.ProcessInfoForPID(pid)
	p, ok := WrapProcessInfo(lib, raw)
	if !ok {
		if raw != 0 {
			lib.DisposeProcessInfo(raw)
		}
		return nil, errors.NotFound(errors.PhaseLoad, "process", strconv.FormatUint(pid, 10))
	}
	return p, nil
}

// IsValid re-queries the library.
func (p *ProcessInfo) IsValid() bool {
	return p.h.valid(p.lib.ProcessInfoIsValid)
}

// Name returns the process name.
func (p *ProcessInfo) Name() string {
	return callText(p.h, "name", p.lib.ProcessInfoGetName)
}

// ExecutableFile returns the process's executable, if known.
func (p *ProcessInfo) ExecutableFile() (*FileSpec, bool) {
	return WrapFileSpec(p.lib, call(p.h, "executable_file", p.lib.ProcessInfoGetExecutableFile))
}

// ProcessID returns the process id.
func (p *ProcessInfo) ProcessID() PID {
	return call(p.h, "process_id", p.lib.ProcessInfoGetProcessID)
}

// ParentProcessID returns the parent's process id.
func (p *ProcessInfo) ParentProcessID() PID {
	return call(p.h, "parent_process_id", p.lib.ProcessInfoGetParentProcessID)
}

// optionalID collapses a validity query and a getter into one result.
func (p *ProcessInfo) optionalID(field string, valid func(sys.ProcessInfoRef) bool, get func(sys.ProcessInfoRef) uint32) (uint32, bool) {
	type result struct {
		id uint32
		ok bool
	}
	r := call(p.h, field, func(raw sys.ProcessInfoRef) result {
		if !valid(raw) {
			return result{}
		}
		return result{id: get(raw), ok: true}
	})
	return r.id, r.ok
}

// UserID returns the real user id.
func (p *ProcessInfo) UserID() (uint32, bool) {
	return p.optionalID("user_id", p.lib.ProcessInfoUserIDIsValid, p.lib.ProcessInfoGetUserID)
}

// GroupID returns the real group id.
func (p *ProcessInfo) GroupID() (uint32, bool) {
	return p.optionalID("group_id", p.lib.ProcessInfoGroupIDIsValid, p.lib.ProcessInfoGetGroupID)
}

// EffectiveUserID returns the effective user id.
func (p *ProcessInfo) EffectiveUserID() (uint32, bool) {
	return p.optionalID("effective_user_id", p.lib.ProcessInfoEffectiveUserIDIsValid, p.lib.ProcessInfoGetEffectiveUserID)
}

// EffectiveGroupID returns the effective group id.
func (p *ProcessInfo) EffectiveGroupID() (uint32, bool) {
	return p.optionalID("effective_group_id", p.lib.ProcessInfoEffectiveGroupIDIsValid, p.lib.ProcessInfoGetEffectiveGroupID)
}

// Clone returns an independent copy owned by the caller.
func (p *ProcessInfo) Clone() (*ProcessInfo, bool) {
	return WrapProcessInfo(p.lib, call(p.h, "clone", p.lib.CloneProcessInfo))
}

// Description returns the library's rendering of the snapshot.
func (p *ProcessInfo) Description() string {
	return describe(p.lib, p.h, p.lib.ProcessInfoGetDescription)
}

// String implements fmt.Stringer.
func (p *ProcessInfo) String() string {
	return render(p.lib, p.h, p.lib.ProcessInfoGetDescription)
}

// Close releases the snapshot. It is safe to call more than once.
func (p *ProcessInfo) Close() error {
	p.h.release()
	return nil
}
