package projection

import (
	"math"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	lldb "github.com/wippyai/lldb-go"
	"github.com/wippyai/lldb-go/errors"
)

// Field paths in a projected document.
const (
	FieldName             = "name"
	FieldFilename         = "executable_file.filename"
	FieldDirectory        = "executable_file.directory"
	FieldProcessID        = "process_id"
	FieldParentProcessID  = "parent_process_id"
	FieldUserID           = "user_id"
	FieldGroupID          = "group_id"
	FieldEffectiveUserID  = "effective_user_id"
	FieldEffectiveGroupID = "effective_group_id"
)

// ValidSuffix is appended to an optional id's path to form its flag path.
const ValidSuffix = "_is_valid"

// Record is the flat form of a projected snapshot.
type Record struct {
	Name      string
	Filename  string
	Directory string

	ProcessID       int32
	ParentProcessID int32

	UserID           int32
	GroupID          int32
	EffectiveUserID  int32
	EffectiveGroupID int32

	UserIDValid           bool
	GroupIDValid          bool
	EffectiveUserIDValid  bool
	EffectiveGroupIDValid bool
}

type optional struct {
	path  string
	id    uint32
	valid bool
}

func optionals(p *lldb.ProcessInfo) []optional {
	var out []optional
	for _, f := range []struct {
		path string
		get  func() (uint32, bool)
	}{
		{FieldUserID, p.UserID},
		{FieldGroupID, p.GroupID},
		{FieldEffectiveUserID, p.EffectiveUserID},
		{FieldEffectiveGroupID, p.EffectiveGroupID},
	} {
		id, ok := f.get()
		out = append(out, optional{path: f.path, id: id, valid: ok})
	}
	return out
}

// Project reads every field of p. Absent ids are recorded as 0.
func Project(p *lldb.ProcessInfo) Record {
	r := Record{
		Name:            p.Name(),
		ProcessID:       int32(p.ProcessID()),
		ParentProcessID: int32(p.ParentProcessID()),
	}
	if exe, ok := p.ExecutableFile(); ok {
		r.Filename = exe.Filename()
		r.Directory = exe.Directory()
		exe.Close()
	}
	for _, o := range optionals(p) {
		var v int32
		if o.valid {
			v = int32(o.id)
		}
		switch o.path {
		case FieldUserID:
			r.UserID, r.UserIDValid = v, o.valid
		case FieldGroupID:
			r.GroupID, r.GroupIDValid = v, o.valid
		case FieldEffectiveUserID:
			r.EffectiveUserID, r.EffectiveUserIDValid = v, o.valid
		case FieldEffectiveGroupID:
			r.EffectiveGroupID, r.EffectiveGroupIDValid = v, o.valid
		}
	}
	return r
}

// JSON renders the record as a document.
func (r Record) JSON() ([]byte, error) {
	doc := []byte(`{}`)
	for _, f := range []struct {
		path  string
		value any
	}{
		{FieldName, r.Name},
		{FieldFilename, r.Filename},
		{FieldDirectory, r.Directory},
		{FieldProcessID, r.ProcessID},
		{FieldParentProcessID, r.ParentProcessID},
		{FieldUserID, r.UserID},
		{FieldUserID + ValidSuffix, r.UserIDValid},
		{FieldGroupID, r.GroupID},
		{FieldGroupID + ValidSuffix, r.GroupIDValid},
		{FieldEffectiveUserID, r.EffectiveUserID},
		{FieldEffectiveUserID + ValidSuffix, r.EffectiveUserIDValid},
		{FieldEffectiveGroupID, r.EffectiveGroupID},
		{FieldEffectiveGroupID + ValidSuffix, r.EffectiveGroupIDValid},
	} {
		var err error
		doc, err = sjson.SetBytes(doc, f.path, f.value)
		if err != nil {
			return nil, errors.Wrap(errors.PhaseProject, errors.KindInvalidData, err, "set "+f.path)
		}
	}
	return doc, nil
}

// ProcessInfoJSON projects p and renders it.
func ProcessInfoJSON(p *lldb.ProcessInfo) ([]byte, error) {
	return Project(p).JSON()
}

// Select returns the values at paths, in order. Missing paths yield a
// result whose Exists reports false.
func Select(doc []byte, paths ...string) []gjson.Result {
	return gjson.GetManyBytes(doc, paths...)
}

// Decode reads a document produced by JSON back into a Record.
func Decode(doc []byte) (Record, error) {
	if !gjson.ValidBytes(doc) {
		return Record{}, errors.InvalidInput(errors.PhaseProject, "document is not valid JSON")
	}
	v := gjson.ParseBytes(doc)
	id := func(path string) int32 { return int32(v.Get(path).Int()) }
	flag := func(path string) bool { return v.Get(path + ValidSuffix).Bool() }
	return Record{
		Name:                  v.Get(FieldName).String(),
		Filename:              v.Get(FieldFilename).String(),
		Directory:             v.Get(FieldDirectory).String(),
		ProcessID:             id(FieldProcessID),
		ParentProcessID:       id(FieldParentProcessID),
		UserID:                id(FieldUserID),
		GroupID:               id(FieldGroupID),
		EffectiveUserID:       id(FieldEffectiveUserID),
		EffectiveGroupID:      id(FieldEffectiveGroupID),
		UserIDValid:           flag(FieldUserID),
		GroupIDValid:          flag(FieldGroupID),
		EffectiveUserIDValid:  flag(FieldEffectiveUserID),
		EffectiveGroupIDValid: flag(FieldEffectiveGroupID),
	}, nil
}

// Overflowed returns the paths of fields whose values do not fit in an
// int32 and are therefore misrepresented by the projection. Absent ids
// never overflow.
func Overflowed(p *lldb.ProcessInfo) []string {
	var out []string
	if p.ProcessID() > math.MaxInt32 {
		out = append(out, FieldProcessID)
	}
	if p.ParentProcessID() > math.MaxInt32 {
		out = append(out, FieldParentProcessID)
	}
	for _, o := range optionals(p) {
		if o.valid && o.id > math.MaxInt32 {
			out = append(out, o.path)
		}
	}
	return out
}

// CheckedJSON is ProcessInfoJSON that refuses to narrow: it fails with an
// overflow error naming the first field that would be misrepresented.
func CheckedJSON(p *lldb.ProcessInfo) ([]byte, error) {
	if bad := Overflowed(p); len(bad) > 0 {
		return nil, errors.Overflow(errors.PhaseProject, "SBProcessInfo", bad[0], fieldValue(p, bad[0]), "int32")
	}
	return ProcessInfoJSON(p)
}

func fieldValue(p *lldb.ProcessInfo, path string) any {
	switch path {
	case FieldProcessID:
		return p.ProcessID()
	case FieldParentProcessID:
		return p.ParentProcessID()
	}
	for _, o := range optionals(p) {
		if o.path == path {
			return o.id
		}
	}
	return nil
}
