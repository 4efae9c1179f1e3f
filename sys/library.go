package sys

// EventAPI is the foreign surface for broadcast events.
type EventAPI interface {
	CreateEvent(eventType uint32, flavor string) EventRef
	EventIsValid(e EventRef) bool
	CloneEvent(e EventRef) EventRef
	DisposeEvent(e EventRef)
	EventGetDescription(e EventRef, s StreamRef) bool
	EventGetDataFlavor(e EventRef) CString
	EventGetType(e EventRef) uint32
	EventGetBroadcaster(e EventRef) BroadcasterRef
	EventGetBroadcasterClass(e EventRef) CString
	EventBroadcasterMatchesRef(e EventRef, b BroadcasterRef) bool
}

// BroadcasterAPI is the foreign surface for event sources.
type BroadcasterAPI interface {
	CreateBroadcaster(name, class string) BroadcasterRef
	BroadcasterIsValid(b BroadcasterRef) bool
	CloneBroadcaster(b BroadcasterRef) BroadcasterRef
	DisposeBroadcaster(b BroadcasterRef)
	BroadcasterGetName(b BroadcasterRef) CString
	BroadcasterIsEqual(b, other BroadcasterRef) bool
	BroadcasterBroadcastEvent(b BroadcasterRef, e EventRef) bool
}

// InstructionAPI is the foreign surface for decoded machine instructions.
// Text getters resolve symbols against the target passed with each call.
type InstructionAPI interface {
	InstructionIsValid(i InstructionRef) bool
	CloneInstruction(i InstructionRef) InstructionRef
	DisposeInstruction(i InstructionRef)
	InstructionGetDescription(i InstructionRef, s StreamRef) bool
	InstructionGetAddress(i InstructionRef) AddressRef
	InstructionGetMnemonic(i InstructionRef, t TargetRef) CString
	InstructionGetOperands(i InstructionRef, t TargetRef) CString
	InstructionGetComment(i InstructionRef, t TargetRef) CString
	InstructionGetData(i InstructionRef, t TargetRef) DataRef
	InstructionGetByteSize(i InstructionRef) uint64
	InstructionDoesBranch(i InstructionRef) bool
	InstructionHasDelaySlot(i InstructionRef) bool
}

// InstructionListAPI is the foreign surface for disassembly results.
type InstructionListAPI interface {
	InstructionListIsValid(l InstructionListRef) bool
	CloneInstructionList(l InstructionListRef) InstructionListRef
	DisposeInstructionList(l InstructionListRef)
	InstructionListGetDescription(l InstructionListRef, s StreamRef) bool
	InstructionListGetSize(l InstructionListRef) uint64
	InstructionListGetInstructionAtIndex(l InstructionListRef, idx uint64) InstructionRef
}

// ProcessInfoAPI is the foreign surface for process identity snapshots.
// Optional identity fields come in IsValid/Get pairs.
type ProcessInfoAPI interface {
	ProcessInfoForPID(pid PID) ProcessInfoRef
	ProcessInfoIsValid(p ProcessInfoRef) bool
	CloneProcessInfo(p ProcessInfoRef) ProcessInfoRef
	DisposeProcessInfo(p ProcessInfoRef)
	ProcessInfoGetDescription(p ProcessInfoRef, s StreamRef) bool
	ProcessInfoGetName(p ProcessInfoRef) CString
	ProcessInfoGetExecutableFile(p ProcessInfoRef) FileSpecRef
	ProcessInfoGetProcessID(p ProcessInfoRef) PID
	ProcessInfoGetParentProcessID(p ProcessInfoRef) PID
	ProcessInfoUserIDIsValid(p ProcessInfoRef) bool
	ProcessInfoGetUserID(p ProcessInfoRef) uint32
	ProcessInfoGroupIDIsValid(p ProcessInfoRef) bool
	ProcessInfoGetGroupID(p ProcessInfoRef) uint32
	ProcessInfoEffectiveUserIDIsValid(p ProcessInfoRef) bool
	ProcessInfoGetEffectiveUserID(p ProcessInfoRef) uint32
	ProcessInfoEffectiveGroupIDIsValid(p ProcessInfoRef) bool
	ProcessInfoGetEffectiveGroupID(p ProcessInfoRef) uint32
}

// AddressAPI is the foreign surface for section-relative addresses.
type AddressAPI interface {
	AddressIsValid(a AddressRef) bool
	CloneAddress(a AddressRef) AddressRef
	DisposeAddress(a AddressRef)
	AddressGetDescription(a AddressRef, s StreamRef) bool
	AddressGetFileAddress(a AddressRef) uint64
	AddressGetLoadAddress(a AddressRef, t TargetRef) uint64
}

// FileSpecAPI is the foreign surface for file references.
type FileSpecAPI interface {
	FileSpecIsValid(f FileSpecRef) bool
	CloneFileSpec(f FileSpecRef) FileSpecRef
	DisposeFileSpec(f FileSpecRef)
	FileSpecGetDescription(f FileSpecRef, s StreamRef) bool
	FileSpecGetFilename(f FileSpecRef) CString
	FileSpecGetDirectory(f FileSpecRef) CString
}

// TargetAPI is the foreign surface for debug targets, the context handles
// used for symbol resolution.
type TargetAPI interface {
	CreateTarget(path, flavor string) TargetRef
	TargetIsValid(t TargetRef) bool
	CloneTarget(t TargetRef) TargetRef
	DisposeTarget(t TargetRef)
	TargetGetDescription(t TargetRef, s StreamRef) bool
	TargetGetExecutable(t TargetRef) FileSpecRef
	TargetGetTriple(t TargetRef) CString
	TargetResolveLoadAddress(t TargetRef, addr uint64) AddressRef
	TargetReadInstructions(t TargetRef, a AddressRef, count uint32, flavor string) InstructionListRef
}

// DataAPI is the foreign surface for raw byte buffers.
type DataAPI interface {
	DataIsValid(d DataRef) bool
	CloneData(d DataRef) DataRef
	DisposeData(d DataRef)
	DataGetDescription(d DataRef, s StreamRef) bool
	DataGetByteSize(d DataRef) uint64
	DataReadRawData(d DataRef, offset uint64, buf []byte) int
}

// StreamAPI is the foreign surface for growable text buffers that
// descriptions are rendered into.
type StreamAPI interface {
	CreateStream() StreamRef
	StreamIsValid(s StreamRef) bool
	DisposeStream(s StreamRef)
	StreamGetData(s StreamRef) CString
	StreamGetSize(s StreamRef) uint64
	StreamClear(s StreamRef)
}

// Library is the complete foreign surface the bindings depend on.
// Implementations must be safe for concurrent use.
type Library interface {
	EventAPI
	BroadcasterAPI
	InstructionAPI
	InstructionListAPI
	ProcessInfoAPI
	AddressAPI
	FileSpecAPI
	TargetAPI
	DataAPI
	StreamAPI
}
