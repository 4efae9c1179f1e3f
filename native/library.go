package native

import (
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/lldb-go/resource"
	"github.com/wippyai/lldb-go/sys"
)

// Resource kinds, one per entity.
const (
	KindEvent resource.Kind = iota + 1
	KindBroadcaster
	KindInstruction
	KindInstructionList
	KindProcessInfo
	KindAddress
	KindFileSpec
	KindTarget
	KindData
	KindStream
)

var kindNames = map[resource.Kind]string{
	KindEvent:           "event",
	KindBroadcaster:     "broadcaster",
	KindInstruction:     "instruction",
	KindInstructionList: "instruction_list",
	KindProcessInfo:     "process_info",
	KindAddress:         "address",
	KindFileSpec:        "file_spec",
	KindTarget:          "target",
	KindData:            "data",
	KindStream:          "stream",
}

// KindName returns a readable name for a resource kind.
func KindName(k resource.Kind) string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// DefaultSymbolCacheSize is the per-image symbol lookup cache size.
const DefaultSymbolCacheSize = 1024

// Options configures a Library.
type Options struct {
	// Logger receives debug output. nil uses the package logger.
	Logger *zap.Logger

	// ProcRoot is the procfs mount used for process snapshots. Empty
	// restricts snapshots to the running process.
	ProcRoot string

	// SymbolCacheSize bounds each image's address-to-symbol cache.
	SymbolCacheSize int
}

// DefaultOptions returns the default library configuration.
func DefaultOptions() Options {
	return Options{
		ProcRoot:        defaultProcRoot,
		SymbolCacheSize: DefaultSymbolCacheSize,
	}
}

// Library implements sys.Library. Thread-safe.
type Library struct {
	table   *resource.UnifiedTable
	options Options
	log     *zap.Logger

	events       *resource.Typed[*event]
	broadcasters *resource.Typed[*broadcaster]
	instructions *resource.Typed[*instruction]
	lists        *resource.Typed[*instructionList]
	processes    *resource.Typed[*processInfo]
	addresses    *resource.Typed[*address]
	files        *resource.Typed[*fileSpec]
	targets      *resource.Typed[*target]
	datas        *resource.Typed[*data]
	streams      *resource.Typed[*stream]

	closeOnce sync.Once
}

var _ sys.Library = (*Library)(nil)

// New creates a Library with the given options.
func New(opts Options) *Library {
	if opts.SymbolCacheSize <= 0 {
		opts.SymbolCacheSize = DefaultSymbolCacheSize
	}
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	t := resource.NewTable()
	return &Library{
		table:        t,
		options:      opts,
		log:          log.Named("native"),
		events:       resource.NewTyped[*event](t, KindEvent),
		broadcasters: resource.NewTyped[*broadcaster](t, KindBroadcaster),
		instructions: resource.NewTyped[*instruction](t, KindInstruction),
		lists:        resource.NewTyped[*instructionList](t, KindInstructionList),
		processes:    resource.NewTyped[*processInfo](t, KindProcessInfo),
		addresses:    resource.NewTyped[*address](t, KindAddress),
		files:        resource.NewTyped[*fileSpec](t, KindFileSpec),
		targets:      resource.NewTyped[*target](t, KindTarget),
		datas:        resource.NewTyped[*data](t, KindData),
		streams:      resource.NewTyped[*stream](t, KindStream),
	}
}

// NewWithDefaults creates a Library with DefaultOptions.
func NewWithDefaults() *Library {
	return New(DefaultOptions())
}

// Options returns the configuration.
func (l *Library) Options() Options {
	return l.options
}

// Subscribe registers an observer for handle lifecycle events.
func (l *Library) Subscribe(o resource.Observer) {
	l.table.Subscribe(o)
}

// Unsubscribe removes an observer.
func (l *Library) Unsubscribe(o resource.Observer) {
	l.table.Unsubscribe(o)
}

// Live returns the number of handles not yet disposed.
func (l *Library) Live() int {
	return l.table.Len()
}

// LiveOf returns the number of handles of kind not yet disposed.
func (l *Library) LiveOf(k resource.Kind) int {
	n := 0
	for _, h := range l.table.Backend().Handles() {
		if hk, ok := l.table.KindOf(h); ok && hk == k {
			n++
		}
	}
	return n
}

// Rejected returns how many dispose calls named a handle that was not live.
func (l *Library) Rejected() uint64 {
	return l.table.Rejected()
}

// Invalidate marks a handle stale, as if the object behind it had been torn
// down by the debugger. Validity queries report false from then on, but the
// handle must still be disposed.
func (l *Library) Invalidate(raw uintptr) bool {
	h, ok := handleOf(raw)
	if !ok {
		return false
	}
	if !l.table.Invalidate(h) {
		return false
	}
	l.log.Debug("handle invalidated", zap.Uint32("handle", uint32(h)))
	return true
}

// Close disposes every outstanding handle. The library accepts no new
// objects afterwards.
func (l *Library) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if n := l.table.Len(); n > 0 {
			l.log.Debug("closing library with live handles", zap.Int("live", n))
		}
		err = l.table.Close()
	})
	return err
}

// handleOf converts a foreign reference into a table handle.
func handleOf[R sys.Ref](r R) (resource.Handle, bool) {
	if r == 0 || uint64(r) > math.MaxUint32 {
		return 0, false
	}
	return resource.Handle(r), true
}

func lookup[T any, R sys.Ref](v *resource.Typed[T], r R) (T, bool) {
	h, ok := handleOf(r)
	if !ok {
		var zero T
		return zero, false
	}
	return v.Get(h)
}

func isValid[T any, R sys.Ref](v *resource.Typed[T], r R) bool {
	h, ok := handleOf(r)
	return ok && v.Valid(h)
}

func insert[R sys.Ref, T any](v *resource.Typed[T], value T) R {
	return R(v.Insert(value))
}

func (l *Library) dispose(r uintptr, k resource.Kind) {
	h, ok := handleOf(r)
	if !ok {
		l.log.Debug("dispose of null handle", zap.String("kind", KindName(k)))
		return
	}
	if _, ok := l.table.RemoveTyped(h, k); !ok {
		l.log.Debug("dispose rejected",
			zap.String("kind", KindName(k)),
			zap.Uint32("handle", uint32(h)))
	}
}
