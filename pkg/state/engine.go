package state

import (
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/stagekit-dev/stagekit/pkg/document"
	"github.com/stagekit-dev/stagekit/pkg/view"
)

// entry is the registry record for one tracked view. path is always the
// dotted concatenation of ancestor names from the root and is recomputed
// whenever ancestry or identity changes.
type entry struct {
	v    view.View
	path string
}

// group tracks one in-flight transition batch. It exists only to gate the
// single state-changed notification and is dropped once its countdown
// completes.
type group struct {
	id  uint64
	sem *Semaphore
}

type changeSub struct {
	owner any
	fn    func(paths []string)
}

// Engine is the view state registry and transition coordinator for one
// tracked root. All methods except the Semaphore must be called from a
// single goroutine; see the package documentation.
type Engine struct {
	root view.View
	doc  document.Document

	entries  map[string]*entry              // id -> entry
	index    map[string]map[string]struct{} // path suffix -> ids
	layerIDs []string                       // registration order; sorted by visual order at export
	groups   map[uint64]*group
	nextGrp  uint64

	// prev is the last notified state snapshot, full export, never
	// minimised. Initialized empty.
	prev []string

	changeSubs []changeSub

	logger *slog.Logger
	tracer trace.Tracer
}

// New creates an engine for the given root and document collaborator and
// registers the root's current tree. Most callers should use For instead,
// which caches one engine per root.
func New(root view.View, doc document.Document) *Engine {
	e := &Engine{
		root:    root,
		doc:     doc,
		entries: make(map[string]*entry),
		index:   make(map[string]map[string]struct{}),
		groups:  make(map[uint64]*group),
		logger:  slog.Default().With("component", "state"),
		tracer:  otel.Tracer("stagekit/state"),
	}
	if err := e.RegisterView(root); err != nil {
		e.logger.Error("initial registration failed", "error", err)
	}
	return e
}

var (
	enginesMu sync.Mutex
	engines   = map[document.Handle]*Engine{}
)

// For returns the engine for root, creating and caching it on first use.
// Engines are keyed by the identity of the root's visual handle.
func For(root view.View, doc document.Document) *Engine {
	enginesMu.Lock()
	defer enginesMu.Unlock()
	if e, ok := engines[root.Handle()]; ok {
		return e
	}
	e := New(root, doc)
	engines[root.Handle()] = e
	return e
}

// Root returns the tracked root view.
func (e *Engine) Root() view.View { return e.root }

// SetLogger replaces the engine's logger.
func (e *Engine) SetLogger(logger *slog.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// OnStateChange subscribes fn to state-changed notifications under the given
// owner token. fn receives the full (non-minimised) export that differed
// from the previous one.
func (e *Engine) OnStateChange(owner any, fn func(paths []string)) {
	e.changeSubs = append(e.changeSubs, changeSub{owner: owner, fn: fn})
}

// OffStateChange removes every state-change subscription registered under
// owner.
func (e *Engine) OffStateChange(owner any) {
	kept := e.changeSubs[:0]
	for _, s := range e.changeSubs {
		if s.owner != owner {
			kept = append(kept, s)
		}
	}
	e.changeSubs = kept
}

// notifyChange recomputes the full export and, only if it differs from the
// previously notified snapshot by length or by any element, overwrites the
// snapshot and delivers it to subscribers.
func (e *Engine) notifyChange() {
	cur := e.ExportState(false)
	if equalStates(cur, e.prev) {
		return
	}
	e.prev = cur
	metrics().stateChanges.Inc()
	e.logger.Debug("state changed", "paths", cur)
	for _, s := range e.changeSubs {
		s.fn(cur)
	}
}

func equalStates(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
