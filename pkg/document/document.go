package document

import (
	"sync"
	"sync/atomic"
)

// Handles are unique across all documents in the process, so a handle can
// key per-root caches without naming its document.
var nextHandle atomic.Uint64

// Handle is an opaque reference to a visual element. Handles are issued by a
// Document on attach and are only ever used for identity and position
// comparison. The zero Handle means "not attached".
type Handle uint64

// Document answers containment and ordering questions about visual handles.
type Document interface {
	// Contains reports whether h is currently attached to the tracked root.
	Contains(h Handle) bool

	// Compare returns a negative number if a precedes b in visual order,
	// a positive number if a follows b, and zero if they are the same
	// element. Both handles must be attached.
	Compare(a, b Handle) int
}

// MemoryDocument is an in-memory Document. It assigns monotonically
// increasing positions on attach, so visual order is attach order. It is the
// implementation used by the built-in view nodes, the CLI, and tests; a real
// rendering host supplies its own Document.
type MemoryDocument struct {
	mu   sync.Mutex
	pos  map[Handle]int
	tick int
}

// NewMemoryDocument creates an empty in-memory document.
func NewMemoryDocument() *MemoryDocument {
	return &MemoryDocument{pos: make(map[Handle]int)}
}

// Attach issues a new handle placed after every previously attached element.
func (d *MemoryDocument) Attach() Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	h := Handle(nextHandle.Add(1))
	d.tick++
	d.pos[h] = d.tick
	return h
}

// Detach removes h from the document. Detaching an unknown handle is a no-op.
func (d *MemoryDocument) Detach(h Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.pos, h)
}

// Contains implements Document.
func (d *MemoryDocument) Contains(h Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pos[h]
	return ok
}

// Compare implements Document.
func (d *MemoryDocument) Compare(a, b Handle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pos[a] - d.pos[b]
}
