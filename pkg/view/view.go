package view

import "github.com/stagekit-dev/stagekit/pkg/document"

// Kind is the view role discriminator.
type Kind uint8

const (
	KindStage Kind = iota // Root container
	KindLayer             // Switchable container of frames
	KindFrame             // Selectable content unit
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindStage:
		return "Stage"
	case KindLayer:
		return "Layer"
	case KindFrame:
		return "Frame"
	default:
		return "Unknown"
	}
}

// View is the capability contract every node in the hierarchy provides.
type View interface {
	// ID returns the externally-unique identifier.
	ID() string

	// Name returns the label, unique among siblings. Paths are built from
	// names.
	Name() string

	// Kind returns the view role.
	Kind() Kind

	// Parent returns the structural parent, or nil for a root.
	Parent() View

	// Handle returns the opaque reference to the underlying visual
	// element. The engine uses it only for identity and position
	// comparison.
	Handle() document.Handle

	// Children returns the owned, ordered child views.
	Children() []View

	// Notifier returns the view's event notifier.
	Notifier() *Notifier
}

// Layer is the switchable-container capability. Only views whose Kind is
// KindLayer honor it.
type Layer interface {
	View

	// CurrentFrame returns the frame currently showing, or nil.
	CurrentFrame() Frame

	// DefaultFrame returns the configured default frame name, or "".
	DefaultFrame() string

	// NoURL reports whether this layer's path is suppressed from
	// minimised state exports.
	NoURL() bool

	// TransitionTo switches to the named frame with animation. The layer
	// must emit EventTransitionStarted once the transition actually
	// starts.
	TransitionTo(frameName string, rec *Record)

	// ShowFrame switches to the named frame without animation. The layer
	// must still emit EventTransitionStarted.
	ShowFrame(frameName string, rec *Record)
}

// Frame is the selectable-content capability. Its Name is the switchable key
// within the owning layer.
type Frame interface {
	View
}

// Countdown is the synchronization handle a transition record carries. Each
// participant calls Done exactly once when its transition starts.
type Countdown interface {
	Done()
}

// Record is a transition record. The engine reads and writes only Semaphore
// and GroupID; Params carries arbitrary caller-defined animation parameters
// for the layer implementation.
type Record struct {
	Semaphore Countdown
	GroupID   uint64
	Params    map[string]any
}

// Clone returns a shallow copy of the record so the engine can stamp its own
// Semaphore and GroupID without mutating the caller's value.
func (r *Record) Clone() *Record {
	if r == nil {
		return &Record{}
	}
	c := *r
	return &c
}
