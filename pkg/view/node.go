package view

import "github.com/stagekit-dev/stagekit/pkg/document"

// Node is the in-memory view implementation. A single struct carries all
// three roles, discriminated by Kind; layer- and frame-specific fields are
// meaningful only for their role. Children are owned in document order, the
// parent link is a plain non-owning pointer.
type Node struct {
	id       string
	name     string
	kind     Kind
	parent   View
	children []View
	handle   document.Handle
	doc      *document.MemoryDocument
	notifier Notifier

	// Layer-only fields.
	current      string
	defaultFrame string
	noURL        bool
	animator     func(frameName string, rec *Record, start func())
}

// NewStage creates a root node and attaches it to doc immediately.
func NewStage(doc *document.MemoryDocument, id, name string) *Node {
	return &Node{id: id, name: name, kind: KindStage, doc: doc, handle: doc.Attach()}
}

// NewLayer creates a detached layer node. defaultFrame may be "" when the
// layer has no configured default; noURL suppresses the layer's path from
// minimised state exports.
func NewLayer(id, name, defaultFrame string, noURL bool) *Node {
	return &Node{id: id, name: name, kind: KindLayer, defaultFrame: defaultFrame, noURL: noURL}
}

// NewFrame creates a detached frame node.
func NewFrame(id, name string) *Node {
	return &Node{id: id, name: name, kind: KindFrame}
}

// ID implements View.
func (n *Node) ID() string { return n.id }

// Name implements View.
func (n *Node) Name() string { return n.name }

// Kind implements View.
func (n *Node) Kind() Kind { return n.kind }

// Parent implements View.
func (n *Node) Parent() View { return n.parent }

// Handle implements View.
func (n *Node) Handle() document.Handle { return n.handle }

// Children implements View.
func (n *Node) Children() []View {
	out := make([]View, len(n.children))
	copy(out, n.children)
	return out
}

// Notifier implements View.
func (n *Node) Notifier() *Notifier { return &n.notifier }

// SetID changes the id and announces the identity change.
func (n *Node) SetID(id string) {
	n.id = id
	n.notifier.Emit(Event{Name: EventAttributesChanged, Source: n, Attrs: []string{"id"}})
}

// SetName changes the name and announces the identity change.
func (n *Node) SetName(name string) {
	n.name = name
	n.notifier.Emit(Event{Name: EventAttributesChanged, Source: n, Attrs: []string{"name"}})
}

// AddChild appends child, attaches it (and its descendants) to the
// document, and emits childAdded. The child must be detached.
func (n *Node) AddChild(child *Node) {
	child.parent = n
	n.children = append(n.children, child)
	child.attach(n.doc)
	n.notifier.Emit(Event{Name: EventChildAdded, Source: n, Child: child})
}

// RemoveChild detaches child and its descendants from the document, removes
// it from the ordered children, and emits childRemoved. Removing a view that
// is not a child is a no-op.
func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c.(*Node) != child {
			continue
		}
		n.children = append(n.children[:i], n.children[i+1:]...)
		n.notifier.Emit(Event{Name: EventChildRemoved, Source: n, Child: child})
		child.detach()
		child.parent = nil
		return
	}
}

func (n *Node) attach(doc *document.MemoryDocument) {
	n.doc = doc
	if doc != nil {
		n.handle = doc.Attach()
	}
	for _, c := range n.children {
		c.(*Node).attach(doc)
	}
}

func (n *Node) detach() {
	for _, c := range n.children {
		c.(*Node).detach()
	}
	if n.doc != nil {
		n.doc.Detach(n.handle)
	}
	n.handle = 0
	n.doc = nil
}

// CurrentFrame implements Layer.
func (n *Node) CurrentFrame() Frame {
	if n.current == "" {
		return nil
	}
	for _, c := range n.children {
		if c.Kind() == KindFrame && c.Name() == n.current {
			return c
		}
	}
	return nil
}

// DefaultFrame implements Layer.
func (n *Node) DefaultFrame() string { return n.defaultFrame }

// NoURL implements Layer.
func (n *Node) NoURL() bool { return n.noURL }

// SetAnimator installs the hook driving animated transitions. The hook is
// handed a start function and must call it exactly once, when the transition
// actually begins; until then the layer has not reported. With no animator,
// TransitionTo switches and reports immediately.
func (n *Node) SetAnimator(fn func(frameName string, rec *Record, start func())) {
	n.animator = fn
}

// TransitionTo implements Layer.
func (n *Node) TransitionTo(frameName string, rec *Record) {
	if n.animator != nil {
		n.animator(frameName, rec, func() { n.switchFrame(frameName, rec) })
		return
	}
	n.switchFrame(frameName, rec)
}

// ShowFrame implements Layer.
func (n *Node) ShowFrame(frameName string, rec *Record) {
	n.switchFrame(frameName, rec)
}

func (n *Node) switchFrame(frameName string, rec *Record) {
	n.current = frameName
	n.notifier.Emit(Event{Name: EventTransitionStarted, Source: n, Frame: frameName, Record: rec})
}
