package view

// Event names emitted by views.
const (
	EventChildAdded        = "childAdded"
	EventChildRemoved      = "childRemoved"
	EventTransitionStarted = "transitionStarted"
	EventAttributesChanged = "attributesChanged"
)

// Event is the payload delivered to subscribers. Fields are populated
// according to the event name: Child for childAdded/childRemoved, Frame and
// Record for transitionStarted, Attrs for attributesChanged.
type Event struct {
	Name   string
	Source View
	Child  View
	Frame  string
	Record *Record
	Attrs  []string
}

type subscription struct {
	owner any
	fn    func(Event)
}

// Notifier is a per-view event dispatcher. Each subscription is tagged with
// an owner token; Off removes every subscription carrying that token, across
// all event names. Multiple independent subscribers per event are supported.
type Notifier struct {
	subs map[string][]subscription
}

// On subscribes fn to the named event under the given owner token.
func (n *Notifier) On(event string, owner any, fn func(Event)) {
	if n.subs == nil {
		n.subs = make(map[string][]subscription)
	}
	n.subs[event] = append(n.subs[event], subscription{owner: owner, fn: fn})
}

// Off removes every subscription registered under owner.
func (n *Notifier) Off(owner any) {
	for event, subs := range n.subs {
		kept := subs[:0]
		for _, s := range subs {
			if s.owner != owner {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(n.subs, event)
		} else {
			n.subs[event] = kept
		}
	}
}

// Emit delivers e to every subscriber of e.Name, in subscription order.
// The subscriber list is snapshotted first so handlers may subscribe or
// unsubscribe during delivery.
func (n *Notifier) Emit(e Event) {
	subs := n.subs[e.Name]
	if len(subs) == 0 {
		return
	}
	snapshot := make([]subscription, len(subs))
	copy(snapshot, subs)
	for _, s := range snapshot {
		s.fn(e)
	}
}
