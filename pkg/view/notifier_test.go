package view

import "testing"

func TestNotifierDelivery(t *testing.T) {
	var n Notifier
	var got []string

	n.On(EventChildAdded, "o", func(e Event) { got = append(got, "first") })
	n.On(EventChildAdded, "o", func(e Event) { got = append(got, "second") })
	n.On(EventChildRemoved, "o", func(e Event) { got = append(got, "removed") })

	n.Emit(Event{Name: EventChildAdded})
	if len(got) != 2 || got[0] != "first" || got[1] != "second" {
		t.Errorf("delivery = %v, want [first second]", got)
	}
}

// Off removes every subscription carrying the owner token, across events,
// and leaves other owners untouched.
func TestNotifierOffByOwner(t *testing.T) {
	var n Notifier
	var engine, other int

	ownerA, ownerB := "engine", "other"
	n.On(EventChildAdded, ownerA, func(Event) { engine++ })
	n.On(EventTransitionStarted, ownerA, func(Event) { engine++ })
	n.On(EventChildAdded, ownerB, func(Event) { other++ })

	n.Off(ownerA)
	n.Emit(Event{Name: EventChildAdded})
	n.Emit(Event{Name: EventTransitionStarted})

	if engine != 0 {
		t.Errorf("removed owner still received %d events", engine)
	}
	if other != 1 {
		t.Errorf("unrelated owner received %d events, want 1", other)
	}
}

// Handlers may unsubscribe during delivery without corrupting the list.
func TestNotifierUnsubscribeDuringEmit(t *testing.T) {
	var n Notifier
	var calls int

	owner := "self"
	n.On(EventChildAdded, owner, func(Event) {
		calls++
		n.Off(owner)
	})
	n.Emit(Event{Name: EventChildAdded})
	n.Emit(Event{Name: EventChildAdded})

	if calls != 1 {
		t.Errorf("handler ran %d times, want 1", calls)
	}
}
