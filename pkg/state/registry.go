package state

import (
	"fmt"

	"github.com/stagekit-dev/stagekit/pkg/view"
)

// RegisterView tracks v and its attached descendants. It is a no-op when v's
// visual handle is not attached to the tracked root, and idempotent when v
// is already registered under its own id. Registering a different view under
// an id that is already taken returns ErrDuplicateID.
//
// On success the view's path is computed and indexed under every trailing
// suffix, layers are added to the layer list, and the engine subscribes to
// the view's structural, identity, and transition notifications so the
// registry stays consistent as the tree changes.
func (e *Engine) RegisterView(v view.View) error {
	if !e.doc.Contains(v.Handle()) {
		return nil
	}
	if ex, ok := e.entries[v.ID()]; ok {
		if ex.v != v {
			return fmt.Errorf("%w: %q", ErrDuplicateID, v.ID())
		}
		// Already tracked; descend anyway to pick up new children.
		return e.registerChildren(v)
	}

	path := e.BuildPath(v, false)
	e.entries[v.ID()] = &entry{v: v, path: path}
	if path != "" {
		for _, suffix := range TrailingPaths(path) {
			bucket := e.index[suffix]
			if bucket == nil {
				bucket = make(map[string]struct{})
				e.index[suffix] = bucket
			}
			bucket[v.ID()] = struct{}{}
		}
	}
	if v.Kind() == view.KindLayer {
		e.layerIDs = append(e.layerIDs, v.ID())
	}
	e.subscribe(v)
	metrics().registeredViews.Inc()
	e.logger.Debug("view registered", "id", v.ID(), "path", path, "kind", v.Kind().String())

	return e.registerChildren(v)
}

func (e *Engine) registerChildren(v view.View) error {
	for _, c := range v.Children() {
		if err := e.RegisterView(c); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) subscribe(v view.View) {
	nt := v.Notifier()
	nt.On(view.EventChildAdded, e, func(ev view.Event) {
		// Registration errors here have no caller to surface to; a
		// duplicate id on a structural notification is logged and the
		// subtree stays untracked.
		if err := e.RegisterView(ev.Child); err != nil {
			e.logger.Error("register on childAdded failed", "err", err)
		}
	})
	nt.On(view.EventChildRemoved, e, func(ev view.Event) {
		e.UnregisterView(ev.Child)
	})
	nt.On(view.EventAttributesChanged, e, func(ev view.Event) {
		if !identityChanged(ev.Attrs) {
			return
		}
		e.UnregisterView(ev.Source)
		if err := e.RegisterView(ev.Source); err != nil {
			e.logger.Error("re-register after identity change failed", "err", err)
		}
	})
	nt.On(view.EventTransitionStarted, e, func(ev view.Event) {
		e.onTransitionStarted(ev)
	})
}

func identityChanged(attrs []string) bool {
	for _, a := range attrs {
		if a == "name" || a == "id" {
			return true
		}
	}
	return false
}

// UnregisterView stops tracking v and all of its currently tracked
// descendants: every suffix bucket entry is removed (empty buckets deleted),
// the layer list is pruned, the registry entry is dropped, and all of the
// engine's subscriptions on v are detached. Unregistering a view that was
// never registered is a no-op.
func (e *Engine) UnregisterView(v view.View) {
	id, ent := e.entryFor(v)
	if ent == nil {
		return
	}
	if ent.path != "" {
		for _, suffix := range TrailingPaths(ent.path) {
			if bucket := e.index[suffix]; bucket != nil {
				delete(bucket, id)
				if len(bucket) == 0 {
					delete(e.index, suffix)
				}
			}
		}
	}
	if v.Kind() == view.KindLayer {
		for i, lid := range e.layerIDs {
			if lid == id {
				e.layerIDs = append(e.layerIDs[:i], e.layerIDs[i+1:]...)
				break
			}
		}
	}
	delete(e.entries, id)
	v.Notifier().Off(e)
	metrics().registeredViews.Dec()
	e.logger.Debug("view unregistered", "id", id, "path", ent.path)

	for _, c := range v.Children() {
		e.UnregisterView(c)
	}
}

// entryFor finds the registry record owned by v. The id the entry is stored
// under may differ from v.ID() when an id change is being processed, so the
// lookup is by view identity with the id key as a fast path.
func (e *Engine) entryFor(v view.View) (string, *entry) {
	if ent, ok := e.entries[v.ID()]; ok && ent.v == v {
		return v.ID(), ent
	}
	for id, ent := range e.entries {
		if ent.v == v {
			return id, ent
		}
	}
	return "", nil
}

// GetViewByPath returns the view whose current path exactly equals path, or
// nil if no registered view matches.
func (e *Engine) GetViewByPath(path string) view.View {
	for id := range e.index[path] {
		if ent := e.entries[id]; ent != nil && ent.path == path {
			return ent.v
		}
	}
	return nil
}
