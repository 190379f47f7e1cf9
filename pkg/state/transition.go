package state

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/stagekit-dev/stagekit/pkg/view"
)

// pair is one dispatchable (layer, frame) target produced by resolution.
type pair struct {
	layer     view.Layer
	frameName string
	stateIdx  int // index of the originating path expression
}

// TransitionTo activates the named states as one batch, using the layers'
// animated transition operation.
//
// transitions supplies the transition record per state and is index-clamped:
// with fewer records than states the last record repeats, and with none an
// empty record is used. A layer is dispatched when it is not already showing
// the requested frame, or when the expression named the frame's exact path,
// which forces a re-trigger even if it is nominally active.
//
// All paths are resolved before anything is dispatched; a resolution error
// aborts the whole call. Returns whether any transition was dispatched.
func (e *Engine) TransitionTo(ctx context.Context, states []string, transitions ...*view.Record) (bool, error) {
	_, span := e.tracer.Start(ctx, "state.TransitionTo")
	defer span.End()
	return e.dispatch(span, states, transitions, true)
}

// ShowState activates the named states as one batch using the layers'
// non-animated switch operation. Unlike TransitionTo, targets that are
// already active are never re-triggered. Returns whether anything was
// dispatched.
func (e *Engine) ShowState(ctx context.Context, states []string) (bool, error) {
	_, span := e.tracer.Start(ctx, "state.ShowState")
	defer span.End()
	return e.dispatch(span, states, nil, false)
}

func (e *Engine) dispatch(span trace.Span, states []string, transitions []*view.Record, animated bool) (bool, error) {
	// Resolve everything first; no partial dispatch on error.
	var pairs []pair
	seen := map[string]struct{}{}
	for i, statePath := range states {
		descs, err := e.ResolvePath(statePath, nil)
		if err != nil {
			span.RecordError(err)
			return false, err
		}
		for _, d := range descs {
			if d.Layer == nil {
				continue // plain container, no frame semantics
			}
			forced := animated && d.Path != "" && d.Path == statePath
			if d.Active && !forced {
				continue
			}
			if _, dup := seen[d.Layer.ID()]; dup {
				continue
			}
			seen[d.Layer.ID()] = struct{}{}
			pairs = append(pairs, pair{layer: d.Layer, frameName: d.FrameName, stateIdx: i})
		}
	}
	if len(pairs) == 0 {
		return false, nil
	}

	e.nextGrp++
	groupID := e.nextGrp
	sem := NewSemaphore(len(pairs), func() {
		e.completeGroup(groupID)
	})
	e.groups[groupID] = &group{id: groupID, sem: sem}
	span.SetAttributes(
		attribute.Int("batch.size", len(pairs)),
		attribute.Int64("batch.group_id", int64(groupID)),
	)
	e.logger.Debug("transition batch dispatched",
		"group", groupID, "size", len(pairs), "animated", animated)

	for _, p := range pairs {
		rec := clampRecord(transitions, p.stateIdx).Clone()
		rec.Semaphore = sem
		rec.GroupID = groupID
		metrics().transitionsDispatched.Inc()
		if animated {
			p.layer.TransitionTo(p.frameName, rec)
		} else {
			p.layer.ShowFrame(p.frameName, rec)
		}
	}
	return true, nil
}

// clampRecord picks the transition record for state index i: a short list is
// extended by repeating its last record, an empty list yields an empty
// record.
func clampRecord(transitions []*view.Record, i int) *view.Record {
	if len(transitions) == 0 {
		return &view.Record{}
	}
	if i >= len(transitions) {
		i = len(transitions) - 1
	}
	if transitions[i] == nil {
		return &view.Record{}
	}
	return transitions[i]
}

// onTransitionStarted is the registry's subscription callback for a layer
// reporting that its transition actually started. A report that belongs to a
// tracked group feeds that group's countdown; the state-changed notification
// fires only once the whole batch has reported. A report with no group (a
// transition initiated outside the engine) checks for a state change
// immediately.
func (e *Engine) onTransitionStarted(ev view.Event) {
	rec := ev.Record
	if rec == nil || rec.GroupID == 0 {
		e.notifyChange()
		return
	}
	g := e.groups[rec.GroupID]
	if g == nil {
		// Late report for a group that already completed.
		e.logger.Warn("transition report for unknown group", "group", rec.GroupID)
		return
	}
	g.sem.Done()
}

// completeGroup runs when the last participant of a batch reports. The group
// record has served its purpose and is dropped before the notification is
// computed.
func (e *Engine) completeGroup(groupID uint64) {
	delete(e.groups, groupID)
	e.notifyChange()
}
