package state

import (
	"fmt"
	"sort"
	"strings"

	"github.com/stagekit-dev/stagekit/pkg/view"
)

// SelectorPrefix marks a reserved frame-selector segment. A path whose final
// segment begins with it (e.g. "nav.!none") resolves to the enclosing layer
// rather than to a literal frame name.
const SelectorPrefix = "!"

// Descriptor is one resolution result.
//
// For a reserved-selector path, Layer and FrameName are set and FrameName
// keeps its "!" prefix. For a frame, every field is set and Active reports
// whether the owning layer is currently showing it. For a plain container
// with no frame semantics, only View is set.
type Descriptor struct {
	Layer     view.Layer
	View      view.View
	FrameName string
	Path      string
	Active    bool
}

// ResolvePath resolves a path expression to one or more descriptors.
//
// The final segment is the target name; the preceding segments form the
// container path. A reserved selector is looked up by container path (or
// against every registered layer when the container path is empty);
// otherwise the full expression is looked up in the suffix index, so an
// expression may name any trailing portion of a registered path.
//
// When the expression is ambiguous and a context view is supplied, the
// nearest enclosing scope wins: candidates are filtered to those under the
// context's path, and the context path is shortened segment by segment until
// some survive. If no prefix of the context path matches, the full
// candidate set is returned.
func (e *Engine) ResolvePath(path string, context view.View) ([]Descriptor, error) {
	segments := strings.Split(path, Separator)
	target := segments[len(segments)-1]
	containerPath := strings.Join(segments[:len(segments)-1], Separator)
	selector := strings.HasPrefix(target, SelectorPrefix)

	var ids []string
	if selector {
		if containerPath == "" {
			ids = append(ids, e.layerIDs...)
		} else {
			ids = e.candidates(containerPath)
		}
	} else {
		ids = e.candidates(path)
	}
	if len(ids) == 0 {
		metrics().resolveErrors.WithLabelValues("unresolved").Inc()
		return nil, fmt.Errorf("%w: %q", ErrUnresolvedPath, path)
	}

	if len(ids) > 1 && context != nil {
		ids = e.nearestScope(ids, context)
	}

	descs := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		ent := e.entries[id]
		if ent == nil {
			continue
		}
		v := ent.v
		if selector {
			layer, ok := v.(view.Layer)
			if !ok || v.Kind() != view.KindLayer {
				metrics().resolveErrors.WithLabelValues("role").Inc()
				return nil, fmt.Errorf("%w: %q resolves to %s %q", ErrRoleMismatch, path, v.Kind(), ent.path)
			}
			descs = append(descs, Descriptor{Layer: layer, FrameName: target})
			continue
		}
		switch v.Kind() {
		case view.KindFrame:
			layer, _ := v.Parent().(view.Layer)
			active := false
			if layer != nil {
				if cf := layer.CurrentFrame(); cf != nil {
					active = cf.Name() == v.Name()
				}
			}
			descs = append(descs, Descriptor{
				Layer:     layer,
				View:      v,
				FrameName: v.Name(),
				Path:      ent.path,
				Active:    active,
			})
		default:
			descs = append(descs, Descriptor{View: v})
		}
	}
	return descs, nil
}

// candidates returns the ids indexed under the given suffix, ordered by
// registered path (map iteration order is not stable).
func (e *Engine) candidates(suffix string) []string {
	bucket := e.index[suffix]
	if len(bucket) == 0 {
		return nil
	}
	ids := make([]string, 0, len(bucket))
	for id := range bucket {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := e.entries[ids[i]], e.entries[ids[j]]
		if a.path != b.path {
			return a.path < b.path
		}
		return ids[i] < ids[j]
	})
	return ids
}

// nearestScope keeps only the candidates under the context view's path,
// widening the scope one segment at a time. When the scope is exhausted the
// original set is returned unchanged.
func (e *Engine) nearestScope(ids []string, context view.View) []string {
	scope := e.BuildPath(context, false)
	for scope != "" {
		var kept []string
		for _, id := range ids {
			if ent := e.entries[id]; ent != nil && strings.HasPrefix(ent.path, scope) {
				kept = append(kept, id)
			}
		}
		if len(kept) > 0 {
			return kept
		}
		if i := strings.LastIndex(scope, Separator); i >= 0 {
			scope = scope[:i]
		} else {
			scope = ""
		}
	}
	return ids
}
