package state

import (
	"strings"

	"github.com/stagekit-dev/stagekit/pkg/view"
)

// Separator joins path segments.
const Separator = "."

// TrailingPaths returns the progressively shorter suffixes of path obtained
// by repeatedly stripping the leading segment: "a.b.c" yields
// ["a.b.c", "b.c", "c"]. These are the keys a path is indexed under so that
// shorter, ambiguous, relative references still find it.
func TrailingPaths(path string) []string {
	out := []string{path}
	for {
		i := strings.Index(path, Separator)
		if i < 0 {
			return out
		}
		path = path[i+1:]
		out = append(out, path)
	}
}

// BuildPath returns the dotted path from the tracked root to v. The root
// itself has the empty path; its children are the first path segment.
//
// When recalc is false, a registered parent's cached path is reused, so
// registering a deep subtree does not re-walk the whole ancestry per node.
// recalc forces full recomputation from the root, used when path integrity
// must be re-derived from scratch.
func (e *Engine) BuildPath(v view.View, recalc bool) string {
	if v == nil || v == e.root {
		return ""
	}
	parentPath := ""
	if parent := v.Parent(); parent != nil && parent != e.root {
		if !recalc {
			if ent, ok := e.entries[parent.ID()]; ok {
				parentPath = ent.path
			} else {
				parentPath = e.BuildPath(parent, false)
			}
		} else {
			parentPath = e.BuildPath(parent, true)
		}
	}
	if parentPath == "" {
		return v.Name()
	}
	return parentPath + Separator + v.Name()
}
