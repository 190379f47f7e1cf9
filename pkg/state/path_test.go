package state

import (
	"strings"
	"testing"

	"github.com/stagekit-dev/stagekit/pkg/view"
)

func TestTrailingPaths(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"a.b.c", []string{"a.b.c", "b.c", "c"}},
		{"a.b", []string{"a.b", "b"}},
		{"a", []string{"a"}},
		{"", []string{""}},
		{"nav.home.hero", []string{"nav.home.hero", "home.hero", "hero"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got := TrailingPaths(tt.path)
			wantStrings(t, got, tt.want)
		})
	}
}

// Every path with k separators yields exactly k+1 suffixes, the first equal
// to the path, the last containing no separator.
func TestTrailingPathsShape(t *testing.T) {
	paths := []string{"x", "x.y", "stage.nav.home.hero.title"}
	for _, p := range paths {
		got := TrailingPaths(p)
		k := strings.Count(p, Separator)
		if len(got) != k+1 {
			t.Errorf("TrailingPaths(%q) returned %d suffixes, want %d", p, len(got), k+1)
		}
		if got[0] != p {
			t.Errorf("first suffix = %q, want %q", got[0], p)
		}
		if last := got[len(got)-1]; strings.Contains(last, Separator) {
			t.Errorf("last suffix %q still contains a separator", last)
		}
	}
}

func TestBuildPath(t *testing.T) {
	s := newScene(t)

	tests := []struct {
		name string
		node string
		want string
	}{
		{"root has empty path", "stage", ""},
		{"layer", "A", "A"},
		{"frame", "A.x", "A.x"},
		{"second layer frame", "B.y", "B.y"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.eng.BuildPath(s.nodes[tt.node], false); got != tt.want {
				t.Errorf("BuildPath(%s) = %q, want %q", tt.node, got, tt.want)
			}
			if got := s.eng.BuildPath(s.nodes[tt.node], true); got != tt.want {
				t.Errorf("BuildPath(%s, recalc) = %q, want %q", tt.node, got, tt.want)
			}
		})
	}
}

// BuildPath reuses the registered parent's cached path on the fast path, so
// a stale cache shows through until recalc forces recomputation.
func TestBuildPathRecalc(t *testing.T) {
	s := newScene(t)
	frame := s.nodes["A.x"]

	ent := s.eng.entries["layer-A"]
	ent.path = "stale"
	if got := s.eng.BuildPath(frame, false); got != "stale.x" {
		t.Errorf("cached BuildPath = %q, want %q", got, "stale.x")
	}
	if got := s.eng.BuildPath(frame, true); got != "A.x" {
		t.Errorf("recalc BuildPath = %q, want %q", got, "A.x")
	}
}

func TestGetViewByPathRoundTrip(t *testing.T) {
	s := newScene(t)
	for _, key := range []string{"A", "B", "C", "A.x", "A.y", "B.y", "B.w", "C.z"} {
		v := s.nodes[key]
		path := s.eng.BuildPath(v, false)
		if got := s.eng.GetViewByPath(path); got != view.View(v) {
			t.Errorf("GetViewByPath(BuildPath(%s)) = %v, want the original view", key, got)
		}
	}
}
