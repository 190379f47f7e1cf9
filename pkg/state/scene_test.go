package state

import (
	"testing"

	"github.com/stagekit-dev/stagekit/pkg/document"
	"github.com/stagekit-dev/stagekit/pkg/view"
)

// scene is the shared test fixture: a stage with layers and frames, the
// engine tracking it, and every node by id.
type scene struct {
	doc   *document.MemoryDocument
	stage *view.Node
	eng   *Engine
	nodes map[string]*view.Node
}

// newScene builds a stage with three layers in order:
//
//	A (frames x, y)         x active
//	B (frames y, w) def=y   y active
//	C (frames z)            z active
//
// matching the layout the export and transition tests reason about.
func newScene(t *testing.T) *scene {
	t.Helper()
	s := emptyScene(t)
	s.addLayer("A", "", false, "x", "y")
	s.addLayer("B", "y", false, "y", "w")
	s.addLayer("C", "", false, "z")
	s.show("A", "x")
	s.show("B", "y")
	s.show("C", "z")
	return s
}

func emptyScene(t *testing.T) *scene {
	t.Helper()
	doc := document.NewMemoryDocument()
	stage := view.NewStage(doc, "stage", "main")
	eng := New(stage, doc)
	return &scene{doc: doc, stage: stage, eng: eng, nodes: map[string]*view.Node{"stage": stage}}
}

// addLayer adds a layer named name under the stage with the given frames.
// Node ids are "layer-<name>" and "frame-<layer>-<frame>".
func (s *scene) addLayer(name, defaultFrame string, noURL bool, frames ...string) *view.Node {
	layer := view.NewLayer("layer-"+name, name, defaultFrame, noURL)
	for _, f := range frames {
		layer.AddChild(view.NewFrame("frame-"+name+"-"+f, f))
	}
	s.stage.AddChild(layer)
	s.nodes[name] = layer
	for _, f := range frames {
		for _, c := range layer.Children() {
			if c.Name() == f {
				s.nodes[name+"."+f] = c.(*view.Node)
			}
		}
	}
	return layer
}

func (s *scene) show(layerName, frame string) {
	s.nodes[layerName].ShowFrame(frame, nil)
}

func wantStrings(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
