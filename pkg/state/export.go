package state

import (
	"sort"

	"github.com/stagekit-dev/stagekit/pkg/view"
)

// NoneMarker is appended to a layer's path in a full export when the layer
// has no active frame.
const NoneMarker = SelectorPrefix + "none"

// ExportState returns the active frame path of every registered layer, in
// the layers' visual order.
//
// With minimise false the export is complete: a layer with no active frame
// contributes "<layerPath>.!none". With minimise true, implied entries are
// dropped: a layer that suppresses its path, a layer showing its configured
// default frame, and a layer with no configured default showing its first
// child all contribute nothing, and !none markers are never emitted.
func (e *Engine) ExportState(minimise bool) []string {
	var out []string
	for _, layer := range e.sortedLayers() {
		_, ent := e.entryFor(layer)
		if ent == nil {
			continue
		}
		cf := layer.CurrentFrame()
		if cf == nil {
			if !minimise {
				out = append(out, ent.path+Separator+NoneMarker)
			}
			continue
		}
		out = append(out, e.pathOf(cf))
		if minimise && implied(layer, cf) {
			out = out[:len(out)-1]
		}
	}
	return out
}

// implied reports whether the active frame need not appear in a minimised
// export because it is what the layer would show anyway.
func implied(layer view.Layer, cf view.Frame) bool {
	if layer.NoURL() {
		return true
	}
	if def := layer.DefaultFrame(); def != "" {
		return cf.Name() == def
	}
	children := layer.Children()
	return len(children) > 0 && children[0] == view.View(cf)
}

// ExportStructure returns the current path of every registered view, in
// visual order. Unlike ExportState it is a full structural dump, unfiltered
// by activity. The root's empty path is omitted.
func (e *Engine) ExportStructure() []string {
	type item struct {
		v    view.View
		path string
	}
	items := make([]item, 0, len(e.entries))
	for _, ent := range e.entries {
		if ent.path == "" {
			continue
		}
		items = append(items, item{v: ent.v, path: ent.path})
	}
	sort.Slice(items, func(i, j int) bool {
		return e.doc.Compare(items[i].v.Handle(), items[j].v.Handle()) < 0
	})
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.path
	}
	return out
}

// sortedLayers returns the registered layers ordered by the visual position
// of their underlying handles.
func (e *Engine) sortedLayers() []view.Layer {
	layers := make([]view.Layer, 0, len(e.layerIDs))
	for _, id := range e.layerIDs {
		ent := e.entries[id]
		if ent == nil {
			continue
		}
		if layer, ok := ent.v.(view.Layer); ok {
			layers = append(layers, layer)
		}
	}
	sort.SliceStable(layers, func(i, j int) bool {
		return e.doc.Compare(layers[i].Handle(), layers[j].Handle()) < 0
	})
	return layers
}

// pathOf returns the registered path of v, falling back to recomputation for
// views observed before their registration settled.
func (e *Engine) pathOf(v view.View) string {
	if _, ent := e.entryFor(v); ent != nil {
		return ent.path
	}
	return e.BuildPath(v, false)
}
