package stagedef

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/stagekit-dev/stagekit/pkg/document"
	"github.com/stagekit-dev/stagekit/pkg/view"
)

// Definition describes a stage and its layers.
type Definition struct {
	// Stage is the root container's name (and id).
	Stage string `yaml:"stage"`

	// Layers in visual order.
	Layers []LayerDef `yaml:"layers"`
}

// LayerDef describes one switchable layer.
type LayerDef struct {
	Name string `yaml:"name"`

	// Default is the configured default frame name, implied in minimised
	// state exports.
	Default string `yaml:"default,omitempty"`

	// NoURL suppresses the layer's path from minimised exports entirely.
	NoURL bool `yaml:"nourl,omitempty"`

	// Frames in visual order.
	Frames []string `yaml:"frames"`

	// Active names the frame showing after build. Empty means no frame
	// is active.
	Active string `yaml:"active,omitempty"`
}

// Parse decodes and validates a YAML definition.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("stagedef: parse: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Encode renders the definition back to YAML.
func (d *Definition) Encode() ([]byte, error) {
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("stagedef: encode: %w", err)
	}
	return out, nil
}

// Validate checks structural consistency: non-empty names, sibling name
// uniqueness, and that default and active frames exist.
func (d *Definition) Validate() error {
	if d.Stage == "" {
		return fmt.Errorf("stagedef: stage name is empty")
	}
	layerNames := map[string]struct{}{}
	for _, l := range d.Layers {
		if l.Name == "" {
			return fmt.Errorf("stagedef: layer with empty name")
		}
		if _, dup := layerNames[l.Name]; dup {
			return fmt.Errorf("stagedef: duplicate layer name %q", l.Name)
		}
		layerNames[l.Name] = struct{}{}

		frameNames := map[string]struct{}{}
		for _, f := range l.Frames {
			if f == "" {
				return fmt.Errorf("stagedef: layer %q has a frame with an empty name", l.Name)
			}
			if _, dup := frameNames[f]; dup {
				return fmt.Errorf("stagedef: layer %q has duplicate frame %q", l.Name, f)
			}
			frameNames[f] = struct{}{}
		}
		if l.Default != "" {
			if _, ok := frameNames[l.Default]; !ok {
				return fmt.Errorf("stagedef: layer %q default frame %q does not exist", l.Name, l.Default)
			}
		}
		if l.Active != "" {
			if _, ok := frameNames[l.Active]; !ok {
				return fmt.Errorf("stagedef: layer %q active frame %q does not exist", l.Name, l.Active)
			}
		}
	}
	return nil
}

// Build materializes the definition as an attached view tree on doc. View
// ids are the dotted paths, which are unique by Validate. Layers marked
// active are switched before the tree is handed back, so a state engine
// created on the result exports the declared state immediately.
func (d *Definition) Build(doc *document.MemoryDocument) (*view.Node, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	stage := view.NewStage(doc, d.Stage, d.Stage)
	for _, l := range d.Layers {
		layer := view.NewLayer(l.Name, l.Name, l.Default, l.NoURL)
		for _, f := range l.Frames {
			layer.AddChild(view.NewFrame(l.Name+"."+f, f))
		}
		stage.AddChild(layer)
		if l.Active != "" {
			layer.ShowFrame(l.Active, nil)
		}
	}
	return stage, nil
}
