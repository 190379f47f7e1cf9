// Package stagekit provides the public API for the stagekit view state
// engine.
//
// This is the recommended import for most applications:
//
//	import "github.com/stagekit-dev/stagekit"
//
// Usage:
//
//	doc := stagekit.NewDocument()
//	stage := stagekit.NewStage(doc, "stage", "main")
//	eng := stagekit.For(stage, doc)
//	eng.TransitionTo(ctx, []string{"nav.about"})
package stagekit

import (
	"github.com/stagekit-dev/stagekit/pkg/document"
	"github.com/stagekit-dev/stagekit/pkg/state"
	"github.com/stagekit-dev/stagekit/pkg/view"
)

// Engine is the view state registry and transition coordinator.
type Engine = state.Engine

// Descriptor is one path resolution result.
type Descriptor = state.Descriptor

// Semaphore is the per-batch countdown handle.
type Semaphore = state.Semaphore

// View, Layer, and Frame are the view role contracts.
type (
	View  = view.View
	Layer = view.Layer
	Frame = view.Frame
)

// Node is the in-memory view implementation.
type Node = view.Node

// Record is a transition record.
type Record = view.Record

// Resolution and registration errors.
var (
	ErrDuplicateID    = state.ErrDuplicateID
	ErrUnresolvedPath = state.ErrUnresolvedPath
	ErrRoleMismatch   = state.ErrRoleMismatch
)

// For returns the cached engine for root, creating it on first use.
func For(root view.View, doc document.Document) *Engine {
	return state.For(root, doc)
}

// NewDocument creates an in-memory document.
func NewDocument() *document.MemoryDocument {
	return document.NewMemoryDocument()
}

// NewStage creates a root node attached to doc.
func NewStage(doc *document.MemoryDocument, id, name string) *Node {
	return view.NewStage(doc, id, name)
}

// NewLayer creates a detached layer node.
func NewLayer(id, name, defaultFrame string, noURL bool) *Node {
	return view.NewLayer(id, name, defaultFrame, noURL)
}

// NewFrame creates a detached frame node.
func NewFrame(id, name string) *Node {
	return view.NewFrame(id, name)
}
