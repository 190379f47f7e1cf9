// Package document defines the contract between the view state engine and
// the visual document that hosts the view tree.
//
// The engine never inspects visual elements directly. It sees them only as
// opaque handles and asks the document two questions: is this handle still
// attached to the tracked root, and which of two handles comes first in
// visual order. Everything else about rendering is out of scope.
package document
