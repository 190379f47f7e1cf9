// Package stagedef reads and writes stage definition documents: declarative
// YAML descriptions of a stage, its layers, and their frames. A definition
// can be built into an attached view tree ready for state tracking.
//
// Definitions are plain documents, not runtime state; they live in a Store,
// with local-directory and S3 backends.
package stagedef
