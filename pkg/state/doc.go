// Package state implements the view state registry and transition
// synchronization engine.
//
// The engine tracks every view attached to a root under a dotted path built
// from ancestor names, indexes each path under all of its trailing suffixes
// so shorter relative references still resolve, and coordinates switching
// the active frame of many layers as one batch: the batch's state-changed
// notification fires only after every participant has reported that its
// transition started, and only if the newly exported state actually differs
// from the last one observed.
//
// The engine is single-goroutine-cooperative: all registry mutation,
// resolution, and export must be driven from one goroutine (or externally
// serialized, as the HTTP server does). The per-batch Semaphore is the only
// synchronization primitive and is safe to decrement from any goroutine,
// because animated layers may report start asynchronously.
package state
