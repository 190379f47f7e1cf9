// Package server exposes a state engine over HTTP and WebSocket.
//
// The HTTP surface reads and mutates view state (/state, /structure,
// /transition) and serves Prometheus metrics; /live upgrades to a WebSocket
// that pushes a message for every state-changed notification, so clients
// observe each batch as one coherent new state.
//
// The engine itself is single-goroutine-cooperative; the server owns the
// serialization and wraps every engine call in one mutex.
package server
