// Package view defines the view contract consumed by the state engine and a
// reference in-memory implementation of it.
//
// A view is a node in the visual hierarchy. There are three roles: a stage is
// a root container, a layer is a switchable container holding alternative
// frames, and a frame is a selectable content unit inside a layer. Roles are
// dispatched by an explicit Kind tag rather than duck-typing.
//
// Views announce structural and identity changes through a Notifier whose
// subscriptions are tagged with an owner token, so a subscriber can tear down
// everything it registered with a single Off call.
package view
