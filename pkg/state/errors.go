package state

import "errors"

// ErrDuplicateID is returned when a different view is registered under an id
// already owned by another registered view. Re-registering the same view
// under its own id is a no-op, not an error.
var ErrDuplicateID = errors.New("state: duplicate view id")

// ErrUnresolvedPath is returned when a path expression matches no registered
// view.
var ErrUnresolvedPath = errors.New("state: unresolved path")

// ErrRoleMismatch is returned when a reserved frame-selector path resolves
// against a view that is not a layer.
var ErrRoleMismatch = errors.New("state: reserved selector targets a non-layer view")
