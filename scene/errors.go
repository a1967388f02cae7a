package scene

import "errors"

// Error taxonomy for the scene graph. Callers distinguish these with
// errors.Is; they are never wrapped away.
var (
	// ErrUnknownPrototype is returned when an operation references a
	// prototype id that is not (or no longer) live in the scene.
	ErrUnknownPrototype = errors.New("scene: unknown prototype")

	// ErrInvalidGeometry is returned when a prototype's mesh data fails
	// validation: non-finite vertices, out-of-range indices, or normal/UV
	// arrays whose length differs from the position count. An empty
	// triangle list is accepted.
	ErrInvalidGeometry = errors.New("scene: invalid geometry")
)
