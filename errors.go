package bp

import "github.com/pkg/errors"

var (
	// ErrInvalidHandle is returned when a handle refers to a removed or never-created body or collider.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrNotFound is the name the set contracts use for ErrInvalidHandle.
	ErrNotFound = ErrInvalidHandle

	// ErrDegenerateShape is returned when a shape has a zero, negative or non-finite size.
	ErrDegenerateShape = errors.New("degenerate shape")

	// ErrInvalidProperty is returned for out of range body or collider properties.
	ErrInvalidProperty = errors.New("invalid property")

	// ErrWorldLocked is returned when the world is mutated from inside a step.
	ErrWorldLocked = errors.New("world is locked")
)
