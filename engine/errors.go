package engine

import (
	"errors"
)

var (
	// ErrInvalidEntity reports an operation addressed to a dead, stale or
	// never-created entity handle where the contract requires liveness
	ErrInvalidEntity = errors.New("invalid entity handle")

	// ErrCyclicParent reports a scene-graph parent assignment that would
	// make an entity its own ancestor
	ErrCyclicParent = errors.New("cyclic parent assignment")

	// ErrInvalidTimestep reports a negative or non-finite frame delta
	ErrInvalidTimestep = errors.New("invalid timestep")
)
