package decompose

import "errors"

var (
	// ErrNilRegistry indicates a nil *Registry passed to NewProblem.
	ErrNilRegistry = errors.New("decompose: registry is nil")

	// ErrNilElement indicates a nil element added to a problem.
	ErrNilElement = errors.New("decompose: element is nil")

	// ErrUnknownElement indicates a registry lookup for an unregistered element.
	ErrUnknownElement = errors.New("decompose: element is not registered")

	// ErrForeignUniverse indicates an element outside the registry's universe.
	ErrForeignUniverse = errors.New("decompose: element belongs to a different universe")

	// ErrNilProblem indicates a nil *Problem passed to Solve.
	ErrNilProblem = errors.New("decompose: problem is nil")

	// ErrNilStrategy indicates a nil Strategy passed to Solve.
	ErrNilStrategy = errors.New("decompose: strategy is nil")

	// ErrAlreadySolved indicates Solve was invoked twice on one tree.
	ErrAlreadySolved = errors.New("decompose: problem tree already solved")
)

// rowEps is the tolerance below full row mass at which the remainder of a
// CPD row is routed to the irregular range entry.
const rowEps = 1e-9
