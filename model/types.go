package model

import "errors"

// Sentinel errors for model declaration and evidence.
var (
	// ErrEmptyName indicates an element name that is the empty string.
	ErrEmptyName = errors.New("model: element name is empty")

	// ErrDuplicateName indicates a name collision within one universe.
	ErrDuplicateName = errors.New("model: element name already used in this universe")

	// ErrNilUniverse indicates a nil *Universe passed to an element constructor.
	ErrNilUniverse = errors.New("model: universe is nil")

	// ErrBadProbability indicates a Flip probability outside [0, 1].
	ErrBadProbability = errors.New("model: probability must lie in [0, 1]")

	// ErrBadWeights indicates Select outcomes that are empty, negative, or sum to zero.
	ErrBadWeights = errors.New("model: selection weights must be non-negative with positive total")

	// ErrEmptyDomain indicates a CPD or Abstract element with no domain values.
	ErrEmptyDomain = errors.New("model: domain must contain at least one value")

	// ErrDuplicateValue indicates a repeated value within one domain.
	ErrDuplicateValue = errors.New("model: duplicate value in domain")

	// ErrNilParent indicates a nil parent element.
	ErrNilParent = errors.New("model: parent element is nil")

	// ErrNilTable indicates a nil CPD table or deterministic function.
	ErrNilTable = errors.New("model: conditional table function is nil")

	// ErrCrossUniverse indicates a parent belonging to a different universe.
	ErrCrossUniverse = errors.New("model: parent belongs to a different universe")

	// ErrValueNotInDomain indicates an observed value outside the element's domain.
	ErrValueNotInDomain = errors.New("model: value is not in the element's domain")
)

// Outcome is one weighted value of a Select element. Weights are relative;
// the constructor normalizes them into a distribution.
type Outcome struct {
	Value  any
	Weight float64
}

// irregularEps is the tolerance below full row mass at which a CPD row is
// considered to leak irregular mass.
const irregularEps = 1e-9
