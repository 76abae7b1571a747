package marginal

import (
	"errors"

	"github.com/katalvlaran/lvlprob/bp"
)

// Sentinel errors for construction, lifecycle and queries.
var (
	// ErrBadIterations indicates an iteration budget below 1.
	ErrBadIterations = errors.New("marginal: iterations must be at least 1")

	// ErrNoTargets indicates an empty query target list.
	ErrNoTargets = errors.New("marginal: at least one query target is required")

	// ErrNilTarget indicates a nil element among the query targets.
	ErrNilTarget = errors.New("marginal: query target is nil")

	// ErrMixedUniverses indicates targets spanning more than one model instance.
	ErrMixedUniverses = errors.New("marginal: query targets must share one universe")

	// ErrAlreadyStarted indicates a second Start on the same instance.
	ErrAlreadyStarted = errors.New("marginal: algorithm already started")

	// ErrKilled indicates Start after Kill.
	ErrKilled = errors.New("marginal: algorithm has been killed")

	// ErrNotStarted indicates a query before a successful run.
	ErrNotStarted = errors.New("marginal: algorithm has not completed a run")

	// ErrUnknownTarget indicates a query for an element outside the target set.
	ErrUnknownTarget = errors.New("marginal: element is not a query target")

	// ErrUnreachableTarget indicates a target variable absent from the joint
	// factor: the target was never part of any solution factor, which means
	// a decomposition or registration inconsistency, not an empty result.
	ErrUnreachableTarget = errors.New("marginal: target is unreachable in the joint factor")

	// ErrDegenerateMass indicates a zero normalization constant, e.g. from
	// contradictory evidence. Raised rather than returning a sentinel
	// factor, so a contradiction can never be read as a distribution.
	ErrDegenerateMass = errors.New("marginal: normalization constant is zero")
)

// DefaultIterations is the belief-propagation budget used by the
// convenience constructors and Probability.
const DefaultIterations = bp.DefaultIterations

// Options configures one Algorithm.
//   - Iterations: message-passing rounds per subproblem (≥ 1).
//   - Damping: BP damping coefficient, 0 disables.
//   - Parallel: solve sibling subproblems concurrently.
type Options struct {
	Iterations int
	Damping    float64
	Parallel   bool
}

// DefaultOptions returns the production defaults: 100 iterations,
// no damping, sequential solving.
func DefaultOptions() Options {
	return Options{Iterations: DefaultIterations}
}

// Outcome is one (probability, value) pair of a queried distribution.
type Outcome struct {
	Prob  float64
	Value any
}
