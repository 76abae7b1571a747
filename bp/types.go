package bp

import "errors"

// Sentinel errors for subsolver configuration.
var (
	// ErrBadIterations indicates an iteration budget below 1.
	ErrBadIterations = errors.New("bp: iterations must be at least 1")

	// ErrBadDamping indicates a damping coefficient outside [0, 1).
	ErrBadDamping = errors.New("bp: damping must lie in [0, 1)")
)

// DefaultIterations is the message-passing budget used when callers do not
// tune one.
const DefaultIterations = 100

// Options configures one belief-propagation subsolver.
//   - Iterations: fixed number of message-passing rounds (≥ 1). The only
//     mechanism bounding work per subproblem; no convergence check exists.
//   - Damping: blend factor for successive messages, 0 disables.
type Options struct {
	Iterations int
	Damping    float64
}

// DefaultOptions returns the production defaults: 100 iterations, no
// damping.
func DefaultOptions() Options {
	return Options{Iterations: DefaultIterations}
}
