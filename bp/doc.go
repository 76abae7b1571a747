// Package bp implements a bounded-iteration loopy belief-propagation
// subsolver for a single decomposition node, exposed as a
// decompose.Strategy. Given the factors local to one Problem it runs a
// fixed number of sum-product message-passing rounds and returns the belief
// of each requested result variable as a factor.
//
// # Algorithm
//
//  1. Build the bipartite factor/variable adjacency once from the local
//     factor list (variables are matched by pointer identity).
//  2. Initialize every message to the uniform all-ones factor.
//  3. Repeat Iterations times, flooding schedule:
//     a. factor→variable: the factor multiplied by all incoming
//     variable→factor messages except the recipient's, marginalized onto
//     the recipient, then normalized by total mass.
//     b. variable→factor: the product of all incoming factor→variable
//     messages except the recipient's, normalized likewise.
//  4. Belief(v) = product of all factor→variable messages into v.
//
// Message normalization is purely for numerical stability and does not
// change the fixed point. Optional damping blends each new message with the
// previous round's (new' = d·old + (1−d)·new), which can settle
// oscillations on cyclic structures; it defaults to off.
//
// # Guarantees and their absence
//
// On tree-shaped factor graphs the procedure is exact once Iterations
// reaches the graph diameter. On cyclic graphs it is approximate, and
// NO convergence detection is performed: the iteration budget is the sole
// bound on work, and running longer is not guaranteed to converge. Larger,
// more cyclic regions approximate worse — that is the trade the structured
// decomposition makes for scalability, and why Iterations is caller-tunable.
//
// A result variable touched by no local factor produces no belief; it is
// omitted from the returned list rather than reported as an error, so the
// consumer can distinguish "disconnected here" from "disconnected
// everywhere".
//
// Complexity per iteration: O(Σ_f |f| · deg(f)) table work, where |f| is a
// factor's entry count.
//
// # Errors
//
//	ErrBadIterations - Iterations < 1.
//	ErrBadDamping    - Damping outside [0, 1).
package bp
