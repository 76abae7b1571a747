// Package marginal is the top level of lvlprob: it computes approximate
// posterior marginals, and expectations derived from them, for designated
// query targets of a discrete model.
//
// # Pipeline
//
// One Start() call performs the entire pipeline synchronously:
//
//  1. Build a root Problem from the query targets, then add every
//     evidence-bearing element of the universe (observed or constrained)
//     that is not already registered as a dependency of the targets.
//  2. Solve the Problem tree with the recursive solver and a
//     belief-propagation subsolver running a fixed iteration budget at
//     every node, children before parents.
//  3. Fold the root's solution factors into one joint factor, seeded with
//     the sum-product unit factor; folding order does not change the
//     numbers beyond floating-point rounding.
//  4. Per target: marginalize the joint onto the target's variable, compute
//     the normalization constant z as the sum of ALL entries, divide
//     through, and store the normalized factor in the target-factor map.
//
// The target-factor map is the only state surviving the run; Kill()
// releases the registry and problem tree while keeping queries working.
//
// # Irregular mass, precisely
//
// Step 4's z deliberately includes mass on irregular range values, while
// ComputeDistribution filters irregular entries out afterwards WITHOUT
// renormalizing. A target with irregular mass upstream therefore yields a
// distribution summing to less than 1. That ordering — sum everything,
// normalize, then filter on read — is intentional, load-bearing and
// preserved exactly; "fixing" either side unilaterally changes results for
// every model with incomplete CPD rows.
//
// # Lifecycle and concurrency
//
// start/run/query/kill: a single synchronous, non-reentrant run per
// Algorithm instance; no cancellation, no timeouts — the iteration budget
// is the sole work bound. After Start returns, ComputeDistribution,
// ComputeExpectation and the stored factors are read-only and safe to call
// repeatedly and from concurrent readers. Options.Parallel extends only to
// solving sibling subproblems inside the run. A failed run stores no
// marginals at all; the instance is then unusable for queries.
//
// # Quick use
//
//	u := model.NewUniverse()
//	a, _ := model.Flip(u, "a", 0.3)
//	b, _ := model.Det(u, "b", a, func(v any) any { return v })
//
//	p, _ := marginal.Probability(b, true) // ≈ 0.3
//
// # Errors
//
//	ErrBadIterations     - iteration budget below 1 at construction.
//	ErrNoTargets         - empty target list at construction.
//	ErrMixedUniverses    - targets spanning more than one model instance.
//	ErrAlreadyStarted    - second Start on one instance.
//	ErrKilled            - Start after Kill.
//	ErrNotStarted        - query before a successful run.
//	ErrUnknownTarget     - query for an element that was not a target.
//	ErrUnreachableTarget - target variable absent from the joint factor.
//	ErrDegenerateMass    - normalization constant is zero.
package marginal
