// Package decompose turns a set of query targets into a tree of solvable
// subproblems and drives a per-node strategy over that tree in dependency
// order. It owns the run-scoped component registry (element → inference
// variable) and the factory that converts model elements into numeric
// factors.
//
// # Decomposition
//
// Adding an element to a Problem registers it and recursively pulls in its
// unregistered parents. The parents pulled in for one element form a child
// Problem, so ancestor layers of the model nest as subtrees:
//
//	root:  targets + evidence
//	  └── child: unregistered parents of a root element
//	        └── grandchild: their unregistered parents, and so on
//
// Each child records the components its parent consumes (its boundary); the
// strategy run at a node must return marginal factors for exactly those
// boundary variables, which is what lets a parent fold a child's solution
// into its own local factor list. Decomposing this way bounds the size of
// any single strategy run: approximation error is traded locally instead of
// solving the whole model at once.
//
// # Solving
//
// Solve walks the tree leaves-first, so every child Problem is fully solved
// before its parent's strategy sees the child's Solution. The walk is plain
// call-stack recursion; depth equals the model's longest ancestor chain,
// which is small for the element kinds expressible in lvlprob/model.
//
// Sibling subtrees are solve-independent. SolveOptions.Parallel runs them
// concurrently through errgroup with first-error cancellation of the wait;
// no locking is needed because all registry writes happen during Problem
// construction, before Solve begins, and each node's Solution is written by
// exactly one goroutine.
//
// # Factor factory
//
// A Component lazily builds the factors for its element:
//
//   - the generating factor over (parents..., self) — priors and CPD rows;
//     a CPD row total below 1 routes the shortfall to the variable's
//     irregular range entry, and an irregular parent value forces an
//     irregular child value
//   - an evidence factor when the element is observed (indicator on the
//     observed value)
//   - a constraint factor when the element is soft-constrained (per-value
//     weights; the irregular entry keeps weight 1)
//
// # Errors
//
//	ErrNilRegistry      - nil registry passed to NewProblem.
//	ErrNilElement       - nil element added to a problem.
//	ErrUnknownElement   - ComponentFor on an unregistered element.
//	ErrForeignUniverse  - element from a different universe than the registry's.
//	ErrNilProblem       - nil problem passed to Solve.
//	ErrNilStrategy      - nil strategy passed to Solve.
//	ErrAlreadySolved    - Solve called twice on the same tree.
package decompose
