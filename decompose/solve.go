package decompose

import (
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlprob/factor"
)

// Strategy solves one problem node: given the node's local factor list and
// its result variables, it returns one marginal factor per result variable
// it can reach. A result variable touched by no local factor is skipped,
// not an error — the caller decides whether a missing marginal is fatal.
type Strategy func(local []*factor.Factor, results []*factor.Variable) ([]*factor.Factor, error)

// SolveOptions configures the tree walk.
//   - Parallel: solve sibling subtrees concurrently. Siblings share no
//     mutable state once the tree is built, so no further locking applies.
type SolveOptions struct {
	Parallel bool
}

// DefaultSolveOptions returns the sequential configuration.
func DefaultSolveOptions() SolveOptions { return SolveOptions{} }

// Solve walks the problem tree in dependency order — every child fully
// solved before its parent's strategy runs — and populates each node's
// Solution. The walk is call-stack recursion; depth is bounded by the
// model's longest ancestor chain.
//
// A tree can be solved at most once: ErrAlreadySolved on reuse. Any
// strategy error aborts the whole walk and leaves no further Solutions
// populated.
func Solve(strategy Strategy, root *Problem, opts SolveOptions) error {
	if strategy == nil {
		return ErrNilStrategy
	}
	if root == nil {
		return ErrNilProblem
	}
	if root.solved {
		return ErrAlreadySolved
	}

	return solveNode(strategy, root, opts)
}

// solveNode solves p's children, then p itself.
func solveNode(strategy Strategy, p *Problem, opts SolveOptions) error {
	if opts.Parallel && len(p.children) > 1 {
		var g errgroup.Group
		for _, ch := range p.children {
			ch := ch
			g.Go(func() error { return solveNode(strategy, ch, opts) })
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, ch := range p.children {
			if err := solveNode(strategy, ch, opts); err != nil {
				return err
			}
		}
	}

	local, err := p.localFactors()
	if err != nil {
		return err
	}
	vars := make([]*factor.Variable, len(p.results))
	for i, c := range p.results {
		vars[i] = c.Variable()
	}

	sol, err := strategy(local, vars)
	if err != nil {
		return err
	}
	p.Solution = sol
	p.solved = true

	return nil
}
