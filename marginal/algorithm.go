package marginal

import (
	"fmt"

	"github.com/katalvlaran/lvlprob/bp"
	"github.com/katalvlaran/lvlprob/decompose"
	"github.com/katalvlaran/lvlprob/factor"
	"github.com/katalvlaran/lvlprob/model"
)

// Algorithm computes posterior marginals for a fixed set of query targets.
// Instances are single-use: construct, Start once, query any number of
// times, Kill to release solving state. An Algorithm is not safe for
// concurrent use until Start has returned; afterwards all queries are
// read-only and may run concurrently.
type Algorithm struct {
	opts    Options
	targets []*model.Element

	reg  *decompose.Registry
	root *decompose.Problem

	// marginals is the target-factor map: one normalized single-variable
	// factor per target, populated only by a fully successful run.
	marginals map[*model.Element]*factor.Factor

	started bool
	killed  bool
}

// New constructs an algorithm with the given iteration budget and targets,
// using defaults for everything else. Fails fast, before any solving work:
// ErrBadIterations, ErrNoTargets, ErrNilTarget, or ErrMixedUniverses.
func New(iterations int, targets ...*model.Element) (*Algorithm, error) {
	opts := DefaultOptions()
	opts.Iterations = iterations

	return NewWithOptions(opts, targets...)
}

// NewWithOptions is New with full configuration.
func NewWithOptions(opts Options, targets ...*model.Element) (*Algorithm, error) {
	if opts.Iterations < 1 {
		return nil, ErrBadIterations
	}
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	for _, t := range targets {
		if t == nil {
			return nil, ErrNilTarget
		}
		if t.Universe() != targets[0].Universe() {
			return nil, ErrMixedUniverses
		}
	}

	return &Algorithm{
		opts:    opts,
		targets: append([]*model.Element(nil), targets...),
	}, nil
}

// Start triggers exactly one run of the full pipeline: construct the
// problem, solve it, assemble the joint, marginalize and normalize per
// target. It returns only when the target-factor map is fully populated or
// an error aborted the run; a failed run populates nothing and leaves the
// instance unusable for queries.
func (a *Algorithm) Start() error {
	if a.killed {
		return ErrKilled
	}
	if a.started {
		return ErrAlreadyStarted
	}
	a.started = true

	return a.run()
}

func (a *Algorithm) run() error {
	// 1. Root problem: the targets, then every evidence-bearing element of
	// the universe not already registered as a dependency of the targets.
	// Evidence order affects registry population order only, never results.
	reg := decompose.NewRegistry()
	root, err := decompose.NewProblem(reg, a.targets)
	if err != nil {
		return err
	}
	u := a.targets[0].Universe()
	for _, el := range u.ConditionedElements() {
		if !reg.Contains(el) {
			if err = root.Add(el); err != nil {
				return err
			}
		}
	}
	for _, el := range u.ConstrainedElements() {
		if !reg.Contains(el) {
			if err = root.Add(el); err != nil {
				return err
			}
		}
	}

	// 2. Recursive structured solve, children before parents.
	strategy, err := bp.New(bp.Options{Iterations: a.opts.Iterations, Damping: a.opts.Damping})
	if err != nil {
		return err
	}
	if err = decompose.Solve(strategy, root, decompose.SolveOptions{Parallel: a.opts.Parallel}); err != nil {
		return err
	}

	// 3. Joint assembly: fold the root solution with the sum-product unit.
	joint := factor.Unit(factor.SumProduct)
	for _, f := range root.Solution {
		if joint, err = joint.Product(f, factor.SumProduct); err != nil {
			return err
		}
	}

	// 4. Marginalize and normalize per target. z sums ALL entries of the
	// marginalized factor, irregular ones included; the distribution query
	// filters irregular values only afterwards.
	marginals := make(map[*model.Element]*factor.Factor, len(a.targets))
	for _, t := range a.targets {
		c, cErr := reg.ComponentFor(t)
		if cErr != nil {
			return cErr
		}
		m, mErr := joint.MarginalizeTo(factor.SumProduct, c.Variable())
		if mErr != nil {
			return fmt.Errorf("marginal: target %q: %w", t.Name(), ErrUnreachableTarget)
		}
		z := m.FoldEntries(0, func(acc, x float64) float64 { return acc + x })
		if z == 0 {
			return fmt.Errorf("marginal: target %q: %w", t.Name(), ErrDegenerateMass)
		}
		marginals[t] = m.MapEntries(func(x float64) float64 { return x / z })
	}

	// Publish only on full success: no partial target-factor map.
	a.marginals = marginals
	a.reg, a.root = reg, root

	return nil
}

// ComputeDistribution returns the target's posterior as (probability,
// value) pairs over the REGULAR range values, in range order. No
// renormalization happens here — normalization already ran against the full
// range, so pairs sum below 1 exactly when irregular mass exists upstream.
// The result is a fresh slice; calling again yields an identical sequence.
func (a *Algorithm) ComputeDistribution(target *model.Element) ([]Outcome, error) {
	m, err := a.marginalFor(target)
	if err != nil {
		return nil, err
	}

	v := m.Vars()[0]
	out := make([]Outcome, 0, len(v.Range))
	for i, ext := range v.Range {
		if !ext.Regular {
			continue
		}
		p, gErr := m.Get([]int{i})
		if gErr != nil {
			return nil, gErr
		}
		out = append(out, Outcome{Prob: p, Value: ext.Value})
	}

	return out, nil
}

// ComputeExpectation folds the target's distribution into Σ p·f(v), seeded
// at 0. Pure function of the stored factor, deterministic, side-effect
// free.
func (a *Algorithm) ComputeExpectation(target *model.Element, f func(value any) float64) (float64, error) {
	dist, err := a.ComputeDistribution(target)
	if err != nil {
		return 0, err
	}

	acc := 0.0
	for _, o := range dist {
		acc += o.Prob * f(o.Value)
	}

	return acc, nil
}

// Kill releases the component registry and problem tree; they are not
// needed once the target-factor map is populated. Queries keep working —
// only the map outlives the run. Kill is idempotent.
func (a *Algorithm) Kill() {
	a.killed = true
	a.reg = nil
	a.root = nil
}

// marginalFor resolves a query to the stored normalized factor.
func (a *Algorithm) marginalFor(target *model.Element) (*factor.Factor, error) {
	if a.marginals == nil {
		return nil, ErrNotStarted
	}
	m, ok := a.marginals[target]
	if !ok {
		return nil, ErrUnknownTarget
	}

	return m, nil
}
