package marginal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lvlprob/marginal"
	"github.com/katalvlaran/lvlprob/model"
)

// coin builds A ~ Bernoulli(0.3) and B := A in a fresh universe.
func coin(t *testing.T) (*model.Universe, *model.Element, *model.Element) {
	t.Helper()
	u := model.NewUniverse()
	a, err := model.Flip(u, "a", 0.3)
	require.NoError(t, err)
	b, err := model.Det(u, "b", a, func(v any) any { return v })
	require.NoError(t, err)

	return u, a, b
}

// TestNew_ConfigurationErrors covers every construction-time sentinel,
// raised before any solving work begins.
func TestNew_ConfigurationErrors(t *testing.T) {
	_, _, b := coin(t)

	_, err := marginal.New(10)
	assert.ErrorIs(t, err, marginal.ErrNoTargets, "empty target list")
	_, err = marginal.New(0, b)
	assert.ErrorIs(t, err, marginal.ErrBadIterations, "iterations below 1")
	_, err = marginal.New(10, b, nil)
	assert.ErrorIs(t, err, marginal.ErrNilTarget)

	otherU := model.NewUniverse()
	foreign, err := model.Flip(otherU, "f", 0.5)
	require.NoError(t, err)
	_, err = marginal.New(10, b, foreign)
	assert.ErrorIs(t, err, marginal.ErrMixedUniverses, "targets spanning two universes")
}

// TestEndToEnd_CopyChain is the canonical scenario: A ~ Bernoulli(0.3),
// B copies A, query B. The distribution must be (0.7,false),(0.3,true) in
// range order and the convenience probability must agree.
func TestEndToEnd_CopyChain(t *testing.T) {
	_, _, b := coin(t)

	alg, err := marginal.New(10, b)
	require.NoError(t, err)
	require.NoError(t, alg.Start())

	dist, err := alg.ComputeDistribution(b)
	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.Equal(t, false, dist[0].Value)
	assert.InDelta(t, 0.7, dist[0].Prob, 1e-9)
	assert.Equal(t, true, dist[1].Value)
	assert.InDelta(t, 0.3, dist[1].Prob, 1e-9)

	_, _, b2 := coin(t)
	p, err := marginal.ProbabilityN(b2, true, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, p, 1e-9)
}

// TestEndToEnd_Conditioning observes C=true under a noisy link C→D and
// checks D against the hand-built table: P(D=true|C=true) = 0.9.
func TestEndToEnd_Conditioning(t *testing.T) {
	u := model.NewUniverse()
	c, err := model.Flip(u, "c", 0.5)
	require.NoError(t, err)
	d, err := model.CPD(u, "d", []any{false, true}, []*model.Element{c},
		func(parents []any) map[any]float64 {
			if parents[0] == true {
				return map[any]float64{true: 0.9, false: 0.1}
			}

			return map[any]float64{true: 0.2, false: 0.8}
		})
	require.NoError(t, err)
	require.NoError(t, c.Observe(true))

	alg, err := marginal.New(20, d)
	require.NoError(t, err)
	require.NoError(t, alg.Start())

	dist, err := alg.ComputeDistribution(d)
	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.InDelta(t, 0.1, dist[0].Prob, 1e-9, "P(D=false | C=true)")
	assert.InDelta(t, 0.9, dist[1].Prob, 1e-9, "P(D=true | C=true)")
}

// TestEndToEnd_SoftConstraint weights a fair coin 2:1 towards true and
// expects the posterior (1/3, 2/3).
func TestEndToEnd_SoftConstraint(t *testing.T) {
	u := model.NewUniverse()
	fair, err := model.Flip(u, "fair", 0.5)
	require.NoError(t, err)
	fair.Constrain(func(v any) float64 {
		if v == true {
			return 2
		}

		return 1
	})

	alg, err := marginal.New(10, fair)
	require.NoError(t, err)
	require.NoError(t, alg.Start())

	dist, err := alg.ComputeDistribution(fair)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, dist[0].Prob, 1e-9)
	assert.InDelta(t, 2.0/3, dist[1].Prob, 1e-9)
}

// TestEndToEnd_CategoricalChain pushes a three-valued die through a parity
// link to exercise non-boolean domains and a deeper query.
func TestEndToEnd_CategoricalChain(t *testing.T) {
	u := model.NewUniverse()
	die, err := model.Select(u, "die",
		model.Outcome{Value: 1, Weight: 1},
		model.Outcome{Value: 2, Weight: 1},
		model.Outcome{Value: 3, Weight: 1},
	)
	require.NoError(t, err)
	even, err := model.Det(u, "even", die, func(v any) any { return v.(int)%2 == 0 })
	require.NoError(t, err)

	p, err := marginal.ProbabilityN(even, true, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, p, 1e-9)
}

// TestDistribution_SumsToOneWithoutIrregularMass checks the normalization
// property for a fully regular model, and the constant-1 expectation.
func TestDistribution_SumsToOneWithoutIrregularMass(t *testing.T) {
	_, _, b := coin(t)
	alg, err := marginal.New(10, b)
	require.NoError(t, err)
	require.NoError(t, alg.Start())

	dist, err := alg.ComputeDistribution(b)
	require.NoError(t, err)
	total := 0.0
	for _, o := range dist {
		total += o.Prob
	}
	assert.InDelta(t, 1.0, total, 1e-9)

	e, err := alg.ComputeExpectation(b, func(any) float64 { return 1 })
	require.NoError(t, err)
	assert.InDelta(t, 1.0, e, 1e-9, "expectation of the constant 1")
}

// TestDistribution_IrregularMassSumsBelowOne verifies the preserved
// ordering: z counts irregular mass, the distribution filters it out
// afterwards, so the visible probabilities fall short of 1.
func TestDistribution_IrregularMassSumsBelowOne(t *testing.T) {
	u := model.NewUniverse()
	a, err := model.Flip(u, "a", 0.5)
	require.NoError(t, err)
	leaky, err := model.CPD(u, "leaky", []any{false, true}, []*model.Element{a},
		func(parents []any) map[any]float64 {
			if parents[0] == true {
				return map[any]float64{true: 0.4} // 0.6 leaks to irregular
			}

			return map[any]float64{false: 1}
		})
	require.NoError(t, err)

	alg, err := marginal.New(20, leaky)
	require.NoError(t, err)
	require.NoError(t, alg.Start())

	dist, err := alg.ComputeDistribution(leaky)
	require.NoError(t, err)
	require.Len(t, dist, 2, "irregular entry filtered from the sequence")
	assert.InDelta(t, 0.5, dist[0].Prob, 1e-9)
	assert.InDelta(t, 0.2, dist[1].Prob, 1e-9)

	total := dist[0].Prob + dist[1].Prob
	assert.InDelta(t, 0.7, total, 1e-9, "0.3 of the mass sits on the irregular entry")
}

// TestUnreachableTarget queries a declared-only element: no factor ever
// mentions it, so marginalization must fail loudly.
func TestUnreachableTarget(t *testing.T) {
	u := model.NewUniverse()
	ghost, err := model.Abstract(u, "ghost", "x", "y")
	require.NoError(t, err)

	alg, err := marginal.New(5, ghost)
	require.NoError(t, err)
	err = alg.Start()
	assert.ErrorIs(t, err, marginal.ErrUnreachableTarget)

	_, err = alg.ComputeDistribution(ghost)
	assert.ErrorIs(t, err, marginal.ErrNotStarted, "failed run stores no marginals")
}

// TestDegenerateMass zeroes all of a target's mass through a contradictory
// constraint and expects the run to abort rather than divide by zero.
func TestDegenerateMass(t *testing.T) {
	u := model.NewUniverse()
	a, err := model.Flip(u, "a", 0.5)
	require.NoError(t, err)
	a.Constrain(func(any) float64 { return 0 })

	alg, err := marginal.New(5, a)
	require.NoError(t, err)
	assert.ErrorIs(t, alg.Start(), marginal.ErrDegenerateMass)
}

// TestQueries_IdempotentAndDeterministic re-reads one run and re-runs the
// whole pipeline, expecting identical sequences both ways.
func TestQueries_IdempotentAndDeterministic(t *testing.T) {
	_, _, b := coin(t)
	alg, err := marginal.New(10, b)
	require.NoError(t, err)
	require.NoError(t, alg.Start())

	d1, err := alg.ComputeDistribution(b)
	require.NoError(t, err)
	d2, err := alg.ComputeDistribution(b)
	require.NoError(t, err)
	assert.Equal(t, d1, d2, "pure read: identical sequences")

	_, _, b2 := coin(t)
	alg2, err := marginal.New(10, b2)
	require.NoError(t, err)
	require.NoError(t, alg2.Start())
	d3, err := alg2.ComputeDistribution(b2)
	require.NoError(t, err)
	require.Len(t, d3, len(d1))
	for i := range d1 {
		assert.Equal(t, d1[i].Value, d3[i].Value)
		assert.InDelta(t, d1[i].Prob, d3[i].Prob, 1e-12, "identical model state and budget reproduce the marginal")
	}
}

// TestLifecycle walks start/run/query/kill and its misuse sentinels.
func TestLifecycle(t *testing.T) {
	_, _, b := coin(t)
	alg, err := marginal.New(10, b)
	require.NoError(t, err)

	_, err = alg.ComputeDistribution(b)
	assert.ErrorIs(t, err, marginal.ErrNotStarted, "query before run")

	require.NoError(t, alg.Start())
	assert.ErrorIs(t, alg.Start(), marginal.ErrAlreadyStarted, "exactly one run per instance")

	_, err = alg.ComputeDistribution(nil)
	assert.ErrorIs(t, err, marginal.ErrUnknownTarget)

	alg.Kill()
	dist, err := alg.ComputeDistribution(b)
	require.NoError(t, err, "the target-factor map outlives Kill")
	assert.Len(t, dist, 2)

	fresh, err := marginal.New(10, b)
	require.NoError(t, err)
	fresh.Kill()
	assert.ErrorIs(t, fresh.Start(), marginal.ErrKilled)
}

// TestParallelMatchesSequential runs the same two-target model both ways
// and compares marginals within floating-point tolerance.
func TestParallelMatchesSequential(t *testing.T) {
	build := func(t *testing.T) (*model.Element, *model.Element) {
		t.Helper()
		u := model.NewUniverse()
		x, err := model.Flip(u, "x", 0.2)
		require.NoError(t, err)
		y, err := model.Flip(u, "y", 0.6)
		require.NoError(t, err)
		cx, err := model.Det(u, "cx", x, func(v any) any { return v })
		require.NoError(t, err)
		cy, err := model.Det(u, "cy", y, func(v any) any { return v })
		require.NoError(t, err)

		return cx, cy
	}

	run := func(t *testing.T, parallel bool) [][]marginal.Outcome {
		t.Helper()
		cx, cy := build(t)
		opts := marginal.DefaultOptions()
		opts.Iterations = 10
		opts.Parallel = parallel
		alg, err := marginal.NewWithOptions(opts, cx, cy)
		require.NoError(t, err)
		require.NoError(t, alg.Start())
		dx, err := alg.ComputeDistribution(cx)
		require.NoError(t, err)
		dy, err := alg.ComputeDistribution(cy)
		require.NoError(t, err)

		return [][]marginal.Outcome{dx, dy}
	}

	seq := run(t, false)
	par := run(t, true)
	for i := range seq {
		require.Len(t, par[i], len(seq[i]))
		for j := range seq[i] {
			assert.Equal(t, seq[i][j].Value, par[i][j].Value)
			assert.InDelta(t, seq[i][j].Prob, par[i][j].Prob, 1e-12)
		}
	}
}

// TestProbabilityOf_Predicate exercises the predicate convenience on a
// categorical target.
func TestProbabilityOf_Predicate(t *testing.T) {
	u := model.NewUniverse()
	die, err := model.Select(u, "die",
		model.Outcome{Value: 1, Weight: 1},
		model.Outcome{Value: 2, Weight: 1},
		model.Outcome{Value: 3, Weight: 1},
		model.Outcome{Value: 4, Weight: 1},
	)
	require.NoError(t, err)

	p, err := marginal.ProbabilityOf(die, func(v any) bool { return v.(int) > 1 }, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, p, 1e-9)

	p, err = marginal.Probability(die, 4)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p, 1e-9)
}
