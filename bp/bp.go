package bp

import (
	"github.com/katalvlaran/lvlprob/decompose"
	"github.com/katalvlaran/lvlprob/factor"
)

// New validates opts and returns the belief-propagation strategy for the
// recursive solver. The returned strategy is stateless and reusable across
// nodes and runs.
func New(opts Options) (decompose.Strategy, error) {
	if opts.Iterations < 1 {
		return nil, ErrBadIterations
	}
	if opts.Damping < 0 || opts.Damping >= 1 {
		return nil, ErrBadDamping
	}

	return func(local []*factor.Factor, results []*factor.Variable) ([]*factor.Factor, error) {
		return run(local, results, opts)
	}, nil
}

// adj addresses one factor/variable edge: factor index and the variable's
// position within that factor.
type adj struct {
	f, pos int
}

// run executes the fixed-iteration flooding schedule over local and reads
// off the beliefs of the reachable result variables.
func run(local []*factor.Factor, results []*factor.Variable, opts Options) ([]*factor.Factor, error) {
	if len(local) == 0 {
		return nil, nil
	}

	// Adjacency: union of variables, per-factor variable lists, and the
	// reverse edge list per variable. Variables match by pointer.
	var vars []*factor.Variable
	varIdx := make(map[*factor.Variable]int)
	factVars := make([][]*factor.Variable, len(local))
	for fi, f := range local {
		fv := f.Vars()
		factVars[fi] = fv
		for _, v := range fv {
			if _, seen := varIdx[v]; !seen {
				varIdx[v] = len(vars)
				vars = append(vars, v)
			}
		}
	}
	varAdj := make([][]adj, len(vars))
	for fi, fv := range factVars {
		for pos, v := range fv {
			vi := varIdx[v]
			varAdj[vi] = append(varAdj[vi], adj{f: fi, pos: pos})
		}
	}

	// Messages, both directions, initialized uniform.
	msgFV := make([][]*factor.Factor, len(local))
	msgVF := make([][]*factor.Factor, len(local))
	for fi, fv := range factVars {
		msgFV[fi] = make([]*factor.Factor, len(fv))
		msgVF[fi] = make([]*factor.Factor, len(fv))
		for pos, v := range fv {
			fm, err := ones(v)
			if err != nil {
				return nil, err
			}
			vm, err := ones(v)
			if err != nil {
				return nil, err
			}
			msgFV[fi][pos] = fm
			msgVF[fi][pos] = vm
		}
	}

	for iter := 0; iter < opts.Iterations; iter++ {
		// factor → variable.
		next := make([][]*factor.Factor, len(local))
		for fi, f := range local {
			next[fi] = make([]*factor.Factor, len(factVars[fi]))
			for pos, v := range factVars[fi] {
				prod := f
				for q := range factVars[fi] {
					if q == pos {
						continue
					}
					var err error
					if prod, err = prod.Product(msgVF[fi][q], factor.SumProduct); err != nil {
						return nil, err
					}
				}
				m, err := prod.MarginalizeTo(factor.SumProduct, v)
				if err != nil {
					return nil, err
				}
				if m, err = stabilize(m, msgFV[fi][pos], opts.Damping); err != nil {
					return nil, err
				}
				next[fi][pos] = m
			}
		}
		msgFV = next

		// variable → factor.
		next = make([][]*factor.Factor, len(local))
		for fi := range local {
			next[fi] = make([]*factor.Factor, len(factVars[fi]))
		}
		for vi, v := range vars {
			for _, e := range varAdj[vi] {
				prod, err := ones(v)
				if err != nil {
					return nil, err
				}
				for _, o := range varAdj[vi] {
					if o == e {
						continue
					}
					if prod, err = prod.Product(msgFV[o.f][o.pos], factor.SumProduct); err != nil {
						return nil, err
					}
				}
				if prod, err = stabilize(prod, msgVF[e.f][e.pos], opts.Damping); err != nil {
					return nil, err
				}
				next[e.f][e.pos] = prod
			}
		}
		msgVF = next
	}

	// Beliefs of the reachable result variables, in request order.
	var beliefs []*factor.Factor
	for _, v := range results {
		vi, seen := varIdx[v]
		if !seen {
			continue
		}
		belief, err := ones(v)
		if err != nil {
			return nil, err
		}
		for _, e := range varAdj[vi] {
			if belief, err = belief.Product(msgFV[e.f][e.pos], factor.SumProduct); err != nil {
				return nil, err
			}
		}
		beliefs = append(beliefs, belief)
	}

	return beliefs, nil
}

// ones builds the uniform all-ones factor over v.
func ones(v *factor.Variable) (*factor.Factor, error) {
	f, err := factor.New(v)
	if err != nil {
		return nil, err
	}

	return f.MapEntries(func(float64) float64 { return 1 }), nil
}

// stabilize normalizes a fresh message by its total mass and, when damping
// is on, blends it with the previous round's message. A zero-mass message
// (conflicting evidence) is passed through untouched so the contradiction
// survives to the final normalization check.
func stabilize(next, prev *factor.Factor, damping float64) (*factor.Factor, error) {
	if z := next.FoldEntries(0, sum); z > 0 {
		next = next.MapEntries(func(x float64) float64 { return x / z })
	}
	if damping == 0 {
		return next, nil
	}

	out, err := factor.New(next.Vars()...)
	if err != nil {
		return nil, err
	}
	for _, idx := range next.Indices() {
		a, err := prev.Get(idx)
		if err != nil {
			return nil, err
		}
		b, err := next.Get(idx)
		if err != nil {
			return nil, err
		}
		if err = out.Set(idx, damping*a+(1-damping)*b); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// sum is the fold combiner for total mass.
func sum(acc, x float64) float64 { return acc + x }
