package decompose

import (
	"github.com/katalvlaran/lvlprob/factor"
	"github.com/katalvlaran/lvlprob/model"
)

// Registry is the run-scoped map from model elements to their inference
// components. One registry serves exactly one algorithm run and is never
// shared across runs; all writes happen while the problem tree is built,
// before any solving starts.
type Registry struct {
	universe   *model.Universe
	components map[*model.Element]*Component
	order      []*Component
}

// NewRegistry creates an empty per-run registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[*model.Element]*Component)}
}

// Contains reports whether el is already registered. The lookup is total:
// any element either is or is not present.
func (r *Registry) Contains(el *model.Element) bool {
	_, ok := r.components[el]

	return ok
}

// ComponentFor returns el's component, or ErrUnknownElement.
func (r *Registry) ComponentFor(el *model.Element) (*Component, error) {
	c, ok := r.components[el]
	if !ok {
		return nil, ErrUnknownElement
	}

	return c, nil
}

// Components returns all registered components in registration order.
func (r *Registry) Components() []*Component {
	return append([]*Component(nil), r.order...)
}

// add registers el under owner, building its inference variable. The first
// registered element pins the registry's universe; elements from any other
// universe are rejected.
func (r *Registry) add(el *model.Element, owner *Problem) (*Component, error) {
	if el == nil {
		return nil, ErrNilElement
	}
	if r.universe == nil {
		r.universe = el.Universe()
	} else if el.Universe() != r.universe {
		return nil, ErrForeignUniverse
	}

	domain := el.Domain()
	rng := make([]factor.Extended, 0, len(domain)+1)
	for _, v := range domain {
		rng = append(rng, factor.Reg(v))
	}
	if el.HasIrregularSupport() {
		rng = append(rng, factor.Star())
	}

	c := &Component{
		reg:      r,
		element:  el,
		variable: &factor.Variable{ID: el.Name(), Range: rng},
		owner:    owner,
	}
	r.components[el] = c
	r.order = append(r.order, c)

	return c, nil
}

// Component ties one element to its inference variable and the factors
// generated from it. A component is owned by exactly one Problem.
type Component struct {
	reg      *Registry
	element  *model.Element
	variable *factor.Variable
	owner    *Problem

	built   bool
	factors []*factor.Factor
}

// Element returns the underlying model element.
func (c *Component) Element() *model.Element { return c.element }

// Variable returns the component's inference variable. The same pointer is
// handed out for the component's whole lifetime, so factors built anywhere
// in the run share dimensions correctly.
func (c *Component) Variable() *factor.Variable { return c.variable }

// Factors builds (once) and returns the component's factor list: the
// generating factor, then the evidence indicator if observed, then the
// constraint factor if soft-constrained. Abstract elements generate no
// factors at all.
func (c *Component) Factors() ([]*factor.Factor, error) {
	if c.built {
		return c.factors, nil
	}

	var out []*factor.Factor
	if !c.element.IsAbstract() {
		gen, err := c.generatingFactor()
		if err != nil {
			return nil, err
		}
		out = append(out, gen)
	}
	if obs, ok := c.element.Observed(); ok {
		ev, err := c.indicatorFactor(obs)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	if fn := c.element.Constraint(); fn != nil {
		cons, err := c.constraintFactor(fn)
		if err != nil {
			return nil, err
		}
		out = append(out, cons)
	}
	c.factors, c.built = out, true

	return out, nil
}

// generatingFactor tabulates the element's definition over
// (parents..., self). Row semantics: weights for domain values as returned,
// a row total above 1 scaled down, a shortfall below 1 routed to the
// irregular entry, and an irregular parent value forcing the irregular
// child value.
func (c *Component) generatingFactor() (*factor.Factor, error) {
	parents := c.element.Parents()
	vars := make([]*factor.Variable, 0, len(parents)+1)
	for _, p := range parents {
		pc, err := c.reg.ComponentFor(p)
		if err != nil {
			return nil, err
		}
		vars = append(vars, pc.Variable())
	}
	vars = append(vars, c.variable)

	f, err := factor.New(vars...)
	if err != nil {
		return nil, err
	}

	self := len(vars) - 1
	for _, idx := range f.Indices() {
		selfExt := c.variable.Range[idx[self]]

		irregularParent := false
		parentVals := make([]any, len(parents))
		for d := 0; d < self; d++ {
			ext := vars[d].Range[idx[d]]
			if !ext.Regular {
				irregularParent = true

				break
			}
			parentVals[d] = ext.Value
		}

		var entry float64
		switch {
		case irregularParent:
			if !selfExt.Regular {
				entry = 1
			}
		default:
			row := c.element.Weights(parentVals)
			rowSum := 0.0
			for _, v := range c.element.Domain() {
				if w := row[v]; w > 0 {
					rowSum += w
				}
			}
			scale, shortfall := 1.0, 0.0
			if rowSum > 1 {
				scale = 1 / rowSum
			} else {
				shortfall = 1 - rowSum
			}
			if selfExt.Regular {
				if w := row[selfExt.Value]; w > 0 {
					entry = w * scale
				}
			} else if shortfall > rowEps {
				entry = shortfall
			}
		}
		if err = f.Set(idx, entry); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// indicatorFactor is 1 on the observed regular value, 0 elsewhere.
func (c *Component) indicatorFactor(observed any) (*factor.Factor, error) {
	f, err := factor.New(c.variable)
	if err != nil {
		return nil, err
	}
	for i, ext := range c.variable.Range {
		if ext.Regular && ext.Value == observed {
			if err = f.Set([]int{i}, 1); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// constraintFactor weights each regular value by fn; the irregular entry
// keeps weight 1 so a constraint never zeroes unresolved mass.
func (c *Component) constraintFactor(fn func(any) float64) (*factor.Factor, error) {
	f, err := factor.New(c.variable)
	if err != nil {
		return nil, err
	}
	for i, ext := range c.variable.Range {
		w := 1.0
		if ext.Regular {
			w = fn(ext.Value)
			if w < 0 {
				w = 0
			}
		}
		if err = f.Set([]int{i}, w); err != nil {
			return nil, err
		}
	}

	return f, nil
}
