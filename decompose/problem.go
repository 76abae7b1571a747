package decompose

import (
	"github.com/katalvlaran/lvlprob/factor"
	"github.com/katalvlaran/lvlprob/model"
)

// Problem is one node of the decomposition tree: the components it owns,
// the child problems it strictly owns, and — after solving — its Solution.
// Problems live for a single algorithm run and are discarded afterwards.
type Problem struct {
	reg      *Registry
	parent   *Problem
	children []*Problem

	components []*Component
	results    []*Component

	// Solution is the ordered factor collection this node contributes
	// upward: one marginal per result variable. Populated exactly once by
	// Solve.
	Solution []*factor.Factor

	solved bool
}

// NewProblem builds a root problem containing exactly the given targets
// (plus, transitively, their unregistered ancestors as child problems).
// The root's result variables are the targets' variables.
func NewProblem(reg *Registry, targets []*model.Element) (*Problem, error) {
	if reg == nil {
		return nil, ErrNilRegistry
	}

	p := &Problem{reg: reg}
	for _, t := range targets {
		if err := p.Add(t); err != nil {
			return nil, err
		}
	}
	for _, t := range targets {
		c, err := reg.ComponentFor(t)
		if err != nil {
			return nil, err
		}
		p.addResult(c)
	}

	return p, nil
}

// Add registers el into this problem unless it is already registered
// anywhere in the tree. Unregistered parents of el are collected into one
// new child problem, whose result set is exactly those parents; deeper
// ancestors nest recursively beneath it.
func (p *Problem) Add(el *model.Element) error {
	if el == nil {
		return ErrNilElement
	}
	if p.reg.Contains(el) {
		return nil
	}

	c, err := p.reg.add(el, p)
	if err != nil {
		return err
	}
	p.components = append(p.components, c)

	var missing []*model.Element
	for _, par := range el.Parents() {
		if !p.reg.Contains(par) {
			missing = append(missing, par)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	child := &Problem{reg: p.reg, parent: p}
	p.children = append(p.children, child)
	for _, m := range missing {
		if err = child.Add(m); err != nil {
			return err
		}
	}
	for _, m := range missing {
		mc, cErr := p.reg.ComponentFor(m)
		if cErr != nil {
			return cErr
		}
		child.addResult(mc)
	}

	return nil
}

// addResult appends c to the result set, skipping duplicates.
func (p *Problem) addResult(c *Component) {
	for _, r := range p.results {
		if r == c {
			return
		}
	}
	p.results = append(p.results, c)
}

// Children returns the node's child problems in creation order.
func (p *Problem) Children() []*Problem {
	return append([]*Problem(nil), p.children...)
}

// Components returns the components this node owns, in addition order.
func (p *Problem) Components() []*Component {
	return append([]*Component(nil), p.components...)
}

// Results returns the components whose marginals this node must produce:
// the targets for the root, the boundary parents for a child.
func (p *Problem) Results() []*Component {
	return append([]*Component(nil), p.results...)
}

// localFactors gathers the node's own component factors followed by every
// child's Solution, the exact input of the node's strategy run.
func (p *Problem) localFactors() ([]*factor.Factor, error) {
	var local []*factor.Factor
	for _, c := range p.components {
		fs, err := c.Factors()
		if err != nil {
			return nil, err
		}
		local = append(local, fs...)
	}
	for _, ch := range p.children {
		local = append(local, ch.Solution...)
	}

	return local, nil
}
