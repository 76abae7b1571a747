package model

// Element is an opaque handle to one random variable of a universe: a name,
// an ordered discrete domain, the parents it depends on, a generating
// definition, and optional evidence. Elements are created through the
// package constructors and are always passed by reference; the inference
// core never copies or owns them.
type Element struct {
	name     string
	universe *Universe
	domain   []any
	parents  []*Element
	def      definition

	observed    bool
	observedVal any
	constraint  func(any) float64
}

// definition is the generating rule of an element.
type definition interface{ isDefinition() }

// priorDef is an unconditional categorical distribution, pre-normalized.
type priorDef struct {
	values []any
	probs  []float64
}

// cpdDef is a conditional distribution table over the element's parents.
// Rows are taken as returned: unassigned mass below 1 becomes irregular.
type cpdDef struct {
	table func(parents []any) map[any]float64
}

// abstractDef marks a declared-only element with no generating distribution.
type abstractDef struct{}

func (priorDef) isDefinition()    {}
func (cpdDef) isDefinition()      {}
func (abstractDef) isDefinition() {}

// Flip declares a Bernoulli element over {false, true} with P(true) = p.
func Flip(u *Universe, name string, p float64) (*Element, error) {
	if u == nil {
		return nil, ErrNilUniverse
	}
	if p < 0 || p > 1 {
		return nil, ErrBadProbability
	}
	e := &Element{
		name:     name,
		universe: u,
		domain:   []any{false, true},
		def:      priorDef{values: []any{false, true}, probs: []float64{1 - p, p}},
	}
	if err := u.register(e); err != nil {
		return nil, err
	}

	return e, nil
}

// Select declares a categorical element over the given outcomes. Weights
// are relative and normalized here; outcome order fixes the domain order.
func Select(u *Universe, name string, outcomes ...Outcome) (*Element, error) {
	if u == nil {
		return nil, ErrNilUniverse
	}
	if len(outcomes) == 0 {
		return nil, ErrBadWeights
	}

	total := 0.0
	values := make([]any, len(outcomes))
	probs := make([]float64, len(outcomes))
	for i, o := range outcomes {
		if o.Weight < 0 {
			return nil, ErrBadWeights
		}
		values[i] = o.Value
		probs[i] = o.Weight
		total += o.Weight
	}
	if total == 0 {
		return nil, ErrBadWeights
	}
	if err := checkDistinct(values); err != nil {
		return nil, err
	}
	for i := range probs {
		probs[i] /= total
	}

	e := &Element{
		name:     name,
		universe: u,
		domain:   values,
		def:      priorDef{values: values, probs: probs},
	}
	if err := u.register(e); err != nil {
		return nil, err
	}

	return e, nil
}

// CPD declares a conditionally distributed element. The table maps each
// parent assignment (values in parents order) to a weight per domain value.
// Rows are NOT normalized: weights for values outside the domain are
// dropped, a row total above 1 is scaled down, and a row total below 1
// leaves the shortfall as irregular mass.
func CPD(u *Universe, name string, domain []any, parents []*Element, table func(parents []any) map[any]float64) (*Element, error) {
	if u == nil {
		return nil, ErrNilUniverse
	}
	if len(domain) == 0 {
		return nil, ErrEmptyDomain
	}
	if err := checkDistinct(domain); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrNilTable
	}
	for _, p := range parents {
		if p == nil {
			return nil, ErrNilParent
		}
		if p.universe != u {
			return nil, ErrCrossUniverse
		}
	}

	e := &Element{
		name:     name,
		universe: u,
		domain:   append([]any(nil), domain...),
		parents:  append([]*Element(nil), parents...),
		def:      cpdDef{table: table},
	}
	if err := u.register(e); err != nil {
		return nil, err
	}

	return e, nil
}

// Det declares a deterministic function of one parent. The domain is the
// image of the parent's domain under fn, deduplicated in first-seen order.
func Det(u *Universe, name string, parent *Element, fn func(any) any) (*Element, error) {
	if u == nil {
		return nil, ErrNilUniverse
	}
	if parent == nil {
		return nil, ErrNilParent
	}
	if fn == nil {
		return nil, ErrNilTable
	}

	var image []any
	seen := make(map[any]struct{})
	for _, v := range parent.domain {
		w := fn(v)
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		image = append(image, w)
	}

	return CPD(u, name, image, []*Element{parent}, func(parents []any) map[any]float64 {
		return map[any]float64{fn(parents[0]): 1}
	})
}

// Abstract declares an element with a domain but no generating distribution.
// It can carry evidence and serve as a CPD parent placeholder, but no factor
// is ever produced for it, so querying it alone yields an unreachable-target
// error downstream.
func Abstract(u *Universe, name string, domain ...any) (*Element, error) {
	if u == nil {
		return nil, ErrNilUniverse
	}
	if len(domain) == 0 {
		return nil, ErrEmptyDomain
	}
	if err := checkDistinct(domain); err != nil {
		return nil, err
	}

	e := &Element{
		name:     name,
		universe: u,
		domain:   append([]any(nil), domain...),
		def:      abstractDef{},
	}
	if err := u.register(e); err != nil {
		return nil, err
	}

	return e, nil
}

// Name returns the element's name, unique within its universe.
func (e *Element) Name() string { return e.name }

// Universe returns the owning model instance.
func (e *Element) Universe() *Universe { return e.universe }

// Domain returns the element's ordered value domain.
func (e *Element) Domain() []any {
	return append([]any(nil), e.domain...)
}

// Parents returns the elements this element directly depends on.
func (e *Element) Parents() []*Element {
	return append([]*Element(nil), e.parents...)
}

// IsAbstract reports whether the element has no generating distribution.
func (e *Element) IsAbstract() bool {
	_, ok := e.def.(abstractDef)

	return ok
}

// Observe pins the element to value (hard evidence). The value must be in
// the element's domain.
func (e *Element) Observe(value any) error {
	if !e.inDomain(value) {
		return ErrValueNotInDomain
	}
	e.observed = true
	e.observedVal = value

	return nil
}

// Unobserve removes a hard observation, if any.
func (e *Element) Unobserve() {
	e.observed = false
	e.observedVal = nil
}

// Observed returns the observed value and whether one is set.
func (e *Element) Observed() (any, bool) {
	return e.observedVal, e.observed
}

// Constrain attaches a soft constraint weighting each domain value; a nil
// fn clears the constraint. Weights multiply into the element's factor and
// need not be normalized.
func (e *Element) Constrain(fn func(value any) float64) {
	e.constraint = fn
}

// Constraint returns the element's soft constraint, or nil.
func (e *Element) Constraint() func(value any) float64 {
	return e.constraint
}

// Weights evaluates the generating rule for one parent assignment, given as
// values in Parents order. Priors ignore the assignment; abstract elements
// yield no weights. Entries keyed by values outside the domain are dropped
// by the factor builder, contributing to irregular mass.
func (e *Element) Weights(parentValues []any) map[any]float64 {
	switch def := e.def.(type) {
	case priorDef:
		row := make(map[any]float64, len(def.values))
		for i, v := range def.values {
			row[v] = def.probs[i]
		}

		return row
	case cpdDef:
		return def.table(parentValues)
	default:
		return nil
	}
}

// HasIrregularSupport reports whether any factor generated for this element
// can place mass on the irregular range entry: either a CPD row leaks mass,
// or a parent itself has irregular support (an irregular parent value forces
// an irregular child value).
func (e *Element) HasIrregularSupport() bool {
	cpd, ok := e.def.(cpdDef)
	if !ok {
		return false
	}
	for _, p := range e.parents {
		if p.HasIrregularSupport() {
			return true
		}
	}

	combo := make([]any, len(e.parents))
	var leaks func(d int) bool
	leaks = func(d int) bool {
		if d == len(e.parents) {
			row := cpd.table(append([]any(nil), combo...))
			sum := 0.0
			for _, v := range e.domain {
				if w := row[v]; w > 0 {
					sum += w
				}
			}

			return sum < 1-irregularEps
		}
		for _, v := range e.parents[d].domain {
			combo[d] = v
			if leaks(d + 1) {
				return true
			}
		}

		return false
	}

	return leaks(0)
}

// inDomain tests membership with ==.
func (e *Element) inDomain(value any) bool {
	for _, v := range e.domain {
		if v == value {
			return true
		}
	}

	return false
}

// checkDistinct rejects duplicate domain values.
func checkDistinct(values []any) error {
	seen := make(map[any]struct{}, len(values))
	for _, v := range values {
		if _, dup := seen[v]; dup {
			return ErrDuplicateValue
		}
		seen[v] = struct{}{}
	}

	return nil
}
