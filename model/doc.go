// Package model defines discrete probabilistic model elements and the
// universes that own them. It is the declaration layer of lvlprob: you
// describe random variables, their dependencies and any evidence here, then
// hand query targets to lvlprob/marginal for inference.
//
// # Universes
//
// A Universe is one self-contained model instance, identified by a UUID.
// Every element belongs to exactly one universe, and a single query may only
// span one universe; cross-universe joint queries are rejected upstream.
//
// # Element kinds
//
//	Flip(u, "rain", 0.3)                      — Bernoulli over {false, true}
//	Select(u, "die", Outcome{1, 1}, ...)      — categorical prior (weights auto-normalized)
//	CPD(u, "wet", domain, parents, table)     — conditional distribution table
//	Det(u, "copy", parent, fn)                — deterministic function of one parent
//	Abstract(u, "ext", values...)             — declared-only, no generating distribution
//
// CPD rows are NOT normalized: a row that sums below 1 leaves the shortfall
// as irregular mass (an unresolved outcome), which downstream factors expose
// through the variable's irregular range entry. A row summing above 1 is
// scaled down. This is the mechanism by which irregular mass can reach a
// posterior; see lvlprob/marginal for the normalization consequences.
//
// # Evidence
//
// Hard observations pin an element to a single domain value:
//
//	wet.Observe(true)
//
// Soft constraints weight each value without excluding any:
//
//	wet.Constrain(func(v any) float64 { if v == true { return 2 }; return 1 })
//
// Universe.ConditionedElements and Universe.ConstrainedElements report
// evidence-bearing elements in insertion order; the inference core uses them
// to pull every piece of evidence into the problem it solves.
//
// Domain values are compared with ==, so they must be comparable types
// (bool, string, numeric, comparable structs).
//
// # Errors
//
//	ErrEmptyName        - element name is the empty string.
//	ErrDuplicateName    - an element with the same name exists in the universe.
//	ErrNilUniverse      - nil *Universe passed to a constructor.
//	ErrBadProbability   - Flip probability outside [0, 1].
//	ErrBadWeights       - Select with no outcomes, a negative weight, or zero total.
//	ErrEmptyDomain      - CPD/Abstract with no domain values.
//	ErrDuplicateValue   - repeated value in a domain.
//	ErrNilParent        - nil parent element.
//	ErrNilTable         - nil CPD table or deterministic function.
//	ErrCrossUniverse    - parent from a different universe.
//	ErrValueNotInDomain - Observe with a value outside the domain.
package model
