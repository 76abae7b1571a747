// Package factor implements dense factors over discrete variables, the
// numeric primitive behind every inference stage in lvlprob. A Factor is a
// flat float64 array indexed by the row-major Cartesian product of its
// variables' ranges, combined under a pluggable commutative Semiring
// (sum-product for marginal inference).
//
// The key operations offered are:
//
//   - Product
//
//   - Method: align both operands on the union of their variable sets,
//     multiply entry-wise under the semiring.
//
//   - Time:   O(S) where S is the size of the result index space.
//
//   - Memory: O(S) for the result table.
//
//   - MarginalizeTo
//
//   - Method: sum out every dimension except the requested variable.
//
//   - Time:   O(S) over the source index space.
//
//   - Memory: O(r) where r is the kept variable's range size.
//
//   - FoldEntries / MapEntries / Normalize
//
//   - Linear scans over the table; Normalize divides by the total mass of
//     ALL entries, irregular range values included (the caller decides
//     whether to filter irregular mass afterwards).
//
// # Extended ranges
//
// A Variable's range is a slice of Extended values. A regular entry wraps an
// ordinary domain value; the irregular entry (Star) stands for an invalid or
// unresolved outcome. Factor arithmetic treats both uniformly — filtering of
// irregular entries is strictly a consumer concern.
//
// # Variable identity
//
// Variables are compared by pointer. Two factors share a dimension exactly
// when they hold the same *Variable, which is why the registry in
// lvlprob/decompose hands out one Variable per model element and never
// copies it.
//
// # Errors
//
//	ErrBadVariable         - nil variable or empty range at construction.
//	ErrDuplicateVariable   - the same variable listed twice at construction.
//	ErrNilFactor           - nil operand passed to a binary operation.
//	ErrVariableNotInFactor - MarginalizeTo target is not a dimension.
//	ErrIndexOutOfRange     - Get/Set tuple malformed or out of bounds.
//	ErrZeroMass            - Normalize on a factor with zero total mass.
//
// See: lvlprob/marginal for how these pieces assemble into posterior queries.
package factor
