package factor

import "errors"

// Sentinel errors for factor construction and arithmetic.
var (
	// ErrBadVariable indicates a nil variable or a variable with an empty range.
	ErrBadVariable = errors.New("factor: variable must be non-nil with a non-empty range")

	// ErrDuplicateVariable indicates the same variable was listed more than once.
	ErrDuplicateVariable = errors.New("factor: duplicate variable in factor")

	// ErrNilFactor indicates a nil *Factor operand.
	ErrNilFactor = errors.New("factor: nil factor operand")

	// ErrVariableNotInFactor indicates a marginalization target that is not a dimension.
	ErrVariableNotInFactor = errors.New("factor: variable is not a dimension of this factor")

	// ErrIndexOutOfRange indicates a malformed or out-of-bounds index tuple.
	ErrIndexOutOfRange = errors.New("factor: index tuple out of range")

	// ErrZeroMass indicates Normalize was called on a factor whose entries sum to zero.
	ErrZeroMass = errors.New("factor: cannot normalize zero total mass")
)

// Extended is one entry of a variable's range: either a regular domain value
// or the reserved irregular entry standing for an invalid/unresolved outcome.
type Extended struct {
	// Value is the wrapped domain value. Unused when Regular is false.
	Value any

	// Regular reports whether this entry is an ordinary, observable value.
	Regular bool
}

// Reg wraps v as a regular range entry.
func Reg(v any) Extended { return Extended{Value: v, Regular: true} }

// Star returns the canonical irregular range entry.
func Star() Extended { return Extended{} }

// Variable is a discrete inference variable: an identifier plus an ordered,
// non-empty range of Extended values. Factors compare variables by pointer,
// so a variable must be created once and shared, never copied.
type Variable struct {
	// ID names the variable, typically after its model element.
	ID string

	// Range is the ordered enumeration of the variable's values.
	Range []Extended
}

// Semiring supplies the two operations and their identities used by factor
// arithmetic. Add combines entries during marginalization; Multiply combines
// entries during factor product.
type Semiring interface {
	Zero() float64
	One() float64
	Add(a, b float64) float64
	Multiply(a, b float64) float64
}

// SumProduct is the ordinary (+, ×) semiring over float64, used for
// computing marginal probabilities.
var SumProduct Semiring = sumProduct{}

type sumProduct struct{}

func (sumProduct) Zero() float64              { return 0 }
func (sumProduct) One() float64               { return 1 }
func (sumProduct) Add(a, b float64) float64   { return a + b }
func (sumProduct) Multiply(a, b float64) float64 { return a * b }
