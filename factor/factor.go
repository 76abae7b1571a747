package factor

// Factor — dense table over discrete variables
//
// Description:
//
//	A Factor stores one float64 entry for every combination of its
//	variables' range values, laid out row-major with the LAST variable
//	varying fastest. All arithmetic is expressed through a Semiring so the
//	same table type serves sum-product marginals and any other
//	commutative-semiring computation.
//
// Layout:
//
//	vars    = [X, Y]            with |X| = 2, |Y| = 3
//	strides = [3, 1]
//	data    = [x0y0, x0y1, x0y2, x1y0, x1y1, x1y2]
//
// Complexity:
//
//	Product       = O(|result|)
//	MarginalizeTo = O(|source|)
//	Fold/Map      = O(|source|)
type Factor struct {
	vars    []*Variable
	strides []int
	data    []float64
}

// New allocates a zero-filled factor over the given variables.
// Returns ErrBadVariable for a nil variable or an empty range, and
// ErrDuplicateVariable if the same *Variable appears twice.
func New(vars ...*Variable) (*Factor, error) {
	size := 1
	for i, v := range vars {
		if v == nil || len(v.Range) == 0 {
			return nil, ErrBadVariable
		}
		for j := 0; j < i; j++ {
			if vars[j] == v {
				return nil, ErrDuplicateVariable
			}
		}
		size *= len(v.Range)
	}

	f := &Factor{
		vars:    append([]*Variable(nil), vars...),
		strides: make([]int, len(vars)),
		data:    make([]float64, size),
	}
	stride := 1
	for i := len(vars) - 1; i >= 0; i-- {
		f.strides[i] = stride
		stride *= len(vars[i].Range)
	}

	return f, nil
}

// Unit returns the multiplicative identity of s: a factor over no variables
// whose single entry is s.One(). Folding a factor list should seed with Unit.
func Unit(s Semiring) *Factor {
	return &Factor{data: []float64{s.One()}}
}

// Vars returns a copy of the factor's variable list in storage order.
func (f *Factor) Vars() []*Variable {
	return append([]*Variable(nil), f.vars...)
}

// Size returns the number of entries in the factor's table.
func (f *Factor) Size() int { return len(f.data) }

// offset converts an index tuple to a flat data offset.
func (f *Factor) offset(idx []int) (int, error) {
	if len(idx) != len(f.vars) {
		return 0, ErrIndexOutOfRange
	}
	off := 0
	for i, c := range idx {
		if c < 0 || c >= len(f.vars[i].Range) {
			return 0, ErrIndexOutOfRange
		}
		off += c * f.strides[i]
	}

	return off, nil
}

// tuple decodes flat offset i into a fresh index tuple.
func (f *Factor) tuple(i int) []int {
	idx := make([]int, len(f.vars))
	for d := range f.vars {
		idx[d] = (i / f.strides[d]) % len(f.vars[d].Range)
	}

	return idx
}

// Get returns the entry at the given index tuple.
func (f *Factor) Get(idx []int) (float64, error) {
	off, err := f.offset(idx)
	if err != nil {
		return 0, err
	}

	return f.data[off], nil
}

// Set stores v at the given index tuple.
func (f *Factor) Set(idx []int, v float64) error {
	off, err := f.offset(idx)
	if err != nil {
		return err
	}
	f.data[off] = v

	return nil
}

// Indices materializes every index tuple of the factor in storage order.
// The result is a finite, restartable enumeration of the index space; for
// the small per-variable factors produced by marginalization this is cheaper
// than a resumable iterator and trivially re-iterable.
func (f *Factor) Indices() [][]int {
	out := make([][]int, len(f.data))
	for i := range f.data {
		out[i] = f.tuple(i)
	}

	return out
}

// Product combines f and g under s over the union of their variable sets.
// Shared dimensions (same *Variable) are aligned; the result's variable
// order is f's variables followed by g's variables not already present.
// Product is commutative and associative up to floating-point rounding.
func (f *Factor) Product(g *Factor, s Semiring) (*Factor, error) {
	if f == nil || g == nil {
		return nil, ErrNilFactor
	}

	union := append([]*Variable(nil), f.vars...)
	for _, v := range g.vars {
		if indexOf(union, v) < 0 {
			union = append(union, v)
		}
	}
	res, err := New(union...)
	if err != nil {
		return nil, err
	}

	// Per result dimension: the stride it contributes to each operand's
	// offset, or 0 when the operand lacks that dimension.
	fStride := make([]int, len(union))
	gStride := make([]int, len(union))
	for d, v := range union {
		if p := indexOf(f.vars, v); p >= 0 {
			fStride[d] = f.strides[p]
		}
		if p := indexOf(g.vars, v); p >= 0 {
			gStride[d] = g.strides[p]
		}
	}

	for i := range res.data {
		fOff, gOff := 0, 0
		for d := range union {
			c := (i / res.strides[d]) % len(union[d].Range)
			fOff += c * fStride[d]
			gOff += c * gStride[d]
		}
		res.data[i] = s.Multiply(f.data[fOff], g.data[gOff])
	}

	return res, nil
}

// MarginalizeTo sums out every dimension except v under s, producing a
// single-variable factor over v. Returns ErrVariableNotInFactor when v is
// not a dimension of f — callers relying on v's presence must treat that as
// a hard inconsistency, not an empty result.
func (f *Factor) MarginalizeTo(s Semiring, v *Variable) (*Factor, error) {
	if f == nil {
		return nil, ErrNilFactor
	}
	pos := indexOf(f.vars, v)
	if pos < 0 {
		return nil, ErrVariableNotInFactor
	}

	res, err := New(v)
	if err != nil {
		return nil, err
	}
	for i := range res.data {
		res.data[i] = s.Zero()
	}
	for i, x := range f.data {
		c := (i / f.strides[pos]) % len(v.Range)
		res.data[c] = s.Add(res.data[c], x)
	}

	return res, nil
}

// FoldEntries reduces all entries in storage order, seeded with seed.
func (f *Factor) FoldEntries(seed float64, combine func(acc, x float64) float64) float64 {
	acc := seed
	for _, x := range f.data {
		acc = combine(acc, x)
	}

	return acc
}

// MapEntries returns a fresh factor over the same variables with fn applied
// to every entry. f itself is never mutated.
func (f *Factor) MapEntries(fn func(x float64) float64) *Factor {
	res := &Factor{
		vars:    append([]*Variable(nil), f.vars...),
		strides: append([]int(nil), f.strides...),
		data:    make([]float64, len(f.data)),
	}
	for i, x := range f.data {
		res.data[i] = fn(x)
	}

	return res
}

// Normalize divides every entry by the factor's total mass and returns the
// normalized factor together with that mass. The total deliberately sums
// ALL entries, including those indexed by irregular range values; filtering
// irregular mass is the reader's job, not the normalizer's. Returns
// ErrZeroMass when the total is exactly zero.
func (f *Factor) Normalize() (*Factor, float64, error) {
	z := f.FoldEntries(0, func(acc, x float64) float64 { return acc + x })
	if z == 0 {
		return nil, 0, ErrZeroMass
	}

	return f.MapEntries(func(x float64) float64 { return x / z }), z, nil
}

// indexOf locates v in vars by pointer identity, or returns -1.
func indexOf(vars []*Variable, v *Variable) int {
	for i, u := range vars {
		if u == v {
			return i
		}
	}

	return -1
}
