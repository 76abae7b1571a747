package factor_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/lvlprob/factor"
)

// benchVars builds n fresh k-valued variables.
func benchVars(b *testing.B, n, k int) []*factor.Variable {
	b.Helper()
	vars := make([]*factor.Variable, n)
	for i := range vars {
		rng := make([]factor.Extended, k)
		for j := range rng {
			rng[j] = factor.Reg(j)
		}
		vars[i] = &factor.Variable{ID: fmt.Sprintf("v%d", i), Range: rng}
	}

	return vars
}

// benchFactor allocates a factor over vars with every entry set to 1.
func benchFactor(b *testing.B, vars ...*factor.Variable) *factor.Factor {
	b.Helper()
	f, err := factor.New(vars...)
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	return f.MapEntries(func(float64) float64 { return 1 })
}

// BenchmarkProduct_Disjoint multiplies two factors sharing no dimensions.
func BenchmarkProduct_Disjoint(b *testing.B) {
	vars := benchVars(b, 6, 4)
	f := benchFactor(b, vars[:3]...)
	g := benchFactor(b, vars[3:]...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Product(g, factor.SumProduct); err != nil {
			b.Fatalf("Product failed: %v", err)
		}
	}
}

// BenchmarkProduct_Overlapping multiplies two factors sharing two of three
// dimensions, the common shape of message × table products.
func BenchmarkProduct_Overlapping(b *testing.B) {
	vars := benchVars(b, 4, 4)
	f := benchFactor(b, vars[0], vars[1], vars[2])
	g := benchFactor(b, vars[1], vars[2], vars[3])

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.Product(g, factor.SumProduct); err != nil {
			b.Fatalf("Product failed: %v", err)
		}
	}
}

// BenchmarkMarginalizeTo sums a five-dimensional table onto one variable.
func BenchmarkMarginalizeTo(b *testing.B) {
	vars := benchVars(b, 5, 4)
	f := benchFactor(b, vars...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := f.MarginalizeTo(factor.SumProduct, vars[0]); err != nil {
			b.Fatalf("MarginalizeTo failed: %v", err)
		}
	}
}
