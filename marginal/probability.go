package marginal

import "github.com/katalvlaran/lvlprob/model"

// ProbabilityOf runs a one-target query and returns the probability that
// pred holds: it constructs an algorithm for target, starts it, takes the
// expectation of pred's indicator, and tears the algorithm down.
func ProbabilityOf(target *model.Element, pred func(value any) bool, iterations int) (float64, error) {
	alg, err := New(iterations, target)
	if err != nil {
		return 0, err
	}
	if err = alg.Start(); err != nil {
		return 0, err
	}
	defer alg.Kill()

	return alg.ComputeExpectation(target, func(v any) float64 {
		if pred(v) {
			return 1
		}

		return 0
	})
}

// ProbabilityN returns P(target == value) using the given iteration budget.
// Values are compared with ==.
func ProbabilityN(target *model.Element, value any, iterations int) (float64, error) {
	return ProbabilityOf(target, func(v any) bool { return v == value }, iterations)
}

// Probability is ProbabilityN with the default budget of 100 iterations.
func Probability(target *model.Element, value any) (float64, error) {
	return ProbabilityN(target, value, DefaultIterations)
}
