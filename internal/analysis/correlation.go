package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Pearson computes the Pearson product-moment correlation between two
// equal-length series and a two-sided p-value against the null hypothesis
// of zero correlation. The p-value uses a Student's t distribution with
// n-2 degrees of freedom, which assumes approximate bivariate normality;
// that is the standard simplification for this test, not something this
// package tries to improve on.
//
// Inputs shorter than two points or with zero variance are rejected with a
// ValidationError. For exactly two points |r| is 1 by construction and the
// t statistic has zero degrees of freedom, so the p-value is reported as 1.
func Pearson(xs, ys []float64) (correlation, pValue float64, err error) {
	n := len(xs)
	if len(ys) != n {
		return 0, 0, &ValidationError{
			Reason: fmt.Sprintf("series length mismatch: %d vs %d", n, len(ys)),
		}
	}
	if n < 2 {
		return 0, 0, &ValidationError{
			Reason: fmt.Sprintf("need at least 2 points for correlation, got %d", n),
		}
	}
	if isConstant(xs) {
		return 0, 0, &ValidationError{Reason: "price series has zero variance"}
	}
	if isConstant(ys) {
		return 0, 0, &ValidationError{Reason: "count series has zero variance"}
	}

	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, 0, &ComputationError{Reason: "correlation is not finite"}
	}
	// Guard against floating-point drift outside [-1, 1] before the
	// p-value computation divides by 1-r².
	r = math.Max(-1, math.Min(1, r))

	if n == 2 {
		return r, 1, nil
	}

	p := twoSidedPValue(r, n)
	if math.IsNaN(p) {
		return 0, 0, &ComputationError{Reason: "p-value is not finite"}
	}
	return r, p, nil
}

func twoSidedPValue(r float64, n int) float64 {
	df := float64(n - 2)
	if 1-r*r == 0 {
		// Perfect correlation, infinite t statistic.
		return 0
	}
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * dist.CDF(-math.Abs(t))
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// CorrelateMerged runs the Pearson test over the close and count columns
// of an aligned series.
func CorrelateMerged(rows []MergedRow) (correlation, pValue float64, err error) {
	closes := make([]float64, len(rows))
	counts := make([]float64, len(rows))
	for i, row := range rows {
		closes[i] = row.Close
		counts[i] = float64(row.FinanceCatCount)
	}
	return Pearson(closes, counts)
}
