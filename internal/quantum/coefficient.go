package quantum

import "math"

// Coefficient returns the projection of the initial state onto mode n,
// for n >= 1. Even modes other than n=2 vanish by symmetry; the n=2
// value is the limit of the general expression, taken in closed form so
// the evaluation never divides by a near-zero denominator.
func Coefficient(n int) float64 {
	if n == 2 {
		return math.Sqrt2 / 2
	}
	return coefficientAt(float64(n))
}

// coefficientAt evaluates the general trigonometric expression at a
// real-valued mode index. Undefined at nu = 2, where the removable
// singularity lives; Coefficient handles that branch.
func coefficientAt(nu float64) float64 {
	return math.Sqrt2 / math.Pi *
		(math.Sin((2-nu)*math.Pi/2)/(2-nu) - math.Sin((2+nu)*math.Pi/2)/(2+nu))
}

// Coefficients returns c_1..c_nmax in mode order.
func Coefficients(nmax int) []float64 {
	cs := make([]float64, nmax)
	for n := 1; n <= nmax; n++ {
		cs[n-1] = Coefficient(n)
	}
	return cs
}
