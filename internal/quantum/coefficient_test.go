package quantum

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// projectionQuadrature integrates <phi_n|psi_0> directly with Simpson's
// rule in box-length units: c_n = 2*sqrt(2) * Int_0^(1/2) sin(2 pi u) sin(n pi u) du.
func projectionQuadrature(n, steps int) float64 {
	f := func(u float64) float64 {
		return math.Sin(2*math.Pi*u) * math.Sin(float64(n)*math.Pi*u)
	}
	h := 0.5 / float64(steps)
	sum := f(0) + f(0.5)
	for i := 1; i < steps; i++ {
		x := float64(i) * h
		if i%2 == 1 {
			sum += 4 * f(x)
		} else {
			sum += 2 * f(x)
		}
	}
	return 2 * math.Sqrt2 * sum * h / 3
}

var _ = Describe("Coefficient", func() {
	It("matches direct quadrature of the projection integral", func() {
		for n := 1; n <= 25; n++ {
			Expect(Coefficient(n)).To(BeNumerically("~", projectionQuadrature(n, 2000), 1e-6),
				"mode %d", n)
		}
	})

	It("handles the removable singularity at n=2 with the limit value", func() {
		Expect(Coefficient(2)).To(Equal(math.Sqrt2 / 2))

		// the general expression converges to the branch value as the
		// real-valued mode index approaches 2 from both sides
		prevErr := math.Inf(1)
		for _, eps := range []float64{1e-2, 1e-3, 1e-4} {
			errAbove := math.Abs(coefficientAt(2+eps) - math.Sqrt2/2)
			errBelow := math.Abs(coefficientAt(2-eps) - math.Sqrt2/2)
			Expect(errAbove).To(BeNumerically("<", prevErr))
			Expect(errBelow).To(BeNumerically("<", 5e-1*eps+1e-12))
			prevErr = errAbove
		}
		Expect(math.Abs(coefficientAt(2+1e-4) - math.Sqrt2/2)).To(BeNumerically("<", 1e-4))
	})

	It("vanishes for even modes other than 2", func() {
		for _, n := range []int{4, 6, 8, 10, 20} {
			Expect(Coefficient(n)).To(BeNumerically("~", 0, 1e-12), "mode %d", n)
		}
	})

	It("satisfies Parseval for a normalized initial state", func() {
		sum := 0.0
		for _, c := range Coefficients(50) {
			sum += c * c
		}
		Expect(sum).To(BeNumerically("~", 1, 1e-4))
	})
})
