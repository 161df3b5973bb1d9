package quantum

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// maxReconstructionError returns the worst-case gap between the
// truncated t=0 density and the declared initial density, both scaled
// by the box length so the numbers are dimensionless.
func maxReconstructionError(params Params, points, nmax int) float64 {
	grid := params.Grid(points)
	w, err := NewWell(params, grid, nmax)
	Expect(err).NotTo(HaveOccurred())
	d, err := w.Density(0)
	Expect(err).NotTo(HaveOccurred())

	worst := 0.0
	for i, x := range grid {
		psi0 := params.InitialState(x)
		target := psi0 * psi0 * params.BoxLength
		if gap := math.Abs(d[i]*params.BoxLength - target); gap > worst {
			worst = gap
		}
	}
	return worst
}

var _ = Describe("Well", func() {
	params := DefaultParams()

	It("rejects invalid inputs", func() {
		grid := params.Grid(10)
		_, err := NewWell(Params{}, grid, 50)
		Expect(err).To(MatchError(ErrInvalidParams))
		_, err = NewWell(params, grid, 0)
		Expect(err).To(MatchError(ErrInvalidMode))
		_, err = NewWell(params, []float64{0}, 50)
		Expect(err).To(MatchError(ErrInvalidGrid))

		w, err := NewWell(params, grid, 50)
		Expect(err).NotTo(HaveOccurred())
		_, err = w.Evaluate(math.NaN())
		Expect(err).To(MatchError(ErrInvalidTime))
		_, err = w.Density(math.Inf(1))
		Expect(err).To(MatchError(ErrInvalidTime))
	})

	It("reconstructs the initial density at t=0", func() {
		Expect(maxReconstructionError(params, 1000, 50)).To(BeNumerically("<", 0.25))
	})

	It("reconstructs better as the truncation order grows", func() {
		coarse := maxReconstructionError(params, 1000, 10)
		fine := maxReconstructionError(params, 1000, 50)
		Expect(fine).To(BeNumerically("<", coarse))
	})

	It("conserves total probability at every sampled time", func() {
		grid := params.Grid(1000)
		w, err := NewWell(params, grid, 50)
		Expect(err).NotTo(HaveOccurred())

		tau := params.Tau()
		for _, t := range []float64{0, 0.3 * tau, tau, 5 * tau, 10 * tau} {
			d, err := w.Density(t)
			Expect(err).NotTo(HaveOccurred())
			for _, v := range d {
				Expect(v).To(BeNumerically(">=", 0))
			}
			Expect(Norm(grid, d)).To(BeNumerically("~", 1, 2e-3), "t=%g", t)
		}
	})

	It("revives the initial density after one full period", func() {
		// every phase difference is an integer multiple of t/tau, so the
		// density at t = 2*pi*tau reproduces t = 0
		grid := params.Grid(1000)
		w, err := NewWell(params, grid, 50)
		Expect(err).NotTo(HaveOccurred())

		d0, err := w.Density(0)
		Expect(err).NotTo(HaveOccurred())
		d1, err := w.Density(2 * math.Pi * params.Tau())
		Expect(err).NotTo(HaveOccurred())

		peak := 0.0
		for _, v := range d0 {
			if v > peak {
				peak = v
			}
		}
		for i := range d0 {
			Expect(math.Abs(d1[i]-d0[i]) / peak).To(BeNumerically("<", 1e-8))
		}
	})

	It("is deterministic", func() {
		grid := params.Grid(200)
		w, err := NewWell(params, grid, 50)
		Expect(err).NotTo(HaveOccurred())

		t := 1.3 * params.Tau()
		first, err := w.Evaluate(t)
		Expect(err).NotTo(HaveOccurred())
		second, err := w.Evaluate(t)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("matches the target density on a five point grid", func() {
		a := params.BoxLength
		grid := params.Grid(5) // 0, a/4, a/2, 3a/4, a
		w, err := NewWell(params, grid, 50)
		Expect(err).NotTo(HaveOccurred())

		d, err := w.Density(0)
		Expect(err).NotTo(HaveOccurred())

		Expect(d[0] * a).To(BeNumerically("~", 0, 1e-9))
		Expect(d[1] * a).To(BeNumerically("~", 4, 0.15))
		Expect(d[2] * a).To(BeNumerically("~", 0, 0.05))
		Expect(d[3] * a).To(BeNumerically("~", 0, 0.05))
		Expect(d[4] * a).To(BeNumerically("~", 0, 1e-9))
	})
})

var _ = Describe("TimeSequence", func() {
	It("spans [0, tmax] inclusive with one entry per frame", func() {
		ts := TimeSequence(3.5, 8)
		Expect(ts).To(HaveLen(8))
		Expect(ts[0]).To(Equal(0.0))
		Expect(ts[7]).To(Equal(3.5))
		for i := 1; i < len(ts); i++ {
			Expect(ts[i]).To(BeNumerically(">", ts[i-1]))
		}
	})

	It("degenerates to a single t=0 frame", func() {
		Expect(TimeSequence(2.0, 1)).To(Equal([]float64{0}))
	})
})
