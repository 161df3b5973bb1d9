package quantum

import (
	"math"
	"math/cmplx"
)

// Well evaluates the truncated expansion of the particle state over a
// fixed spatial grid. The per-mode spatial factors c_n*phi_n(x) are
// sampled once at construction; each evaluation only applies the
// time-dependent phases, so rendering many frames costs one complex
// multiply-add per mode per grid point.
type Well struct {
	params Params
	grid   []float64
	nmax   int
	basis  [][]float64 // basis[n-1][i] = c_n * phi_n(grid[i])
	omega  []float64   // omega[n-1] = E_n / hbar
}

// NewWell validates the inputs and precomputes the mode basis.
func NewWell(params Params, grid []float64, nmax int) (*Well, error) {
	if !params.Valid() {
		return nil, ErrInvalidParams
	}
	if nmax < 1 {
		return nil, ErrInvalidMode
	}
	if len(grid) < 2 {
		return nil, ErrInvalidGrid
	}

	w := &Well{
		params: params,
		grid:   grid,
		nmax:   nmax,
		basis:  make([][]float64, nmax),
		omega:  make([]float64, nmax),
	}
	for n := 1; n <= nmax; n++ {
		c := Coefficient(n)
		row := make([]float64, len(grid))
		for i, x := range grid {
			row[i] = c * params.Eigenfunction(n, x)
		}
		w.basis[n-1] = row
		w.omega[n-1] = params.Energy(n) / params.Hbar
	}
	return w, nil
}

func (w *Well) Params() Params  { return w.params }
func (w *Well) Grid() []float64 { return w.grid }
func (w *Well) NMax() int       { return w.nmax }

// Evaluate returns Psi(x, t) over the grid, accumulating
// c_n*phi_n(x)*exp(-i*E_n*t/hbar) mode by mode.
func (w *Well) Evaluate(t float64) ([]complex128, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, ErrInvalidTime
	}
	psi := make([]complex128, len(w.grid))
	for n := 0; n < w.nmax; n++ {
		phase := cmplx.Exp(complex(0, -w.omega[n]*t))
		for i, b := range w.basis[n] {
			psi[i] += complex(b, 0) * phase
		}
	}
	return psi, nil
}

// Density returns the probability density |Psi(x, t)|^2 over the grid.
func (w *Well) Density(t float64) ([]float64, error) {
	psi, err := w.Evaluate(t)
	if err != nil {
		return nil, err
	}
	d := make([]float64, len(psi))
	for i, v := range psi {
		re, im := real(v), imag(v)
		d[i] = re*re + im*im
	}
	return d, nil
}

// Psi evaluates the expansion without keeping a Well around. Handy for
// one-off evaluations; repeated frames should construct a Well once.
func Psi(params Params, grid []float64, t float64, nmax int) ([]complex128, error) {
	w, err := NewWell(params, grid, nmax)
	if err != nil {
		return nil, err
	}
	return w.Evaluate(t)
}
