package quantum

import "math"

// Params holds the physical constants of the well. Constructed once at
// program start and read-only afterwards.
type Params struct {
	BoxLength float64 // L in meters
	Mass      float64 // particle mass in kg
	Hbar      float64 // reduced Planck constant in J*s
}

// DefaultParams is an electron in a one angstrom well.
func DefaultParams() Params {
	return Params{
		BoxLength: 1e-10,
		Mass:      9.10938356e-31,
		Hbar:      1.054571817e-34,
	}
}

func (p Params) Valid() bool {
	return p.BoxLength > 0 && p.Mass > 0 && p.Hbar > 0
}

// Tau is the characteristic time 2mL^2/(pi^2*hbar) set by the ground
// state energy. Animation spans are expressed as multiples of Tau.
func (p Params) Tau() float64 {
	return 2 * p.Mass * p.BoxLength * p.BoxLength / (math.Pi * math.Pi * p.Hbar)
}

// Energy returns the eigenvalue E_n = n^2*pi^2*hbar^2/(2mL^2).
func (p Params) Energy(n int) float64 {
	k := float64(n) * math.Pi / p.BoxLength
	return p.Hbar * p.Hbar * k * k / (2 * p.Mass)
}

// Eigenfunction evaluates phi_n(x) = sqrt(2/L)*sin(n*pi*x/L).
func (p Params) Eigenfunction(n int, x float64) float64 {
	return math.Sqrt(2/p.BoxLength) * math.Sin(float64(n)*math.Pi*x/p.BoxLength)
}

// InitialState evaluates psi(x,0): a normalized sine arch confined to
// the left half of the well, zero on the right half.
func (p Params) InitialState(x float64) float64 {
	if x < 0 || x >= p.BoxLength/2 {
		return 0
	}
	return math.Sqrt(4/p.BoxLength) * math.Sin(2*math.Pi*x/p.BoxLength)
}

// Grid returns evenly spaced sample points spanning [0, L] inclusive.
func (p Params) Grid(points int) []float64 {
	if points < 2 {
		points = 2
	}
	g := make([]float64, points)
	step := p.BoxLength / float64(points-1)
	for i := range g {
		g[i] = float64(i) * step
	}
	g[points-1] = p.BoxLength
	return g
}

// TimeSequence returns count times evenly spanning [0, tmax], one per
// animation frame. The first element is always exactly zero.
func TimeSequence(tmax float64, count int) []float64 {
	if count < 1 {
		count = 1
	}
	ts := make([]float64, count)
	if count == 1 {
		return ts
	}
	step := tmax / float64(count-1)
	for i := range ts {
		ts[i] = float64(i) * step
	}
	ts[count-1] = tmax
	return ts
}

// Norm approximates the integral of a density over the grid by the
// trapezoid rule. Close to 1 for a normalized state.
func Norm(grid, density []float64) float64 {
	n := len(grid)
	if len(density) < n {
		n = len(density)
	}
	total := 0.0
	for i := 1; i < n; i++ {
		total += 0.5 * (density[i] + density[i-1]) * (grid[i] - grid[i-1])
	}
	return total
}
