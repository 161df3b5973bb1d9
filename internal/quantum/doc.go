// Package quantum evaluates the time evolution of a particle in a
// one-dimensional infinite square well via truncated eigenfunction
// expansion.
//
// The initial state is the left-half-localized wave
//
//	psi(x,0) = sqrt(4/L)*sin(2*pi*x/L)  for 0 <= x < L/2, 0 otherwise,
//
// projected onto the stationary basis phi_n(x) = sqrt(2/L)*sin(n*pi*x/L).
// The evolution is closed-form: each mode only picks up the phase
// exp(-i*E_n*t/hbar), so there is no time stepping anywhere in this
// package. Construct a [Well] once per (params, grid, nmax) and call
// [Well.Density] for as many times as needed:
//
//	w, err := quantum.NewWell(quantum.DefaultParams(), grid, 50)
//	if err != nil {
//	    return err
//	}
//	d, err := w.Density(0)
//
// All functions are pure; a Well is safe for concurrent use after
// construction.
package quantum
