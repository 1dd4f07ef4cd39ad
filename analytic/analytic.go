// Package analytic computes the closed-form Cooper-Frye yield for a
// uniform, static freezeout surface, used as an independent check against
// the Monte Carlo sampler's output (spec.md §8 scenario S1: "a uniform
// static surface with no flow reproduces the analytic thermal yield to
// within statistical error").
package analytic

import "github.com/cpmech/particlize/yield"

// UniformSurface is a freezeout surface of constant normal flux spread
// over a total area (spec.md §8 S1 setup: no flow, uniform T).
type UniformSurface struct {
	TotalUdotDSigma float64 // sum over all cells of u.dSigma
	T, MuB          float64
}

// TotalYield returns the expected total particle count g n_eq
// TotalUdotDSigma for a species with the given quantum numbers, by
// summing yield.NumberDensitySeries over the same truncated series the
// per-cell estimator uses (component C7), so that an S1 comparison is
// apples-to-apples with the sampled run rather than against a different
// truncation order.
func TotalYield(s UniformSurface, degeneracy, mass, baryon, sign float64, kmax int) float64 {
	neq := yield.NumberDensitySeries(degeneracy, mass, s.T, s.MuB, baryon, sign, kmax)
	return neq * s.TotalUdotDSigma
}
