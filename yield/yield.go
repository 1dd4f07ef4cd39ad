// Package yield estimates the mean number of hadrons a cell emits of a
// given species (spec.md §4.7, component C7), grounded on
// original_source's calculate_total_yield.
package yield

import "math"

// besselK0 and besselK1 use the standard rational/polynomial
// approximations (Abramowitz & Stegun 9.8); no Bessel-K implementation
// exists anywhere in the reference pack (checked: gonum/mathext in the
// pack's vendor trees exposes none), so this is one of the few places
// this repo falls back to a hand-rolled numerical routine rather than a
// third-party library (see DESIGN.md).
func besselK0(x float64) float64 {
	if x <= 2.0 {
		t := x * x / 4.0
		return -math.Log(x/2.0)*besselI0(x) +
			(-0.57721566 + t*(0.42278420+t*(0.23069756+t*(0.03488590+
				t*(0.00262698+t*(0.00010750+t*0.00000740))))))
	}
	t := 2.0 / x
	return math.Exp(-x) / math.Sqrt(x) *
		(1.25331414 + t*(-0.07832358+t*(0.02189568+t*(-0.01062446+
			t*(0.00587872+t*(-0.00251540+t*0.00053208))))))
}

func besselI0(x float64) float64 {
	if math.Abs(x) < 3.75 {
		t := (x / 3.75) * (x / 3.75)
		return 1.0 + t*(3.5156229+t*(3.0899424+t*(1.2067492+
			t*(0.2659732+t*(0.0360768+t*0.0045813)))))
	}
	ax := math.Abs(x)
	t := 3.75 / ax
	return math.Exp(ax) / math.Sqrt(ax) *
		(0.39894228 + t*(0.01328592+t*(0.00225319+t*(-0.00157565+
			t*(0.00916281+t*(-0.02057706+t*(0.02635537+
				t*(-0.01647633+t*0.00392377))))))))
}

func besselK1(x float64) float64 {
	if x <= 2.0 {
		t := x * x / 4.0
		return math.Log(x/2.0)*besselI1(x) +
			(1.0/x)*(1.0+t*(0.15443144+t*(-0.67278579+t*(-0.18156897+
				t*(-0.01919402+t*(-0.00110404+t*(-0.00004686)))))))
	}
	t := 2.0 / x
	return math.Exp(-x) / math.Sqrt(x) *
		(1.25331414 + t*(0.23498619+t*(-0.03655620+t*(0.01504268+
			t*(-0.00780353+t*(0.00325614+t*(-0.00068245)))))))
}

func besselI1(x float64) float64 {
	ax := math.Abs(x)
	var result float64
	if ax < 3.75 {
		t := (x / 3.75) * (x / 3.75)
		result = ax * (0.5 + t*(0.87890594+t*(0.51498869+t*(0.15084934+
			t*(0.02658733+t*(0.00301532+t*0.00032411))))))
	} else {
		t := 3.75 / ax
		result = 0.02282967 + t*(-0.02895312+t*(0.01787654-t*0.00420059))
		result = 0.39894228 + t*(-0.03988024+t*(-0.00362018+t*(0.00163801+
			t*(-0.01031555+t*result))))
		result *= math.Exp(ax) / math.Sqrt(ax)
	}
	if x < 0 {
		return -result
	}
	return result
}

// besselK2 via the recurrence K_{n+1}(x) = K_{n-1}(x) + (2n/x)K_n(x).
func besselK2(x float64) float64 {
	k0, k1 := besselK0(x), besselK1(x)
	return k0 + (2.0/x)*k1
}

// NumberDensitySeries evaluates the covariant equilibrium number density
//
//	n_eq = g/(2π²(ħc)³) m² T Σ_{k=1..kmax} (-a)^{k+1}/k K2(km/T) exp(kμ/T)
//
// with a=+1 for fermions, a=-1 for bosons (spec.md §4.7), truncating the
// series at kmax terms (kmax=1 recovers the Boltzmann approximation used
// when a species is far from degenerate). m, T and μ are in GeV; dividing
// by (ħc)³ returns n_eq in fm⁻³.
func NumberDensitySeries(degeneracy, mass, T, muB, baryon, sign float64, kmax int) float64 {
	if kmax < 1 {
		kmax = 1
	}
	mbar := mass / T
	var sum float64
	for k := 1; k <= kmax; k++ {
		kf := float64(k)
		term := math.Pow(-sign, kf+1) / kf * besselK2(kf*mbar) * math.Exp(kf*baryon*muB/T)
		sum += term
	}
	const hbarC = 0.1973269804 // GeV·fm
	return degeneracy / (2.0 * math.Pi * math.Pi) * mass * mass * T * sum / (hbarC * hbarC * hbarC)
}

// Cell bundles the per-cell inputs Mean needs.
type Cell struct {
	Degeneracy, Mass, Baryon float64
	T, MuB                   float64
	Sign                     float64 // +1 fermion, -1 boson
	UdotDSigma               float64
	Kmax                     int
}

// Mean returns the equilibrium-piece mean number of hadrons of this
// species emitted by the cell, g n_eq (u·dΣ) (spec.md §4.7). Viscous
// corrections to the yield are folded into the per-sample acceptance
// weight downstream (component C5/C6), not into this equilibrium mean,
// mirroring calculate_total_yield's split between the Cooper-Frye mean
// and the Monte Carlo correction weight.
func Mean(c Cell) float64 {
	if c.UdotDSigma <= 0 {
		return 0
	}
	neq := NumberDensitySeries(c.Degeneracy, c.Mass, c.T, c.MuB, c.Baryon, c.Sign, c.Kmax)
	return neq * c.UdotDSigma
}
