package emit

import (
	"math"

	"github.com/cpmech/particlize/dfcoeff"
	"github.com/cpmech/particlize/milne"
)

// clip bounds x to [lo,hi], as spec.md §4.8's "clip(δf,-1,1)" requires
// before the viscous weight is formed.
func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// visWeight turns a signed delta-f correction into an acceptance
// probability (spec.md §4.8: w_visc = (1+clip(δf,-1,1))/2).
func visWeight(deltaF float64) float64 {
	return (1.0 + clip(deltaF, -1.0, 1.0)) / 2.0
}

// fluxWeight is the surface-flux acceptance weight (spec.md §4.8:
// w_flux = max(0, p·dΣ^LRF)/(E|dΣ|)). milne.BoostSurface returns the
// covariant LRF components e_a^μ dΣ_μ, so with p^μ = E u^μ + p_x X^μ +
// p_y Y^μ + p_z Z^μ the contraction p·dΣ is E dΣ_t + p_x dΣ_x + p_y dΣ_y +
// p_z dΣ_z, every leg adding.
func fluxWeight(e, px, py, pz float64, surf milne.SurfaceLRF) float64 {
	if surf.MaxVolume <= 0 {
		return 0
	}
	num := e*surf.Dt + px*surf.Dx + py*surf.Dy + pz*surf.Dz
	if num <= 0 {
		return 0
	}
	return num / (e * surf.MaxVolume)
}

// shearContraction computes the LRF bilinear pi_ij p^i p^j from the
// boosted shear 3-tensor and a LRF 3-momentum.
func shearContraction(s milne.ShearLRF, px, py, pz float64) float64 {
	return s.Xx*px*px + s.Yy*py*py + s.Zz*pz*pz +
		2.0*(s.Xy*px*py+s.Xz*px*pz+s.Yz*py*pz)
}

// diffusionDot is V·p in the LRF: both are plain spatial 3-vectors
// along the tetrad's {X,Y,Z} axes, so the natural pairing is the
// Euclidean dot product (no metric factor: the time leg was already
// projected out by V·u=0 upstream in surface.Reconstruct).
func diffusionDot(v milne.DiffusionLRF, px, py, pz float64) float64 {
	return v.X*px + v.Y*py + v.Z*pz
}

// thermo bundles the cell-level thermodynamic quantities the
// Chapman-Enskog and 14-moment weight formulas need beyond the
// per-species coefficients (spec.md §4.8's viscous weight formulas).
type thermo struct {
	E, P, NB float64
}

// deltaF14Moment evaluates the 14-moment delta-f correction (spec.md
// §4.8): f̄·[π_ij p^i p^j/shear14 + ((c0-c2)m²+(b·c1+(4c2-c0)E)E)Π +
// (b·c3+c4E)(V·p)].
func deltaF14Moment(c dfcoeff.Coefficients, sh milne.ShearLRF, v milne.DiffusionLRF,
	e, px, py, pz, mass, baryon, bulkPi, feq, sign float64) float64 {
	fbar := 1.0 - sign*feq
	pijpipj := shearContraction(sh, px, py, pz)
	vdotp := diffusionDot(v, px, py, pz)
	m2 := mass * mass
	bulkTerm := ((c.C0-c.C2)*m2 + (baryon*c.C1+(4.0*c.C2-c.C0)*e)*e) * bulkPi
	diffTerm := (baryon*c.C3 + c.C4*e) * vdotp
	return fbar * (pijpipj/c.Shear14Coeff + bulkTerm + diffTerm)
}

// deltaFChapmanEnskog evaluates the Chapman-Enskog delta-f correction
// (spec.md §4.8): f̄·[π_ij p^i p^j/(2β_π T E) + (b·G+FE/T²+(E-m²/E)/(3T))
// ·Π/β_bulk + (n_B/(ε+P)-b/E)·(V·p)/β_V].
func deltaFChapmanEnskog(c dfcoeff.Coefficients, th thermo, sh milne.ShearLRF, v milne.DiffusionLRF,
	T, e, px, py, pz, mass, baryon, bulkPi, feq, sign float64) float64 {
	fbar := 1.0 - sign*feq
	pijpipj := shearContraction(sh, px, py, pz)
	vdotp := diffusionDot(v, px, py, pz)
	m2 := mass * mass

	shearTerm := pijpipj / (2.0 * c.BetaPi * T * e)
	bulkTerm := (baryon*c.G + c.F*e/(T*T) + (e-m2/e)/(3.0*T)) * bulkPi / c.BetaBulk
	enthalpy := th.E + th.P
	diffCoeff := 0.0
	if enthalpy > 0 {
		diffCoeff = th.NB/enthalpy - baryon/e
	}
	diffTerm := diffCoeff * vdotp / c.BetaV

	return fbar * (shearTerm + bulkTerm + diffTerm)
}

// deltaFPTBBreakdown evaluates the PTB fallback delta-f correction used
// when feqmod breaks down for df_mode 4 (spec.md §4.8): (δz-3δλ) +
// f̄·[π_ij p^i p^j/(2β_π T E) + δλ·(E-m²/E)/T].
func deltaFPTBBreakdown(c dfcoeff.Coefficients, sh milne.ShearLRF,
	T, e, px, py, pz, mass, feq, sign float64) float64 {
	fbar := 1.0 - sign*feq
	pijpipj := shearContraction(sh, px, py, pz)
	m2 := mass * mass
	shearTerm := pijpipj / (2.0 * c.BetaPi * T * e)
	bulkTerm := c.DeltaLambda * (e - m2/e) / T
	return (c.DeltaZ - 3.0*c.DeltaLambda) + fbar*(shearTerm+bulkTerm)
}

// envelopeFactor returns the scheme-dependent overestimate multiplying
// n_eq into the per-species max-density table {d_i} (spec.md §4.8 step
// 1), grounded on original_source's max_particle_number /
// fast_max_particle_number: linear schemes double the equilibrium
// density, PTM inflates it by the bulk correction, PTB scales it by z,
// and any breakdown path falls back to the linear schemes' factor of 2.
func envelopeFactor(dfMode int, c dfcoeff.Coefficients, bulkPi float64, broke bool) float64 {
	switch {
	case dfMode == 3 && !broke: // PTM, feqmod valid
		f := 1.0 + 3.0*math.Abs(bulkPi*c.C2)
		if f < 1.0 {
			f = 1.0
		}
		return f
	case dfMode == 4 && !broke: // PTB, feqmod valid
		if c.Z < 1.0 {
			return 1.0
		}
		return c.Z
	default: // 14-moment, Chapman-Enskog, and any feqmod breakdown fallback
		return 2.0
	}
}
