// Package feqmod implements the feasibility predicate for the
// "modified-equilibrium" (feqmod) reformulation (spec.md §4.3, component
// C3): whether a cell's deformation matrix and linearized pion density
// stay within a physically valid range. Bound-checking against a named
// lower limit mirrors mreten's retention-model validity checks
// (e.g. BrooksCorey's slmin/slmax).
package feqmod

import "math"

// DefaultDetAMin is the default lower bound on det(A) (the bound in use is
// Params.DetAMin, from config's deta_min); a cell at or below it is
// infeasible (spec.md §4.3, §9 "DETA_MIN ... configurable constant").
const DefaultDetAMin = 0.01

// Shear is the LRF shear 3-tensor, reused from milne.ShearLRF's shape to
// avoid a dependency from feqmod back onto milne for just six floats.
type Shear struct {
	Xx, Xy, Xz, Yy, Yz, Zz float64
}

// DetA computes det(A) for A_ij = δ_ij(1+Π/(3β_bulk)) + π_ij^LRF/(2β_π)
// (spec.md §4.3). shearMod = 1/(2β_π), bulkMod = Π/(3β_bulk).
func DetA(s Shear, shearMod, bulkMod float64) float64 {
	axx := 1.0 + s.Xx*shearMod + bulkMod
	axy := s.Xy * shearMod
	axz := s.Xz * shearMod
	ayy := 1.0 + s.Yy*shearMod + bulkMod
	ayz := s.Yz * shearMod
	azz := 1.0 + s.Zz*shearMod + bulkMod

	return axx*(ayy*azz-ayz*ayz) - axy*(axy*azz-ayz*axz) + axz*(axy*ayz-ayy*axz)
}

// PionIntegrals returns the Gauss-Laguerre thermal integrals n_π^eq and
// J20_π over the pion-0 Maxwell-Jüttner integrand at temperature T
// (spec.md §4.3). Loading the actual quadrature table is out of scope
// (spec.md §1); this is a direct numerical evaluation standing in for it,
// using a fixed composite Simpson rule over the exponentially-decaying
// integrand — adequate for a feasibility check, not claimed to match a
// production 32-point Gauss-Laguerre table bit-for-bit.
func PionIntegrals(massPion0, T float64) (neq, j20 float64) {
	mbar := massPion0 / T
	const sign = -1.0 // pion is a boson
	const pbarMax = 30.0
	const n = 400 // even, Simpson

	h := pbarMax / float64(n)
	var sumN, sumJ float64
	for i := 0; i <= n; i++ {
		pbar := float64(i) * h
		ebar := math.Sqrt(pbar*pbar + mbar*mbar)
		feq := 1.0 / (math.Exp(ebar) + sign)

		fN := pbar * pbar * feq
		fJ := pbar * pbar * pbar * pbar / (ebar * ebar) * feq * (1.0 - sign*feq)

		w := 1.0
		switch {
		case i == 0 || i == n:
			w = 1.0
		case i%2 == 1:
			w = 4.0
		default:
			w = 2.0
		}
		sumN += w * fN
		sumJ += w * fJ
	}
	sumN *= h / 3.0
	sumJ *= h / 3.0

	const twoPi2HbarC3 = 2.0 * math.Pi * math.Pi // ħc = 1 units
	neqFact := T * T * T / twoPi2HbarC3
	j20Fact := T * neqFact

	neq = neqFact * sumN
	j20 = j20Fact * sumJ
	return
}

// LinearPionDensityNegative reports whether the linearized pion-0 density
// n_π,lin = n_π^eq + (Π/β_bulk)(n_π^eq + J20_π F/T²) goes negative
// (spec.md §4.3).
func LinearPionDensityNegative(T, neq, j20, bulkPi, F, betaBulk float64) bool {
	dn := bulkPi * (neq + j20*F/(T*T)) / betaBulk
	return neq+dn < 0
}

// Averages carries the grid-averaged (T,F,β_bulk) used by FAST mode
// (spec.md §4.3, §9 "EnvAverages"); constructed once per run and passed by
// reference, never mutated by the per-cell loop.
type Averages struct {
	T, F, BetaBulk float64
}

// Params bundles the per-cell inputs to Breaks.
type Params struct {
	DFMode       int // 3 = PTM, 4 = PTB
	MassPion0    float64
	T, F, BulkPi float64
	BetaBulk     float64
	DetA         float64
	DetAMin      float64
	Z            float64 // only meaningful for PTB
	Fast         bool
	Avg          *Averages
}

// Breaks decides whether feqmod breaks down for this cell (spec.md §4.3):
// for PTM (df_mode 3), det A <= DetAMin or the linearized pion density
// goes negative; for PTB (df_mode 4), det A <= DetAMin or z < 0. Any other
// df_mode never triggers feqmod breakdown (it doesn't apply).
func Breaks(p Params) bool {
	switch p.DFMode {
	case 3:
		T, F, betaBulk := p.T, p.F, p.BetaBulk
		if p.Fast && p.Avg != nil {
			T, F, betaBulk = p.Avg.T, p.Avg.F, p.Avg.BetaBulk
		}
		neq, j20 := PionIntegrals(p.MassPion0, T)
		negative := LinearPionDensityNegative(T, neq, j20, p.BulkPi, F, betaBulk)
		return p.DetA <= p.DetAMin || negative
	case 4:
		return p.DetA <= p.DetAMin || p.Z < 0.0
	default:
		return false
	}
}
