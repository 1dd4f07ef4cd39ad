// Package surface holds the freezeout-hypersurface cell record and the
// invariant reconstructions that must be re-derived from it before a cell
// can be processed (spec: the cell's raw fields are not trusted as-is).
package surface

import "math"

// Cell is one discretized element of the freezeout hypersurface handed down
// by the upstream hydrodynamic simulation. Fields follow the Milne
// (τ,x,y,η) convention; units are documented in README of the upstream
// surface writer, not repeated here.
type Cell struct {
	Tau, X, Y, Eta float64 // spacetime position

	Dt, Dx, Dy, Deta float64 // covariant surface normal dΣ_μ

	Ux, Uy, Ueta float64 // contravariant fluid velocity (spatial components only; Ut is derived)

	T, P, E float64 // temperature, pressure, energy density

	Pixx, Pixy, Pixn, Piyy, Piyn float64 // independent contravariant shear components π^{μν}

	BulkPi float64 // bulk pressure Π

	MuB, NB         float64 // baryon chemical potential, net-baryon density (zero if !IncludeBaryon)
	Vx, Vy, Vn       float64 // contravariant diffusion current V^μ (spatial components)
	IncludeBaryon    bool
	IncludeBaryonVmu bool
}

// Derived holds the quantities reconstructed from a Cell under the
// invariants of spec §3: u^τ from normalization, the five missing shear
// components from orthogonality/tracelessness, and V^τ from V·u = 0.
type Derived struct {
	Ut float64

	Uperp  float64 // sqrt(ux^2+uy^2)
	Utperp float64 // sqrt(1+ux^2+uy^2)

	Pitt, Pitx, Pity, Pitn, Pinn float64 // reconstructed shear components

	Vt float64

	UdotDsigma float64 // u·dΣ; cell is inflowing (must be skipped) when <= 0
	VdotDsigma float64
}

// Reconstruct rebuilds the invariant-constrained quantities of a cell. It
// never trusts Cell fields beyond Ux, Uy, Ueta, Tau and the independent
// pi/V components; everything else in Derived is computed here so that a
// malformed upstream record cannot silently violate u·u=1, π^μ_μ=0 or
// V·u=0.
func Reconstruct(c *Cell) Derived {
	var d Derived
	tau2 := c.Tau * c.Tau

	ux2, uy2 := c.Ux*c.Ux, c.Uy*c.Uy
	d.Ut = math.Sqrt(1.0 + ux2 + uy2 + tau2*c.Ueta*c.Ueta)
	ut2 := d.Ut * d.Ut

	d.Uperp = math.Sqrt(ux2 + uy2)
	d.Utperp = math.Sqrt(1.0 + ux2 + uy2)

	d.UdotDsigma = d.Ut*c.Dt + c.Ux*c.Dx + c.Uy*c.Dy + c.Ueta*c.Deta

	// π^{ηη} from tracelessness, then the four remaining components from
	// π^{μν}u_ν = 0, in the same order original_source derives them.
	d.Pinn = (c.Pixx*(ux2-ut2) + c.Piyy*(uy2-ut2) +
		2.0*(c.Pixy*c.Ux*c.Uy+tau2*c.Ueta*(c.Pixn*c.Ux+c.Piyn*c.Uy))) /
		(tau2 * d.Utperp * d.Utperp)
	d.Pitn = (c.Pixn*c.Ux + c.Piyn*c.Uy + tau2*d.Pinn*c.Ueta) / d.Ut
	d.Pity = (c.Pixy*c.Ux + c.Piyy*c.Uy + tau2*c.Piyn*c.Ueta) / d.Ut
	d.Pitx = (c.Pixx*c.Ux + c.Pixy*c.Uy + tau2*c.Pixn*c.Ueta) / d.Ut
	d.Pitt = (d.Pitx*c.Ux + d.Pity*c.Uy + tau2*d.Pitn*c.Ueta) / d.Ut

	if c.IncludeBaryon && c.IncludeBaryonVmu {
		d.Vt = (c.Vx*c.Ux + c.Vy*c.Uy + tau2*c.Vn*c.Ueta) / d.Ut
		d.VdotDsigma = d.Vt*c.Dt + c.Vx*c.Dx + c.Vy*c.Dy + c.Vn*c.Deta
	}

	return d
}

// Inflowing reports whether the cell must be skipped (u·dΣ <= 0).
func (d Derived) Inflowing() bool {
	return d.UdotDsigma <= 0
}
