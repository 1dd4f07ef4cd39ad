// Package rescale applies the momentum rescaling that turns an
// equilibrium-envelope sample into a viscously-corrected one (spec.md
// §4.6, component C6), grounded on original_source's
// rescale_momentum/rescale_momentum_famod.
package rescale

import "math"

// Linear applies the PTM/PTB modified-equilibrium affine rescaling
// (spec.md §4.6): p'_i = (1+bulk_mod)*p_i + shear_mod*pi_ij*p_j +
// diff_mod*V_i^LRF, where p is the momentum sampled at the scheme's
// modified (T_mod, alphaB_mod). PTM and PTB feed different bulk_mod/
// diff_mod sources (asymmetric: original_source's ParticleSampler.cpp
// never gives PTB a diffusion term or a T/alphaB shift), so this struct
// only holds the already-resolved per-scheme coefficients; the caller
// is responsible for choosing them correctly per df_mode.
type Linear struct {
	BulkMod  float64
	ShearMod float64
	Pixx, Pixy, Pixz float64
	Piyy, Piyz       float64
	Pizz             float64
	DiffMod  float64
	Vx, Vy, Vz float64
}

// Apply rescales a LRF 3-momentum.
func (m Linear) Apply(px, py, pz float64) (qx, qy, qz float64) {
	shx := m.Pixx*px + m.Pixy*py + m.Pixz*pz
	shy := m.Pixy*px + m.Piyy*py + m.Piyz*pz
	shz := m.Pixz*px + m.Piyz*py + m.Pizz*pz
	scale := 1.0 + m.BulkMod
	qx = scale*px + m.ShearMod*shx + m.DiffMod*m.Vx
	qy = scale*py + m.ShearMod*shy + m.DiffMod*m.Vy
	qz = scale*pz + m.ShearMod*shz + m.DiffMod*m.Vz
	return
}

// Anisotropic applies the matrix transform p'_i = sum_j B_ij p_j with
// B = C·A (spec.md §4.6 "B=C.A ... modified-equilibrium transform"), for a
// symmetric A and a scalar C that the caller supplies; no normalization is
// computed here (emit.processCell passes A = diag(1,1,a_L/a_T), C = 1).
type Anisotropic struct {
	Axx, Axy, Axz float64
	Ayy, Ayz      float64
	Azz           float64
	C             float64
}

// Apply rescales a LRF 3-momentum through B = C*A.
func (m Anisotropic) Apply(px, py, pz float64) (qx, qy, qz float64) {
	qx = m.C * (m.Axx*px + m.Axy*py + m.Axz*pz)
	qy = m.C * (m.Axy*px + m.Ayy*py + m.Ayz*pz)
	qz = m.C * (m.Axz*px + m.Ayz*py + m.Azz*pz)
	return
}

// Energy recomputes E from the rescaled 3-momentum and the particle's
// rest mass, restoring the mass shell after any rescaling (spec.md §4.6
// "... the rescaled energy is recomputed from the mass shell, never
// propagated from the envelope sample").
func Energy(qx, qy, qz, mass float64) float64 {
	return math.Sqrt(qx*qx+qy*qy+qz*qz + mass*mass)
}
