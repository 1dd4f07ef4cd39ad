package milne

import "math"

// SurfaceLRF holds the surface-normal vector boosted into the local rest
// frame plus the maximum volume element (spec.md §4.1): |dΣ| bounds
// p·dΣ/E over all momentum directions and is used by the emission driver
// to size the flux-acceptance weight.
type SurfaceLRF struct {
	Dt, Dx, Dy, Dz float64
	MaxVolume      float64
}

// BoostSurface boosts the covariant surface-normal vector dΣ_μ into the
// LRF using the tetrad. dΣ_μ is covariant, so each LRF component is the
// natural contraction (tetrad vector)^μ dΣ_μ — a contravariant vector
// paired component-wise with a covariant one is already the scalar
// projection, with no extra metric factors.
func BoostSurface(b Basis, dt, dx, dy, deta float64) SurfaceLRF {
	var s SurfaceLRF
	s.Dt = projectCovariant(b.Ut, 0, 0, 0, dt, dx, dy, deta)
	s.Dx = projectCovariant(b.Xt, b.Xx, b.Xy, b.Xn, dt, dx, dy, deta)
	s.Dy = projectCovariant(b.Yt, b.Yx, b.Yy, b.Yn, dt, dx, dy, deta)
	s.Dz = projectCovariant(b.Zt, b.Zx, b.Zy, b.Zn, dt, dx, dy, deta)

	dsSpace := math.Sqrt(s.Dx*s.Dx + s.Dy*s.Dy + s.Dz*s.Dz)
	s.MaxVolume = math.Abs(s.Dt) + dsSpace
	return s
}

// projectCovariant contracts contravariant tetrad components (at,ax,ay,an)
// with covariant vector components (bt,bx,by,bn): at*bt+ax*bx+ay*by+an*bn.
func projectCovariant(at, ax, ay, an, bt, bx, by, bn float64) float64 {
	return at*bt + ax*bx + ay*by + an*bn
}

// ShearLRF is the boosted LRF 3-tensor {xx,xy,xz,yy,yz,zz}; zz is forced
// traceless (spec.md §4.1: π_{zz}^LRF = -(π_{xx}^LRF+π_{yy}^LRF)).
type ShearLRF struct {
	Xx, Xy, Xz, Yy, Yz, Zz float64
}

// BoostShear boosts the contravariant shear tensor π^{μν} (given fully
// reconstructed: tt,tx,ty,tn,xx,xy,xn,yy,yn,nn) into the LRF 3-tensor. The
// contraction pairs the contravariant tensor with the *covariant* tetrad
// components (metric diag(1,-1,-1,-τ²) applied to each index).
func BoostShear(b Basis, tau2 float64, tt, tx, ty, tn, xx, xy, xn, yy, yn, nn float64) ShearLRF {
	var s ShearLRF
	s.Xx = contractShear(b.Xt, b.Xx, b.Xy, b.Xn, b.Xt, b.Xx, b.Xy, b.Xn, tau2, tt, tx, ty, tn, xx, xy, xn, yy, yn, nn)
	s.Xy = contractShear(b.Xt, b.Xx, b.Xy, b.Xn, b.Yt, b.Yx, b.Yy, b.Yn, tau2, tt, tx, ty, tn, xx, xy, xn, yy, yn, nn)
	s.Xz = contractShear(b.Xt, b.Xx, b.Xy, b.Xn, b.Zt, b.Zx, b.Zy, b.Zn, tau2, tt, tx, ty, tn, xx, xy, xn, yy, yn, nn)
	s.Yy = contractShear(b.Yt, b.Yx, b.Yy, b.Yn, b.Yt, b.Yx, b.Yy, b.Yn, tau2, tt, tx, ty, tn, xx, xy, xn, yy, yn, nn)
	s.Yz = contractShear(b.Yt, b.Yx, b.Yy, b.Yn, b.Zt, b.Zx, b.Zy, b.Zn, tau2, tt, tx, ty, tn, xx, xy, xn, yy, yn, nn)
	s.Zz = -(s.Xx + s.Yy)
	return s
}

// contractShear computes π^{μν} a_μ b_ν for a symmetric contravariant
// tensor π^{μν} given by its ten independent Milne components, and two
// contravariant tetrad four-vectors a^μ, b^μ (converted to covariant
// components internally via the metric diag(1,-1,-1,-τ²)).
func contractShear(at, ax, ay, an, bt, bx, by, bn, tau2 float64, tt, tx, ty, tn, xx, xy, xn, yy, yn, nn float64) float64 {
	// covariant components of a and b
	aT, aX, aY, aN := at, -ax, -ay, -tau2*an
	bT, bX, bY, bN := bt, -bx, -by, -tau2*bn

	return tt*aT*bT + xx*aX*bX + yy*aY*bY + nn*aN*bN +
		tx*(aT*bX+aX*bT) + ty*(aT*bY+aY*bT) + tn*(aT*bN+aN*bT) +
		xy*(aX*bY+aY*bX) + xn*(aX*bN+aN*bX) + yn*(aY*bN+aN*bY)
}

// DiffusionLRF is the boosted LRF 3-vector of the baryon diffusion current.
type DiffusionLRF struct {
	X, Y, Z float64
}

// BoostDiffusion boosts the contravariant current V^μ (vt,vx,vy,vn, all
// given already V·u=0 reconstructed) into the LRF 3-vector.
func BoostDiffusion(b Basis, tau2 float64, vt, vx, vy, vn float64) DiffusionLRF {
	return DiffusionLRF{
		X: contractVector(b.Xt, b.Xx, b.Xy, b.Xn, tau2, vt, vx, vy, vn),
		Y: contractVector(b.Yt, b.Yx, b.Yy, b.Yn, tau2, vt, vx, vy, vn),
		Z: contractVector(b.Zt, b.Zx, b.Zy, b.Zn, tau2, vt, vx, vy, vn),
	}
}

// contractVector computes V^μ a_μ for a contravariant vector V and a
// contravariant tetrad vector a (converted to covariant internally).
func contractVector(at, ax, ay, an, tau2 float64, vt, vx, vy, vn float64) float64 {
	aT, aX, aY, aN := at, -ax, -ay, -tau2*an
	return vt*aT + vx*aX + vy*aY + vn*aN
}

// LabMomentum is a sampled particle's four-momentum in the Milne lab
// frame (p^τ,p^x,p^y,p^η) — still tied to the cell's own τ,η, not yet
// the Minkowski four-vector a detector would record.
type LabMomentum struct {
	Pt, Px, Py, Pn float64
}

// ToLab boosts a LRF 3-momentum (px,py,pz along the tetrad's X,Y,Z axes)
// and energy E back to the Milne lab frame: p^μ = E u^μ + px X^μ + py Y^μ
// + pz Z^μ, the inverse of the contraction BoostSurface/BoostShear apply
// to surface/tensor quantities (spec.md §4.5 "... the accepted LRF
// momentum is boosted back to the lab frame using the same tetrad built
// for that cell").
func ToLab(b Basis, ut, ux, uy, ueta float64, e, px, py, pz float64) LabMomentum {
	return LabMomentum{
		Pt: e*ut + px*b.Xt + py*b.Yt + pz*b.Zt,
		Px: e*ux + px*b.Xx + py*b.Yx + pz*b.Zx,
		Py: e*uy + px*b.Xy + py*b.Yy + pz*b.Zy,
		Pn: e*ueta + px*b.Xn + py*b.Yn + pz*b.Zn,
	}
}

// Minkowski is a particle's four-momentum and spacetime point in the flat
// (t,x,y,z) frame the output record is written in (spec.md §7 "Particle
// output record").
type Minkowski struct {
	E, Px, Py, Pz float64
	T, X, Y, Z    float64
}

// ToMinkowski converts a Milne lab-frame four-momentum, sampled at
// transverse point (x,y) and proper time tau, into the Minkowski frame
// at spacetime rapidity eta. eta is the cell's own η in 3+1D mode, or a
// freshly drawn rapidity in 2+1D mode (spec.md §4.3 step d); either way
// the (t,z) pair is the standard Milne change of coordinates applied to
// both the momentum and the position:
//
//	p^t = p^τ cosh(η) + τ p^η sinh(η), p^z = p^τ sinh(η) + τ p^η cosh(η)
//	t    = τ cosh(η),                  z    = τ sinh(η)
func ToMinkowski(tau, eta, x, y float64, lab LabMomentum) Minkowski {
	ch, sh := math.Cosh(eta), math.Sinh(eta)
	return Minkowski{
		E:  lab.Pt*ch + tau*lab.Pn*sh,
		Px: lab.Px,
		Py: lab.Py,
		Pz: lab.Pt*sh + tau*lab.Pn*ch,
		T:  tau * ch,
		X:  x,
		Y:  y,
		Z:  tau * sh,
	}
}
