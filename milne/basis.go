// Package milne builds the orthonormal Milne tetrad at a freezeout cell and
// boosts the surface normal, shear tensor and diffusion current into the
// fluid local rest frame (spec.md §4.1, component C1).
package milne

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/io"
)

// OrthonormalityTol bounds the |u·u-1|, |X·X+1|, u·X deviations tolerated
// before an invariant-violation warning is logged (spec.md §4.1, §8).
const OrthonormalityTol = 1e-10

// Basis is the right-handed orthonormal tetrad {X,Y,Z} plus u^τ, all
// constructed from the contravariant fluid velocity components and τ.
// Each four-vector is stored as its four contravariant Milne components
// (τ,x,y,η) in four plain float64 fields (e.g. Xt, Xx, Xy, Xn) rather than
// in a dedicated small-vector type.
type Basis struct {
	Ut float64

	Xt, Xx, Xy, Xn float64
	Yt, Yx, Yy, Yn float64
	Zt, Zx, Zy, Zn float64
}

// smallUperp is the transverse-velocity magnitude below which the
// transverse tetrad direction is taken as a fixed gauge choice (0,1,0,0)
// rather than computed from a near-zero u_perp, avoiding a division by a
// quantity that is mathematically zero but may be a tiny nonzero float.
const smallUperp = 1e-12

// Build constructs the Milne tetrad from the contravariant fluid velocity
// components, following spec.md §4.1: Z lies along the longitudinal
// direction in the τ-η plane, X lies in the transverse plane aligned with
// the transverse flow, and Y completes a right-handed triad.
func Build(ut, ux, uy, ueta, uperp, utperp, tau float64) Basis {
	var b Basis
	b.Ut = ut

	b.Zt = tau * ueta / utperp
	b.Zx, b.Zy = 0, 0
	b.Zn = ut / (tau * utperp)

	if uperp < smallUperp {
		b.Xt, b.Xx, b.Xy, b.Xn = 0, 1, 0, 0
		b.Yt, b.Yx, b.Yy, b.Yn = 0, 0, 1, 0
		return b
	}

	b.Xt = uperp * ut / utperp
	b.Xx = ux * utperp / uperp
	b.Xy = uy * utperp / uperp
	b.Xn = uperp * ueta / utperp

	b.Yt, b.Yn = 0, 0
	b.Yx = -uy / uperp
	b.Yy = ux / uperp

	return b
}

var orthoWarnOnce sync.Once

// CheckOrthonormality verifies u·u=1, X·X=Y·Y=Z·Z=-1 and mutual
// orthogonality to within OrthonormalityTol (spec.md §8), logging a single
// warning (spec.md §7 class 2: invariant violation -> warn, continue) the
// first time any cell in the run fails the check.
func (b Basis) CheckOrthonormality(ux, uy, ueta, tau float64) bool {
	tau2 := tau * tau
	uu := b.Ut*b.Ut - ux*ux - uy*uy - tau2*ueta*ueta
	xx := dotMilne(b.Xt, b.Xx, b.Xy, b.Xn, b.Xt, b.Xx, b.Xy, b.Xn, tau2)
	yy := dotMilne(b.Yt, b.Yx, b.Yy, b.Yn, b.Yt, b.Yx, b.Yy, b.Yn, tau2)
	zz := dotMilne(b.Zt, b.Zx, b.Zy, b.Zn, b.Zt, b.Zx, b.Zy, b.Zn, tau2)
	ux_ := dotMilne(b.Ut, ux, uy, ueta, b.Xt, b.Xx, b.Xy, b.Xn, tau2)
	uy_ := dotMilne(b.Ut, ux, uy, ueta, b.Yt, b.Yx, b.Yy, b.Yn, tau2)
	uz_ := dotMilne(b.Ut, ux, uy, ueta, b.Zt, b.Zx, b.Zy, b.Zn, tau2)
	xy_ := dotMilne(b.Xt, b.Xx, b.Xy, b.Xn, b.Yt, b.Yx, b.Yy, b.Yn, tau2)
	xz_ := dotMilne(b.Xt, b.Xx, b.Xy, b.Xn, b.Zt, b.Zx, b.Zy, b.Zn, tau2)
	yz_ := dotMilne(b.Yt, b.Yx, b.Yy, b.Yn, b.Zt, b.Zx, b.Zy, b.Zn, tau2)

	ok := math.Abs(uu-1) < OrthonormalityTol &&
		math.Abs(xx+1) < OrthonormalityTol &&
		math.Abs(yy+1) < OrthonormalityTol &&
		math.Abs(zz+1) < OrthonormalityTol &&
		math.Abs(ux_) < OrthonormalityTol &&
		math.Abs(uy_) < OrthonormalityTol &&
		math.Abs(uz_) < OrthonormalityTol &&
		math.Abs(xy_) < OrthonormalityTol &&
		math.Abs(xz_) < OrthonormalityTol &&
		math.Abs(yz_) < OrthonormalityTol

	if !ok {
		orthoWarnOnce.Do(func() {
			io.Pfred("milne: tetrad orthonormality check failed beyond tolerance %.1e (first occurrence; further warnings suppressed)\n", OrthonormalityTol)
		})
	}
	return ok
}

// dotMilne computes the Minkowski dot product a_μ b^μ of two contravariant
// four-vectors under the Milne metric diag(1,-1,-1,-τ²).
func dotMilne(at, ax, ay, an, bt, bx, by, bn, tau2 float64) float64 {
	return at*bt - ax*bx - ay*by - tau2*an*bn
}
