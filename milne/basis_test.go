package milne

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_basis01(tst *testing.T) {

	chk.PrintTitle("basis01: orthonormality, static cell")

	tau := 1.0
	ux, uy, ueta := 0.0, 0.0, 0.0
	ut := math.Sqrt(1 + ux*ux + uy*uy + tau*tau*ueta*ueta)
	uperp := math.Sqrt(ux*ux + uy*uy)
	utperp := math.Sqrt(1 + ux*ux + uy*uy)

	b := Build(ut, ux, uy, ueta, uperp, utperp, tau)
	if !b.CheckOrthonormality(ux, uy, ueta, tau) {
		tst.Errorf("orthonormality failed for static cell")
	}
	chk.Scalar(tst, "Xx", 1e-15, b.Xx, 1.0)
	chk.Scalar(tst, "Yy", 1e-15, b.Yy, 1.0)
	chk.Scalar(tst, "Zn", 1e-15, b.Zn, 1.0)
}

func Test_basis02(tst *testing.T) {

	chk.PrintTitle("basis02: orthonormality, boosted cell")

	tau := 1.2
	ux, uy, ueta := 0.3, -0.2, 0.05
	ut := math.Sqrt(1 + ux*ux + uy*uy + tau*tau*ueta*ueta)
	uperp := math.Sqrt(ux*ux + uy*uy)
	utperp := math.Sqrt(1 + ux*ux + uy*uy)

	b := Build(ut, ux, uy, ueta, uperp, utperp, tau)
	if !b.CheckOrthonormality(ux, uy, ueta, tau) {
		tst.Errorf("orthonormality failed for boosted cell")
	}
}

func Test_surface01(tst *testing.T) {

	chk.PrintTitle("surface01: S1 scenario boost")

	tau := 1.0
	b := Build(1, 0, 0, 0, 0, 1, tau)
	s := BoostSurface(b, 1, 0, 0, 0)
	chk.Scalar(tst, "dSigma_t_LRF", 1e-14, s.Dt, 1.0)
	chk.Scalar(tst, "dSigma_x_LRF", 1e-14, s.Dx, 0.0)
	chk.Scalar(tst, "maxVolume", 1e-14, s.MaxVolume, 1.0)
}

func Test_shear01(tst *testing.T) {

	chk.PrintTitle("shear01: tracelessness enforced")

	tau := 1.0
	ux, uy, ueta := 0.1, 0.05, 0.0
	ut := math.Sqrt(1 + ux*ux + uy*uy + tau*tau*ueta*ueta)
	uperp := math.Sqrt(ux*ux + uy*uy)
	utperp := math.Sqrt(1 + ux*ux + uy*uy)
	b := Build(ut, ux, uy, ueta, uperp, utperp, tau)

	// a simple orthogonal-to-u, traceless-by-construction contravariant
	// tensor: only xx, yy, xy nonzero at rest-like flow so tt,tx,ty,tn,nn
	// are all ~0 and the spec still requires zz = -(xx+yy) on output.
	sh := BoostShear(b, tau*tau, 0, 0, 0, 0, 0.02, 0.005, 0, -0.015, 0, -0.005)
	chk.Scalar(tst, "trace", 1e-12, sh.Xx+sh.Yy+sh.Zz, 0.0)
}

func Test_toLab01_staticCellIsIdentity(tst *testing.T) {

	chk.PrintTitle("toLab01: static cell boost recovers the LRF momentum unchanged")

	tau := 1.0
	b := Build(1, 0, 0, 0, 0, 1, tau)
	lab := ToLab(b, 1, 0, 0, 0, 0.5, 0.1, 0.2, 0.3)
	chk.Scalar(tst, "p^tau", 1e-14, lab.Pt, 0.5)
	chk.Scalar(tst, "p^x", 1e-14, lab.Px, 0.1)
	chk.Scalar(tst, "p^y", 1e-14, lab.Py, 0.2)
	chk.Scalar(tst, "p^eta", 1e-14, lab.Pn, 0.3)
}

func Test_toLab02_restMomentumIsFluidVelocity(tst *testing.T) {

	chk.PrintTitle("toLab02: a particle at rest in the LRF moves with the fluid")

	tau := 1.0
	ux, uy, ueta := 0.3, -0.1, 0.05
	ut := math.Sqrt(1 + ux*ux + uy*uy + tau*tau*ueta*ueta)
	uperp := math.Sqrt(ux*ux + uy*uy)
	utperp := math.Sqrt(1 + ux*ux + uy*uy)
	b := Build(ut, ux, uy, ueta, uperp, utperp, tau)

	lab := ToLab(b, ut, ux, uy, ueta, 1.0, 0, 0, 0)
	chk.Scalar(tst, "p^tau == u^tau", 1e-12, lab.Pt, ut)
	chk.Scalar(tst, "p^x == u^x", 1e-12, lab.Px, ux)
	chk.Scalar(tst, "p^y == u^y", 1e-12, lab.Py, uy)
	chk.Scalar(tst, "p^eta == u^eta", 1e-12, lab.Pn, ueta)
}

func Test_toMinkowski01_midRapidityIsIdentityOnEnergyAndZ(tst *testing.T) {

	chk.PrintTitle("toMinkowski01: eta=0 leaves E=p^tau and z=0")

	lab := LabMomentum{Pt: 0.5, Px: 0.1, Py: 0.2, Pn: 0.3}
	mink := ToMinkowski(2.0, 0.0, 1.5, -0.5, lab)
	chk.Scalar(tst, "E", 1e-14, mink.E, lab.Pt)
	chk.Scalar(tst, "px", 1e-14, mink.Px, lab.Px)
	chk.Scalar(tst, "py", 1e-14, mink.Py, lab.Py)
	chk.Scalar(tst, "pz", 1e-14, mink.Pz, 2.0*lab.Pn)
	chk.Scalar(tst, "t", 1e-14, mink.T, 2.0)
	chk.Scalar(tst, "z", 1e-14, mink.Z, 0.0)
	chk.Scalar(tst, "x", 1e-14, mink.X, 1.5)
	chk.Scalar(tst, "y", 1e-14, mink.Y, -0.5)
}

func Test_toMinkowski02_massShellIsPreserved(tst *testing.T) {

	chk.PrintTitle("toMinkowski02: the Milne-to-Minkowski map conserves the mass shell")

	tau, eta := 3.0, 0.7
	lab := LabMomentum{Pt: 1.2, Px: 0.2, Py: -0.1, Pn: 0.05}
	m2 := lab.Pt*lab.Pt - lab.Px*lab.Px - lab.Py*lab.Py - tau*tau*lab.Pn*lab.Pn

	mink := ToMinkowski(tau, eta, 0, 0, lab)
	m2Mink := mink.E*mink.E - mink.Px*mink.Px - mink.Py*mink.Py - mink.Pz*mink.Pz
	chk.Scalar(tst, "m^2", 1e-12, m2Mink, m2)
}
