package rescale

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_rescale01_identityLinear(tst *testing.T) {

	chk.PrintTitle("rescale01: zero-deformation linear rescale is the identity")

	var m Linear
	qx, qy, qz := m.Apply(0.3, -0.2, 0.5)
	chk.Scalar(tst, "qx", 1e-15, qx, 0.3)
	chk.Scalar(tst, "qy", 1e-15, qy, -0.2)
	chk.Scalar(tst, "qz", 1e-15, qz, 0.5)
}

func Test_rescale02_linearShear(tst *testing.T) {

	chk.PrintTitle("rescale02: diagonal shear stretches each axis independently")

	m := Linear{ShearMod: 1, Pixx: 0.1, Piyy: -0.05, Pizz: -0.05}
	qx, qy, qz := m.Apply(1, 1, 1)
	chk.Scalar(tst, "qx", 1e-15, qx, 1.1)
	chk.Scalar(tst, "qy", 1e-15, qy, 0.95)
	chk.Scalar(tst, "qz", 1e-15, qz, 0.95)
}

func Test_rescale03_anisotropicIdentity(tst *testing.T) {

	chk.PrintTitle("rescale03: C=1, A=I anisotropic rescale is the identity")

	m := Anisotropic{Axx: 1, Ayy: 1, Azz: 1, C: 1}
	qx, qy, qz := m.Apply(0.4, 0.1, -0.3)
	chk.Scalar(tst, "qx", 1e-15, qx, 0.4)
	chk.Scalar(tst, "qy", 1e-15, qy, 0.1)
	chk.Scalar(tst, "qz", 1e-15, qz, -0.3)
}

func Test_rescale05_bulkAndDiffusionTerms(tst *testing.T) {

	chk.PrintTitle("rescale05: bulk scale and diffusion vector add independently of shear")

	m := Linear{BulkMod: 0.2, DiffMod: 0.5, Vx: 0.1, Vy: -0.1, Vz: 0.0}
	qx, qy, qz := m.Apply(1, 1, 1)
	chk.Scalar(tst, "qx", 1e-15, qx, 1.2*1+0.5*0.1)
	chk.Scalar(tst, "qy", 1e-15, qy, 1.2*1+0.5*-0.1)
	chk.Scalar(tst, "qz", 1e-15, qz, 1.2*1+0.5*0.0)
}

func Test_rescale04_energyMassShell(tst *testing.T) {

	chk.PrintTitle("rescale04: Energy restores the mass shell")

	e := Energy(0.3, 0.4, 0, 0.938)
	want := math.Sqrt(0.3*0.3+0.4*0.4+0.938*0.938)
	chk.Scalar(tst, "E", 1e-15, e, want)
}
