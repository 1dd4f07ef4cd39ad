package yield

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/utl"
)

func Test_yield01_boltzmannLimit(tst *testing.T) {

	chk.PrintTitle("yield01: series truncated at kmax=1 is the Boltzmann approximation")

	full := NumberDensitySeries(1, 0.938, 0.15, 0.0, 1, 1, 10)
	boltz := NumberDensitySeries(1, 0.938, 0.15, 0.0, 1, 1, 1)
	if boltz <= 0 || full <= 0 {
		tst.Fatalf("number densities must be positive: full=%.6g boltz=%.6g", full, boltz)
	}
	if boltz < full {
		tst.Errorf("Boltzmann truncation should overestimate the full fermion series: boltz=%.6g full=%.6g", boltz, full)
	}
}

func Test_yield02_meanScalesWithFlux(tst *testing.T) {

	chk.PrintTitle("yield02: mean yield scales linearly with u.dSigma")

	base := Cell{Degeneracy: 1, Mass: 0.138, T: 0.15, Sign: -1, UdotDSigma: 1.0, Kmax: 5}
	double := base
	double.UdotDSigma = 2.0

	m1 := Mean(base)
	m2 := Mean(double)
	chk.Scalar(tst, "doubled flux doubles mean", 1e-10, m2, 2.0*m1)
}

func Test_yield03_inflowingCellYieldsZero(tst *testing.T) {

	chk.PrintTitle("yield03: non-positive flux contributes zero yield (scenario S3)")

	c := Cell{Degeneracy: 1, Mass: 0.138, T: 0.15, Sign: -1, UdotDSigma: -0.5, Kmax: 5}
	if Mean(c) != 0 {
		tst.Errorf("expected zero yield for inflowing cell, got %.6g", Mean(c))
	}
}

func Test_yield04_densityGrowsWithTemperature(tst *testing.T) {

	chk.PrintTitle("yield04: number density increases monotonically with T")

	Ts := utl.LinSpace(0.10, 0.20, 11)
	prev := 0.0
	for _, T := range Ts {
		n := NumberDensitySeries(1, 0.138, T, 0.0, 0, -1, 5)
		if n <= prev {
			tst.Errorf("number density should grow with T: n(%.3g)=%.6g <= previous %.6g", T, n, prev)
		}
		prev = n
	}
}
