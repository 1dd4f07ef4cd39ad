package sampler

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_sampler01_pionMeanEnergy(tst *testing.T) {

	chk.PrintTitle("sampler01: pion-regime sample mean energy tracks 3T")

	rng := rand.New(rand.NewSource(1))
	s := New(0.138, -1.0, 0.15, 0.0)

	const n = 20000
	var sumE float64
	for i := 0; i < n; i++ {
		m := s.Sample(rng)
		sumE += m.E
	}
	mean := sumE / n

	// a massless boson gas has <E> ≈ 2.7T (3T in the Boltzmann limit); the
	// pion mass is small relative to T=0.15 so the mean should be in the
	// right ballpark.
	if mean < 2.5*s.T || mean > 4.0*s.T {
		tst.Errorf("pion mean energy %.4f outside expected band around 3T=%.4f", mean, 3*s.T)
	}

	accepted, tried := s.Stats()
	if tried == 0 || accepted == 0 {
		tst.Fatalf("expected nonzero accept/tried counters, got %d/%d", accepted, tried)
	}
	eff := float64(accepted) / float64(tried)
	if eff <= 0 || eff > 1 {
		tst.Errorf("acceptance efficiency %.4f out of range", eff)
	}
}

func Test_sampler02_heavyMassShell(tst *testing.T) {

	chk.PrintTitle("sampler02: heavy-regime samples satisfy the mass shell")

	rng := rand.New(rand.NewSource(2))
	s := New(0.938, 1.0, 0.15, 0.0)

	for i := 0; i < 2000; i++ {
		m := s.Sample(rng)
		p2 := m.Px*m.Px + m.Py*m.Py + m.Pz*m.Pz
		e2 := m.E * m.E
		res := e2 - p2 - s.Mass*s.Mass
		if math.Abs(res) > 1e-6*e2 {
			tst.Fatalf("mass-shell violated: E^2-p^2-m^2=%.6g", res)
		}
		if m.E <= 0 {
			tst.Fatalf("non-positive energy sampled: %.6g", m.E)
		}
	}
}

func Test_sampler03_regimeDispatch(tst *testing.T) {

	chk.PrintTitle("sampler03: regime boundary matches PionRegimeCutoff")

	if !(0.138/0.15 < PionRegimeCutoff) {
		tst.Fatalf("pion test mass should fall below the pion-regime cutoff")
	}
	if !(0.938/0.15 >= PionRegimeCutoff) {
		tst.Fatalf("proton test mass should fall above the pion-regime cutoff")
	}
}
