package emit

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/particlize/config"
	"github.com/cpmech/particlize/dfcoeff"
	"github.com/cpmech/particlize/hadron"
	"github.com/cpmech/particlize/particle"
	"github.com/cpmech/particlize/surface"
)

func staticCell() surface.Cell {
	return surface.Cell{
		Tau: 6.0, X: 0, Y: 0, Eta: 0,
		Dt: 10.0, Dx: 0, Dy: 0, Deta: 0,
		Ux: 0, Uy: 0, Ueta: 0,
		T: 0.15, P: 0.05, E: 0.15,
	}
}

func inflowingCell() surface.Cell {
	c := staticCell()
	c.Dt = -10.0
	return c
}

func testSpecies() []hadron.Species {
	return []hadron.Species{
		{MCID: 211, Mass: 0.138, Degen: 1, Sign: -1, Baryon: 0},
		{MCID: 2212, Mass: 0.938, Degen: 2, Sign: 1, Baryon: 1},
	}
}

// flatten concatenates every event's particles into one slice, for tests
// that don't care about event boundaries.
func flatten(events [][]particle.Particle) []particle.Particle {
	var all []particle.Particle
	for _, e := range events {
		all = append(all, e...)
	}
	return all
}

func Test_emit01_inflowingCellSkipped(tst *testing.T) {

	chk.PrintTitle("emit01: inflowing cell contributes nothing (scenario S3)")

	cfg := &config.Config{DFMode: 1, Dimension: 3, MinNumHadrons: 1, MaxNumSamples: 1000, SamplerSeed: 1}
	d := NewDriver(cfg, testSpecies(), dfcoeff.NewEquilibriumEvaluator(), false)

	events, st := d.Run([]surface.Cell{inflowingCell()}, 1)
	if len(flatten(events)) != 0 {
		tst.Errorf("expected no particles from an inflowing cell, got %d", len(flatten(events)))
	}
	if st.CellsSkippedInflowing != 1 {
		tst.Errorf("expected 1 skipped-inflowing cell, got %d", st.CellsSkippedInflowing)
	}
}

func Test_emit02_staticCellEmitsMassShellParticles(tst *testing.T) {

	chk.PrintTitle("emit02: a static outflowing cell emits particles on their mass shell")

	cfg := &config.Config{DFMode: 1, Dimension: 3, MinNumHadrons: 5, MaxNumSamples: 100000, SamplerSeed: 7}
	cells := make([]surface.Cell, 50)
	for i := range cells {
		cells[i] = staticCell()
	}
	d := NewDriver(cfg, testSpecies(), dfcoeff.NewEquilibriumEvaluator(), false)

	events, _ := d.Run(cells, 3)
	if len(events) != 3 {
		tst.Fatalf("expected 3 events, got %d", len(events))
	}
	out := flatten(events)
	if len(out) == 0 {
		tst.Fatalf("expected a nonzero number of emitted particles")
	}
	for _, p := range out {
		if p.T != 6.0 || p.Z != 0.0 {
			tst.Errorf("a static, mid-rapidity cell should emit at (t,z)=(tau,0): got t=%v z=%v", p.T, p.Z)
		}
	}
}

func Test_emit03_determinism(tst *testing.T) {

	chk.PrintTitle("emit03: identical config reproduces identical output (scenario S5)")

	cfg := &config.Config{DFMode: 1, Dimension: 3, MinNumHadrons: 5, MaxNumSamples: 100000, SamplerSeed: 11}
	cells := []surface.Cell{staticCell(), staticCell()}

	d1 := NewDriver(cfg, testSpecies(), dfcoeff.NewEquilibriumEvaluator(), false)
	out1, _ := d1.Run(cells, 2)

	d2 := NewDriver(cfg, testSpecies(), dfcoeff.NewEquilibriumEvaluator(), false)
	out2, _ := d2.Run(cells, 2)

	if len(flatten(out1)) != len(flatten(out2)) {
		tst.Fatalf("repeated runs produced different particle counts: %d vs %d", len(flatten(out1)), len(flatten(out2)))
	}
}

func Test_emit04_rapidityExtensionIsUniform(tst *testing.T) {

	chk.PrintTitle("emit04: 2+1D mode samples spacetime rapidity uniformly on [-y_cut,y_cut) (scenario S4)")

	yCut := 3.0
	cfg := &config.Config{DFMode: 1, Dimension: 2, YCut: yCut, MinNumHadrons: 1000000, MaxNumSamples: 1000000, SamplerSeed: 5}
	cells := make([]surface.Cell, 200)
	for i := range cells {
		cells[i] = staticCell()
	}
	d := NewDriver(cfg, testSpecies()[:1], dfcoeff.NewEquilibriumEvaluator(), false)

	events, _ := d.Run(cells, 1)
	out := flatten(events)
	if len(out) < 1000 {
		tst.Fatalf("expected a large sample to check uniformity, got %d particles", len(out))
	}

	const nbins = 20
	counts := make([]int, nbins)
	for _, p := range out {
		y := math.Asinh(p.Z / staticCell().Tau)
		if y < -yCut || y >= yCut {
			tst.Errorf("sampled rapidity %v outside [-%v,%v)", y, yCut, yCut)
			continue
		}
		bin := int((y + yCut) / (2 * yCut) * nbins)
		if bin < 0 {
			bin = 0
		}
		if bin >= nbins {
			bin = nbins - 1
		}
		counts[bin]++
	}

	expected := float64(len(out)) / nbins
	for b, c := range counts {
		if math.Abs(float64(c)-expected) > 0.35*expected {
			tst.Errorf("bin %d count %d deviates from expected %v by more than 35%%", b, c, expected)
		}
	}
}

func Test_emit05_estimateEventsRespectsMinAndMax(tst *testing.T) {

	chk.PrintTitle("emit05: EstimateEvents sizes N_events from Ntot (spec.md §4.7)")

	cfg := &config.Config{DFMode: 1, Dimension: 3, MinNumHadrons: 1, MaxNumSamples: 1000000, SamplerSeed: 1}
	cells := []surface.Cell{staticCell()}
	d := NewDriver(cfg, testSpecies(), dfcoeff.NewEquilibriumEvaluator(), false)

	n := d.EstimateEvents(cells)
	if n < 1 {
		tst.Errorf("expected at least one event, got %d", n)
	}

	cfg.MaxNumSamples = 1
	n = d.EstimateEvents(cells)
	if n != 1 {
		tst.Errorf("expected N_max to cap N_events at 1, got %d", n)
	}
}
