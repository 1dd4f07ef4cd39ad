// Package sampler draws LRF four-momenta from the Maxwell-Jüttner
// distribution via rejection sampling against analytic envelopes
// (spec.md §4.5, component C5), following original_source's
// sample_momentum kernel.
package sampler

import (
	"math"
	"math/rand"
)

// PionRegimeCutoff mirrors hadron.PionRegimeCutoff; duplicated as an
// untyped constant here to keep sampler free of a dependency on hadron
// for a single threshold value; Sample uses it to choose between the pion
// and the heavy envelope.
const PionRegimeCutoff = 1.008

// PionBosonWmaxCutoff is the m̄ below which the pion boson envelope
// requires a rescaled maximum weight (spec.md §4.5).
const PionBosonWmaxCutoff = 0.8554

// Momentum is a four-momentum in the local rest frame, plus the
// equilibrium distribution value at acceptance (used downstream for the
// viscous weight, spec.md §4.5).
type Momentum struct {
	E, Px, Py, Pz float64
	Feq           float64
}

// Sampler draws thermal LRF momenta for one (mass,sign) species at a
// fixed (T,chem). It owns no RNG state itself — callers supply a
// *rand.Rand so that the stream-assignment discipline of spec.md §9 (one
// generator per stream, per worker) is controlled entirely by the caller.
type Sampler struct {
	Mass, Sign, T, Chem float64

	accepted, tried int64
}

// New returns a sampler for a species at a given temperature/chemical
// potential.
func New(mass, sign, T, chem float64) *Sampler {
	return &Sampler{Mass: mass, Sign: sign, T: T, Chem: chem}
}

// Stats reports the running acceptance/sample counters (spec.md §4.5: "the
// sampler maintains acceptance/sample counters so the driver can report
// efficiency").
func (s *Sampler) Stats() (accepted, tried int64) { return s.accepted, s.tried }

// Sample draws one LRF four-momentum.
func (s *Sampler) Sample(rng *rand.Rand) Momentum {
	mbar := s.Mass / s.T
	if mbar < PionRegimeCutoff {
		return s.samplePion(rng, mbar)
	}
	return s.sampleHeavy(rng, mbar)
}

// canonical draws a uniform variate in (0,1], matching original_source's
// 1.0-canonical(generator) remap of rand's [0,1) output (needed because
// log(0) is used downstream).
func canonical(rng *rand.Rand) float64 {
	return 1.0 - rng.Float64()
}

func (s *Sampler) samplePion(rng *rand.Rand, mbar float64) Momentum {
	mbar2 := mbar * mbar
	wmax := 1.0
	if s.Sign == -1.0 && mbar < PionBosonWmaxCutoff {
		wmax = pionThermalWeightMax(mbar)
	}

	for {
		s.tried++
		r1, r2, r3 := canonical(rng), canonical(rng), canonical(rng)
		l1, l2, l3 := math.Log(r1), math.Log(r2), math.Log(r3)

		pbar := -(l1 + l2 + l3)
		ebar := math.Sqrt(pbar*pbar + mbar2)
		feq := 1.0 / (math.Exp(ebar) + s.Sign)

		weight := feq / wmax / (r1 * r2 * r3)

		if rng.Float64() < weight {
			s.accepted++
			phiOver2pi := (l1 + l2) * (l1 + l2) / (pbar * pbar)
			costheta := (l1 - l2) / (l1 + l2)
			return finishMomentum(pbar, ebar, s.T, phiOver2pi, costheta, feq)
		}
	}
}

// pionThermalWeightMax is the rational-polynomial fit of the interior
// maximum of the pion thermal weight for m̄ < 0.8554 (spec.md §4.5,
// §9), grounded exactly on original_source/ParticleSampler.cpp's
// pion_thermal_weight_max.
func pionThermalWeightMax(x float64) float64 {
	x2 := x * x
	x3 := x2 * x
	x4 := x3 * x

	num := 143206.88623164667 - 95956.76008684626*x - 21341.937407169076*x2 +
		14388.446116867359*x3 - 6083.775788504437*x4
	den := -0.3541350577684533 + 143218.69233952634*x - 24516.803600065778*x2 -
		115811.59391199696*x3 + 35814.36403387459*x4

	const buffer = 1.00001 // ensures the rescaled weight stays <= 1 numerically
	return buffer * num / den
}

// category weights for the heavy-regime envelope mixture (spec.md §4.5).
func heavyCategoryWeights(mbar2, mbar float64) (w0, w1, w2 float64) {
	return mbar2, 2.0 * mbar, 2.0
}

func (s *Sampler) sampleHeavy(rng *rand.Rand, mbar float64) Momentum {
	mbar2 := mbar * mbar
	w0, w1, w2 := heavyCategoryWeights(mbar2, mbar)
	total := w0 + w1 + w2

	for {
		s.tried++
		var phiOver2pi, costheta, kbar float64

		pick := rng.Float64() * total
		switch {
		case pick < w0:
			kbar = -math.Log(canonical(rng))
			phiOver2pi = rng.Float64()
			costheta = 2.0*rng.Float64() - 1.0
		case pick < w0+w1:
			l1 := math.Log(canonical(rng))
			l2 := math.Log(canonical(rng))
			kbar = -(l1 + l2)
			phiOver2pi = -l1 / kbar
			costheta = 2.0*rng.Float64() - 1.0
		default:
			l1 := math.Log(canonical(rng))
			l2 := math.Log(canonical(rng))
			l3 := math.Log(canonical(rng))
			kbar = -(l1 + l2 + l3)
			phiOver2pi = (l1 + l2) * (l1 + l2) / (kbar * kbar)
			costheta = (l1 - l2) / (l1 + l2)
		}

		ebar := kbar + mbar
		pbar := math.Sqrt(ebar*ebar - mbar2)
		boltz := math.Exp(ebar - s.Chem/s.T)
		feq := 1.0 / (boltz + s.Sign)
		weight := pbar / ebar * boltz * feq

		if rng.Float64() < weight {
			s.accepted++
			return finishMomentum(pbar, ebar, s.T, phiOver2pi, costheta, feq)
		}
	}
}

func finishMomentum(pbar, ebar, T, phiOver2pi, costheta, feq float64) Momentum {
	p := pbar * T
	phi := phiOver2pi * 2.0 * math.Pi
	sintheta := math.Sqrt(math.Max(0, 1.0-costheta*costheta))

	return Momentum{
		E:   ebar * T,
		Px:  p * sintheta * math.Cos(phi),
		Py:  p * sintheta * math.Sin(phi),
		Pz:  p * costheta,
		Feq: feq,
	}
}
