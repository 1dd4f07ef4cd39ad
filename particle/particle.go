// Package particle defines the emitted-hadron output record (spec.md §3
// "Sampled particle", component C8's output) and the mass-shell
// assertion every emitted particle must satisfy.
package particle

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Particle is one Monte Carlo sampled hadron in the Minkowski lab frame
// (spec.md §7 "Particle output record"): four-momentum (E,Px,Py,Pz) and
// emission point (X,Y,Z,T), both already converted out of Milne
// coordinates via milne.ToMinkowski.
type Particle struct {
	MCID          int
	Mass          float64
	E, Px, Py, Pz float64
	X, Y, Z, T    float64
}

// MassShellTol bounds the relative residual CheckMassShell tolerates
// before flagging a particle as broken (spec.md §7 class 6, "the mass
// shell is re-asserted once in the lab frame before being written out").
const MassShellTol = 1e-6

// CheckMassShell panics (spec.md §7 class 6: a math-domain assertion,
// never a recoverable per-particle condition) if p is off its
// mass shell by more than MassShellTol, mirroring msolid's driver-level
// chk.Panic on an unrecoverable numerical failure.
func CheckMassShell(p Particle) {
	e2 := p.E * p.E
	res := e2 - (p.Px*p.Px + p.Py*p.Py + p.Pz*p.Pz) - p.Mass*p.Mass
	if math.Abs(res) > MassShellTol*math.Max(e2, 1.0) {
		chk.Panic("particle: mass shell violated for mcid=%d: E^2-p^2-m^2=%.6e", p.MCID, res)
	}
}
