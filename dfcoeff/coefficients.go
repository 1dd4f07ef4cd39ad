// Package dfcoeff evaluates the viscous-correction coefficient record from
// external (tabulated) df data (spec.md §4.2, component C2). The evaluator
// itself is an oracle over tables this package does not own — loading
// those tables is out of scope (spec.md §1) — so this package only defines
// the record shape, the Evaluator contract, and the PTB bulk-pressure
// clamp the spec requires at this boundary.
package dfcoeff

import (
	"math"
	"sync"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Coefficients is the named aggregate of df-correction coefficients; every
// scheme variant reads only the subset it needs, the rest stay zero
// (spec.md §3 "Df coefficients", §9 "Coefficient record").
type Coefficients struct {
	C0, C1, C2, C3, C4 float64
	Shear14Coeff       float64
	F, G               float64
	BetaBulk, BetaV, BetaPi float64
	Lambda, Z               float64
	DeltaLambda, DeltaZ     float64
}

// Evaluator looks up/interpolates df coefficients for a thermodynamic
// state (T, μB, ε, P, Π). Implementations are pure functions over external
// tables; this package treats it as an oracle (spec.md §4.2).
type Evaluator interface {
	Evaluate(T, muB, eps, P, bulkPi float64) Coefficients
}

// BulkOverPeqMargin is the named safety-margin constant used when clamping
// Π for the PTB scheme (spec.md §4.2, §9 "bulk pressure clamp ... 1e-5").
const BulkOverPeqMargin = 1e-5

var bulkClampWarnOnce sync.Once

// ClampBulkPTB clamps Π so that Π/P lies in
// [-1+BulkOverPeqMargin, bulkOverPeqMax-BulkOverPeqMargin], avoiding table
// extrapolation errors in the PTB-modified scheme (spec.md §4.2). It warns
// once, on the first cell that required clamping, per spec.md §7 class 3.
func ClampBulkPTB(bulkPi, P, bulkOverPeqMax float64) float64 {
	if P <= 0 {
		return bulkPi
	}
	lower := -(1.0 - BulkOverPeqMargin) * P
	upper := P * (bulkOverPeqMax - BulkOverPeqMargin)
	clamped := bulkPi
	switch {
	case bulkPi < lower:
		clamped = lower
	case bulkPi > upper:
		clamped = upper
	default:
		return bulkPi
	}
	bulkClampWarnOnce.Do(func() {
		io.Pfred("dfcoeff: bulk pressure %.6g GeV/fm^3 outside tabulated range; clamped to %.6g (first occurrence; further clamps silent)\n", bulkPi, clamped)
	})
	return clamped
}

// EquilibriumEvaluator is a minimal in-repo stand-in for the externally
// tabulated evaluator: it returns the linear (14-moment / Chapman-Enskog)
// thermodynamic relations for an ideal massless-gas-like equation of
// state, sufficient to drive the sampling core end to end in tests without
// pulling in the real df-coefficient tables (those are out of scope, spec
// §1). Real deployments supply their own Evaluator.
type EquilibriumEvaluator struct {
	// BetaPiRef, BetaBulkRef, BetaVRef are reference relaxation-time
	// scales; a production evaluator derives these from the equation of
	// state at (T,muB). Here they are simple proportional stand-ins.
	BetaPiRef, BetaBulkRef, BetaVRef float64
}

// NewEquilibriumEvaluator returns an evaluator with conventional reference
// scales (of order the local pressure) used across the test suite.
func NewEquilibriumEvaluator() *EquilibriumEvaluator {
	return &EquilibriumEvaluator{BetaPiRef: 1.0, BetaBulkRef: 1.0, BetaVRef: 1.0}
}

func (e *EquilibriumEvaluator) Evaluate(T, muB, eps, P, bulkPi float64) Coefficients {
	var c Coefficients
	c.BetaPi = e.BetaPiRef * P
	c.BetaBulk = e.BetaBulkRef * P
	c.BetaV = e.BetaVRef * math.Max(P, 1e-12)
	c.C0 = 1.0 / (2.0 * c.BetaPi * T)
	c.C1 = 0
	c.C2 = 1.0 / (3.0 * c.BetaBulk)
	c.C3 = 0
	c.C4 = 1.0 / (3.0 * T * c.BetaBulk)
	c.Shear14Coeff = 2.0 * c.BetaPi * T
	c.F = T / 3.0
	c.G = 0
	c.Lambda = 1.0
	c.Z = 1.0
	c.DeltaLambda = 0
	c.DeltaZ = 0
	return c
}

// allocator builds a named Evaluator from a parameter list, mirroring
// mconduct.New's name-keyed registry idiom for interchangeable physical
// models.
type allocator func(prms fun.Prms) (Evaluator, error)

var evaluators = map[string]allocator{
	"equilibrium": func(prms fun.Prms) (Evaluator, error) {
		e := NewEquilibriumEvaluator()
		for _, p := range prms {
			switch p.N {
			case "betaPiRef":
				e.BetaPiRef = p.V
			case "betaBulkRef":
				e.BetaBulkRef = p.V
			case "betaVRef":
				e.BetaVRef = p.V
			default:
				return nil, chk.Err("dfcoeff: unknown parameter %q for evaluator \"equilibrium\"", p.N)
			}
		}
		return e, nil
	},
}

// New builds a named Evaluator (spec.md §9's df-coefficient evaluator is
// pluggable; "equilibrium" is the only in-repo implementation, a
// deployment with real tables registers its own name via Register).
func New(name string, prms fun.Prms) (Evaluator, error) {
	alloc, ok := evaluators[name]
	if !ok {
		return nil, chk.Err("dfcoeff: evaluator %q is not registered", name)
	}
	return alloc(prms)
}

// Register adds a named Evaluator constructor, letting a deployment with
// real externally-tabulated coefficients plug in without this package
// knowing about table formats.
func Register(name string, alloc func(prms fun.Prms) (Evaluator, error)) {
	if _, ok := evaluators[name]; ok {
		chk.Panic("dfcoeff: evaluator %q already registered", name)
	}
	evaluators[name] = alloc
}
