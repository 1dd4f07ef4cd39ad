package analytic

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/ode"
)

// Bjorken models the 1D boost-invariant ideal-fluid expansion used as a
// second analytic cross-check alongside TotalYield: its closed-form
// energy density ε(τ) is compared with an ODE integration of the same
// expansion. The closed-form/ode.ODE-solver pairing follows
// ana/colpresfluid.go's ColumnFluidPressure.Calc/CalcNum split.
type Bjorken struct {
	Eps0, Tau0 float64
	sol        ode.ODE
}

// Init sets up the numerical cross-check: dε/dτ = -(ε+P(ε))/τ with the
// ideal equation of state P=ε/3.
func (b *Bjorken) Init() {
	b.sol.Init("Dopri5", 1, func(f []float64, dT, tau float64, eps []float64, args ...interface{}) error {
		e := eps[0]
		p := e / 3.0
		f[0] = -(e + p) / tau
		return nil
	}, nil, nil, nil, true)
	b.sol.Distr = false
}

// Eps returns the closed-form ideal-fluid energy density at proper time
// tau: ε(τ) = ε0(τ0/τ)^{4/3} (Bjorken 1983).
func (b Bjorken) Eps(tau float64) float64 {
	return b.Eps0 * math.Pow(b.Tau0/tau, 4.0/3.0)
}

// EpsNum integrates the same expansion with gosl/ode, as an independent
// check against Eps.
func (b *Bjorken) EpsNum(tau float64) float64 {
	y := []float64{b.Eps0}
	err := b.sol.Solve(y, b.Tau0, tau, tau-b.Tau0, false)
	if err != nil {
		chk.Panic("analytic: Bjorken ODE integration failed: %v", err)
	}
	return y[0]
}
