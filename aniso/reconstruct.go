// Package aniso reconstructs the anisotropic variables (λ,a_T,a_L) from
// the prescribed macroscopic (ε,p_L,p_T) of a cell (spec.md §4.4,
// component C4). The Newton-solve / warm-start discipline follows
// msolid/hyperelast1.go's use of gosl/num.NlSolver, generalized from its
// 2-unknown (ev,ed) system to this 3-unknown one.
package aniso

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/num"
)

// NormConst is the proportionality constant relating the momentum scale λ
// to the isotropic energy density of the anisotropic ansatz used here,
// ε0(λ) = NormConst·λ⁴ (spec.md §4.4 does not fix a species-resolved
// normalization at this level; a deployment calibrates this against its
// own equation of state — see DESIGN.md, "Open Questions").
const NormConst = 3.0 / (math.Pi * math.Pi)

// State is the carried-forward anisotropic solution (spec.md §3 "Anisotropic
// state ... stateful across cells").
type State struct {
	Lambda, AT, AL float64
}

// Equilibrium returns the isotropic initial guess (λ=T, a_T=a_L=1)
// (spec.md §4.4).
func Equilibrium(T float64) State { return State{Lambda: T, AT: 1, AL: 1} }

// rXi is the Romatschke-Strickland anisotropy function
// R(ξ) = 1/2[1/(1+ξ) + atanh-or-atan(√|ξ|)/√|ξ|], continuous at ξ=0.
func rXi(xi float64) float64 {
	switch {
	case math.Abs(xi) < 1e-9:
		return 1.0
	case xi > 0:
		s := math.Sqrt(xi)
		return 0.5 * (1.0/(1.0+xi) + math.Atan(s)/s)
	default:
		s := math.Sqrt(-xi)
		return 0.5 * (1.0/(1.0+xi) + math.Atanh(s)/s)
	}
}

// rLXi is R_L(ξ) = 3/ξ[(1+ξ)R(ξ)-1], with the ξ→0 limit R_L(0)=1.
func rLXi(xi float64) float64 {
	if math.Abs(xi) < 1e-9 {
		return 1.0
	}
	return 3.0 / xi * ((1.0+xi)*rXi(xi) - 1.0)
}

// Macroscopic returns (ε,p_L,p_T) produced by the anisotropic ansatz at
// state (λ,a_T,a_L) (spec.md §4.4): ε = ε0 R(ξ), p_L = (ε0/3) R_L(ξ) and
// p_T = (ε-p_L)/2, so an isotropic state gives ε = 3p_L = 3p_T.
func Macroscopic(s State) (eps, pL, pT float64) {
	xi := (s.AT*s.AT)/(s.AL*s.AL) - 1.0
	eps0 := NormConst * s.Lambda * s.Lambda * s.Lambda * s.Lambda / (s.AT * s.AT * s.AL)
	eps = eps0 * rXi(xi)
	pL = eps0 / 3.0 * rLXi(xi)
	pT = (eps - pL) / 2.0
	return
}

// Targets are the macroscopic quantities a cell's (ε,Π,π_zz^LRF) impose,
// computed per spec.md §4.4: p_L = P+Π+π_zz^LRF, p_T = P+Π-π_zz^LRF/2.
type Targets struct {
	Eps, PL, PT float64
}

// MaxNewtonIters bounds each Newton attempt (warm-start or equilibrium).
const MaxNewtonIters = 50

// Reconstruct solves for (λ,a_T,a_L) matching Targets, following the warm
// start / single-retry / failure-counter discipline of spec.md §4.4: if
// warm is non-nil it is tried first; on failure the equilibrium guess
// (λ=T,a_T=a_L=1) is retried once; a second failure returns ok=false.
// iters reports the Newton iteration count of the successful attempt (used
// by tests to verify the warm-start speedup, spec.md §8 scenario S6).
func Reconstruct(targets Targets, T float64, warm *State) (out State, ok bool, iters int) {
	if targets.PL <= 0 || targets.PT <= 0 {
		return State{}, false, 0
	}

	if warm != nil {
		if s, n, solved := newtonSolve(targets, *warm); solved {
			return s, true, n
		}
	}

	eq := Equilibrium(T)
	if s, n, solved := newtonSolve(targets, eq); solved {
		return s, true, n
	}

	return State{}, false, 0
}

// newtonSolve runs gosl/num.NlSolver on the 3-equation system
// Macroscopic(λ,a_T,a_L) - Targets = 0, using a finite-difference Jacobian
// (the closed-form R(ξ) derivatives are awkward to carry by hand, so each
// column is a forward difference (f(x+h e_j)-f(x))/h with
// h = 1e-6·max(1,|x_j|)).
func newtonSolve(targets Targets, guess State) (out State, iters int, ok bool) {
	x := []float64{guess.Lambda, guess.AT, guess.AL}

	calls := 0
	residual := func(fx, xv []float64) error {
		calls++
		s := State{Lambda: xv[0], AT: xv[1], AL: xv[2]}
		eps, pL, pT := Macroscopic(s)
		fx[0] = eps - targets.Eps
		fx[1] = pL - targets.PL
		fx[2] = pT - targets.PT
		return nil
	}

	jacobian := func(J [][]float64, xv []float64) error {
		const h = 1e-6
		var f0, f1 [3]float64
		base := make([]float64, 3)
		copy(base, xv)
		_ = residual(f0[:], base)
		for j := 0; j < 3; j++ {
			xp := make([]float64, 3)
			copy(xp, base)
			step := h * math.Max(1.0, math.Abs(xp[j]))
			xp[j] += step
			_ = residual(f1[:], xp)
			for i := 0; i < 3; i++ {
				J[i][j] = (f1[i] - f0[i]) / step
			}
		}
		return nil
	}

	var nls num.NlSolver
	err := nls.Init(3, residual, nil, jacobian, true, false, nil)
	if err != nil {
		return State{}, 0, false
	}
	nls.SetTols(1e-9, 1e-9, 1e-13, num.EPS)

	if err := nls.Solve(x, true); err != nil {
		return State{}, calls, false
	}
	if x[1] <= 0 || x[2] <= 0 || x[0] <= 0 {
		return State{}, calls, false
	}
	// calls includes the Jacobian's own residual evaluations (4 per
	// Newton step: one base + one per perturbed variable) plus one per
	// solver iteration; report the coarser, solver-facing count.
	return State{Lambda: x[0], AT: x[1], AL: x[2]}, calls / 4, true
}

// MustSpeciesCap panics (configuration error, spec.md §7 class 1) if the
// caller passes a non-positive cap, guarding the 320-species truncation
// constant (spec.md §4.4, §9) from being silently disabled.
func MustSpeciesCap(cap int) {
	if cap <= 0 {
		chk.Panic("aniso: species truncation cap must be positive, got %d", cap)
	}
}
