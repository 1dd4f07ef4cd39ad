// Package dfscheme dispatches each cell to the viscous-correction scheme
// named by its df_mode (spec.md §9 "Polymorphism note": 14-moment,
// Chapman-Enskog, PTM, PTB, anisotropic hydrodynamics), following
// ele/factory.go's named-registry idiom.
package dfscheme

import "github.com/cpmech/gosl/chk"

// Kind names the five supported schemes (spec.md §1, §9).
type Kind string

const (
	FourteenMoment   Kind = "14-moment"
	ChapmanEnskog    Kind = "chapman-enskog"
	PTM              Kind = "ptm"
	PTB              Kind = "ptb"
	AnisoHydro       Kind = "anisotropic-hydro"
)

// Capabilities records which parts of the pipeline a scheme engages, so
// the emission driver (component C8) can skip work a scheme never needs
// rather than branching on Kind everywhere (spec.md §9).
type Capabilities struct {
	NeedsFeasibilityCheck bool // component C3 applies (PTM, PTB)
	NeedsAnisoReconstruct bool // component C4 applies (anisotropic hydro)
	LinearRescale         bool // component C6's affine transform applies
	RequiresStatefulAniso bool // warm-started (λ,a_T,a_L) carried across cells
}

// Scheme bundles a Kind with its Capabilities. Registered implementations
// are pure data; the emission driver reads Capabilities to decide which
// of feqmod/aniso/rescale to invoke for a cell tagged with this Kind.
type Scheme struct {
	Kind Kind
	Capabilities
}

var registry = map[Kind]Scheme{
	// 14-moment and Chapman-Enskog sample with no rescaling at all: their
	// viscous correction is a pure acceptance weight (spec.md §4.6,
	// §4.8's viscous weight formulas), never a momentum deformation.
	FourteenMoment: {Kind: FourteenMoment},
	ChapmanEnskog:  {Kind: ChapmanEnskog},
	PTM: {Kind: PTM, Capabilities: Capabilities{
		NeedsFeasibilityCheck: true,
		LinearRescale:         true,
	}},
	PTB: {Kind: PTB, Capabilities: Capabilities{
		NeedsFeasibilityCheck: true,
		LinearRescale:         true,
	}},
	AnisoHydro: {Kind: AnisoHydro, Capabilities: Capabilities{
		NeedsAnisoReconstruct: true,
		RequiresStatefulAniso: true,
	}},
}

// Get looks up the Scheme for a df_mode name, panicking (configuration
// error, spec.md §7 class 1) on an unknown name.
func Get(k Kind) Scheme {
	s, ok := registry[k]
	if !ok {
		chk.Panic("dfscheme: unknown df_mode %q", k)
	}
	return s
}

// FromIndex maps the integer df_mode values used in config files (spec.md
// §6) onto Kind: 1=14-moment, 2=Chapman-Enskog, 3=PTM, 4=PTB,
// 5=anisotropic hydro.
func FromIndex(i int) Kind {
	switch i {
	case 1:
		return FourteenMoment
	case 2:
		return ChapmanEnskog
	case 3:
		return PTM
	case 4:
		return PTB
	case 5:
		return AnisoHydro
	default:
		chk.Panic("dfscheme: df_mode index %d out of range [1,5]", i)
		return ""
	}
}
