// Package hadron holds the (externally supplied, PDG-table-derived) list of
// particle species participating in Cooper-Frye emission. Table ingestion
// itself is out of scope (spec.md §1); this package only carries the
// resulting in-memory records and the parameter-list view used to describe
// them, mirroring mreten's fun.Prms-based GetPrms idiom.
package hadron

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
)

// Species is one emitted hadron type.
type Species struct {
	MCID   int     // Monte-Carlo / PDG id
	Mass   float64 // GeV
	Degen  float64 // spin-isospin degeneracy g
	Sign   float64 // +1 fermion, -1 boson
	Baryon float64 // baryon number b
}

// PionRegimeCutoff is the mbar=m/T below which a species is sampled with
// the pion envelope of the thermal sampler (spec.md §4.5).
const PionRegimeCutoff = 1.008

func (s Species) Mbar(T float64) float64 { return s.Mass / T }

// IsPionRegime reports whether this species at temperature T should be
// sampled with the massless-envelope (pion) kernel rather than the
// kinetic-energy heavy kernel.
func (s Species) IsPionRegime(T float64) bool {
	return s.Mbar(T) < PionRegimeCutoff
}

// Prms returns the species as a gosl/fun parameter list, mirroring the
// GetPrms convention used throughout the teacher's material-model packages
// (e.g. mreten.BrooksCorey.GetPrms) for reporting/round-tripping.
func (s Species) Prms() fun.Prms {
	return fun.Prms{
		&fun.Prm{N: "mass", V: s.Mass},
		&fun.Prm{N: "degeneracy", V: s.Degen},
		&fun.Prm{N: "sign", V: s.Sign},
		&fun.Prm{N: "baryon", V: s.Baryon},
		&fun.Prm{N: "mcid", V: float64(s.MCID)},
	}
}

// MaxSpecies is the empirical truncation of the hadron set participating
// in the C4 anisotropic-reconstruction thermal integrals (spec.md §4.4);
// kept as a named, configurable constant rather than a hardcoded literal.
const MaxSpecies = 320

// Truncate returns at most MaxSpecies species, dropping the heaviest first,
// as required by spec.md §4.4.
func Truncate(all []Species, max int) []Species {
	if max <= 0 || len(all) <= max {
		return all
	}
	kept := make([]Species, len(all))
	copy(kept, all)
	// insertion sort by mass descending is adequate: table sizes are tiny
	// (low hundreds) and this runs once per run, not per cell.
	for i := 1; i < len(kept); i++ {
		for j := i; j > 0 && kept[j].Mass > kept[j-1].Mass; j-- {
			kept[j], kept[j-1] = kept[j-1], kept[j]
		}
	}
	return kept[len(kept)-max:]
}

// ReadTable loads a hadron species list from a JSON array file. The real
// PDG-derived hadron table (with decay channels, widths, etc.) is out of
// scope (spec.md §1 "Out of scope"); this is a minimal in-repo stand-in
// reader, following inp/sim.go's io.ReadFile+json.Unmarshal idiom, for the
// handful of (mass,degeneracy,sign,baryon) fields this package actually
// consumes.
func ReadTable(path string) []Species {
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("hadron: cannot read table %q: %v", path, err)
	}
	var species []Species
	if err := json.Unmarshal(b, &species); err != nil {
		chk.Panic("hadron: cannot unmarshal table %q: %v", path, err)
	}
	return species
}
