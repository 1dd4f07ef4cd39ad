package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/particlize/config"
	"github.com/cpmech/particlize/dfcoeff"
	"github.com/cpmech/particlize/emit"
	"github.com/cpmech/particlize/hadron"
	"github.com/cpmech/particlize/particleio"
	"github.com/cpmech/particlize/surface"
)

func main() {

	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				io.PfRed("ERROR: %v\n", err)
			}
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	if mpi.Rank() == 0 {
		io.PfWhite("\nparticlize -- Cooper-Frye particle sampling core\n\n")
	}

	flag.Parse()
	var cfgPath string
	if len(flag.Args()) > 0 {
		cfgPath = flag.Arg(0)
	} else {
		chk.Panic("please provide a configuration file. Ex.: run.json")
	}

	cfg := config.Read(cfgPath)

	cells, err := surface.ReadTSV(cfg.FreezeoutSurfacePath)
	if err != nil {
		chk.Panic("cannot read freezeout surface: %v", err)
	}

	species := hadron.Truncate(hadron.ReadTable(cfg.HadronTablePath), hadron.MaxSpecies)

	verbose := mpi.Rank() == 0
	d := emit.NewDriver(cfg, species, dfcoeff.NewEquilibriumEvaluator(), verbose)
	d.BuildAverages(cells)
	nEvents := d.EstimateEvents(cells)
	if verbose {
		io.Pf("> drawing %d events (spec.md %s4.7 N_events = min(ceil(N_min/Ntot), N_max))\n", nEvents, "§")
	}

	events, stats := d.Run(cells, nEvents)

	if verbose {
		n := 0
		for _, evt := range events {
			n += len(evt)
		}
		io.Pf("> %d particles emitted across %d events from %d cells (tried %d, accepted %d)\n",
			n, nEvents, len(cells), stats.Tried, stats.Accepted)
		io.Pf("> cells skipped as inflowing: %d, cells with a feqmod or aniso breakdown: %d\n",
			stats.CellsSkippedInflowing, stats.CellsBrokenFeqmod)
	}

	prefix := io.Sf("particles_rank%03d", mpi.Rank())
	particleio.WriteEvents(cfg.OutputDir, prefix, events)
}
