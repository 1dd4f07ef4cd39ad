// Package particleio writes sampled particles to the OSCAR-style TSV
// output format (spec.md §6 "output file"), grounded on
// tools/GenVtu.go's io.WriteFile/io.Sf usage and out/printing.go's
// io.Sf-based line assembly.
package particleio

import (
	"bytes"

	"github.com/cpmech/gosl/io"

	"github.com/cpmech/particlize/particle"
)

// Header is written once per event, giving a reader the event index and
// particle count ahead of the particle lines (spec.md §6).
type Header struct {
	Event int
	N     int
}

// WriteEvent appends one event's header line and particle lines to buf,
// one row per particle in the column order spec.md §7 names: "n pid px
// py pz E m x y z t". Particles failing the mass shell are never reached
// here: the caller runs particle.CheckMassShell before calling
// WriteEvent.
func WriteEvent(buf *bytes.Buffer, h Header, particles []particle.Particle) {
	buf.WriteString(io.Sf("# event %d  n_particles %d\n", h.Event, h.N))
	buf.WriteString("n pid px py pz E m x y z t\n")
	for i, p := range particles {
		buf.WriteString(io.Sf("%d %d %.10g %.10g %.10g %.10g %.10g %.10g %.10g %.10g %.10g\n",
			i, p.MCID, p.Px, p.Py, p.Pz, p.E, p.Mass, p.X, p.Y, p.Z, p.T))
	}
}

// WriteEvents writes one file per event under dir, named
// "<prefix>_<event>.dat", following spec.md §6 "Separate file per
// event" and inp/t_read_test.go's io.WriteFileSD(dir, filename,
// content) idiom for flushing an assembled buffer in one call.
func WriteEvents(dir, prefix string, events [][]particle.Particle) {
	for i, evt := range events {
		var buf bytes.Buffer
		WriteEvent(&buf, Header{Event: i, N: len(evt)}, evt)
		io.WriteFileSD(dir, io.Sf("%s_%d.dat", prefix, i), buf.String())
	}
}
