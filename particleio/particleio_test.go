package particleio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/particlize/particle"
)

func Test_particleio01_eventFormat(tst *testing.T) {

	chk.PrintTitle("particleio01: event header and particle line column count")

	var buf bytes.Buffer
	ps := []particle.Particle{
		{MCID: 211, Mass: 0.138, E: 0.3, Px: 0.1, Py: 0.05, Pz: 0.2, X: 1, Y: 2, Z: 0.6, T: 6.0},
	}
	WriteEvent(&buf, Header{Event: 0, N: len(ps)}, ps)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		tst.Fatalf("expected an event header, a column header, and one particle line, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "#") {
		tst.Errorf("event header line should start with '#', got %q", lines[0])
	}
	if lines[1] != "n pid px py pz E m x y z t" {
		tst.Errorf("unexpected column header: %q", lines[1])
	}
	fields := strings.Fields(lines[2])
	if len(fields) != 11 {
		tst.Errorf("expected 11 columns (index + 10 OSCAR fields), got %d: %q", len(fields), lines[2])
	}
}
