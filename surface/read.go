package surface

import (
	"strconv"
	"strings"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ReadTSV reads a whitespace-separated freezeout-surface file: one header
// line (ignored) followed by one row per cell with the fields of Cell in
// declaration order, Ux/Uy/Ueta before the shear/bulk columns. Column
// count must be 16 (through Pixy) or 20 (adding Pixn, Piyy, Piyn and
// BulkPi); the baryon and diffusion fields (MuB, NB, Vx, Vy, Vn) are never
// read and stay zero. This is a minimal stand-in for the real upstream surface reader, which is out of
// scope (spec.md §1 "Out of scope").
func ReadTSV(path string) (cells []Cell, err error) {
	b, err := io.ReadFile(path)
	if err != nil {
		return nil, chk.Err("surface: cannot read %q: %v", path, err)
	}
	lines := strings.Split(string(b), "\n")
	for i, ln := range lines {
		if i == 0 {
			continue // header
		}
		ln = strings.TrimSpace(ln)
		if ln == "" {
			continue
		}
		fields := strings.Fields(ln)
		c, perr := parseRow(fields)
		if perr != nil {
			return nil, chk.Err("surface: line %d: %v", i+1, perr)
		}
		cells = append(cells, c)
	}
	return cells, nil
}

func parseRow(f []string) (c Cell, err error) {
	if len(f) != 16 && len(f) != 20 {
		return c, chk.Err("expected 16 or 20 columns, got %d", len(f))
	}
	vals := make([]float64, len(f))
	for i, s := range f {
		vals[i], err = strconv.ParseFloat(s, 64)
		if err != nil {
			return c, chk.Err("field %d (%q): %v", i, s, err)
		}
	}
	c.Tau, c.X, c.Y, c.Eta = vals[0], vals[1], vals[2], vals[3]
	c.Dt, c.Dx, c.Dy, c.Deta = vals[4], vals[5], vals[6], vals[7]
	c.Ux, c.Uy, c.Ueta = vals[8], vals[9], vals[10]
	c.T, c.P, c.E = vals[11], vals[12], vals[13]
	c.Pixx, c.Pixy = vals[14], vals[15]
	if len(f) == 20 {
		c.Pixn, c.Piyy, c.Piyn = vals[16], vals[17], vals[18]
		c.BulkPi = vals[19]
	}
	return c, nil
}
