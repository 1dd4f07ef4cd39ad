package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_config01_defaultsAndOverrides(tst *testing.T) {

	chk.PrintTitle("config01: JSON overrides fields left unset by SetDefault")

	dir := tst.TempDir()
	path := filepath.Join(dir, "run.json")
	body := `{
		"operation": "sample",
		"df_mode": 3,
		"freezeout_surface_path": "surface.dat",
		"sampler_seed": 42
	}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("cannot write test config: %v", err)
	}

	c := Read(path)
	if c.DFMode != 3 {
		tst.Errorf("df_mode: got %d want 3", c.DFMode)
	}
	if c.Dimension != 3 {
		tst.Errorf("dimension default: got %d want 3", c.Dimension)
	}
	if c.SamplerSeed != 42 {
		tst.Errorf("sampler_seed: got %d want 42", c.SamplerSeed)
	}
	if c.MaxNumSamples != 1000000 {
		tst.Errorf("max_num_samples default not applied: got %d", c.MaxNumSamples)
	}
}

func Test_config02_missingSurfacePathPanics(tst *testing.T) {

	chk.PrintTitle("config02: missing freezeout_surface_path panics")

	dir := tst.TempDir()
	path := filepath.Join(dir, "run.json")
	os.WriteFile(path, []byte(`{"operation":"sample"}`), 0644)

	defer func() {
		if recover() == nil {
			tst.Errorf("expected panic for missing freezeout_surface_path")
		}
	}()
	Read(path)
}
