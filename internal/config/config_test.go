package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.BoxLength != 1e-10 {
		t.Errorf("expected box length 1e-10, got %g", cfg.BoxLength)
	}
	if cfg.GridPoints <= 0 || cfg.NMax <= 0 || cfg.Frames <= 0 || cfg.FPS <= 0 {
		t.Error("grid, nmax, frames and fps should be positive")
	}
	if cfg.Periods != 10.0 {
		t.Errorf("expected 10 periods, got %g", cfg.Periods)
	}
	if cfg.Output == "" {
		t.Error("output path should not be empty")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("nmax: 80\nframes: 120\nperiods: 2.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.NMax != 80 {
		t.Errorf("expected nmax 80, got %d", cfg.NMax)
	}
	if cfg.Frames != 120 {
		t.Errorf("expected 120 frames, got %d", cfg.Frames)
	}
	if cfg.Periods != 2.5 {
		t.Errorf("expected 2.5 periods, got %g", cfg.Periods)
	}
	// untouched fields keep their defaults
	if cfg.GridPoints != DefaultGridPoints {
		t.Errorf("expected default grid points, got %d", cfg.GridPoints)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.NMax = 33

	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.NMax != 33 {
		t.Errorf("expected nmax 33 after round trip, got %d", loaded.NMax)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("revival")
	if cfg == nil {
		t.Fatal("expected revival preset")
	}
	if math.Abs(cfg.Periods-2*math.Pi) > 1e-12 {
		t.Errorf("revival preset should span 2*pi periods, got %g", cfg.Periods)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("expected presets")
	}
	found := false
	for _, n := range names {
		if n == "default" {
			found = true
		}
	}
	if !found {
		t.Error("expected a default preset")
	}
}
