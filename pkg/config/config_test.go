package config

import (
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the default values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model.Nbin != 10 {
		t.Errorf("expected default nbin 10, got %d", cfg.Model.Nbin)
	}
	if cfg.Model.NumWorkers < 1 {
		t.Errorf("expected at least one worker, got %d", cfg.Model.NumWorkers)
	}
	if cfg.Synthetic.Samples != 400 {
		t.Errorf("expected default samples 400, got %d", cfg.Synthetic.Samples)
	}
}

// TestLoadMissingFileReturnsDefaults checks the missing-file behavior
func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Model.Nbin != DefaultConfig().Model.Nbin {
		t.Errorf("missing file should yield defaults")
	}
}

// TestSaveLoadRoundTrip writes a config and reads it back
func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "cfg.yaml")

	cfg := DefaultConfig()
	cfg.Model.Nbin = 7
	cfg.Model.NumWorkers = 3
	cfg.Synthetic.Seed = 123
	cfg.Output.BinMapsDir = "maps"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Model.Nbin != 7 {
		t.Errorf("expected nbin 7, got %d", loaded.Model.Nbin)
	}
	if loaded.Model.NumWorkers != 3 {
		t.Errorf("expected numWorkers 3, got %d", loaded.Model.NumWorkers)
	}
	if loaded.Synthetic.Seed != 123 {
		t.Errorf("expected seed 123, got %d", loaded.Synthetic.Seed)
	}
	if loaded.Output.BinMapsDir != "maps" {
		t.Errorf("expected binMapsDir maps, got %q", loaded.Output.BinMapsDir)
	}
}

// TestCreateDefaultConfigFile writes defaults to disk
func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")

	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Model.Nbin != DefaultConfig().Model.Nbin {
		t.Errorf("written defaults do not round trip")
	}
}
