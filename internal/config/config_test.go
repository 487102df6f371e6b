package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finassist.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "sample_data" || cfg.ListenAddr != "127.0.0.1:8480" || cfg.LogLevel != "info" {
		t.Errorf("defaults = %+v", cfg)
	}
	if !cfg.SimulateResolution {
		t.Error("simulate_resolution should default to true")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config file not written: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finassist.json")
	content := `{"data_dir":"/data","listen_addr":"0.0.0.0:9000","log_level":"debug","simulate_resolution":false}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/data" || cfg.ListenAddr != "0.0.0.0:9000" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.SimulateResolution {
		t.Error("simulate_resolution should be false")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finassist.json")
	if err := os.WriteFile(path, []byte(`{"log_level":"debug"}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "sample_data" || cfg.LogLevel != "debug" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.SimulateResolution {
		t.Error("absent simulate_resolution should keep the default")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finassist.json")
	t.Setenv("FINASSIST_DATA_DIR", "/override/data")
	t.Setenv("FINASSIST_LISTEN_ADDR", "127.0.0.1:7777")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DataDir != "/override/data" {
		t.Errorf("data dir = %q", cfg.DataDir)
	}
	if cfg.ListenAddr != "127.0.0.1:7777" {
		t.Errorf("listen addr = %q", cfg.ListenAddr)
	}
}
