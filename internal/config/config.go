package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	DataDir    string `json:"data_dir"`
	ListenAddr string `json:"listen_addr"`
	LogLevel   string `json:"log_level"`

	// SimulateResolution enables the scripted "next-day" welcome scenario
	// that narrates the IndiSky GSTIN ticket resolution. On in the shipped
	// demo configuration; off, the welcome generator scans for real
	// updates instead.
	SimulateResolution bool `json:"simulate_resolution"`
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		DataDir:            "sample_data",
		ListenAddr:         "127.0.0.1:8480",
		LogLevel:           "info",
		SimulateResolution: true,
	}

	// Load from file if exists, otherwise write defaults
	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	} else if os.IsNotExist(err) {
		if err := writeDefaults(path, cfg); err != nil {
			return nil, err
		}
	}

	// Override from env (highest precedence)
	if dataDir := os.Getenv("FINASSIST_DATA_DIR"); dataDir != "" {
		cfg.DataDir = dataDir
	}
	if addr := os.Getenv("FINASSIST_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}

	return cfg, nil
}

func writeDefaults(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal default config: %w", err)
	}
	data = append(data, '\n')
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename default config: %w", err)
	}
	return nil
}
