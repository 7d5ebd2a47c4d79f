// Package config provides configuration loading and management for mksgo.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Model parameters
	Model struct {
		// Nbin is the number of discretization bins for the microstructure
		Nbin int `yaml:"nbin"`

		// NumWorkers specifies how many goroutines to use for the
		// per-frequency solves during fitting
		NumWorkers int `yaml:"numWorkers"`
	} `yaml:"model"`

	// Synthetic dataset parameters for the demo binary
	Synthetic struct {
		// Samples is the number of paired microstructure/response samples
		Samples int `yaml:"samples"`

		// GridSize is the spatial grid length of the 1-D dataset
		GridSize int `yaml:"gridSize"`

		// Seed makes the generated dataset deterministic
		Seed int64 `yaml:"seed"`
	} `yaml:"synthetic"`

	// Output parameters
	Output struct {
		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`

		// BinMapsDir is the directory where per-bin membership images
		// are saved when rendering is requested; empty disables it
		BinMapsDir string `yaml:"binMapsDir"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default model parameters
	cfg.Model.Nbin = 10
	cfg.Model.NumWorkers = runtime.NumCPU() // Use all available cores by default

	// Set default synthetic dataset parameters
	cfg.Synthetic.Samples = 400
	cfg.Synthetic.GridSize = 32
	cfg.Synthetic.Seed = 2

	// Set default output parameters
	cfg.Output.Verbose = true
	cfg.Output.BinMapsDir = ""

	return cfg
}

// LoadConfig loads configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
