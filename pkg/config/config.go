// Package config provides configuration loading and management for
// mrkspace. It handles loading configuration from YAML files and
// provides default values.
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
	// Processing parameters for the k-space pipeline
	Processing struct {
		// NumCores specifies how many CPU cores to use when processing
		// multiple datasets
		NumCores int `yaml:"numCores"`

		// PartialFraction is the fraction of k-space rows and columns
		// retained by the partial acquisition mask, in (0, 1]
		PartialFraction float64 `yaml:"partialFraction"`

		// LowpassSigmaFraction is the Gaussian low-pass sigma as a
		// fraction of the grid's maximum radius, in (0, 1)
		LowpassSigmaFraction float64 `yaml:"lowpassSigmaFraction"`

		// HighpassSigmaFraction is the Gaussian high-pass sigma as a
		// fraction of the grid's maximum radius, in (0, 1)
		HighpassSigmaFraction float64 `yaml:"highpassSigmaFraction"`
	} `yaml:"processing"`

	// Phantom parameters
	Phantom struct {
		// Size is the side length of the generated Shepp-Logan phantom
		Size int `yaml:"size"`
	} `yaml:"phantom"`

	// Output parameters
	Output struct {
		// ResultsDir is the directory reconstruction images and k-space
		// views are written into
		ResultsDir string `yaml:"resultsDir"`

		// SaveKSpaceViews determines whether magnitude/phase/real views
		// of k-space are saved alongside the reconstructions
		SaveKSpaceViews bool `yaml:"saveKSpaceViews"`

		// SaveDifferenceMaps determines whether per-method difference
		// maps against the full reconstruction are saved
		SaveDifferenceMaps bool `yaml:"saveDifferenceMaps"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	// Set default processing parameters
	cfg.Processing.NumCores = runtime.NumCPU()
	cfg.Processing.PartialFraction = 0.5
	cfg.Processing.LowpassSigmaFraction = 0.05
	cfg.Processing.HighpassSigmaFraction = 0.05

	// Set default phantom parameters
	cfg.Phantom.Size = 400

	// Set default output parameters
	cfg.Output.ResultsDir = "kspace_results"
	cfg.Output.SaveKSpaceViews = true
	cfg.Output.SaveDifferenceMaps = true
	cfg.Output.Verbose = true

	return cfg
}

// Validate checks that the processing parameters are inside their
// valid ranges before the pipeline is run
func (cfg *Config) Validate() error {
	p := cfg.Processing
	if p.PartialFraction <= 0 || p.PartialFraction > 1 {
		return fmt.Errorf("partialFraction must be in (0, 1], got %f", p.PartialFraction)
	}
	if p.LowpassSigmaFraction <= 0 || p.LowpassSigmaFraction >= 1 {
		return fmt.Errorf("lowpassSigmaFraction must be in (0, 1), got %f", p.LowpassSigmaFraction)
	}
	if p.HighpassSigmaFraction <= 0 || p.HighpassSigmaFraction >= 1 {
		return fmt.Errorf("highpassSigmaFraction must be in (0, 1), got %f", p.HighpassSigmaFraction)
	}
	if cfg.Phantom.Size < 2 {
		return fmt.Errorf("phantom size must be at least 2, got %d", cfg.Phantom.Size)
	}
	return nil
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

// CreateDefaultConfigFile creates a default configuration file at the
// specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
