package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies the study's default parameter values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Processing.PartialFraction != 0.5 {
		t.Errorf("Expected partialFraction 0.5, got %f", cfg.Processing.PartialFraction)
	}
	if cfg.Processing.LowpassSigmaFraction != 0.05 {
		t.Errorf("Expected lowpassSigmaFraction 0.05, got %f", cfg.Processing.LowpassSigmaFraction)
	}
	if cfg.Processing.HighpassSigmaFraction != 0.05 {
		t.Errorf("Expected highpassSigmaFraction 0.05, got %f", cfg.Processing.HighpassSigmaFraction)
	}
	if cfg.Phantom.Size != 400 {
		t.Errorf("Expected phantom size 400, got %d", cfg.Phantom.Size)
	}
	if cfg.Output.ResultsDir == "" {
		t.Error("Expected a default results directory")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config should validate: %v", err)
	}
}

// TestLoadConfigMissingFile verifies that a missing file yields the
// defaults rather than an error
func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Processing.PartialFraction != 0.5 {
		t.Errorf("Expected default partialFraction, got %f", cfg.Processing.PartialFraction)
	}
}

// TestLoadConfigOverrides verifies YAML values override the defaults
// while unspecified fields keep them
func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `processing:
  partialFraction: 0.25
  lowpassSigmaFraction: 0.1
phantom:
  size: 128
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Processing.PartialFraction != 0.25 {
		t.Errorf("Expected partialFraction 0.25, got %f", cfg.Processing.PartialFraction)
	}
	if cfg.Processing.LowpassSigmaFraction != 0.1 {
		t.Errorf("Expected lowpassSigmaFraction 0.1, got %f", cfg.Processing.LowpassSigmaFraction)
	}
	if cfg.Phantom.Size != 128 {
		t.Errorf("Expected phantom size 128, got %d", cfg.Phantom.Size)
	}

	// Unspecified field retains its default
	if cfg.Processing.HighpassSigmaFraction != 0.05 {
		t.Errorf("Expected default highpassSigmaFraction, got %f", cfg.Processing.HighpassSigmaFraction)
	}
}

// TestSaveAndReloadConfig verifies the round trip through SaveConfig
func TestSaveAndReloadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Processing.PartialFraction = 0.75
	cfg.Output.Verbose = false

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if reloaded.Processing.PartialFraction != 0.75 {
		t.Errorf("Expected partialFraction 0.75, got %f", reloaded.Processing.PartialFraction)
	}
	if reloaded.Output.Verbose {
		t.Error("Expected verbose false after reload")
	}
}

// TestValidateRejectsOutOfRange verifies range checking of processing
// parameters
func TestValidateRejectsOutOfRange(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"PartialFractionZero", func(c *Config) { c.Processing.PartialFraction = 0 }},
		{"PartialFractionAboveOne", func(c *Config) { c.Processing.PartialFraction = 1.1 }},
		{"LowpassSigmaOne", func(c *Config) { c.Processing.LowpassSigmaFraction = 1.0 }},
		{"HighpassSigmaNegative", func(c *Config) { c.Processing.HighpassSigmaFraction = -0.1 }},
		{"PhantomTooSmall", func(c *Config) { c.Phantom.Size = 1 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected a validation error, got nil")
			}
		})
	}
}
