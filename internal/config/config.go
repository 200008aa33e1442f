package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the per-directory configuration file read from the scan root.
const FileName = ".image-downscale.json"

// Config holds the downscaler configuration
type Config struct {
	// ScanPaths restricts the scan to these directories relative to the
	// root. Empty means the whole root is scanned.
	ScanPaths            []string `json:"scan_paths,omitempty"`
	MaxWidth             int      `json:"max_width"`
	SizeThresholdKB      int      `json:"size_threshold_kb"`
	DimensionThresholdPX int      `json:"dimension_threshold_px"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		MaxWidth:             1200,
		SizeThresholdKB:      500,
		DimensionThresholdPX: 1200,
	}
}

// Load reads the configuration file from root. A missing file yields the
// defaults; keys absent from the file keep their default values. A file
// that exists but cannot be read or parsed is an error, so a typoed
// config never silently reverts to defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MaxWidth < 1 {
		return fmt.Errorf("max_width must be positive")
	}

	if c.SizeThresholdKB < 1 {
		return fmt.Errorf("size_threshold_kb must be positive")
	}

	if c.DimensionThresholdPX < 1 {
		return fmt.Errorf("dimension_threshold_px must be positive")
	}

	for _, p := range c.ScanPaths {
		if p == "" {
			return fmt.Errorf("scan_paths entries cannot be empty")
		}
		if filepath.IsAbs(p) {
			return fmt.Errorf("scan_paths entries must be relative: %s", p)
		}
	}

	return nil
}
