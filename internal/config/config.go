// Package config loads and saves the tradeconv.yaml project configuration.
// The config is constructed once at process start and threaded through
// component constructors; nothing reads it through package state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the default configuration file name.
const FileName = "tradeconv.yaml"

// Config represents the top-level tradeconv.yaml configuration.
type Config struct {
	RefData RefDataConfig `yaml:"refdata"`
	Dirs    DirsConfig    `yaml:"dirs"`
	Convert ConvertConfig `yaml:"convert"`
}

// RefDataConfig points at the static reference data.
type RefDataConfig struct {
	Dir string `yaml:"dir"`
}

// DirsConfig defines the import/output directory layout.
type DirsConfig struct {
	Import string `yaml:"import"`
	Output string `yaml:"output"`
}

// ConvertConfig holds conversion defaults.
type ConvertConfig struct {
	DefaultFormat string `yaml:"default_format"`
	RunLog        bool   `yaml:"run_log"`
}

// Load reads a tradeconv.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		RefData: RefDataConfig{Dir: "refdata"},
		Dirs: DirsConfig{
			Import: "import",
			Output: "output",
		},
		Convert: ConvertConfig{
			DefaultFormat: "custodian",
			RunLog:        true,
		},
	}
}
