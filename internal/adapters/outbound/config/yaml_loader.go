package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rdc-cli/rdc/internal/domain"
	"gopkg.in/yaml.v3"
)

const FileName = ".rdc.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .rdc.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .rdc.yaml from dir.
// Returns DefaultConfig if the file does not exist.
func (l *YAMLLoader) Load(dir string) (domain.Config, error) {
	cfg, err := l.LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return domain.DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads an explicit config file. A missing file is an error.
func (l *YAMLLoader) LoadFile(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, err
	}

	name := filepath.Base(path)
	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", name, err)
	}

	// Validate the file as written, before defaults fill the gaps.
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return mergeConfig(domain.DefaultConfig(), cfg), nil
}

// mergeConfig overlays explicit values on top of defaults.
// Explicit (non-zero) values always win.
func mergeConfig(base, override domain.Config) domain.Config {
	result := base

	if override.Diff.Format != "" {
		result.Diff.Format = override.Diff.Format
	}
	if override.Diff.Header != nil {
		result.Diff.Header = override.Diff.Header
	}
	if override.Diff.Fallback != "" {
		result.Diff.Fallback = override.Diff.Fallback
	}
	if override.Diff.MinConfidence != nil {
		result.Diff.MinConfidence = override.Diff.MinConfidence
	}
	if override.Diff.Timeout > 0 {
		result.Diff.Timeout = override.Diff.Timeout
	}

	if override.Log.Level != "" {
		result.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		result.Log.File = override.Log.File
	}

	// History settings are always taken from the user config.
	result.History = override.History

	return result
}
