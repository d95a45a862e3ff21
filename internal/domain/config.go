package domain

import (
	"fmt"
	"time"
)

// Format selects a diff renderer.
type Format string

const (
	FormatTSV       Format = "tsv"
	FormatUnified   Format = "unified"
	FormatJSON      Format = "json"
	FormatShortstat Format = "shortstat"
	FormatPretty    Format = "pretty"
)

// ValidFormats enumerates all renderers.
var ValidFormats = []Format{FormatTSV, FormatUnified, FormatJSON, FormatShortstat, FormatPretty}

// FallbackPolicy decides what happens when neither capture has markers.
type FallbackPolicy string

const (
	FallbackPositional FallbackPolicy = "positional"
	FallbackRefuse     FallbackPolicy = "refuse"
)

// ValidFallbacks enumerates all fallback policies.
var ValidFallbacks = []FallbackPolicy{FallbackPositional, FallbackRefuse}

// ValidLogLevels enumerates the accepted log level names.
var ValidLogLevels = []string{"CRITICAL", "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG"}

const DefaultTimeout = 30 * time.Second

// Config holds settings loaded from .rdc.yaml.
type Config struct {
	Diff    DiffConfig    `yaml:"diff"    json:"diff"`
	Log     LogConfig     `yaml:"log"     json:"log"`
	History HistoryConfig `yaml:"history" json:"history"`
}

// DiffConfig holds defaults for `rdc diff`.
// Pointer types distinguish "not specified" from zero values.
type DiffConfig struct {
	Format        Format         `yaml:"format"         json:"format,omitempty"`
	Header        *bool          `yaml:"header"         json:"header,omitempty"`
	Fallback      FallbackPolicy `yaml:"fallback"       json:"fallback,omitempty"`
	MinConfidence *float64       `yaml:"min_confidence" json:"min_confidence,omitempty"`
	Timeout       time.Duration  `yaml:"timeout"        json:"timeout,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level,omitempty"`
	File  string `yaml:"file"  json:"file,omitempty"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Dir     string `yaml:"dir"     json:"dir,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	header := true
	minConfidence := 0.0
	return Config{
		Diff: DiffConfig{
			Format:        FormatTSV,
			Header:        &header,
			Fallback:      FallbackPositional,
			MinConfidence: &minConfidence,
			Timeout:       DefaultTimeout,
		},
		Log: LogConfig{Level: "WARNING"},
	}
}

// HeaderEnabled reports whether TSV output carries a header line.
func (c DiffConfig) HeaderEnabled() bool {
	return c.Header == nil || *c.Header
}

// MinConfidenceValue returns the configured threshold or 0.
func (c DiffConfig) MinConfidenceValue() float64 {
	if c.MinConfidence == nil {
		return 0
	}
	return *c.MinConfidence
}

// Validate checks the config for invalid values and returns a descriptive error.
func (c Config) Validate() error {
	if c.Diff.Format != "" && !isValidFormat(c.Diff.Format) {
		return fmt.Errorf("unknown diff.format %q (valid: tsv, unified, json, shortstat, pretty)", c.Diff.Format)
	}

	if c.Diff.Fallback != "" && !isValidFallback(c.Diff.Fallback) {
		return fmt.Errorf("unknown diff.fallback %q (valid: positional, refuse)", c.Diff.Fallback)
	}

	if mc := c.Diff.MinConfidence; mc != nil && (*mc < 0 || *mc > 1) {
		return fmt.Errorf("diff.min_confidence must be between 0.0 and 1.0 (got %.2f)", *mc)
	}

	if c.Diff.Timeout < 0 {
		return fmt.Errorf("diff.timeout must not be negative (got %s)", c.Diff.Timeout)
	}

	if c.Log.Level != "" && !IsValidLogLevel(c.Log.Level) {
		return fmt.Errorf("unknown log.level %q", c.Log.Level)
	}

	return nil
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(s)
	if !isValidFormat(f) {
		return "", fmt.Errorf("unknown format %q (valid: tsv, unified, json, shortstat, pretty)", s)
	}
	return f, nil
}

// ParseFallback validates a fallback policy name.
func ParseFallback(s string) (FallbackPolicy, error) {
	p := FallbackPolicy(s)
	if !isValidFallback(p) {
		return "", fmt.Errorf("unknown fallback %q (valid: positional, refuse)", s)
	}
	return p, nil
}

func IsValidLogLevel(level string) bool {
	for _, l := range ValidLogLevels {
		if l == level {
			return true
		}
	}
	return false
}

func isValidFormat(f Format) bool {
	for _, v := range ValidFormats {
		if v == f {
			return true
		}
	}
	return false
}

func isValidFallback(p FallbackPolicy) bool {
	for _, v := range ValidFallbacks {
		if v == p {
			return true
		}
	}
	return false
}
