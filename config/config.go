// Package config gathers the tunable constants of every stage in one struct
// that can be loaded from YAML.
//
// Missing keys keep their defaults, so a file only needs the values it
// changes:
//
//	grid:
//	  char_width: 5
//	  policy: raw
//	flow:
//	  section_gap: 48
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/spatialtext/grid"
	"github.com/tsawler/spatialtext/layout"
	"github.com/tsawler/spatialtext/pdfalto"
	"github.com/tsawler/spatialtext/reader"
	"github.com/tsawler/spatialtext/tables"
	"gopkg.in/yaml.v3"
)

// OCRConfig holds settings for image input
type OCRConfig struct {
	// Language is a "+" separated Tesseract language list (default: eng)
	Language string `yaml:"language"`

	// MinConfidence drops words below this confidence, 0-100 (default: 0)
	MinConfidence float64 `yaml:"min_confidence"`
}

// Config holds configuration for the whole pipeline
type Config struct {
	Layout  layout.AnalyzerConfig `yaml:"layout"`
	Flow    layout.FlowConfig     `yaml:"flow"`
	Grid    grid.Config           `yaml:"grid"`
	Tables  tables.Config         `yaml:"tables"`
	Pdfalto pdfalto.Config        `yaml:"pdfalto"`
	Reader  reader.MergeConfig    `yaml:"reader"`
	OCR     OCRConfig             `yaml:"ocr"`
}

// Default returns the default configuration of every stage
func Default() Config {
	return Config{
		Layout:  layout.DefaultAnalyzerConfig(),
		Flow:    layout.DefaultFlowConfig(),
		Grid:    grid.DefaultConfig(),
		Tables:  tables.DefaultConfig(),
		Pdfalto: pdfalto.DefaultConfig(),
		Reader:  reader.DefaultMergeConfig(),
		OCR:     OCRConfig{Language: "eng"},
	}
}

// Parse decodes YAML over the defaults. Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses a YAML configuration file
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Validate rejects values that would make a stage meaningless
func (c Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	positive := []struct {
		name  string
		value float64
	}{
		{"layout.group.bucket_height", c.Layout.Group.BucketHeight},
		{"layout.classifier.column_tolerance", c.Layout.Classifier.ColumnTolerance},
		{"flow.char_width", c.Flow.CharWidth},
		{"tables.column_tolerance", c.Tables.ColumnTolerance},
	}
	for _, p := range positive {
		if !(p.value > 0) {
			return fmt.Errorf("config: %s must be positive, got %v", p.name, p.value)
		}
	}

	if c.Flow.LineGap > c.Flow.SectionGap {
		return fmt.Errorf("config: flow.line_gap (%v) exceeds flow.section_gap (%v)", c.Flow.LineGap, c.Flow.SectionGap)
	}
	if !(c.Flow.ParagraphGap > 0) {
		return fmt.Errorf("config: flow.paragraph_gap must be positive, got %v", c.Flow.ParagraphGap)
	}
	if c.Flow.MaxBreaks < 1 {
		return fmt.Errorf("config: flow.max_breaks must be at least 1, got %d", c.Flow.MaxBreaks)
	}
	if c.Flow.MinTableSpaces < 1 || c.Flow.MaxTableSpaces < c.Flow.MinTableSpaces {
		return fmt.Errorf("config: flow table spacing range [%d, %d] is invalid", c.Flow.MinTableSpaces, c.Flow.MaxTableSpaces)
	}
	if c.Pdfalto.Timeout < 0 {
		return fmt.Errorf("config: pdfalto.timeout must not be negative")
	}
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 100 {
		return fmt.Errorf("config: ocr.min_confidence must be within 0-100, got %v", c.OCR.MinConfidence)
	}
	return nil
}
