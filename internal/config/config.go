// Package config provides screening file loading and validation for eyemap.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/pkg/pathutil"
)

// Config is the contents of a screening file: who was screened, what the grader
// found, clinician overrides, and how the results should be reported.
type Config struct {
	Patient       models.Patient   `yaml:"patient"`
	Report        ReportConfig     `yaml:"report,omitempty"`
	Findings      []models.Finding `yaml:"findings"`
	RiskOverrides []RiskOverride   `yaml:"risk_overrides,omitempty"`
	Analysis      AnalysisConfig   `yaml:"analysis,omitempty"`
}

// RiskOverride replaces a pathology's graded risk level after clinician review.
type RiskOverride struct {
	Name       string              `yaml:"name"`
	Reason     string              `yaml:"reason"`
	ReviewedBy string              `yaml:"reviewed_by,omitempty"`
	RiskLevel  models.RiskCategory `yaml:"risk_level"`
}

// ReportConfig controls report rendering and export.
type ReportConfig struct {
	Output  string   `yaml:"output,omitempty"`
	Export  string   `yaml:"export,omitempty"` // local path or s3://bucket/prefix
	Formats []string `yaml:"formats,omitempty"`
}

// AnalysisConfig controls the screening pass itself.
type AnalysisConfig struct {
	Delay time.Duration `yaml:"delay,omitempty"` // simulated grading latency
}

// LoadConfig reads and parses a YAML screening file.
func LoadConfig(path string) (*Config, error) {
	validPath, err := pathutil.ValidateConfigPath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	data, err := os.ReadFile(validPath) //nolint:gosec // Path validated above
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates screening file contents.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := models.ValidateFindings(c.Findings); err != nil {
		return fmt.Errorf("findings: %w", err)
	}

	names := make(map[string]bool, len(c.Findings))
	for _, f := range c.Findings {
		names[f.Name] = true
	}

	seen := make(map[string]bool, len(c.RiskOverrides))
	for i, o := range c.RiskOverrides {
		if strings.TrimSpace(o.Name) == "" {
			return fmt.Errorf("risk_overrides[%d].name is required", i)
		}
		if !o.RiskLevel.IsValid() {
			return fmt.Errorf("risk_overrides[%d]: invalid risk level for %s", i, o.Name)
		}
		if o.Reason == "" {
			return fmt.Errorf("risk_overrides[%d].reason is required", i)
		}
		if !names[o.Name] {
			return fmt.Errorf("risk_overrides[%d]: no finding named %q", i, o.Name)
		}
		if seen[o.Name] {
			return fmt.Errorf("risk_overrides[%d]: duplicate override for %q", i, o.Name)
		}
		seen[o.Name] = true
	}

	if c.Analysis.Delay < 0 {
		return errors.New("analysis.delay must not be negative")
	}

	for _, f := range c.Report.Formats {
		if strings.TrimSpace(f) == "" {
			return errors.New("report.formats must not contain empty entries")
		}
	}

	return nil
}
