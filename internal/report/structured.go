package report

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/joshsymonds/eyemap/internal/screening"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

// jsonFormat writes the full result as indented JSON for downstream systems.
type jsonFormat struct {
	logger logger.Logger
}

func (f *jsonFormat) Name() string      { return "json" }
func (f *jsonFormat) Extension() string { return ".json" }
func (f *jsonFormat) Description() string {
	return "Machine-readable JSON with classified findings and recommendations"
}

func (f *jsonFormat) Generate(result *screening.Result, outputPath string) error {
	return writeReport(f, result, outputPath, f.logger)
}

func (f *jsonFormat) Render(w io.Writer, result *screening.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

// yamlFormat writes the full result as YAML, matching the screening file's field names.
type yamlFormat struct {
	logger logger.Logger
}

func (f *yamlFormat) Name() string      { return "yaml" }
func (f *yamlFormat) Extension() string { return ".yaml" }
func (f *yamlFormat) Description() string {
	return "YAML document with classified findings and recommendations"
}

func (f *yamlFormat) Generate(result *screening.Result, outputPath string) error {
	return writeReport(f, result, outputPath, f.logger)
}

func (f *yamlFormat) Render(w io.Writer, result *screening.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("closing yaml encoder: %w", err)
	}
	return nil
}
