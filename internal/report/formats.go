// Package report renders screening results. Each output format is registered by name and
// produced from the same screening.Result, so every format carries the same classified
// findings, recommendations and disclaimer.
package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/joshsymonds/eyemap/internal/screening"
	"github.com/joshsymonds/eyemap/pkg/logger"
	"github.com/joshsymonds/eyemap/pkg/pathutil"
)

// Format represents a report generation strategy.
type Format interface {
	// Render writes the report to w.
	Render(w io.Writer, result *screening.Result) error
	// Generate renders the report into the file at outputPath, creating parent directories.
	Generate(result *screening.Result, outputPath string) error
	// Name returns the format identifier (e.g., "html", "json").
	Name() string
	// Extension returns the file extension used for this format, including the dot.
	Extension() string
	// Description returns a human-readable description of the format.
	Description() string
}

// FormatFactory creates instances of report formats.
type FormatFactory func(log logger.Logger) (Format, error)

var (
	formatRegistry = make(map[string]FormatFactory)
	registryMutex  sync.RWMutex
)

// RegisterFormat registers a new report format factory.
func RegisterFormat(name string, factory FormatFactory) {
	registryMutex.Lock()
	defer registryMutex.Unlock()

	if factory == nil {
		panic(fmt.Sprintf("report: RegisterFormat factory is nil for format %q", name))
	}
	if _, dup := formatRegistry[name]; dup {
		panic(fmt.Sprintf("report: RegisterFormat called twice for format %q", name))
	}
	formatRegistry[name] = factory
}

// GetFormat creates an instance of the specified report format.
func GetFormat(name string, log logger.Logger) (Format, error) {
	registryMutex.RLock()
	factory, exists := formatRegistry[name]
	registryMutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unknown report format: %s", name)
	}

	return factory(log)
}

// ListFormats returns the sorted names of all registered formats.
func ListFormats() []string {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	formats := make([]string, 0, len(formatRegistry))
	for name := range formatRegistry {
		formats = append(formats, name)
	}
	sort.Strings(formats)
	return formats
}

// RenderString renders result with f and returns the output.
func RenderString(f Format, result *screening.Result) (string, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf, result); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writeReport renders into a buffer first so a failed render never leaves a partial file.
func writeReport(f Format, result *screening.Result, outputPath string, log logger.Logger) (err error) {
	validPath, err := pathutil.PrepareOutputPath(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	var buf bytes.Buffer
	if err = f.Render(&buf, result); err != nil {
		return fmt.Errorf("rendering %s report: %w", f.Name(), err)
	}

	file, err := os.Create(validPath)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output file: %w", cerr)
		}
	}()

	if _, err = buf.WriteTo(file); err != nil {
		return fmt.Errorf("writing output file: %w", err)
	}

	log.Info("Generated report", "format", f.Name(), "path", validPath)
	return nil
}

// Register built-in formats during package initialization.
func init() {
	RegisterFormat("html", func(log logger.Logger) (Format, error) {
		return NewHTMLGenerator(log), nil
	})

	RegisterFormat("json", func(log logger.Logger) (Format, error) {
		return &jsonFormat{logger: log}, nil
	})

	RegisterFormat("yaml", func(log logger.Logger) (Format, error) {
		return &yamlFormat{logger: log}, nil
	})

	RegisterFormat("text", func(log logger.Logger) (Format, error) {
		return NewTextRenderer(log), nil
	})
}
