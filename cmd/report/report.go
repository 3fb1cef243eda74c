// Package report implements the report command.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/eyemap/cmd/screen"
	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/export"
	"github.com/joshsymonds/eyemap/internal/report"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

const defaultOutput = "reports/screening"

var (
	configFile  string
	formats     string
	outputPath  string
	exportDest  string
	s3Endpoint  string
	s3Region    string
	noDelay     bool
	s3PathStyle bool
)

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate screening reports",
		Long: `Run a screening and write one report per requested format.

Reports are written as <output>.<ext> for each format. When an export destination is
given, the written files are then copied to a local directory or uploaded to S3.
Flags override the report section of the screening file.`,
		Example: `  # Formats and output from the screening file
  eyemap report --config screenings/sarah.yaml

  # HTML and JSON into a custom location
  eyemap report --config screenings/sarah.yaml --format html,json --output out/sarah

  # Upload to S3 using the standard AWS environment
  eyemap report --config screenings/sarah.yaml --export s3://clinic-reports/2024`,
		RunE: runReport,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Screening file (required)")
	cmd.Flags().StringVarP(&formats, "format", "f", "", "Comma-separated formats ("+strings.Join(report.ListFormats(), ", ")+")")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path without extension (default \""+defaultOutput+"\")")
	cmd.Flags().StringVar(&exportDest, "export", "", "Export destination: directory or s3://bucket/prefix")
	cmd.Flags().StringVar(&s3Endpoint, "s3-endpoint", "", "Custom S3 endpoint (e.g. LocalStack)")
	cmd.Flags().StringVar(&s3Region, "s3-region", "", "AWS region for the S3 export")
	cmd.Flags().BoolVar(&s3PathStyle, "s3-path-style", false, "Use path-style S3 addressing")
	cmd.Flags().BoolVar(&noDelay, "no-delay", false, "Skip the configured analysis delay")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	log := logger.GetGlobalLogger()

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("loading screening file: %w", err)
	}

	names := resolveFormats(cfg)
	selected := make([]report.Format, 0, len(names))
	for _, name := range names {
		f, err := report.GetFormat(name, log)
		if err != nil {
			return err
		}
		selected = append(selected, f)
	}

	result, err := screen.Analyze(cmd.Context(), cfg, log, noDelay)
	if err != nil {
		return err
	}

	base := resolveOutput(cfg)
	written := make([]string, 0, len(selected))
	for _, f := range selected {
		path := base + f.Extension()
		if err := f.Generate(result, path); err != nil {
			return fmt.Errorf("generating %s report: %w", f.Name(), err)
		}
		written = append(written, path)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}

	dest := exportDest
	if dest == "" {
		dest = cfg.Report.Export
	}
	if dest == "" {
		return nil
	}

	exp, err := export.New(cmd.Context(), dest, log, s3Options()...)
	if err != nil {
		return fmt.Errorf("creating exporter: %w", err)
	}

	locations, err := export.ExportFiles(cmd.Context(), exp, written)
	if err != nil {
		return fmt.Errorf("exporting to %s: %w", exp.Location(), err)
	}
	for _, loc := range locations {
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", loc)
	}

	return nil
}

func resolveFormats(cfg *config.Config) []string {
	var names []string
	if formats != "" {
		for _, name := range strings.Split(formats, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
	} else {
		names = cfg.Report.Formats
	}

	if len(names) == 0 {
		return []string{"html"}
	}
	return names
}

func resolveOutput(cfg *config.Config) string {
	out := outputPath
	if out == "" {
		out = cfg.Report.Output
	}
	if out == "" {
		out = defaultOutput
	}
	return trimFormatExtension(out)
}

// trimFormatExtension drops a trailing report extension such as ".html"; other dotted
// suffixes are part of the base name.
func trimFormatExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return path
	}

	for _, name := range report.ListFormats() {
		f, err := report.GetFormat(name, logger.GetGlobalLogger())
		if err != nil {
			continue
		}
		if strings.EqualFold(f.Extension(), ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}

func s3Options() []export.S3Option {
	var opts []export.S3Option
	if s3Region != "" {
		opts = append(opts, export.WithRegion(s3Region))
	}
	if s3Endpoint != "" {
		opts = append(opts, export.WithEndpoint(s3Endpoint))
	}
	if s3PathStyle {
		opts = append(opts, export.WithPathStyle(true))
	}
	return opts
}
