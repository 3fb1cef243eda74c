// Package config implements the config command.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/models"
)

var configFile string

// NewConfigCommand creates the config command with its subcommands.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Work with screening files",
	}

	cmd.AddCommand(newValidateCommand())
	return cmd
}

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate",
		Short:   "Validate a screening file",
		Example: `  eyemap config validate --config screenings/sarah.yaml`,
		RunE:    runValidate,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Screening file to validate (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Validating screening file: %s\n\n", configFile)

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("screening file is invalid: %w", err)
	}

	printValidationResults(out, cfg)

	fmt.Fprintln(out, "\nScreening file is valid")
	return nil
}

func printValidationResults(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Patient:")
	fmt.Fprintf(out, "   Name: %s\n", cfg.Patient.Name)
	fmt.Fprintf(out, "   ID: %s\n", cfg.Patient.ID)

	summary := models.Summarize(cfg.Findings)
	fmt.Fprintf(out, "\nFindings: %d\n", summary.Total)
	for _, c := range models.RiskCategories() {
		if n := summary.ByRiskLevel[c.String()]; n > 0 {
			fmt.Fprintf(out, "   %s: %d\n", c, n)
		}
	}

	if len(cfg.RiskOverrides) > 0 {
		fmt.Fprintf(out, "\nRisk overrides: %d\n", len(cfg.RiskOverrides))
		for _, o := range cfg.RiskOverrides {
			fmt.Fprintf(out, "   - %s -> %s (%s)\n", o.Name, o.RiskLevel, o.Reason)
		}
	}

	if len(cfg.Report.Formats) > 0 || cfg.Report.Output != "" || cfg.Report.Export != "" {
		fmt.Fprintln(out, "\nReport:")
		if len(cfg.Report.Formats) > 0 {
			fmt.Fprintf(out, "   Formats: %s\n", strings.Join(cfg.Report.Formats, ", "))
		}
		if cfg.Report.Output != "" {
			fmt.Fprintf(out, "   Output: %s\n", cfg.Report.Output)
		}
		if cfg.Report.Export != "" {
			fmt.Fprintf(out, "   Export: %s\n", cfg.Report.Export)
		}
	}

	if cfg.Analysis.Delay > 0 {
		fmt.Fprintf(out, "\nAnalysis delay: %s\n", cfg.Analysis.Delay)
	}
}
