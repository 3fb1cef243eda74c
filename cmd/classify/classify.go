// Package classify implements the classify command.
package classify

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/eyemap/internal/classifier"
	"github.com/joshsymonds/eyemap/internal/models"
	"github.com/joshsymonds/eyemap/internal/report"
)

var (
	asJSON     bool
	showLegend bool
)

// NewClassifyCommand creates the classify command.
func NewClassifyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [category]",
		Short: "Show the display style for a risk category",
		Long: `Show the color, icon, label and weight used to display a risk category.

Categories: low, moderate, high, very-high.`,
		Example: `  # Style for a single category
  eyemap classify very-high

  # Full legend as JSON
  eyemap classify --legend --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	cmd.Flags().BoolVar(&showLegend, "legend", false, "Print every category")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	if showLegend {
		return printLegend(cmd)
	}
	if len(args) == 0 {
		return fmt.Errorf("category argument required (or use --legend)")
	}

	category, err := models.ParseRiskCategory(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", classifier.ErrInvalidCategory, err)
	}

	style, err := classifier.Classify(category)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(cmd, style)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n  color:  %s\n  icon:   %s\n  weight: %d\n",
		report.RiskBadge(style), style.Color, style.Icon, style.Weight)
	return nil
}

func printLegend(cmd *cobra.Command) error {
	legend := classifier.Legend()

	if asJSON {
		out := make(map[string]classifier.SeverityStyle, len(legend))
		for _, e := range legend {
			out[e.Category.String()] = e.Style
		}
		return writeJSON(cmd, out)
	}

	for _, e := range legend {
		fmt.Fprintf(cmd.OutOrStdout(), "%-10s %s\n", e.Category, report.RiskBadge(e.Style))
	}
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}
