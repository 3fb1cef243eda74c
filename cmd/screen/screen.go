// Package screen implements the screen command.
package screen

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/report"
	"github.com/joshsymonds/eyemap/internal/screening"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

var (
	configFile string
	format     string
	noDelay    bool
)

// NewScreenCommand creates the screen command.
func NewScreenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Run a screening and print the results",
		Long: `Run one screening pass over a screening file and print the classified findings
and clinical recommendations to the terminal.

Clinician risk overrides in the file are applied before recommendations are generated.`,
		Example: `  # Print the terminal report
  eyemap screen --config screenings/sarah.yaml

  # Print machine-readable results without the simulated analysis delay
  eyemap screen --config screenings/sarah.yaml --format json --no-delay`,
		RunE: runScreen,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Screening file (required)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&noDelay, "no-delay", false, "Skip the configured analysis delay")

	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runScreen(cmd *cobra.Command, _ []string) error {
	log := logger.GetGlobalLogger()

	f, err := report.GetFormat(format, log)
	if err != nil {
		return err
	}
	if f.Name() == "html" {
		return fmt.Errorf("html output must be written to a file; use eyemap report")
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("loading screening file: %w", err)
	}

	result, err := Analyze(cmd.Context(), cfg, log, noDelay)
	if err != nil {
		return err
	}

	return f.Render(cmd.OutOrStdout(), result)
}

// Analyze runs one screening pass for cfg. It is shared by the commands that need results.
func Analyze(ctx context.Context, cfg *config.Config, log logger.Logger, skipDelay bool) (*screening.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var opts []screening.Option
	if skipDelay {
		opts = append(opts, screening.WithDelay(0))
	}

	analyzer := screening.NewAnalyzerFromConfig(cfg, log, opts...)
	result, err := analyzer.Analyze(ctx, screening.ScreeningFromConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("running screening: %w", err)
	}
	return result, nil
}
