// Package dashboard implements the dashboard command.
package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joshsymonds/eyemap/internal/config"
	"github.com/joshsymonds/eyemap/internal/screening"
	"github.com/joshsymonds/eyemap/internal/ui"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

var configFile string

// NewDashboardCommand creates the dashboard command.
func NewDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive screening dashboard",
		Long: `Open a terminal dashboard that analyzes a screening file and shows the risk
matrix, legend and clinical recommendations.

Keys: ↑/↓ or j/k select a finding, enter shows details, r re-runs, q quits.`,
		Example: `  eyemap dashboard --config screenings/sarah.yaml`,
		RunE:    runDashboard,
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Screening file (required)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("loading screening file: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// The dashboard owns the terminal, so analyzer logs are discarded while it runs.
	analyzer := screening.NewAnalyzerFromConfig(cfg, logger.NewLoggerWithWriter(io.Discard, false, "text"))
	final, err := ui.Run(ctx, analyzer, screening.ScreeningFromConfig(cfg))
	if err != nil {
		return err
	}

	if final.Phase() == ui.PhaseFailed {
		logger.Error("Dashboard screening failed", "error", final.Err())
		return fmt.Errorf("screening failed: %w", final.Err())
	}
	return nil
}
