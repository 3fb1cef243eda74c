// Package main is the entry point for the eyemap retinal screening CLI.
// eyemap classifies graded retinal findings into display styles, generates clinical
// recommendations from them and renders the results as terminal, HTML, JSON or YAML
// reports.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshsymonds/eyemap/cmd/classify"
	configcmd "github.com/joshsymonds/eyemap/cmd/config"
	"github.com/joshsymonds/eyemap/cmd/dashboard"
	"github.com/joshsymonds/eyemap/cmd/report"
	"github.com/joshsymonds/eyemap/cmd/screen"
	"github.com/joshsymonds/eyemap/pkg/logger"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(viper.New()).ExecuteContext(ctx); err != nil {
		logger.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// newRootCommand builds the command tree. Global settings resolve from flags first, then
// EYEMAP_* environment variables.
func newRootCommand(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:   "eyemap",
		Short: "Retinal screening risk classification and recommendations",
		Long: `eyemap turns graded retinal findings into a risk matrix and clinical
recommendations.

Get started:
  eyemap config validate --config screening.yaml   Check a screening file
  eyemap screen --config screening.yaml            Print the terminal report
  eyemap report --config screening.yaml            Write HTML/JSON/YAML reports
  eyemap dashboard --config screening.yaml         Open the interactive dashboard
  eyemap classify very-high                        Show a category's display style`,
		Version:       fmt.Sprintf("%s (built %s)", version, buildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogging(v)
		},
	}

	root.PersistentFlags().Bool("debug", false, "Enable debug logging (EYEMAP_DEBUG)")
	root.PersistentFlags().String("log-format", "text", "Log format: text or json (EYEMAP_LOG_FORMAT)")

	v.SetEnvPrefix("EYEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))
	_ = v.BindPFlag("log-format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(
		classify.NewClassifyCommand(),
		screen.NewScreenCommand(),
		report.NewReportCommand(),
		configcmd.NewConfigCommand(),
		dashboard.NewDashboardCommand(),
	)

	return root
}

func setupLogging(v *viper.Viper) error {
	format := strings.ToLower(v.GetString("log-format"))
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid log format %q: must be text or json", format)
	}

	logger.SetupLogger(v.GetBool("debug"), format)
	logger.Debug("Logging configured", "format", format)
	return nil
}
