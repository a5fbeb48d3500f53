package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/focusfive/pkg/observability"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
	metrics observability.Metrics = observability.NoopMetrics{}
)

type commandTimerKey struct{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "focusfive",
	Short: "FocusFive - Five tasks a day",
	Long: `FocusFive is a daily focus tool built around a hard limit:
five tasks per day, no more.

	Pick the five things that matter, work through them, and let
	streaks, badges, and insights track how the habit holds up.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := observability.NewRequestContext(cmd.Context(), "")
		ctx = observability.WithOperation(ctx, cmd.CommandPath())
		timer := observability.StartTimer(cmd.CommandPath()).WithMetrics(metrics)
		cmd.SetContext(context.WithValue(ctx, commandTimerKey{}, timer))
		logger.Debug("command start",
			"command", cmd.CommandPath(),
			observability.CorrelationIDKey, observability.CorrelationIDFromContext(ctx),
		)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		ctx := cmd.Context()
		timer, ok := ctx.Value(commandTimerKey{}).(*observability.Timer)
		if !ok {
			return
		}
		duration := timer.Stop()
		logger.Debug("command end",
			"command", cmd.CommandPath(),
			observability.CorrelationIDKey, observability.CorrelationIDFromContext(ctx),
			observability.DurationKey, duration.Milliseconds(),
		)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// AddCommand adds a command to the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}

// SetLogger sets the CLI logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetMetrics sets the sink for command timing metrics.
func SetMetrics(m observability.Metrics) {
	if m != nil {
		metrics = m
	}
}
