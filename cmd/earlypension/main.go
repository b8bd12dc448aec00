package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/earlypension/internal/calculation"
	"github.com/rgehrsitz/earlypension/internal/compare"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "earlypension",
		Short: "Early vs regular pension comparison",
		Long: `Compares claiming a reduced pension early, and investing every payment, against
claiming the full pension at the regular age. Reports both asset curves by age and
the age at which regular claiming catches up.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		compareCmd(),
		explainCmd(),
		breakevenCmd(),
		validateCmd(),
		initCmd(),
		serveCmd(),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "earlypension %s (commit %s, built %s)\n", version, commit, date)
			if verbose {
				if info := buildInfo(); info != "" {
					fmt.Fprintln(cmd.OutOrStdout(), info)
				}
			}
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Include Go build information")
	return cmd
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// newEngine builds the comparison engine; debug installs a zap development logger
// that traces every simulated year. The returned func flushes the logger.
func newEngine(debugMode bool) (*compare.CompareEngine, func(), error) {
	calcEngine := calculation.NewCalculationEngine()
	if !debugMode {
		return compare.NewCompareEngine(calcEngine), func() {}, nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	calcEngine.SetLogger(logger.Sugar())
	calcEngine.Debug = true

	return compare.NewCompareEngine(calcEngine), func() { _ = logger.Sync() }, nil
}
