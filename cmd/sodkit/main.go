package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-sod/sodkit/internal/buildinfo"
	"github.com/go-sod/sodkit/internal/config"
	"github.com/go-sod/sodkit/internal/logging"
	"github.com/go-sod/sodkit/internal/shutdown"
)

func main() {
	ctx, done := shutdown.New()
	defer done()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		done()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "sodkit",
		Short: "sodkit - outlier detectors, their conformance checks and benchmarks",
		Long: `sodkit fits outlier detectors on synthetic blob datasets, verifies
that every detector honours the shared estimator contract and keeps a
history of benchmark reports.`,
		Version:       buildinfo.Info.Tag(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"TOML file overriding defaults and environment")

	root.AddCommand(newBenchCmd(&configPath))
	root.AddCommand(newCheckCmd(&configPath))
	root.AddCommand(newPlotCmd(&configPath))
	root.AddCommand(newHistoryCmd(&configPath))
	root.AddCommand(newVersionCmd())

	return root
}

// loadConfig reads the configuration and attaches a logger matching its
// debug setting to ctx.
func loadConfig(ctx context.Context, path string) (context.Context, *config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return ctx, nil, err
	}
	return logging.WithLogger(ctx, logging.NewLogger(cfg.Debug)), cfg, nil
}
