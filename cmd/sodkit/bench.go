package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/go-sod/sodkit/internal/config"
	"github.com/go-sod/sodkit/internal/evaluate"
	"github.com/go-sod/sodkit/internal/logging"
	"github.com/go-sod/sodkit/internal/report/model"
	"github.com/go-sod/sodkit/internal/setup"
)

type benchParams struct {
	cfg    *config.Config
	store  bool
	stdout io.Writer
}

// runBench evaluates the configured detectors on the configured split,
// prints the reports and, when asked, stores them.
func runBench(ctx context.Context, p benchParams) error {
	logger := logging.FromContext(ctx)

	env, err := setup.Setup(ctx, p.cfg)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(ctx); err != nil {
			logger.Errorf("closing environment: %v", err)
		}
	}()

	split, err := p.cfg.Dataset.TrainTest()
	if err != nil {
		return fmt.Errorf("preparing data: %w", err)
	}
	runner, err := evaluate.NewRunner(env.Detectors(), evaluate.WithConcurrency(p.cfg.Evaluate.Concurrency))
	if err != nil {
		return err
	}
	logger.Infof("evaluating %d detectors", len(env.Types()))
	reports, err := runner.Run(ctx, split)
	if err != nil {
		return err
	}

	if err := writeReports(p.stdout, reports); err != nil {
		return err
	}
	if !p.store {
		return nil
	}
	if err := env.Reports().AppendMany(ctx, reports); err != nil {
		return fmt.Errorf("storing reports: %w", err)
	}
	logger.Infof("stored %d reports", len(reports))
	return nil
}

func writeReports(w io.Writer, reports []model.Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DETECTOR\tAUC\tPRECISION\tRECALL\tF1\tOUTLIERS\tPREDICTED\tFIT\tDATASET\tCREATED")
	for _, r := range reports {
		fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t%.3f\t%d/%d\t%d\t%s\t%.8s\t%s\n",
			r.Detector, r.AUC, r.Precision, r.Recall, r.F1,
			r.NOutliers, r.NSamples, r.Predicted,
			r.FitDuration.Round(time.Microsecond), r.Dataset, r.CreatedAt.Format(time.RFC3339),
		)
	}
	return tw.Flush()
}

func newBenchCmd(configPath *string) *cobra.Command {
	var noStore bool

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Evaluate the configured detectors and store the reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := loadConfig(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return runBench(ctx, benchParams{
				cfg:    cfg,
				store:  !noStore,
				stdout: cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().BoolVar(&noStore, "no-store", false,
		"print the reports without storing them")

	return cmd
}
