package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/go-sod/sodkit/internal/config"
	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/logging"
	"github.com/go-sod/sodkit/internal/plotting"
	"github.com/go-sod/sodkit/internal/setup"
)

type plotParams struct {
	cfg      *config.Config
	detector detector.Type
	outDir   string
	hist     int
	stdout   io.Writer
}

// runPlot fits one detector and saves its anomaly score and ROC curve plots
// on the test split as PNG files.
func runPlot(ctx context.Context, p plotParams) error {
	logger := logging.FromContext(ctx)

	provideFn, err := setup.ProvideDetectorFor(p.detector, p.cfg)
	if err != nil {
		return err
	}
	split, err := p.cfg.Dataset.TrainTest()
	if err != nil {
		return fmt.Errorf("preparing data: %w", err)
	}
	sut, err := provideFn()
	if err != nil {
		return err
	}
	if nc, ok := sut.(estimator.NoveltyConfigurable); ok {
		nc.SetNovelty(true)
	}
	if _, err := sut.Fit(split.XTrain); err != nil {
		return err
	}

	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	base := filepath.Join(p.outDir, strings.ToLower(string(p.detector)))

	scorePath := base + "_anomaly_score.png"
	scoreOpts := []plotting.Option{plotting.WithFilename(scorePath), plotting.WithGrid(true)}
	if p.hist > 0 {
		scoreOpts = append(scoreOpts, plotting.WithHist(p.hist))
	}
	if _, err := sut.PlotAnomalyScore(split.XTest, scoreOpts...); err != nil {
		return err
	}

	rocPath := base + "_roc_curve.png"
	if _, err := sut.PlotROCCurve(split.XTest, split.YTest, plotting.WithFilename(rocPath), plotting.WithGrid(true)); err != nil {
		return err
	}

	logger.Debugf("plots of %s written to %s", p.detector, p.outDir)
	fmt.Fprintln(p.stdout, scorePath)
	fmt.Fprintln(p.stdout, rocPath)
	return nil
}

func newPlotCmd(configPath *string) *cobra.Command {
	var (
		name   string
		outDir string
		hist   int
	)

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Save anomaly score and ROC curve plots of a detector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, err := loadConfig(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return runPlot(ctx, plotParams{
				cfg:      cfg,
				detector: detector.Type(strings.ToUpper(name)),
				outDir:   outDir,
				hist:     hist,
				stdout:   cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&name, "detector", "d", string(detector.TypeLOF),
		"detector to plot: LOF, KNN, ISOLATION_FOREST, GAUSSIAN or KDE")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".",
		"directory the PNG files are written to")
	cmd.Flags().IntVar(&hist, "hist", 0,
		"draw the scores as a histogram with this many bins, 0 draws a scatter plot")

	return cmd
}
