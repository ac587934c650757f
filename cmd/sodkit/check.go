package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-sod/sodkit/internal/config"
	"github.com/go-sod/sodkit/internal/conformance"
	"github.com/go-sod/sodkit/internal/setup"
	"github.com/go-sod/sodkit/pkg/rworker"
)

var errCheckFailed = errors.New("some detectors failed the estimator checks")

type checkParams struct {
	cfg    *config.Config
	stdout io.Writer
}

// runCheck runs the estimator checks on every configured detector and
// reports them in configuration order.
func runCheck(p checkParams) error {
	providers, err := setup.ProvideDetectors(p.cfg)
	if err != nil {
		return err
	}
	fixture, err := p.cfg.Dataset.TrainTest()
	if err != nil {
		return fmt.Errorf("preparing data: %w", err)
	}

	types := p.cfg.Detector.Types
	results := make([]error, len(types))
	pool := rworker.New(p.cfg.Evaluate.Concurrency)
	for i, t := range types {
		i, t := i, t
		pool.Job(func() {
			results[i] = conformance.CheckEstimator(providers[t], fixture)
		})
	}
	pool.Wait()

	failed := false
	for i, t := range types {
		if err := results[i]; err != nil {
			failed = true
			fmt.Fprintf(p.stdout, "FAIL %s\n%v\n", t, err)
			continue
		}
		fmt.Fprintf(p.stdout, "ok   %s\n", t)
	}
	if failed {
		return errCheckFailed
	}
	return nil
}

func newCheckCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every configured detector honours the estimator contract",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := loadConfig(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return runCheck(checkParams{cfg: cfg, stdout: cmd.OutOrStdout()})
		},
	}
}
