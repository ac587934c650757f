package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/go-sod/sodkit/internal/config"
	"github.com/go-sod/sodkit/internal/database"
	"github.com/go-sod/sodkit/internal/logging"
	reportdb "github.com/go-sod/sodkit/internal/report/database"
	"github.com/go-sod/sodkit/internal/report/model"
	"github.com/go-sod/sodkit/internal/setup"
)

type historyParams struct {
	cfg      *config.Config
	detector string
	summary  bool
	keep     int
	stdout   io.Writer
}

type databaseOnly struct {
	cfg *config.Config
}

func (d databaseOnly) DatabaseConfig() *database.Config {
	return d.cfg.DatabaseConfig()
}

// runHistory lists stored reports, oldest first. With keep > 0 only the
// newest keep reports of each detector survive.
func runHistory(ctx context.Context, p historyParams) error {
	logger := logging.FromContext(ctx)

	env, err := setup.Setup(ctx, databaseOnly{cfg: p.cfg})
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer func() {
		if err := env.Close(ctx); err != nil {
			logger.Errorf("closing environment: %v", err)
		}
	}()

	store := env.Reports()
	detectors, err := historyDetectors(store, p.detector)
	if err != nil {
		return err
	}

	if p.keep > 0 {
		pruned, err := pruneReports(ctx, store, detectors, p.keep)
		if err != nil {
			return err
		}
		logger.Infof("pruned %d reports, keeping the newest %d per detector", pruned, p.keep)
	}

	if p.summary {
		return writeSummary(ctx, p.stdout, store, detectors)
	}

	var reports []model.Report
	if p.detector == "" {
		reports, err = store.FindAll(ctx, nil)
	} else {
		reports, err = store.FindByDetector(ctx, p.detector, nil)
	}
	if err != nil {
		return fmt.Errorf("reading reports: %w", err)
	}
	return writeReports(p.stdout, reports)
}

func historyDetectors(store *reportdb.DB, name string) ([]string, error) {
	if name != "" {
		return []string{name}, nil
	}
	detectors, err := store.Detectors()
	if err != nil {
		return nil, fmt.Errorf("listing detectors: %w", err)
	}
	return detectors, nil
}

func pruneReports(ctx context.Context, store *reportdb.DB, detectors []string, keep int) (int, error) {
	var pruned int
	for _, name := range detectors {
		reports, err := store.FindByDetector(ctx, name, nil)
		if err != nil {
			return pruned, fmt.Errorf("reading reports: %w", err)
		}
		for i := 0; i < len(reports)-keep; i++ {
			if err := store.Delete(ctx, reports[i]); err != nil {
				return pruned, fmt.Errorf("deleting report %s: %w", reports[i].ID, err)
			}
			pruned++
		}
	}
	return pruned, nil
}

func writeSummary(ctx context.Context, w io.Writer, store *reportdb.DB, detectors []string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DETECTOR\tREPORTS")
	for _, name := range detectors {
		n, err := store.CountByDetector(ctx, name)
		if err != nil {
			return fmt.Errorf("counting reports of %s: %w", name, err)
		}
		fmt.Fprintf(tw, "%s\t%d\n", name, n)
	}
	return tw.Flush()
}

func newHistoryCmd(configPath *string) *cobra.Command {
	var (
		name    string
		summary bool
		keep    int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, count or prune stored benchmark reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep < 0 {
				return fmt.Errorf("--keep must not be negative, got %d", keep)
			}
			ctx, cfg, err := loadConfig(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			return runHistory(ctx, historyParams{
				cfg:      cfg,
				detector: strings.ToUpper(name),
				summary:  summary,
				keep:     keep,
				stdout:   cmd.OutOrStdout(),
			})
		},
	}

	cmd.Flags().StringVarP(&name, "detector", "d", "",
		"only use reports of this detector")
	cmd.Flags().BoolVar(&summary, "summary", false,
		"print the number of stored reports per detector")
	cmd.Flags().IntVar(&keep, "keep", 0,
		"delete all but the newest N reports of each detector, 0 keeps everything")

	return cmd
}
