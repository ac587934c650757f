// Package evaluate fits detectors on a labelled split and measures how well
// they find the test outliers.
package evaluate

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/go-sod/sodkit/internal/datasets"
	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/logging"
	"github.com/go-sod/sodkit/internal/metrics"
	"github.com/go-sod/sodkit/internal/report/model"
	"github.com/go-sod/sodkit/internal/util"
)

var ErrNoDetectors = errors.New("evaluate: no detectors to run")

type Config struct {
	Concurrency int `envconfig:"SODKIT_EVAL_CONCURRENCY" default:"4" toml:"concurrency"`
}

type Option func(*Runner)

func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

func NewRunner(providers map[detector.Type]detector.ProvideFn, opts ...Option) (*Runner, error) {
	if len(providers) == 0 {
		return nil, ErrNoDetectors
	}
	r := &Runner{
		providers:   providers,
		concurrency: 1,
		now:         time.Now,
	}
	for _, f := range opts {
		f(r)
	}
	if r.concurrency < 1 {
		return nil, fmt.Errorf("%w: concurrency must be positive, got %d", estimator.ErrInvalidParam, r.concurrency)
	}
	return r, nil
}

// Runner evaluates every provided detector, each on its own instance.
type Runner struct {
	providers   map[detector.Type]detector.ProvideFn
	concurrency int
	now         func() time.Time
}

// Run returns one report per detector, ordered by detector type. The first
// failing detector cancels the rest.
func (r *Runner) Run(ctx context.Context, split datasets.Split) ([]model.Report, error) {
	types := make([]detector.Type, 0, len(r.providers))
	for t := range r.providers {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	dataset := util.HashMatrix(split.XTrain, split.XTest)
	reports := make([]model.Report, len(types))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, t := range types {
		i, t := i, t
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := r.evaluate(ctx, r.providers[t], split)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", t, err)
			}
			report.Dataset = dataset
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *Runner) evaluate(ctx context.Context, provide detector.ProvideFn, split datasets.Split) (model.Report, error) {
	logger := logging.FromContext(ctx)

	sut, err := provide()
	if err != nil {
		return model.Report{}, err
	}
	if nc, ok := sut.(estimator.NoveltyConfigurable); ok {
		nc.SetNovelty(true)
	}

	start := r.now()
	if _, err := sut.Fit(split.XTrain); err != nil {
		return model.Report{}, err
	}
	fitDuration := r.now().Sub(start)

	scores, err := sut.AnomalyScore(split.XTest)
	if err != nil {
		return model.Report{}, err
	}
	auc, err := metrics.ROCAUC(split.YTest, scores)
	if err != nil {
		return model.Report{}, err
	}
	y, err := sut.Predict(split.XTest)
	if err != nil {
		return model.Report{}, err
	}
	prec, rec, f1, err := metrics.PrecisionRecallF1(split.YTest, y)
	if err != nil {
		return model.Report{}, err
	}

	var contamination float64
	if c, ok := sut.(interface{ Contamination() float64 }); ok {
		contamination = c.Contamination()
	}
	report := model.NewReport(sut.Name(), contamination, r.now())
	if th, ok := sut.(interface{ Threshold() (float64, error) }); ok {
		if report.Threshold, err = th.Threshold(); err != nil {
			return model.Report{}, err
		}
	}
	report.AUC = auc
	report.Precision = prec
	report.Recall = rec
	report.F1 = f1
	report.NSamples = len(split.YTest)
	report.NOutliers = countOutliers(split.YTest)
	report.Predicted = countOutliers(y)
	report.FitDuration = fitDuration

	logger.Debugf("evaluated %s: auc=%.3f f1=%.3f fit=%s", report.Detector, auc, f1, fitDuration)
	return report, nil
}

func countOutliers(y []int) int {
	var n int
	for _, label := range y {
		if label == estimator.Outlier {
			n++
		}
	}
	return n
}
