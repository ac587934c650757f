// Package iforest implements the isolation forest: outliers are the samples
// random axis-aligned splits isolate in few steps.
package iforest

import (
	"fmt"
	"math"
	"runtime"

	"github.com/valyala/fastrand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/estimator"
)

var (
	_ estimator.OutlierDetector = (*IForest)(nil)
	_ detector.Algorithm        = (*IForest)(nil)
)

const (
	Name = "ISOLATION_FOREST"

	DefaultNEstimators = 100
	DefaultMaxSamples  = 256

	// xorshift state must never be zero
	seedMix uint32 = 0x9e3779b9
)

type Option func(*IForest)

func WithNEstimators(n int) Option {
	return func(f *IForest) {
		f.opts.nEstimators = n
	}
}

// WithMaxSamples bounds the subsample every tree is grown on.
func WithMaxSamples(n int) Option {
	return func(f *IForest) {
		f.opts.maxSamples = n
	}
}

func WithRandomState(seed uint64) Option {
	return func(f *IForest) {
		f.opts.randomState = seed
	}
}

func WithContamination(c float64) Option {
	return func(f *IForest) {
		f.opts.contamination = c
	}
}

type Options struct {
	nEstimators   int
	maxSamples    int
	randomState   uint64
	contamination float64
}

var defaultOptions = Options{
	nEstimators:   DefaultNEstimators,
	maxSamples:    DefaultMaxSamples,
	contamination: detector.DefaultContamination,
}

func New(opts ...Option) (*IForest, error) {
	f := &IForest{opts: defaultOptions}
	for _, o := range opts {
		o(f)
	}
	if f.opts.nEstimators < 1 {
		return nil, fmt.Errorf("unable creating isolation forest, %w: n_estimators must be positive, got %d", estimator.ErrInvalidParam, f.opts.nEstimators)
	}
	if f.opts.maxSamples < 2 {
		return nil, fmt.Errorf("unable creating isolation forest, %w: max_samples must be at least 2, got %d", estimator.ErrInvalidParam, f.opts.maxSamples)
	}
	if err := detector.ValidateContamination(f.opts.contamination); err != nil {
		return nil, fmt.Errorf("unable creating isolation forest, %w", err)
	}
	f.Base = detector.NewBase(Name, f.opts.contamination, f)
	return f, nil
}

type IForest struct {
	detector.Base

	opts  Options
	trees []*node
	// average path length of the subsample size, normalises scores
	norm float64
}

func (f *IForest) Fit(X mat.Matrix) (estimator.Estimator, error) {
	if err := f.FitBase(X); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *IForest) FitScores(X mat.Matrix) ([]float64, error) {
	rows := estimator.Rows(X)
	psi := f.opts.maxSamples
	if psi > len(rows) {
		psi = len(rows)
	}
	limit := int(math.Ceil(math.Log2(float64(psi))))

	var master fastrand.RNG
	master.Seed(seed(f.opts.randomState))
	seeds := make([]uint32, f.opts.nEstimators)
	for i := range seeds {
		seeds[i] = nonZero(master.Uint32())
	}

	trees := make([]*node, f.opts.nEstimators)
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range trees {
		i := i
		g.Go(func() error {
			var rng fastrand.RNG
			rng.Seed(seeds[i])
			trees[i] = grow(&rng, subsample(&rng, rows, psi), 0, limit)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	f.trees = trees
	f.norm = averagePathLength(psi)
	return f.Scores(X)
}

// Scores returns 2^(-E[h(x)]/c(psi)), close to 1 for outliers and well below
// 0.5 for inliers.
func (f *IForest) Scores(X mat.Matrix) ([]float64, error) {
	rows, cols := X.Dims()
	out := make([]float64, rows)
	vec := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(vec, i, X)
		var sum float64
		for _, t := range f.trees {
			sum += t.pathLength(vec)
		}
		mean := sum / float64(len(f.trees))
		if f.norm == 0 {
			out[i] = 0.5
			continue
		}
		out[i] = math.Pow(2, -mean/f.norm)
	}
	return out, nil
}

// subsample draws n distinct rows with a partial Fisher-Yates shuffle.
func subsample(rng *fastrand.RNG, rows [][]float64, n int) [][]float64 {
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		j := i + int(rng.Uint32n(uint32(len(idx)-i)))
		idx[i], idx[j] = idx[j], idx[i]
		out[i] = rows[idx[i]]
	}
	return out
}

func seed(state uint64) uint32 {
	return nonZero(uint32(state^(state>>32)) ^ seedMix)
}

func nonZero(x uint32) uint32 {
	if x == 0 {
		return seedMix
	}
	return x
}
