// Package lof detects outliers by their local outlier factor: how much
// sparser a sample's neighbourhood is than the neighbourhoods of its
// neighbours.
package lof

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/geom"
	"github.com/go-sod/sodkit/internal/neighbors"
)

var (
	_ estimator.OutlierDetector     = (*LOF)(nil)
	_ estimator.NoveltyConfigurable = (*LOF)(nil)
	_ detector.Algorithm            = (*LOF)(nil)
)

const (
	Name = "LOF"

	MinKNum     = 3
	DefaultKNum = 20

	// keeps the local reachability density finite on duplicated samples
	lrdEpsilon = 1e-10
)

type Option func(*LOF)

func WithKNum(k int) Option {
	return func(l *LOF) {
		l.opts.kNum = k
	}
}

func WithDistance(d geom.DistanceFuncType) Option {
	return func(l *LOF) {
		l.opts.distanceFuncType = d
	}
}

func WithAlg(alg neighbors.AlgType) Option {
	return func(l *LOF) {
		l.opts.algType = alg
	}
}

// WithNovelty allows scoring unseen data. Without it only the training set
// can be labelled, through FitPredict.
func WithNovelty(novelty bool) Option {
	return func(l *LOF) {
		l.opts.novelty = novelty
	}
}

func WithContamination(c float64) Option {
	return func(l *LOF) {
		l.opts.contamination = c
	}
}

var defaultOptions = Options{
	kNum:             DefaultKNum,
	algType:          neighbors.AlgTypeAuto,
	distanceFuncType: geom.DistanceFuncTypeEuclidean,
	contamination:    detector.DefaultContamination,
}

type Options struct {
	kNum             int
	algType          neighbors.AlgType
	distanceFuncType geom.DistanceFuncType
	novelty          bool
	contamination    float64
}

func New(opts ...Option) (*LOF, error) {
	l := &LOF{opts: defaultOptions}
	for _, f := range opts {
		f(l)
	}
	if err := l.validateKNum(); err != nil {
		return nil, fmt.Errorf("unable creating lof instance, %w", err)
	}
	if err := detector.ValidateContamination(l.opts.contamination); err != nil {
		return nil, fmt.Errorf("unable creating lof instance, %w", err)
	}
	distFunc, err := geom.DistanceFuncFor(l.opts.distanceFuncType)
	if err != nil {
		return nil, fmt.Errorf("unable creating lof instance, %w: %v", estimator.ErrInvalidParam, err)
	}
	if _, err := neighbors.SearcherFor(l.opts.algType, 0, distFunc); err != nil {
		return nil, fmt.Errorf("unable creating lof instance, %w: %v", estimator.ErrInvalidParam, err)
	}
	l.distFunc = distFunc
	l.Base = detector.NewBase(Name, l.opts.contamination, l)
	return l, nil
}

type LOF struct {
	detector.Base

	opts     Options
	distFunc geom.DistanceFn
	searcher neighbors.Searcher
	// neighbours actually used, capped by the number of training samples
	kNum int
	// distance of every training sample to its k-th neighbour
	kDistances []float64
	// local reachability density of every training sample
	lrds []float64
}

func (l *LOF) Fit(X mat.Matrix) (estimator.Estimator, error) {
	if err := l.FitBase(X); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *LOF) SetNovelty(novelty bool) estimator.Estimator {
	l.opts.novelty = novelty
	return l
}

func (l *LOF) Novelty() bool {
	return l.opts.novelty
}

func (l *LOF) KNum() int {
	return l.opts.kNum
}

func (l *LOF) DistanceFunc() geom.DistanceFn {
	return l.distFunc
}

// FitScores indexes X and returns the local outlier factor of every
// training sample, computed without the sample itself in its neighbourhood.
func (l *LOF) FitScores(X mat.Matrix) ([]float64, error) {
	rows, _ := X.Dims()
	if rows < 2 {
		return nil, fmt.Errorf("%w: at least 2 samples are required, got %d", neighbors.ErrTooFewSamples, rows)
	}
	l.kNum = l.opts.kNum
	if l.kNum > rows-1 {
		l.kNum = rows - 1
	}

	searcher, err := neighbors.SearcherFor(l.opts.algType, rows, l.distFunc)
	if err != nil {
		return nil, err
	}
	if err := searcher.Build(X); err != nil {
		return nil, err
	}
	nn, err := neighbors.KNeighbors(searcher, X, l.kNum, true)
	if err != nil {
		return nil, fmt.Errorf("unable compute KNN: %w", err)
	}

	l.searcher = searcher
	l.kDistances = make([]float64, rows)
	for i := range nn {
		l.kDistances[i] = l.kDistance(nn[i])
	}
	l.lrds = make([]float64, rows)
	for i := range nn {
		l.lrds[i] = l.lrd(nn[i])
	}
	scores := make([]float64, rows)
	for i := range nn {
		scores[i] = l.lof(nn[i], l.lrds[i])
	}
	return scores, nil
}

// Scores returns the local outlier factor of unseen samples relative to the
// training set. It requires novelty mode.
func (l *LOF) Scores(X mat.Matrix) ([]float64, error) {
	if !l.opts.novelty {
		return nil, fmt.Errorf("%w: enable novelty to score unseen data, or use FitPredict", estimator.ErrNoveltyDisabled)
	}
	nn, err := neighbors.KNeighbors(l.searcher, X, l.kNum, false)
	if err != nil {
		return nil, fmt.Errorf("unable compute KNN: %w", err)
	}
	scores := make([]float64, len(nn))
	for i := range nn {
		scores[i] = l.lof(nn[i], l.lrd(nn[i]))
	}
	return scores, nil
}

// lof is the mean density of the neighbours relative to the density of the
// sample itself.
func (l *LOF) lof(nn []neighbors.Neighbor, lrd float64) float64 {
	var lrdSum float64
	for _, n := range nn {
		lrdSum += l.lrds[n.Index]
	}
	return lrdSum / float64(len(nn)) / lrd
}

func (l *LOF) kDistance(nn []neighbors.Neighbor) float64 {
	return nn[len(nn)-1].Distance
}

func (l *LOF) reachabilityDist(n neighbors.Neighbor) float64 {
	return math.Max(l.kDistances[n.Index], n.Distance)
}

func (l *LOF) lrd(nn []neighbors.Neighbor) float64 {
	var rSum float64
	for _, n := range nn {
		rSum += l.reachabilityDist(n)
	}
	return 1 / (rSum/float64(len(nn)) + lrdEpsilon)
}

func (l *LOF) validateKNum() error {
	if l.opts.kNum < MinKNum {
		return fmt.Errorf("%w: k must be at least %d, got %d", estimator.ErrInvalidParam, MinKNum, l.opts.kNum)
	}
	return nil
}
