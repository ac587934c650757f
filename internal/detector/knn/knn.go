// Package knn scores samples by their distance to the nearest training
// samples.
package knn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/geom"
	"github.com/go-sod/sodkit/internal/neighbors"
)

var (
	_ estimator.OutlierDetector = (*KNN)(nil)
	_ detector.Algorithm        = (*KNN)(nil)
)

const (
	Name = "KNN"

	DefaultKNum = 5
)

// Aggregation reduces the k neighbour distances to one score.
type Aggregation string

const (
	AggregationLargest Aggregation = "LARGEST"
	AggregationMean    Aggregation = "MEAN"
	AggregationMedian  Aggregation = "MEDIAN"
)

type Option func(*KNN)

func WithKNum(k int) Option {
	return func(d *KNN) {
		d.opts.kNum = k
	}
}

func WithAggregation(a Aggregation) Option {
	return func(d *KNN) {
		d.opts.aggregation = a
	}
}

func WithDistance(t geom.DistanceFuncType) Option {
	return func(d *KNN) {
		d.opts.distanceFuncType = t
	}
}

func WithAlg(alg neighbors.AlgType) Option {
	return func(d *KNN) {
		d.opts.algType = alg
	}
}

func WithContamination(c float64) Option {
	return func(d *KNN) {
		d.opts.contamination = c
	}
}

type Options struct {
	kNum             int
	aggregation      Aggregation
	algType          neighbors.AlgType
	distanceFuncType geom.DistanceFuncType
	contamination    float64
}

var defaultOptions = Options{
	kNum:             DefaultKNum,
	aggregation:      AggregationLargest,
	algType:          neighbors.AlgTypeAuto,
	distanceFuncType: geom.DistanceFuncTypeEuclidean,
	contamination:    detector.DefaultContamination,
}

func New(opts ...Option) (*KNN, error) {
	d := &KNN{opts: defaultOptions}
	for _, f := range opts {
		f(d)
	}
	if d.opts.kNum < 1 {
		return nil, fmt.Errorf("unable creating knn instance, %w: k must be positive, got %d", estimator.ErrInvalidParam, d.opts.kNum)
	}
	if err := detector.ValidateContamination(d.opts.contamination); err != nil {
		return nil, fmt.Errorf("unable creating knn instance, %w", err)
	}
	agg, err := aggregateFor(d.opts.aggregation)
	if err != nil {
		return nil, fmt.Errorf("unable creating knn instance, %w", err)
	}
	distFunc, err := geom.DistanceFuncFor(d.opts.distanceFuncType)
	if err != nil {
		return nil, fmt.Errorf("unable creating knn instance, %w: %v", estimator.ErrInvalidParam, err)
	}
	if _, err := neighbors.SearcherFor(d.opts.algType, 0, distFunc); err != nil {
		return nil, fmt.Errorf("unable creating knn instance, %w: %v", estimator.ErrInvalidParam, err)
	}
	d.aggregate = agg
	d.distFunc = distFunc
	d.Base = detector.NewBase(Name, d.opts.contamination, d)
	return d, nil
}

type KNN struct {
	detector.Base

	opts      Options
	aggregate func([]neighbors.Neighbor) float64
	distFunc  geom.DistanceFn
	searcher  neighbors.Searcher
	kNum      int
}

func (d *KNN) Fit(X mat.Matrix) (estimator.Estimator, error) {
	if err := d.FitBase(X); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *KNN) FitScores(X mat.Matrix) ([]float64, error) {
	rows, _ := X.Dims()
	if rows < 2 {
		return nil, fmt.Errorf("%w: at least 2 samples are required, got %d", neighbors.ErrTooFewSamples, rows)
	}
	d.kNum = d.opts.kNum
	if d.kNum > rows-1 {
		d.kNum = rows - 1
	}
	searcher, err := neighbors.SearcherFor(d.opts.algType, rows, d.distFunc)
	if err != nil {
		return nil, err
	}
	if err := searcher.Build(X); err != nil {
		return nil, err
	}
	d.searcher = searcher
	return d.scores(X, true)
}

func (d *KNN) Scores(X mat.Matrix) ([]float64, error) {
	return d.scores(X, false)
}

func (d *KNN) scores(X mat.Matrix, excludeSelf bool) ([]float64, error) {
	nn, err := neighbors.KNeighbors(d.searcher, X, d.kNum, excludeSelf)
	if err != nil {
		return nil, fmt.Errorf("unable compute KNN: %w", err)
	}
	out := make([]float64, len(nn))
	for i := range nn {
		out[i] = d.aggregate(nn[i])
	}
	return out, nil
}

func aggregateFor(a Aggregation) (func([]neighbors.Neighbor) float64, error) {
	switch a {
	case AggregationLargest, "":
		return largest, nil
	case AggregationMean:
		return mean, nil
	case AggregationMedian:
		return median, nil
	default:
		return nil, fmt.Errorf("%w: unknown aggregation %s", estimator.ErrInvalidParam, a)
	}
}

// neighbours arrive sorted by distance

func largest(nn []neighbors.Neighbor) float64 {
	return nn[len(nn)-1].Distance
}

func mean(nn []neighbors.Neighbor) float64 {
	var sum float64
	for _, n := range nn {
		sum += n.Distance
	}
	return sum / float64(len(nn))
}

func median(nn []neighbors.Neighbor) float64 {
	mid := len(nn) / 2
	if len(nn)%2 == 1 {
		return nn[mid].Distance
	}
	return (nn[mid-1].Distance + nn[mid].Distance) / 2
}
