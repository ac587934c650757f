// Package datasets generates synthetic data with known outliers.
package datasets

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/estimator"
)

var ErrInvalidOption = errors.New("datasets: invalid option")

type Option func(*options)

type options struct {
	centers       *mat.Dense
	nFeatures     int
	featuresSet   bool
	nSamples      int
	contamination float64
	clusterStd    float64
	centerBox     [2]float64
	randomState   uint64
	shuffle       bool
}

var defaultOptions = options{
	nFeatures:     2,
	nSamples:      100,
	contamination: 0.1,
	clusterStd:    1.0,
	centerBox:     [2]float64{-10, 10},
	shuffle:       true,
}

// WithCenters sets the blob centres, one per row. The number of features is
// taken from the number of columns.
func WithCenters(centers *mat.Dense) Option {
	return func(o *options) {
		o.centers = centers
	}
}

func WithNFeatures(n int) Option {
	return func(o *options) {
		o.nFeatures = n
		o.featuresSet = true
	}
}

func WithNSamples(n int) Option {
	return func(o *options) {
		o.nSamples = n
	}
}

// WithContamination sets the share of outliers, in [0, 0.5].
func WithContamination(c float64) Option {
	return func(o *options) {
		o.contamination = c
	}
}

func WithClusterStd(std float64) Option {
	return func(o *options) {
		o.clusterStd = std
	}
}

// WithCenterBox bounds the box outliers are drawn from.
func WithCenterBox(lo, hi float64) Option {
	return func(o *options) {
		o.centerBox = [2]float64{lo, hi}
	}
}

func WithRandomState(seed uint64) Option {
	return func(o *options) {
		o.randomState = seed
	}
}

func WithShuffle(shuffle bool) Option {
	return func(o *options) {
		o.shuffle = shuffle
	}
}

// MakeBlobs draws isotropic Gaussian blobs and contaminates them with
// outliers drawn uniformly from the centre box. Inliers are labelled
// estimator.Inlier and outliers estimator.Outlier. The same options always
// produce the same data.
func MakeBlobs(opts ...Option) (*mat.Dense, []int, error) {
	o := defaultOptions
	for _, f := range opts {
		f(&o)
	}
	if err := o.validate(); err != nil {
		return nil, nil, err
	}

	centers := o.centers
	if centers == nil {
		centers = mat.NewDense(1, o.nFeatures, nil)
	}
	nCenters, nFeatures := centers.Dims()

	nOutliers := int(float64(o.nSamples) * o.contamination)
	nInliers := o.nSamples - nOutliers

	rnd := rand.New(rand.NewPCG(o.randomState, o.randomState))
	X := mat.NewDense(o.nSamples, nFeatures, nil)
	y := make([]int, o.nSamples)

	for i := 0; i < nInliers; i++ {
		c := i % nCenters
		for j := 0; j < nFeatures; j++ {
			X.Set(i, j, centers.At(c, j)+rnd.NormFloat64()*o.clusterStd)
		}
		y[i] = estimator.Inlier
	}
	lo, hi := o.centerBox[0], o.centerBox[1]
	for i := nInliers; i < o.nSamples; i++ {
		for j := 0; j < nFeatures; j++ {
			X.Set(i, j, lo+rnd.Float64()*(hi-lo))
		}
		y[i] = estimator.Outlier
	}

	if o.shuffle {
		row, row1 := make([]float64, nFeatures), make([]float64, nFeatures)
		rnd.Shuffle(o.nSamples, func(i, j int) {
			mat.Row(row, i, X)
			mat.Row(row1, j, X)
			X.SetRow(i, row1)
			X.SetRow(j, row)
			y[i], y[j] = y[j], y[i]
		})
	}

	return X, y, nil
}

func (o options) validate() error {
	if o.nSamples <= 0 {
		return fmt.Errorf("%w: n_samples must be positive, got %d", ErrInvalidOption, o.nSamples)
	}
	if o.contamination < 0 || o.contamination > 0.5 {
		return fmt.Errorf("%w: contamination must be in [0, 0.5], got %v", ErrInvalidOption, o.contamination)
	}
	if o.clusterStd < 0 {
		return fmt.Errorf("%w: cluster_std must not be negative, got %v", ErrInvalidOption, o.clusterStd)
	}
	if o.centerBox[0] >= o.centerBox[1] {
		return fmt.Errorf("%w: center_box bounds %v are not increasing", ErrInvalidOption, o.centerBox)
	}
	if o.centers == nil {
		if o.nFeatures <= 0 {
			return fmt.Errorf("%w: n_features must be positive, got %d", ErrInvalidOption, o.nFeatures)
		}
		return nil
	}
	if o.centers.IsEmpty() {
		return fmt.Errorf("%w: centers must not be empty", ErrInvalidOption)
	}
	if _, c := o.centers.Dims(); o.featuresSet && c != o.nFeatures {
		return fmt.Errorf("%w: centers have %d features, n_features is %d", ErrInvalidOption, c, o.nFeatures)
	}
	return nil
}
