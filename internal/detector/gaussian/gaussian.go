// Package gaussian fits a multivariate normal distribution and scores
// samples by their squared Mahalanobis distance to it.
package gaussian

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/estimator"
)

var (
	_ estimator.OutlierDetector = (*Gaussian)(nil)
	_ estimator.Model           = (*Gaussian)(nil)
	_ detector.Algorithm        = (*Gaussian)(nil)
)

const (
	Name = "GAUSSIAN"

	DefaultRegularization = 1e-6
)

type Config struct {
	Regularization float64 `envconfig:"GAUSSIAN_REG" default:"1e-6" toml:"regularization"`
}

func (c Config) Options() []Option {
	return []Option{WithRegularization(c.Regularization)}
}

type Option func(*Gaussian)

// WithRegularization adds reg to the covariance diagonal.
func WithRegularization(reg float64) Option {
	return func(g *Gaussian) {
		g.reg = reg
	}
}

func WithContamination(c float64) Option {
	return func(g *Gaussian) {
		g.contamination = c
	}
}

func New(opts ...Option) (*Gaussian, error) {
	g := &Gaussian{
		reg:           DefaultRegularization,
		contamination: detector.DefaultContamination,
	}
	for _, f := range opts {
		f(g)
	}
	if g.reg < 0 {
		return nil, fmt.Errorf("unable creating gaussian, %w: regularization must be non negative, got %v", estimator.ErrInvalidParam, g.reg)
	}
	if err := detector.ValidateContamination(g.contamination); err != nil {
		return nil, fmt.Errorf("unable creating gaussian, %w", err)
	}
	g.Base = detector.NewBase(Name, g.contamination, g)
	return g, nil
}

type Gaussian struct {
	detector.Base

	reg           float64
	contamination float64

	mean *mat.VecDense
	chol mat.Cholesky
}

func (g *Gaussian) Fit(X mat.Matrix) (estimator.Estimator, error) {
	if err := g.FitBase(X); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Gaussian) FitScores(X mat.Matrix) ([]float64, error) {
	rows, cols := X.Dims()
	if rows < 2 {
		return nil, fmt.Errorf("%w: at least 2 samples are required, got %d", estimator.ErrInvalidParam, rows)
	}

	mean := mat.NewVecDense(cols, nil)
	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mean.SetVec(j, stat.Mean(mat.Col(col, j, X), nil))
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, X, nil)
	for j := 0; j < cols; j++ {
		cov.SetSym(j, j, cov.At(j, j)+g.reg)
	}
	if ok := g.chol.Factorize(&cov); !ok {
		return nil, fmt.Errorf("%w: covariance matrix is not positive definite", estimator.ErrInvalidParam)
	}

	g.mean = mean
	return g.Scores(X)
}

// Scores returns squared Mahalanobis distances to the fitted mean.
func (g *Gaussian) Scores(X mat.Matrix) ([]float64, error) {
	rows, cols := X.Dims()
	out := make([]float64, rows)
	vec := mat.NewVecDense(cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			vec.SetVec(j, X.At(i, j))
		}
		d := stat.Mahalanobis(vec, g.mean, &g.chol)
		out[i] = d * d
	}
	return out, nil
}

// Score is the mean log-likelihood of X under the fitted distribution.
func (g *Gaussian) Score(X mat.Matrix) (float64, error) {
	if !g.IsFitted() {
		return 0, estimator.NewNotFittedError(g.Name(), "Score")
	}
	rows, err := estimator.CheckFeatures(X, g.mean.Len())
	if err != nil {
		return 0, fmt.Errorf("%s Score: %w", g.Name(), err)
	}
	maha, err := g.Scores(X)
	if err != nil {
		return 0, err
	}
	d := float64(g.mean.Len())
	norm := d*math.Log(2*math.Pi) + g.chol.LogDet()
	var sum float64
	for _, m := range maha {
		sum += -0.5 * (norm + m)
	}
	return sum / float64(rows), nil
}
