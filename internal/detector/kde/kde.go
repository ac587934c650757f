// Package kde estimates the training density with a Gaussian kernel and
// treats low density regions as abnormal.
package kde

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/estimator"
)

var (
	_ estimator.OutlierDetector = (*KDE)(nil)
	_ estimator.Model           = (*KDE)(nil)
	_ detector.Algorithm        = (*KDE)(nil)
)

const (
	Name = "KDE"

	DefaultBandwidth = 1.0
)

type Config struct {
	Bandwidth float64 `envconfig:"KDE_BANDWIDTH" default:"1.0" toml:"bandwidth"`
}

func (c Config) Options() []Option {
	return []Option{WithBandwidth(c.Bandwidth)}
}

type Option func(*KDE)

func WithBandwidth(h float64) Option {
	return func(k *KDE) {
		k.bandwidth = h
	}
}

func WithContamination(c float64) Option {
	return func(k *KDE) {
		k.contamination = c
	}
}

func New(opts ...Option) (*KDE, error) {
	k := &KDE{
		bandwidth:     DefaultBandwidth,
		contamination: detector.DefaultContamination,
	}
	for _, f := range opts {
		f(k)
	}
	if k.bandwidth <= 0 {
		return nil, fmt.Errorf("unable creating kde, %w: bandwidth must be positive, got %v", estimator.ErrInvalidParam, k.bandwidth)
	}
	if err := detector.ValidateContamination(k.contamination); err != nil {
		return nil, fmt.Errorf("unable creating kde, %w", err)
	}
	k.Base = detector.NewBase(Name, k.contamination, k)
	return k, nil
}

type KDE struct {
	detector.Base

	bandwidth     float64
	contamination float64

	samples [][]float64
}

func (k *KDE) Fit(X mat.Matrix) (estimator.Estimator, error) {
	if err := k.FitBase(X); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *KDE) FitScores(X mat.Matrix) ([]float64, error) {
	k.samples = estimator.Rows(X)
	return k.Scores(X)
}

// Scores returns the negative log density of every row of X.
func (k *KDE) Scores(X mat.Matrix) ([]float64, error) {
	dens := k.logDensity(X)
	for i := range dens {
		dens[i] = -dens[i]
	}
	return dens, nil
}

// Score is the mean log density of X.
func (k *KDE) Score(X mat.Matrix) (float64, error) {
	if !k.IsFitted() {
		return 0, estimator.NewNotFittedError(k.Name(), "Score")
	}
	if _, err := estimator.CheckFeatures(X, len(k.samples[0])); err != nil {
		return 0, fmt.Errorf("%s Score: %w", k.Name(), err)
	}
	dens := k.logDensity(X)
	return floats.Sum(dens) / float64(len(dens)), nil
}

func (k *KDE) logDensity(X mat.Matrix) []float64 {
	rows, cols := X.Dims()
	h2 := k.bandwidth * k.bandwidth
	norm := math.Log(float64(len(k.samples))) + float64(cols)/2*math.Log(2*math.Pi*h2)

	out := make([]float64, rows)
	vec := make([]float64, cols)
	exps := make([]float64, len(k.samples))
	for i := 0; i < rows; i++ {
		mat.Row(vec, i, X)
		for s, sample := range k.samples {
			d := floats.Distance(vec, sample, 2)
			exps[s] = -d * d / (2 * h2)
		}
		out[i] = floats.LogSumExp(exps) - norm
	}
	return out
}
