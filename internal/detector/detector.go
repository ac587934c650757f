// Package detector holds what every outlier detector shares: fitted state,
// the contamination threshold, labelling and plotting. Concrete algorithms
// live in sub-packages and only supply anomaly scores.
package detector

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"

	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/metrics"
	"github.com/go-sod/sodkit/internal/plotting"
)

const DefaultContamination = 0.1

// ProvideFn returns a fresh, unfitted detector.
type ProvideFn func() (estimator.OutlierDetector, error)

// Algorithm computes anomaly scores, larger meaning more abnormal.
type Algorithm interface {
	// FitScores learns from X and returns the anomaly score of every
	// training row.
	FitScores(X mat.Matrix) ([]float64, error)
	// Scores returns the anomaly score of every row of X. X has already been
	// validated against the training shape.
	Scores(X mat.Matrix) ([]float64, error)
}

// ValidateContamination requires c in (0, 0.5].
func ValidateContamination(c float64) error {
	if c <= 0 || c > 0.5 {
		return fmt.Errorf("%w: contamination must be in (0, 0.5], got %v", estimator.ErrInvalidParam, c)
	}
	return nil
}

func NewBase(name string, contamination float64, alg Algorithm) Base {
	return Base{name: name, contamination: contamination, alg: alg}
}

// Base implements the estimator.OutlierDetector surface, except Fit, on top
// of an Algorithm. Embedding types define Fit so that it returns themselves.
type Base struct {
	name          string
	contamination float64
	alg           Algorithm

	fitted      bool
	nFeatures   int
	threshold   float64
	trainScores []float64
}

func (b *Base) Name() string {
	return b.name
}

func (b *Base) Contamination() float64 {
	return b.contamination
}

func (b *Base) IsFitted() bool {
	return b.fitted
}

// Threshold is the anomaly score above which samples are outliers.
func (b *Base) Threshold() (float64, error) {
	if !b.fitted {
		return 0, estimator.NewNotFittedError(b.name, "Threshold")
	}
	return b.threshold, nil
}

// FitBase fits the algorithm and derives the threshold from the training
// scores. A failed fit leaves the detector unfitted.
func (b *Base) FitBase(X mat.Matrix) error {
	b.fitted = false
	if err := ValidateContamination(b.contamination); err != nil {
		return err
	}
	_, cols, err := estimator.CheckMatrix(X)
	if err != nil {
		return fmt.Errorf("%s fit: %w", b.name, err)
	}
	scores, err := b.alg.FitScores(X)
	if err != nil {
		return fmt.Errorf("%s fit: %w", b.name, err)
	}

	b.trainScores = scores
	b.threshold = threshold(scores, b.contamination)
	b.nFeatures = cols
	b.fitted = true
	return nil
}

func (b *Base) FitPredict(X mat.Matrix) ([]int, error) {
	if err := b.FitBase(X); err != nil {
		return nil, err
	}
	return b.labels(b.decision(b.trainScores)), nil
}

func (b *Base) AnomalyScore(X mat.Matrix) ([]float64, error) {
	return b.anomalyScore(X, "AnomalyScore")
}

func (b *Base) ScoreSamples(X mat.Matrix) ([]float64, error) {
	scores, err := b.anomalyScore(X, "ScoreSamples")
	if err != nil {
		return nil, err
	}
	for i := range scores {
		scores[i] = -scores[i]
	}
	return scores, nil
}

func (b *Base) DecisionFunction(X mat.Matrix) ([]float64, error) {
	scores, err := b.anomalyScore(X, "DecisionFunction")
	if err != nil {
		return nil, err
	}
	return b.decision(scores), nil
}

func (b *Base) Predict(X mat.Matrix) ([]int, error) {
	scores, err := b.anomalyScore(X, "Predict")
	if err != nil {
		return nil, err
	}
	return b.labels(b.decision(scores)), nil
}

func (b *Base) PlotAnomalyScore(X mat.Matrix, opts ...plotting.Option) (*plot.Plot, error) {
	scores, err := b.anomalyScore(X, "PlotAnomalyScore")
	if err != nil {
		return nil, err
	}
	opts = append([]plotting.Option{plotting.WithTitle(b.name + " anomaly score")}, opts...)
	return plotting.AnomalyScore(scores, b.threshold, opts...)
}

func (b *Base) PlotROCCurve(X mat.Matrix, y []int, opts ...plotting.Option) (*plot.Plot, error) {
	scores, err := b.anomalyScore(X, "PlotROCCurve")
	if err != nil {
		return nil, err
	}
	if err := estimator.CheckLabels(X, y); err != nil {
		return nil, err
	}
	fpr, tpr, _, err := metrics.ROCCurve(y, scores)
	if err != nil {
		return nil, fmt.Errorf("%s roc curve: %w", b.name, err)
	}
	opts = append([]plotting.Option{plotting.WithTitle(b.name + " ROC curve")}, opts...)
	return plotting.ROCCurve(fpr, tpr, metrics.AUC(fpr, tpr), opts...)
}

func (b *Base) anomalyScore(X mat.Matrix, op string) ([]float64, error) {
	if !b.fitted {
		return nil, estimator.NewNotFittedError(b.name, op)
	}
	if _, err := estimator.CheckFeatures(X, b.nFeatures); err != nil {
		return nil, fmt.Errorf("%s %s: %w", b.name, op, err)
	}
	scores, err := b.alg.Scores(X)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", b.name, op, err)
	}
	return scores, nil
}

func (b *Base) decision(scores []float64) []float64 {
	out := make([]float64, len(scores))
	for i, s := range scores {
		out[i] = b.threshold - s
	}
	return out
}

func (b *Base) labels(decision []float64) []int {
	out := make([]int, len(decision))
	for i, d := range decision {
		if d >= 0 {
			out[i] = estimator.Inlier
		} else {
			out[i] = estimator.Outlier
		}
	}
	return out
}

// threshold is the (1 - contamination) quantile of the training scores.
func threshold(scores []float64, contamination float64) float64 {
	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)
	return stat.Quantile(1-contamination, stat.LinInterp, sorted, nil)
}
