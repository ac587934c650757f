// Package estimator defines the fit/predict/score contract shared by every
// outlier detector, together with the errors and input checks that go with it.
//
// Labels follow a single convention: 1 marks an inlier and -1 an outlier.
package estimator

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"

	"github.com/go-sod/sodkit/internal/plotting"
)

const (
	// Inlier is the label assigned to normal samples.
	Inlier = 1
	// Outlier is the label assigned to abnormal samples.
	Outlier = -1
)

// Estimator is anything that learns from a feature matrix.
type Estimator interface {
	// Fit learns from X and returns the receiver, so calls can be chained.
	Fit(X mat.Matrix) (Estimator, error)
	// Name returns a short identifier of the algorithm.
	Name() string
}

// Scorer quantifies how well a fitted model explains X as a single number.
type Scorer interface {
	Score(X mat.Matrix) (float64, error)
}

// Model is a fitted-quality scoring estimator.
type Model interface {
	Estimator
	Scorer
}

// OutlierDetector is the full detector surface.
type OutlierDetector interface {
	Estimator

	// FitPredict fits on X and labels the training samples.
	FitPredict(X mat.Matrix) ([]int, error)
	// Predict labels every row of X as Inlier or Outlier.
	Predict(X mat.Matrix) ([]int, error)
	// DecisionFunction is the shifted opposite of the anomaly score;
	// negative values are outliers.
	DecisionFunction(X mat.Matrix) ([]float64, error)
	// ScoreSamples is the opposite of the anomaly score.
	ScoreSamples(X mat.Matrix) ([]float64, error)
	// AnomalyScore grows with abnormality.
	AnomalyScore(X mat.Matrix) ([]float64, error)
	// PlotAnomalyScore draws the anomaly score of every row of X.
	PlotAnomalyScore(X mat.Matrix, opts ...plotting.Option) (*plot.Plot, error)
	// PlotROCCurve draws the ROC curve of the anomaly score against y.
	PlotROCCurve(X mat.Matrix, y []int, opts ...plotting.Option) (*plot.Plot, error)
}

// NoveltyConfigurable is implemented by detectors that distinguish outlier
// detection on the training set from novelty detection on unseen data.
type NoveltyConfigurable interface {
	Estimator
	// SetNovelty switches novelty mode and returns the receiver.
	SetNovelty(novelty bool) Estimator
	Novelty() bool
}
