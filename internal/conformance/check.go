package conformance

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/estimator"
)

// Check is a single property of a detector.
type Check struct {
	Name string
	Run  func(newSUT func() (estimator.OutlierDetector, error), f Fixture) error
}

// Checks lists every property CheckEstimator verifies, in order.
var Checks = []Check{
	{Name: "not fitted", Run: checkNotFitted},
	{Name: "empty input", Run: checkEmptyInput},
	{Name: "fit returns receiver", Run: checkFitReturnsReceiver},
	{Name: "fit keeps input", Run: checkFitKeepsInput},
	{Name: "binary labels", Run: checkBinaryLabels},
	{Name: "decision agrees with labels", Run: checkDecisionAgrees},
	{Name: "score samples negate anomaly score", Run: checkScoreSamples},
	{Name: "feature mismatch", Run: checkFeatureMismatch},
	{Name: "deterministic", Run: checkDeterministic},
}

// CheckEstimator runs every check on fresh detectors from newSUT and joins
// the failures. A panicking check counts as a failure.
func CheckEstimator(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	var errs []error
	for _, c := range Checks {
		if err := run(c, newSUT, f); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", c.Name, err))
		}
	}
	return errors.Join(errs...)
}

func run(c Check, newSUT func() (estimator.OutlierDetector, error), f Fixture) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return c.Run(newSUT, f)
}

// fitted returns a detector in novelty mode, when supported, fitted on X.
func fitted(newSUT func() (estimator.OutlierDetector, error), X mat.Matrix) (estimator.OutlierDetector, error) {
	sut, err := newSUT()
	if err != nil {
		return nil, err
	}
	if nc, ok := sut.(estimator.NoveltyConfigurable); ok {
		nc.SetNovelty(true)
	}
	if _, err := sut.Fit(X); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	return sut, nil
}

func checkNotFitted(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	sut, err := newSUT()
	if err != nil {
		return err
	}
	type op struct {
		name string
		call func() error
	}
	ops := []op{
		{"Predict", func() error {
			_, err := sut.Predict(f.XTest)
			return err
		}},
		{"DecisionFunction", func() error {
			_, err := sut.DecisionFunction(f.XTest)
			return err
		}},
		{"ScoreSamples", func() error {
			_, err := sut.ScoreSamples(f.XTest)
			return err
		}},
		{"AnomalyScore", func() error {
			_, err := sut.AnomalyScore(f.XTest)
			return err
		}},
		{"PlotAnomalyScore", func() error {
			_, err := sut.PlotAnomalyScore(f.XTest)
			return err
		}},
		{"PlotROCCurve", func() error {
			_, err := sut.PlotROCCurve(f.XTest, f.YTest)
			return err
		}},
	}
	if m, ok := sut.(estimator.Scorer); ok {
		ops = append(ops, op{"Score", func() error {
			_, err := m.Score(f.XTest)
			return err
		}})
	}

	var errs []error
	for _, o := range ops {
		if err := o.call(); !errors.Is(err, estimator.ErrNotFitted) {
			errs = append(errs, fmt.Errorf("%s returned %v, expected %v", o.name, err, estimator.ErrNotFitted))
		}
	}
	return errors.Join(errs...)
}

func checkEmptyInput(newSUT func() (estimator.OutlierDetector, error), _ Fixture) error {
	sut, err := newSUT()
	if err != nil {
		return err
	}
	if _, err := sut.Fit(&mat.Dense{}); !errors.Is(err, estimator.ErrEmptyInput) {
		return fmt.Errorf("fit on empty matrix returned %v, expected %v", err, estimator.ErrEmptyInput)
	}
	return nil
}

func checkFitReturnsReceiver(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	sut, err := newSUT()
	if err != nil {
		return err
	}
	got, err := sut.Fit(f.XTrain)
	if err != nil {
		return fmt.Errorf("fit: %w", err)
	}
	if got != estimator.Estimator(sut) {
		return fmt.Errorf("fit returned %T %p instead of the receiver", got, got)
	}
	return nil
}

func checkFitKeepsInput(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	X := mat.DenseCopyOf(f.XTrain)
	if _, err := fitted(newSUT, X); err != nil {
		return err
	}
	if !mat.Equal(X, f.XTrain) {
		return errors.New("fit modified the training matrix")
	}
	return nil
}

func checkBinaryLabels(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	sut, err := fitted(newSUT, f.XTrain)
	if err != nil {
		return err
	}
	y, err := sut.Predict(f.XTest)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	for i, label := range y {
		if label != estimator.Inlier && label != estimator.Outlier {
			return fmt.Errorf("label %d at %d", label, i)
		}
	}
	return nil
}

func checkDecisionAgrees(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	sut, err := fitted(newSUT, f.XTrain)
	if err != nil {
		return err
	}
	y, err := sut.Predict(f.XTest)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	d, err := sut.DecisionFunction(f.XTest)
	if err != nil {
		return fmt.Errorf("decision function: %w", err)
	}
	if len(y) != len(d) {
		return fmt.Errorf("%d labels for %d decision values", len(y), len(d))
	}
	for i := range y {
		if (d[i] >= 0) != (y[i] == estimator.Inlier) {
			return fmt.Errorf("sample %d: decision %v, label %d", i, d[i], y[i])
		}
	}
	return nil
}

func checkScoreSamples(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	sut, err := fitted(newSUT, f.XTrain)
	if err != nil {
		return err
	}
	scores, err := sut.ScoreSamples(f.XTest)
	if err != nil {
		return fmt.Errorf("score samples: %w", err)
	}
	anomaly, err := sut.AnomalyScore(f.XTest)
	if err != nil {
		return fmt.Errorf("anomaly score: %w", err)
	}
	if len(scores) != len(anomaly) {
		return fmt.Errorf("%d score samples for %d anomaly scores", len(scores), len(anomaly))
	}
	for i := range scores {
		if scores[i] != -anomaly[i] {
			return fmt.Errorf("sample %d: score %v, anomaly score %v", i, scores[i], anomaly[i])
		}
	}
	return nil
}

func checkFeatureMismatch(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	sut, err := fitted(newSUT, f.XTrain)
	if err != nil {
		return err
	}
	rows, cols := f.XTest.Dims()
	wide := mat.NewDense(rows, cols+1, nil)
	wide.Slice(0, rows, 0, cols).(*mat.Dense).Copy(f.XTest)
	if _, err := sut.AnomalyScore(wide); !errors.Is(err, estimator.ErrFeatureMismatch) {
		return fmt.Errorf("query with %d features returned %v, expected %v", cols+1, err, estimator.ErrFeatureMismatch)
	}
	return nil
}

func checkDeterministic(newSUT func() (estimator.OutlierDetector, error), f Fixture) error {
	var runs [2][]float64
	for i := range runs {
		sut, err := fitted(newSUT, f.XTrain)
		if err != nil {
			return err
		}
		if runs[i], err = sut.AnomalyScore(f.XTest); err != nil {
			return fmt.Errorf("anomaly score: %w", err)
		}
	}
	if len(runs[0]) != len(runs[1]) {
		return errors.New("score lengths differ between runs")
	}
	for i := range runs[0] {
		if runs[0][i] != runs[1][i] {
			return fmt.Errorf("sample %d scored %v then %v", i, runs[0][i], runs[1][i])
		}
	}
	return nil
}
