// Package metrics scores detector output against ground-truth labels.
// Outliers are the positive class throughout.
package metrics

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"

	"github.com/go-sod/sodkit/internal/estimator"
)

var ErrSingleClass = errors.New("metrics: labels must contain both inliers and outliers")

// ROCCurve returns the false and true positive rates of scores as a
// classifier of outliers, with fpr non-decreasing, and the score cutoffs
// that produce them.
func ROCCurve(y []int, scores []float64) (fpr, tpr, thresh []float64, err error) {
	if len(y) != len(scores) {
		return nil, nil, nil, fmt.Errorf("%w: %d labels, %d scores", estimator.ErrLengthMismatch, len(y), len(scores))
	}
	var nPos, nNeg int
	classes := make([]bool, len(y))
	for i, label := range y {
		classes[i] = label == estimator.Outlier
		if classes[i] {
			nPos++
		} else {
			nNeg++
		}
	}
	if nPos == 0 || nNeg == 0 {
		return nil, nil, nil, ErrSingleClass
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	stat.SortWeightedLabeled(sorted, classes, nil)

	tpr, fpr, thresh = stat.ROC(nil, sorted, classes, nil)
	return fpr, tpr, thresh, nil
}

// AUC integrates a ROC curve with the trapezoidal rule.
func AUC(fpr, tpr []float64) float64 {
	if len(fpr) < 2 {
		return 0
	}
	return integrate.Trapezoidal(fpr, tpr)
}

// ROCAUC is the area under the ROC curve of scores against y.
func ROCAUC(y []int, scores []float64) (float64, error) {
	fpr, tpr, _, err := ROCCurve(y, scores)
	if err != nil {
		return 0, err
	}
	return AUC(fpr, tpr), nil
}

// PrecisionRecallF1 compares predicted labels with true labels.
func PrecisionRecallF1(yTrue, yPred []int) (prec, rec, f1 float64, err error) {
	if len(yTrue) != len(yPred) {
		return 0, 0, 0, fmt.Errorf("%w: %d true, %d predicted", estimator.ErrLengthMismatch, len(yTrue), len(yPred))
	}
	tp, fp, fn := 0, 0, 0
	for i := range yTrue {
		pos, predPos := yTrue[i] == estimator.Outlier, yPred[i] == estimator.Outlier
		switch {
		case pos && predPos:
			tp++
		case !pos && predPos:
			fp++
		case pos && !predPos:
			fn++
		}
	}
	if tp+fp > 0 {
		prec = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		rec = float64(tp) / float64(tp+fn)
	}
	if prec+rec > 0 {
		f1 = 2 * prec * rec / (prec + rec)
	}
	return prec, rec, f1, nil
}
