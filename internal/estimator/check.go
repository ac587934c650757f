package estimator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// CheckMatrix validates X and returns its shape.
func CheckMatrix(X mat.Matrix) (rows, cols int, err error) {
	if X == nil {
		return 0, 0, ErrEmptyInput
	}
	switch m := X.(type) {
	case *mat.Dense:
		if m == nil || m.IsEmpty() {
			return 0, 0, ErrEmptyInput
		}
	case *mat.VecDense:
		if m == nil || m.IsEmpty() {
			return 0, 0, ErrEmptyInput
		}
	}
	rows, cols = X.Dims()
	if rows == 0 || cols == 0 {
		return 0, 0, ErrEmptyInput
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := X.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("%w: non finite value at (%d, %d)", ErrInvalidParam, i, j)
			}
		}
	}
	return rows, cols, nil
}

// CheckFeatures validates X and requires nFeatures columns.
func CheckFeatures(X mat.Matrix, nFeatures int) (rows int, err error) {
	rows, cols, err := CheckMatrix(X)
	if err != nil {
		return 0, err
	}
	if cols != nFeatures {
		return 0, fmt.Errorf("%w: got %d, expected %d", ErrFeatureMismatch, cols, nFeatures)
	}
	return rows, nil
}

// CheckLabels requires one Inlier/Outlier label per row of X.
func CheckLabels(X mat.Matrix, y []int) error {
	rows, _ := X.Dims()
	if len(y) != rows {
		return fmt.Errorf("%w: got %d labels for %d samples", ErrLengthMismatch, len(y), rows)
	}
	for i, label := range y {
		if label != Inlier && label != Outlier {
			return fmt.Errorf("%w: label %d at %d, expected %d or %d", ErrInvalidParam, label, i, Inlier, Outlier)
		}
	}
	return nil
}

// Rows copies the rows of X into a slice of feature vectors.
func Rows(X mat.Matrix) [][]float64 {
	rows, cols := X.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		mat.Row(out[i], i, X)
	}
	return out
}
