package estimator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCheckMatrix(t *testing.T) {
	testCases := []struct {
		name     string
		X        mat.Matrix
		rows     int
		cols     int
		checkErr error
	}{
		{name: "dense", X: mat.NewDense(2, 3, nil), rows: 2, cols: 3},
		{name: "nil", X: nil, checkErr: ErrEmptyInput},
		{name: "empty_dense", X: &mat.Dense{}, checkErr: ErrEmptyInput},
		{name: "typed_nil_dense", X: (*mat.Dense)(nil), checkErr: ErrEmptyInput},
		{name: "typed_nil_vec", X: (*mat.VecDense)(nil), checkErr: ErrEmptyInput},
		{name: "nan", X: mat.NewDense(1, 2, []float64{1, math.NaN()}), checkErr: ErrInvalidParam},
		{name: "inf", X: mat.NewDense(1, 1, []float64{math.Inf(-1)}), checkErr: ErrInvalidParam},
		{name: "transposed", X: mat.NewDense(2, 3, nil).T(), rows: 3, cols: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, cols, err := CheckMatrix(tc.X)
			if tc.checkErr != nil {
				assert.ErrorIs(t, err, tc.checkErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.rows, rows)
			assert.Equal(t, tc.cols, cols)
		})
	}
}

func TestCheckFeatures(t *testing.T) {
	rows, err := CheckFeatures(mat.NewDense(4, 2, nil), 2)
	require.NoError(t, err)
	assert.Equal(t, 4, rows)

	_, err = CheckFeatures(mat.NewDense(4, 3, nil), 2)
	assert.ErrorIs(t, err, ErrFeatureMismatch)

	_, err = CheckFeatures(&mat.Dense{}, 2)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestCheckLabels(t *testing.T) {
	X := mat.NewDense(3, 1, nil)

	assert.NoError(t, CheckLabels(X, []int{Inlier, Outlier, Inlier}))
	assert.ErrorIs(t, CheckLabels(X, []int{Inlier}), ErrLengthMismatch)
	assert.ErrorIs(t, CheckLabels(X, []int{Inlier, 0, Outlier}), ErrInvalidParam)
}

func TestRows(t *testing.T) {
	X := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	rows := Rows(X)
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, rows)

	rows[0][0] = 10
	assert.Equal(t, 1.0, X.At(0, 0))
}
