package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-sod/sodkit/internal/estimator"
)

func TestROCAUC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		y        []int
		scores   []float64
		expected float64
	}{
		{
			name:     "perfect",
			y:        []int{1, 1, 1, -1, -1},
			scores:   []float64{0.1, 0.2, 0.3, 0.8, 0.9},
			expected: 1,
		},
		{
			name:     "inverted",
			y:        []int{-1, -1, 1, 1},
			scores:   []float64{0.1, 0.2, 0.8, 0.9},
			expected: 0,
		},
		{
			name:     "unsorted_input",
			y:        []int{-1, 1, 1, -1},
			scores:   []float64{5, 1, 2, 4},
			expected: 1,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			auc, err := ROCAUC(test.y, test.scores)
			require.NoError(t, err)
			assert.InDelta(t, test.expected, auc, 1e-9)
		})
	}
}

func TestROCCurve_Shape(t *testing.T) {
	y := []int{1, -1, 1, -1, 1}
	scores := []float64{0.3, 0.7, 0.2, 0.1, 0.5}

	fpr, tpr, thresh, err := ROCCurve(y, scores)
	require.NoError(t, err)
	require.Equal(t, len(fpr), len(tpr))
	require.Equal(t, len(fpr), len(thresh))
	for i := 1; i < len(fpr); i++ {
		assert.GreaterOrEqual(t, fpr[i], fpr[i-1], "fpr must be non-decreasing")
	}
	auc := AUC(fpr, tpr)
	assert.GreaterOrEqual(t, auc, 0.0)
	assert.LessOrEqual(t, auc, 1.0)
}

func TestROCCurve_Errors(t *testing.T) {
	_, _, _, err := ROCCurve([]int{1, 1}, []float64{0.1, 0.2})
	assert.ErrorIs(t, err, ErrSingleClass)

	_, _, _, err = ROCCurve([]int{1, -1}, []float64{0.1})
	assert.ErrorIs(t, err, estimator.ErrLengthMismatch)
}

func TestROCCurve_DoesNotMutateScores(t *testing.T) {
	scores := []float64{0.9, 0.1, 0.5}
	_, _, _, err := ROCCurve([]int{-1, 1, 1}, scores)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.9, 0.1, 0.5}, scores)
}

func TestPrecisionRecallF1(t *testing.T) {
	yTrue := []int{1, 1, -1, -1, 1}
	yPred := []int{1, -1, -1, 1, 1}

	prec, rec, f1, err := PrecisionRecallF1(yTrue, yPred)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, prec, 1e-9)
	assert.InDelta(t, 0.5, rec, 1e-9)
	assert.InDelta(t, 0.5, f1, 1e-9)

	_, _, _, err = PrecisionRecallF1(yTrue, yPred[:2])
	assert.ErrorIs(t, err, estimator.ErrLengthMismatch)
}
