package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/estimator"
)

func TestPrepareData(t *testing.T) {
	f, err := PrepareData()
	require.NoError(t, err)

	rows, cols := f.XTrain.Dims()
	assert.Equal(t, 100, rows)
	assert.Equal(t, 2, cols)
	rows, cols = f.XTest.Dims()
	assert.Equal(t, 100, rows)
	assert.Equal(t, 2, cols)
	assert.Len(t, f.YTrain, 100)
	assert.Len(t, f.YTest, 100)

	count := func(y []int) int {
		var n int
		for _, label := range y {
			if label == estimator.Outlier {
				n++
			}
		}
		return n
	}
	assert.Equal(t, 1, count(f.YTrain))
	assert.Equal(t, 10, count(f.YTest))
}

func TestPrepareData_Deterministic(t *testing.T) {
	a, err := PrepareData()
	require.NoError(t, err)
	b, err := PrepareData()
	require.NoError(t, err)

	assert.True(t, mat.Equal(a.XTrain, b.XTrain))
	assert.True(t, mat.Equal(a.XTest, b.XTest))
	assert.Equal(t, a.YTrain, b.YTrain)
	assert.Equal(t, a.YTest, b.YTest)
	assert.False(t, mat.Equal(a.XTrain, a.XTest))
}
