package datasets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/estimator"
)

func countOutliers(y []int) int {
	n := 0
	for _, label := range y {
		if label == estimator.Outlier {
			n++
		}
	}
	return n
}

func TestMakeBlobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		opts      []Option
		rows      int
		cols      int
		nOutliers int
	}{
		{name: "defaults", rows: 100, cols: 2, nOutliers: 10},
		{
			name:      "train_fixture",
			opts:      []Option{WithContamination(0.01), WithRandomState(0)},
			rows:      100,
			cols:      2,
			nOutliers: 1,
		},
		{
			name:      "no_contamination",
			opts:      []Option{WithContamination(0), WithNSamples(30), WithNFeatures(5)},
			rows:      30,
			cols:      5,
			nOutliers: 0,
		},
		{
			name:      "many_centers",
			opts:      []Option{WithCenters(mat.NewDense(3, 4, nil)), WithNSamples(60), WithContamination(0.5)},
			rows:      60,
			cols:      4,
			nOutliers: 30,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			X, y, err := MakeBlobs(test.opts...)
			require.NoError(t, err)
			rows, cols := X.Dims()
			assert.Equal(t, test.rows, rows)
			assert.Equal(t, test.cols, cols)
			assert.Len(t, y, test.rows)
			assert.Equal(t, test.nOutliers, countOutliers(y))
		})
	}
}

func TestMakeBlobs_Deterministic(t *testing.T) {
	X, y, err := MakeBlobs(WithRandomState(1))
	require.NoError(t, err)
	X1, y1, err := MakeBlobs(WithRandomState(1))
	require.NoError(t, err)
	assert.True(t, mat.Equal(X, X1))
	assert.Equal(t, y, y1)

	X2, _, err := MakeBlobs(WithRandomState(2))
	require.NoError(t, err)
	assert.False(t, mat.Equal(X, X2))
}

func TestMakeBlobs_OutliersInBox(t *testing.T) {
	X, y, err := MakeBlobs(WithCenterBox(-3, 3), WithContamination(0.5), WithShuffle(false))
	require.NoError(t, err)
	rows, cols := X.Dims()
	for i := 0; i < rows; i++ {
		if y[i] != estimator.Outlier {
			continue
		}
		for j := 0; j < cols; j++ {
			assert.GreaterOrEqual(t, X.At(i, j), -3.0)
			assert.Less(t, X.At(i, j), 3.0)
		}
	}
	assert.Equal(t, estimator.Inlier, y[0])
	assert.Equal(t, estimator.Outlier, y[rows-1])
}

func TestMakeBlobs_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{name: "samples", opts: []Option{WithNSamples(0)}},
		{name: "features", opts: []Option{WithNFeatures(0)}},
		{name: "contamination_high", opts: []Option{WithContamination(0.6)}},
		{name: "contamination_negative", opts: []Option{WithContamination(-0.1)}},
		{name: "std", opts: []Option{WithClusterStd(-1)}},
		{name: "box", opts: []Option{WithCenterBox(1, 1)}},
		{name: "centers_mismatch", opts: []Option{WithCenters(mat.NewDense(1, 3, nil)), WithNFeatures(2)}},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			_, _, err := MakeBlobs(test.opts...)
			assert.ErrorIs(t, err, ErrInvalidOption)
		})
	}
}

func TestConfig_TrainTest(t *testing.T) {
	cfg := Config{
		NSamples:           100,
		NFeatures:          2,
		TrainContamination: 0.01,
		TestContamination:  0.1,
		TrainSeed:          0,
		TestSeed:           1,
	}
	split, err := cfg.TrainTest()
	require.NoError(t, err)

	r, c := split.XTrain.Dims()
	assert.Equal(t, []int{100, 2}, []int{r, c})
	r, c = split.XTest.Dims()
	assert.Equal(t, []int{100, 2}, []int{r, c})
	assert.Equal(t, 1, countOutliers(split.YTrain))
	assert.Equal(t, 10, countOutliers(split.YTest))

	_, err = Config{NSamples: 10}.TrainTest()
	assert.ErrorIs(t, err, ErrInvalidOption)
}
