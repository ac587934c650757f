package lof

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/conformance"
	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/metrics"
	"github.com/go-sod/sodkit/internal/neighbors"
)

func TestLOF_OutlierDetector(t *testing.T) {
	suite.Run(t, &conformance.OutlierDetectorSuite{
		NewSUT: func() (estimator.OutlierDetector, error) { return New() },
	})
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults"},
		{name: "min_k", opts: []Option{WithKNum(MinKNum)}},
		{name: "small_k", opts: []Option{WithKNum(MinKNum - 1)}, wantErr: true},
		{name: "manhattan_brute", opts: []Option{WithDistance("MANHATTAN"), WithAlg(neighbors.AlgTypeBrute)}},
		{name: "unknown_distance", opts: []Option{WithDistance("COSINE")}, wantErr: true},
		{name: "unknown_alg", opts: []Option{WithAlg("BALL_TREE")}, wantErr: true},
		{name: "zero_contamination", opts: []Option{WithContamination(0)}, wantErr: true},
		{name: "large_contamination", opts: []Option{WithContamination(0.6)}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := New(tc.opts...)
			if tc.wantErr {
				assert.ErrorIs(t, err, estimator.ErrInvalidParam)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Name, l.Name())
			assert.False(t, l.IsFitted())
		})
	}
}

func TestConfig_Options(t *testing.T) {
	l, err := New(Config{KNum: 7, MetricFuncType: "CHEBYSHEV", AlgType: neighbors.AlgTypeKDTree, Novelty: true}.Options()...)
	require.NoError(t, err)
	assert.Equal(t, 7, l.KNum())
	assert.True(t, l.Novelty())
	d, err := l.DistanceFunc()([]float64{0, 0}, []float64{1, 3})
	require.NoError(t, err)
	assert.Equal(t, 3.0, d)
}

func grid() *mat.Dense {
	X := mat.NewDense(10, 2, nil)
	for i := 0; i < 9; i++ {
		X.Set(i, 0, float64(i%3))
		X.Set(i, 1, float64(i/3))
	}
	X.Set(9, 0, 10)
	X.Set(9, 1, 10)
	return X
}

func TestLOF_FitPredict(t *testing.T) {
	l, err := New(WithKNum(3))
	require.NoError(t, err)

	y, err := l.FitPredict(grid())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 1, 1, 1, 1, -1}, y)
}

func TestLOF_NoveltyDisabled(t *testing.T) {
	l, err := New(WithKNum(3))
	require.NoError(t, err)
	_, err = l.Fit(grid())
	require.NoError(t, err)

	_, err = l.Predict(mat.NewDense(1, 2, []float64{1, 1}))
	assert.ErrorIs(t, err, estimator.ErrNoveltyDisabled)

	fitted := l.SetNovelty(true)
	assert.Same(t, l, fitted)
	y, err := l.Predict(mat.NewDense(2, 2, []float64{1, 1, -20, 20}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, -1}, y)
}

func TestLOF_NotFittedBeforeNovelty(t *testing.T) {
	l, err := New()
	require.NoError(t, err)

	_, err = l.AnomalyScore(grid())
	assert.ErrorIs(t, err, estimator.ErrNotFitted)
}

func TestLOF_SmallTrainingSet(t *testing.T) {
	l, err := New(WithNovelty(true))
	require.NoError(t, err)

	// fewer samples than the default k
	_, err = l.Fit(grid())
	require.NoError(t, err)
	scores, err := l.AnomalyScore(grid())
	require.NoError(t, err)
	assert.Len(t, scores, 10)

	_, err = l.Fit(mat.NewDense(1, 2, []float64{1, 1}))
	assert.ErrorIs(t, err, neighbors.ErrTooFewSamples)
	assert.False(t, l.IsFitted())
}

func TestLOF_BackendsAgree(t *testing.T) {
	f, err := conformance.PrepareData()
	require.NoError(t, err)

	var scores [][]float64
	for _, alg := range []neighbors.AlgType{neighbors.AlgTypeBrute, neighbors.AlgTypeKDTree} {
		l, err := New(WithAlg(alg), WithNovelty(true))
		require.NoError(t, err)
		_, err = l.Fit(f.XTrain)
		require.NoError(t, err)
		s, err := l.AnomalyScore(f.XTest)
		require.NoError(t, err)
		scores = append(scores, s)
	}
	assert.InDeltaSlice(t, scores[0], scores[1], 1e-9)
}

func TestLOF_Separates(t *testing.T) {
	f, err := conformance.PrepareData()
	require.NoError(t, err)

	l, err := New(WithNovelty(true))
	require.NoError(t, err)
	_, err = l.Fit(f.XTrain)
	require.NoError(t, err)
	scores, err := l.AnomalyScore(f.XTest)
	require.NoError(t, err)

	auc, err := metrics.ROCAUC(f.YTest, scores)
	require.NoError(t, err)
	assert.Greater(t, auc, 0.8)
}
