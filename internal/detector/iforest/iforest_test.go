package iforest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/valyala/fastrand"
	"gonum.org/v1/gonum/mat"

	"github.com/go-sod/sodkit/internal/conformance"
	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/metrics"
)

func TestIForest_OutlierDetector(t *testing.T) {
	suite.Run(t, &conformance.OutlierDetectorSuite{
		NewSUT: func() (estimator.OutlierDetector, error) { return New(WithRandomState(42)) },
	})
}

func TestNew(t *testing.T) {
	testCases := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults"},
		{name: "config", opts: Config{NEstimators: 10, MaxSamples: 64, RandomState: 7}.Options()},
		{name: "no_trees", opts: []Option{WithNEstimators(0)}, wantErr: true},
		{name: "tiny_subsample", opts: []Option{WithMaxSamples(1)}, wantErr: true},
		{name: "bad_contamination", opts: []Option{WithContamination(0.9)}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := New(tc.opts...)
			if tc.wantErr {
				assert.ErrorIs(t, err, estimator.ErrInvalidParam)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Name, f.Name())
		})
	}
}

func TestIForest_Seeded(t *testing.T) {
	f, err := conformance.PrepareData()
	require.NoError(t, err)

	score := func(seed uint64) []float64 {
		d, err := New(WithRandomState(seed), WithNEstimators(20))
		require.NoError(t, err)
		_, err = d.Fit(f.XTrain)
		require.NoError(t, err)
		s, err := d.AnomalyScore(f.XTest)
		require.NoError(t, err)
		return s
	}

	assert.Equal(t, score(1), score(1))
	assert.NotEqual(t, score(1), score(2))
}

func TestIForest_ScoreRange(t *testing.T) {
	f, err := conformance.PrepareData()
	require.NoError(t, err)

	d, err := New()
	require.NoError(t, err)
	_, err = d.Fit(f.XTrain)
	require.NoError(t, err)
	scores, err := d.AnomalyScore(f.XTest)
	require.NoError(t, err)
	for _, s := range scores {
		assert.Greater(t, s, 0.0)
		assert.Less(t, s, 1.0)
	}

	auc, err := metrics.ROCAUC(f.YTest, scores)
	require.NoError(t, err)
	assert.Greater(t, auc, 0.8)
}

func TestIForest_ConstantData(t *testing.T) {
	d, err := New()
	require.NoError(t, err)

	y, err := d.FitPredict(mat.NewDense(5, 2, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1, 1}, y)
}

func TestAveragePathLength(t *testing.T) {
	testCases := []struct {
		n    int
		want float64
	}{
		{n: 0, want: 0},
		{n: 1, want: 0},
		{n: 2, want: 1},
		{n: 256, want: 10.244770920119917},
	}

	for _, tc := range testCases {
		if got := averagePathLength(tc.n); !assert.InDelta(t, tc.want, got, 1e-9) {
			t.Errorf("averagePathLength(%d)", tc.n)
		}
	}
}

func TestSubsample(t *testing.T) {
	rows := make([][]float64, 50)
	for i := range rows {
		rows[i] = []float64{float64(i)}
	}
	var rng fastrand.RNG
	rng.Seed(seed(3))

	got := subsample(&rng, rows, 20)
	require.Len(t, got, 20)
	seen := make(map[float64]bool)
	for _, r := range got {
		assert.False(t, seen[r[0]], "row %v drawn twice", r[0])
		seen[r[0]] = true
	}
}

func TestSeed(t *testing.T) {
	assert.NotZero(t, seed(0))
	assert.NotEqual(t, seed(0), seed(1))
	assert.Equal(t, seedMix, nonZero(0))
}
