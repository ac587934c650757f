package evaluate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/go-sod/sodkit/internal/conformance"
	"github.com/go-sod/sodkit/internal/detector"
	"github.com/go-sod/sodkit/internal/detector/knn"
	"github.com/go-sod/sodkit/internal/detector/lof"
	"github.com/go-sod/sodkit/internal/estimator"
	"github.com/go-sod/sodkit/internal/logging"
	"github.com/go-sod/sodkit/internal/util"
)

func providers() map[detector.Type]detector.ProvideFn {
	return map[detector.Type]detector.ProvideFn{
		detector.TypeLOF: func() (estimator.OutlierDetector, error) { return lof.New() },
		detector.TypeKNN: func() (estimator.OutlierDetector, error) { return knn.New() },
	}
}

func TestRunner_Run(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), zaptest.NewLogger(t).Sugar())
	split, err := conformance.PrepareData()
	require.NoError(t, err)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r, err := NewRunner(providers(), WithConcurrency(2), WithClock(func() time.Time { return now }))
	require.NoError(t, err)

	reports, err := r.Run(ctx, split)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, knn.Name, reports[0].Detector)
	assert.Equal(t, lof.Name, reports[1].Detector)
	for _, rep := range reports {
		assert.NotEqual(t, reports[0].ID, reports[1].ID)
		assert.Equal(t, 0.1, rep.Contamination)
		assert.Equal(t, 100, rep.NSamples)
		assert.Equal(t, 10, rep.NOutliers)
		assert.Greater(t, rep.AUC, 0.8)
		assert.Zero(t, rep.FitDuration)
		assert.Equal(t, now, rep.CreatedAt)
		assert.Equal(t, util.HashMatrix(split.XTrain, split.XTest), rep.Dataset)
	}
}

func TestRunner_Error(t *testing.T) {
	ctx := logging.WithLogger(context.Background(), zaptest.NewLogger(t).Sugar())
	split, err := conformance.PrepareData()
	require.NoError(t, err)

	errBroken := errors.New("broken")
	p := providers()
	p[detector.TypeKDE] = func() (estimator.OutlierDetector, error) { return nil, errBroken }

	r, err := NewRunner(p)
	require.NoError(t, err)
	_, err = r.Run(ctx, split)
	assert.ErrorIs(t, err, errBroken)
}

func TestNewRunner(t *testing.T) {
	_, err := NewRunner(nil)
	assert.ErrorIs(t, err, ErrNoDetectors)

	_, err = NewRunner(providers(), WithConcurrency(0))
	assert.ErrorIs(t, err, estimator.ErrInvalidParam)
}
