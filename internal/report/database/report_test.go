package database

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/go-sod/sodkit/internal/database"
	"github.com/go-sod/sodkit/internal/logging"
	"github.com/go-sod/sodkit/internal/report/model"
)

func newTestDB(t *testing.T) (context.Context, *DB) {
	t.Helper()
	ctx := logging.WithLogger(context.Background(), zaptest.NewLogger(t).Sugar())
	sDB, err := database.NewFromEnv(ctx, &database.Config{
		FileName: filepath.Join(t.TempDir(), "reports.db"),
		Timeout:  time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sDB.Close(ctx)
	})
	return ctx, New(sDB)
}

func TestDB_StoreFind(t *testing.T) {
	ctx, db := newTestDB(t)
	now := time.Now().UTC().Truncate(time.Second)

	lof1 := model.NewReport("LOF", 0.1, now)
	lof1.AUC = 0.9
	lof2 := model.NewReport("LOF", 0.1, now.Add(time.Minute))
	knn := model.NewReport("KNN", 0.1, now.Add(-time.Minute))

	require.NoError(t, db.Store(ctx, lof2))
	require.NoError(t, db.AppendMany(ctx, []model.Report{lof1, knn}))

	all, err := db.FindAll(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, knn.ID, all[0].ID)
	assert.Equal(t, lof1.ID, all[1].ID)
	assert.Equal(t, lof2.ID, all[2].ID)
	assert.Equal(t, 0.9, all[1].AUC)
	assert.True(t, lof1.CreatedAt.Equal(all[1].CreatedAt))

	byLOF, err := db.FindByDetector(ctx, "LOF", nil)
	require.NoError(t, err)
	assert.Len(t, byLOF, 2)

	good, err := db.FindAll(ctx, func(r model.Report) bool { return r.AUC > 0.5 })
	require.NoError(t, err)
	require.Len(t, good, 1)
	assert.Equal(t, lof1.ID, good[0].ID)

	detectors, err := db.Detectors()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"LOF", "KNN"}, detectors)

	n, err := db.CountByDetector(ctx, "LOF")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDB_Delete(t *testing.T) {
	ctx, db := newTestDB(t)
	r := model.NewReport("KDE", 0.1, time.Now())
	require.NoError(t, db.Store(ctx, r))

	require.NoError(t, db.Delete(ctx, r))
	list, err := db.FindByDetector(ctx, "KDE", nil)
	require.NoError(t, err)
	assert.Empty(t, list)

	// unknown detectors are a no-op
	assert.NoError(t, db.Delete(ctx, model.NewReport("NOPE", 0.1, time.Now())))
}

func TestDB_Empty(t *testing.T) {
	ctx, db := newTestDB(t)

	all, err := db.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)

	n, err := db.CountByDetector(ctx, "LOF")
	require.NoError(t, err)
	assert.Zero(t, n)
}
