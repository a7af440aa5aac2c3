package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/zaylo/backend/internal/domain/syncrun"
	"github.com/zaylo/backend/internal/infrastructure/persistence/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SyncRunModel{}))
	return db
}

func testReport(t *testing.T, ranAt time.Time) *syncrun.Report {
	t.Helper()
	report := syncrun.NewReport(ranAt)

	chargers := syncrun.NewCategoryResult()
	chargers.Total = 3
	chargers.RecordSuccess()
	chargers.RecordSuccess()
	chargers.RecordFailure("65W GaN Charger: backend error")
	report.AddCategory("chargers", chargers)

	earbuds := syncrun.NewCategoryResult()
	earbuds.Total = 1
	earbuds.RecordSuccess()
	report.AddCategory("earbuds", earbuds)

	return report
}

func TestGormSyncRunRepository_SaveAndList(t *testing.T) {
	repo := NewGormSyncRunRepository(newTestDB(t))
	ctx := context.Background()

	ranAt := time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	original := testReport(t, ranAt)
	require.NoError(t, repo.Save(ctx, original))

	reports, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 1)

	got := reports[0]
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, syncrun.Totals{Products: 4, Success: 3, Failed: 1}, got.Totals)

	require.Contains(t, got.Categories, "chargers")
	chargers := got.Categories["chargers"]
	assert.Equal(t, 3, chargers.Total)
	assert.Equal(t, 2, chargers.Success)
	assert.Equal(t, 1, chargers.Failed)
	require.Len(t, chargers.Errors, 1)
	assert.Contains(t, chargers.Errors[0], "65W GaN Charger")
}

func TestGormSyncRunRepository_ListNewestFirst(t *testing.T) {
	repo := NewGormSyncRunRepository(newTestDB(t))
	ctx := context.Background()

	older := testReport(t, time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC))
	newer := testReport(t, time.Date(2025, 7, 2, 3, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Save(ctx, older))
	require.NoError(t, repo.Save(ctx, newer))

	reports, err := repo.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, newer.ID, reports[0].ID)
	assert.Equal(t, older.ID, reports[1].ID)
}

func TestGormSyncRunRepository_ListLimit(t *testing.T) {
	repo := NewGormSyncRunRepository(newTestDB(t))
	ctx := context.Background()

	base := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, testReport(t, base.Add(time.Duration(i)*time.Hour))))
	}

	reports, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, reports, 2)

	// Non-positive limit falls back to the default.
	reports, err = repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, reports, 5)
}
