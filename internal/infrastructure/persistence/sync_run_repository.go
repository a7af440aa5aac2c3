package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/zaylo/backend/internal/domain/syncrun"
	"github.com/zaylo/backend/internal/infrastructure/persistence/models"
)

// defaultRunListLimit bounds history listings when the caller passes no limit.
const defaultRunListLimit = 20

// GormSyncRunRepository implements syncrun.Repository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Save stores a completed run report.
func (r *GormSyncRunRepository) Save(ctx context.Context, report *syncrun.Report) error {
	var model models.SyncRunModel
	if err := model.FromDomain(report); err != nil {
		return fmt.Errorf("failed to serialize sync report: %w", err)
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save sync report: %w", err)
	}
	return nil
}

// List returns the most recent reports, newest first.
func (r *GormSyncRunRepository) List(ctx context.Context, limit int) ([]*syncrun.Report, error) {
	if limit <= 0 {
		limit = defaultRunListLimit
	}

	var rows []models.SyncRunModel
	if err := r.db.WithContext(ctx).
		Order("ran_at DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list sync reports: %w", err)
	}

	reports := make([]*syncrun.Report, 0, len(rows))
	for i := range rows {
		report, err := rows[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("failed to deserialize sync report %s: %w", rows[i].ID, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Ensure GormSyncRunRepository implements syncrun.Repository
var _ syncrun.Repository = (*GormSyncRunRepository)(nil)
