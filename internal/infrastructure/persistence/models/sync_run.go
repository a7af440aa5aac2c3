package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/zaylo/backend/internal/domain/syncrun"
)

// SyncRunModel is the persistence model for one bulk sync run report.
// Per-category results are stored as a JSON document; the totals are
// duplicated into columns for listing without deserialization.
type SyncRunModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	RanAt         time.Time `gorm:"not null;index"`
	TotalProducts int       `gorm:"not null;default:0"`
	SuccessCount  int       `gorm:"not null;default:0"`
	FailedCount   int       `gorm:"not null;default:0"`
	Categories    string    `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time
}

// TableName returns the table name for GORM
func (SyncRunModel) TableName() string {
	return "sync_runs"
}

// FromDomain converts a report to its persistence model.
func (m *SyncRunModel) FromDomain(report *syncrun.Report) error {
	categories, err := json.Marshal(report.Categories)
	if err != nil {
		return err
	}
	m.ID = report.ID
	m.RanAt = report.Timestamp
	m.TotalProducts = report.Totals.Products
	m.SuccessCount = report.Totals.Success
	m.FailedCount = report.Totals.Failed
	m.Categories = string(categories)
	return nil
}

// ToDomain converts the persistence model back to a report.
func (m *SyncRunModel) ToDomain() (*syncrun.Report, error) {
	report := &syncrun.Report{
		ID:        m.ID,
		Timestamp: m.RanAt,
		Totals: syncrun.Totals{
			Products: m.TotalProducts,
			Success:  m.SuccessCount,
			Failed:   m.FailedCount,
		},
		Categories: make(map[string]*syncrun.CategoryResult),
	}
	if m.Categories != "" {
		if err := json.Unmarshal([]byte(m.Categories), &report.Categories); err != nil {
			return nil, err
		}
	}
	return report, nil
}
