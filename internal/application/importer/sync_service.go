package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/shared"
	"github.com/zaylo/backend/internal/domain/syncrun"
	"github.com/zaylo/backend/internal/infrastructure/config"
	"github.com/zaylo/backend/internal/infrastructure/supplier"
)

// ProductSource lists trending supplier products per category.
type ProductSource interface {
	GetWinningProducts(ctx context.Context, category string, limit int) ([]supplier.Product, error)
}

// SyncService runs the bulk catalog sync: for each configured category it
// pulls the supplier's winning products and upserts them into the store by
// SKU. Item failures are recorded and never abort the run; only context
// cancellation stops it early.
type SyncService struct {
	source  ProductSource
	writer  catalog.Writer
	runs    syncrun.Repository
	limiter RateLimiter
	logger  *zap.Logger

	categories       []string
	perCategoryLimit int
	markupPercent    float64

	now func() time.Time
}

// NewSyncService creates a sync service from the sync configuration.
func NewSyncService(source ProductSource, writer catalog.Writer, runs syncrun.Repository, limiter RateLimiter, cfg *config.SyncConfig, logger *zap.Logger) *SyncService {
	return &SyncService{
		source:           source,
		writer:           writer,
		runs:             runs,
		limiter:          limiter,
		logger:           logger.Named("sync"),
		categories:       cfg.Categories,
		perCategoryLimit: cfg.PerCategoryLimit,
		markupPercent:    cfg.DefaultMarkupPercent,
		now:              time.Now,
	}
}

// SyncAll syncs every configured category and persists the run report.
// The report is returned even when persisting it fails; a finished run is
// worth more than its history row.
func (s *SyncService) SyncAll(ctx context.Context) (*syncrun.Report, error) {
	report := syncrun.NewReport(s.now())
	markup := catalog.NormalizeMarkup(s.markupPercent)

	s.logger.Info("bulk sync started",
		zap.String("run_id", report.ID.String()),
		zap.Int("categories", len(s.categories)))

	for _, category := range s.categories {
		result, err := s.syncCategory(ctx, category, markup)
		report.AddCategory(category, result)
		if err != nil {
			// Only cancellation propagates; everything else is in the result.
			_ = s.runs.Save(context.WithoutCancel(ctx), report)
			return report, err
		}
	}

	if err := s.runs.Save(ctx, report); err != nil {
		s.logger.Error("failed to persist sync report",
			zap.String("run_id", report.ID.String()), zap.Error(err))
	}

	s.logger.Info("bulk sync finished",
		zap.String("run_id", report.ID.String()),
		zap.Int("products", report.Totals.Products),
		zap.Int("success", report.Totals.Success),
		zap.Int("failed", report.Totals.Failed))
	return report, nil
}

// syncCategory syncs one category. The returned error is non-nil only for
// context cancellation.
func (s *SyncService) syncCategory(ctx context.Context, category string, markup decimal.Decimal) (*syncrun.CategoryResult, error) {
	result := syncrun.NewCategoryResult()

	products, err := s.source.GetWinningProducts(ctx, category, s.perCategoryLimit)
	if err != nil {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		s.logger.Warn("category listing failed",
			zap.String("category", category), zap.Error(err))
		// No items were attempted, so only the message is kept.
		result.AppendError(fmt.Sprintf("%s: listing failed: %v", category, err))
		return result, nil
	}

	result.Total = len(products)
	for i := range products {
		if err := s.syncProduct(ctx, &products[i], markup); err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.RecordFailure(fmt.Sprintf("%s: %v", products[i].Title, err))
		} else {
			result.RecordSuccess()
		}

		if i < len(products)-1 {
			if err := s.limiter.Acquire(ctx); err != nil {
				return result, err
			}
		}
	}
	return result, nil
}

// syncProduct upserts one supplier product by SKU: update when a product
// already owns the SKU, create otherwise.
func (s *SyncService) syncProduct(ctx context.Context, p *supplier.Product, markup decimal.Decimal) error {
	src := p.ToSource()
	if err := src.Validate(); err != nil {
		return err
	}

	normalized := catalog.NormalizeSource(src, markup, s.now())
	sku := normalized.PrimarySKU()

	existing, err := s.writer.FindProductBySKU(ctx, sku)
	switch {
	case err == nil:
		if _, err := s.writer.UpdateProduct(ctx, existing.ID, normalized); err != nil {
			return err
		}
		s.logger.Debug("product updated",
			zap.String("sku", sku), zap.Int64("product_id", existing.ID))
	case errors.Is(err, shared.ErrNotFound):
		created, err := s.writer.CreateProduct(ctx, normalized)
		if err != nil {
			return err
		}
		s.logger.Debug("product created",
			zap.String("sku", sku), zap.Int64("product_id", created.ID))
	default:
		return err
	}
	return nil
}
