package importer

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/syncrun"
	"github.com/zaylo/backend/internal/infrastructure/config"
	"github.com/zaylo/backend/internal/infrastructure/supplier"
)

type fakeSource struct {
	products map[string][]supplier.Product
	errs     map[string]error
	calls    []string
}

func (s *fakeSource) GetWinningProducts(_ context.Context, category string, _ int) ([]supplier.Product, error) {
	s.calls = append(s.calls, category)
	if err := s.errs[category]; err != nil {
		return nil, err
	}
	return s.products[category], nil
}

type fakeRunRepo struct {
	saved []*syncrun.Report
	err   error
}

func (r *fakeRunRepo) Save(_ context.Context, report *syncrun.Report) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, report)
	return nil
}

func (r *fakeRunRepo) List(_ context.Context, _ int) ([]*syncrun.Report, error) {
	return r.saved, nil
}

func supplierProduct(title, sku string, price int64) supplier.Product {
	return supplier.Product{
		ID:    "sup-" + sku,
		Title: title,
		Price: decimal.NewFromInt(price),
		Variants: []supplier.Variant{{
			SKU:   sku,
			Price: decimal.NewFromInt(price),
		}},
	}
}

func newTestSyncService(source *fakeSource, writer *fakeWriter, runs *fakeRunRepo, categories []string) *SyncService {
	service := NewSyncService(source, writer, runs, NopLimiter{}, &config.SyncConfig{
		Categories:           categories,
		PerCategoryLimit:     20,
		DefaultMarkupPercent: 30,
	}, zap.NewNop())
	service.now = func() time.Time {
		return time.Date(2025, 7, 1, 3, 0, 0, 0, time.UTC)
	}
	return service
}

func TestSyncService_SyncAll_Aggregates(t *testing.T) {
	source := &fakeSource{products: map[string][]supplier.Product{
		"chargers": {
			supplierProduct("65W GaN Charger", "HHC-CH-65", 1000),
			supplierProduct("Car Charger", "HHC-CH-CAR", 500),
			// No price: fails validation before any write.
			{ID: "sup-bad", Title: "Broken Charger"},
		},
		"earbuds": {},
	}}
	writer := newFakeWriter()
	runs := &fakeRunRepo{}
	service := newTestSyncService(source, writer, runs, []string{"chargers", "earbuds"})

	report, err := service.SyncAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Equal(t, []string{"chargers", "earbuds"}, source.calls)
	assert.Equal(t, syncrun.Totals{Products: 3, Success: 2, Failed: 1}, report.Totals)

	chargers := report.Categories["chargers"]
	require.NotNil(t, chargers)
	assert.Equal(t, 3, chargers.Total)
	assert.Equal(t, 2, chargers.Success)
	assert.Equal(t, 1, chargers.Failed)
	require.Len(t, chargers.Errors, 1)
	assert.Contains(t, chargers.Errors[0], "Broken Charger")

	earbuds := report.Categories["earbuds"]
	require.NotNil(t, earbuds)
	assert.Equal(t, 0, earbuds.Total)

	// The report was persisted.
	require.Len(t, runs.saved, 1)
	assert.Equal(t, report.ID, runs.saved[0].ID)
}

func TestSyncService_SyncAll_UpsertsBySKU(t *testing.T) {
	source := &fakeSource{products: map[string][]supplier.Product{
		"chargers": {supplierProduct("65W GaN Charger", "HHC-CH-65", 1000)},
	}}
	writer := newFakeWriter()
	runs := &fakeRunRepo{}
	service := newTestSyncService(source, writer, runs, []string{"chargers"})

	_, err := service.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, writer.createCalls)
	assert.Equal(t, 0, writer.updateCalls)

	// Second run finds the SKU and updates instead of duplicating.
	_, err = service.SyncAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, writer.createCalls)
	assert.Equal(t, 1, writer.updateCalls)
}

func TestSyncService_SyncAll_AppliesDefaultMarkup(t *testing.T) {
	source := &fakeSource{products: map[string][]supplier.Product{
		"chargers": {supplierProduct("65W GaN Charger", "HHC-CH-65", 1000)},
	}}
	writer := newFakeWriter()
	service := newTestSyncService(source, writer, &fakeRunRepo{}, []string{"chargers"})

	_, err := service.SyncAll(context.Background())
	require.NoError(t, err)
	require.Len(t, writer.created, 1)
	assert.True(t, writer.created[0].Variants[0].Price.Equal(decimal.NewFromInt(1300)))
}

func TestSyncService_SyncAll_CategoryListingFailureDoesNotAbort(t *testing.T) {
	source := &fakeSource{
		products: map[string][]supplier.Product{
			"earbuds": {supplierProduct("ANC Earbuds", "HHC-EB-1", 2000)},
		},
		errs: map[string]error{
			"chargers": supplier.ErrAuthFailed,
		},
	}
	writer := newFakeWriter()
	runs := &fakeRunRepo{}
	service := newTestSyncService(source, writer, runs, []string{"chargers", "earbuds"})

	report, err := service.SyncAll(context.Background())
	require.NoError(t, err)

	// The failed listing is recorded as a message only: no items were
	// attempted, so the counters stay at zero and the next category syncs.
	chargers := report.Categories["chargers"]
	require.NotNil(t, chargers)
	assert.Equal(t, 0, chargers.Total)
	assert.Equal(t, 0, chargers.Failed)
	require.Len(t, chargers.Errors, 1)
	assert.Contains(t, chargers.Errors[0], "listing failed")

	earbuds := report.Categories["earbuds"]
	require.NotNil(t, earbuds)
	assert.Equal(t, 1, earbuds.Success)
	assert.Equal(t, 1, writer.createCalls)
	require.Len(t, runs.saved, 1)
}

func TestSyncService_SyncAll_ListingCategorySlugWins(t *testing.T) {
	// The supplier lists the product under powerbank even though its text
	// reads like a charger; the slug decides the product type.
	product := supplierProduct("Fast Charging Station", "HHC-PB-9", 3000)
	product.Category = "powerbank"

	source := &fakeSource{products: map[string][]supplier.Product{
		"powerbank": {product},
	}}
	writer := newFakeWriter()
	runs := &fakeRunRepo{}
	service := newTestSyncService(source, writer, runs, []string{"powerbank"})

	_, err := service.SyncAll(context.Background())
	require.NoError(t, err)

	require.Len(t, writer.created, 1)
	assert.Equal(t, catalog.CategoryPowerbank, writer.created[0].ProductType)
}

func TestSyncService_SyncAll_ItemFailureDoesNotAbort(t *testing.T) {
	source := &fakeSource{products: map[string][]supplier.Product{
		"chargers": {
			supplierProduct("65W GaN Charger", "HHC-CH-65", 1000),
			supplierProduct("Car Charger", "HHC-CH-CAR", 500),
		},
	}}
	writer := newFakeWriter()
	writer.failFind = supplier.ErrRequestFailed
	service := newTestSyncService(source, writer, &fakeRunRepo{}, []string{"chargers"})

	report, err := service.SyncAll(context.Background())
	require.NoError(t, err)

	chargers := report.Categories["chargers"]
	assert.Equal(t, 2, chargers.Total)
	assert.Equal(t, 0, chargers.Success)
	assert.Equal(t, 2, chargers.Failed)
	assert.Len(t, chargers.Errors, 2)
}

func TestSyncService_SyncAll_StopsOnCancellation(t *testing.T) {
	source := &fakeSource{products: map[string][]supplier.Product{
		"chargers": {
			supplierProduct("65W GaN Charger", "HHC-CH-65", 1000),
			supplierProduct("Car Charger", "HHC-CH-CAR", 500),
		},
	}}
	writer := newFakeWriter()
	runs := &fakeRunRepo{}
	service := newTestSyncService(source, writer, runs, []string{"chargers"})
	// A real delay so the limiter observes the canceled context.
	service.limiter = NewFixedDelayLimiter(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := service.SyncAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, report)
}

func TestSyncService_SyncAll_ReportSaveFailureStillReturnsReport(t *testing.T) {
	source := &fakeSource{products: map[string][]supplier.Product{
		"chargers": {supplierProduct("65W GaN Charger", "HHC-CH-65", 1000)},
	}}
	runs := &fakeRunRepo{err: assert.AnError}
	service := newTestSyncService(source, newFakeWriter(), runs, []string{"chargers"})

	report, err := service.SyncAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)
	assert.Equal(t, 1, report.Totals.Success)
}

func TestFixedDelayLimiter_RespectsContext(t *testing.T) {
	limiter := NewFixedDelayLimiter(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, limiter.Acquire(ctx), context.Canceled)

	fast := NewFixedDelayLimiter(time.Millisecond)
	assert.NoError(t, fast.Acquire(context.Background()))
}
