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
	"github.com/zaylo/backend/internal/domain/shared"
)

type fakeFetcher struct {
	html  string
	err   error
	calls int
	urls  []string
}

func (f *fakeFetcher) Fetch(_ context.Context, pageURL string) (string, error) {
	f.calls++
	f.urls = append(f.urls, pageURL)
	return f.html, f.err
}

type fakeExtractor struct {
	src *catalog.SourceProduct
	err error
}

func (e *fakeExtractor) Extract(_ string) (*catalog.SourceProduct, error) {
	return e.src, e.err
}

// fakeWriter simulates the admin API with an in-memory catalog keyed by SKU.
type fakeWriter struct {
	bySKU  map[string]*catalog.RemoteProduct
	nextID int64

	createCalls int
	updateCalls int
	findCalls   int
	created     []*catalog.Product
	updated     []*catalog.Product

	failCreate error
	failUpdate error
	failFind   error
}

func newFakeWriter() *fakeWriter {
	return &fakeWriter{bySKU: make(map[string]*catalog.RemoteProduct)}
}

func (w *fakeWriter) CreateProduct(_ context.Context, product *catalog.Product) (*catalog.RemoteProduct, error) {
	w.createCalls++
	if w.failCreate != nil {
		return nil, w.failCreate
	}
	w.created = append(w.created, product)
	w.nextID++
	remote := &catalog.RemoteProduct{
		ID:     w.nextID,
		Handle: "product-" + product.PrimarySKU(),
		Title:  product.Title,
		Variants: []catalog.RemoteVariant{{
			ID:    w.nextID * 100,
			SKU:   product.PrimarySKU(),
			Price: product.Variants[0].Price,
		}},
	}
	w.bySKU[product.PrimarySKU()] = remote
	return remote, nil
}

func (w *fakeWriter) UpdateProduct(_ context.Context, id int64, product *catalog.Product) (*catalog.RemoteProduct, error) {
	w.updateCalls++
	if w.failUpdate != nil {
		return nil, w.failUpdate
	}
	w.updated = append(w.updated, product)
	remote := &catalog.RemoteProduct{ID: id, Title: product.Title}
	return remote, nil
}

func (w *fakeWriter) FindProductBySKU(_ context.Context, sku string) (*catalog.RemoteProduct, error) {
	w.findCalls++
	if w.failFind != nil {
		return nil, w.failFind
	}
	remote, ok := w.bySKU[sku]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return remote, nil
}

func testSource() *catalog.SourceProduct {
	return &catalog.SourceProduct{
		Title:       "65W GaN Fast Charger",
		Description: "<p>Compact 65W charger</p>",
		Price:       decimal.NewFromInt(1000),
		Category:    "Chargers",
		Images:      []string{"https://cdn.example.com/charger.jpg"},
		SKU:         "HHC-CH-65",
	}
}

func newTestImportService(fetcher *fakeFetcher, extractor *fakeExtractor, writer *fakeWriter) *ImportService {
	service := NewImportService(fetcher, extractor, writer,
		"hhcdropshipping.com", "zaylo-store.myshopify.com", zap.NewNop())
	service.now = func() time.Time {
		return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	}
	return service
}

func TestImportService_ImportFromURL(t *testing.T) {
	fetcher := &fakeFetcher{html: "<html>page</html>"}
	extractor := &fakeExtractor{src: testSource()}
	writer := newFakeWriter()
	service := newTestImportService(fetcher, extractor, writer)

	result, err := service.ImportFromURL(context.Background(),
		"https://hhcdropshipping.com/products/65w-gan-charger", 0)
	require.NoError(t, err)

	assert.Equal(t, 1, fetcher.calls)
	assert.Equal(t, "https://hhcdropshipping.com/products/65w-gan-charger", fetcher.urls[0])
	require.Equal(t, 1, writer.createCalls)

	published := writer.created[0]
	assert.Equal(t, "65W GaN Fast Charger", published.Title)
	assert.Equal(t, catalog.CategoryChargers, published.ProductType)
	assert.Equal(t, []string{"HHC", "Imported", "Dropshipping"}, published.Tags)
	// Default markup of 30 over a 1000 source price.
	assert.True(t, published.Variants[0].Price.Equal(decimal.NewFromInt(1300)))

	assert.Equal(t, int64(1), result.ProductID)
	assert.Equal(t, int64(100), result.VariantID)
	assert.Equal(t, catalog.CategoryChargers, result.Category)
	assert.True(t, result.SourcePrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.SellingPrice.Equal(decimal.NewFromInt(1300)))
	assert.True(t, result.Profit.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "https://zaylo-store.myshopify.com/admin/products/1", result.AdminURL)
	assert.Equal(t, "https://zaylo-store.myshopify.com/products/product-HHC-CH-65", result.StoreURL)
}

func TestImportService_ImportFromURL_CustomMarkup(t *testing.T) {
	fetcher := &fakeFetcher{html: "<html>page</html>"}
	extractor := &fakeExtractor{src: testSource()}
	writer := newFakeWriter()
	service := newTestImportService(fetcher, extractor, writer)

	result, err := service.ImportFromURL(context.Background(),
		"https://hhcdropshipping.com/products/65w-gan-charger", 50)
	require.NoError(t, err)
	assert.True(t, result.SellingPrice.Equal(decimal.NewFromInt(1500)))
	assert.True(t, result.Profit.Equal(decimal.NewFromInt(500)))
}

func TestImportService_ImportFromURL_RejectsForeignDomain(t *testing.T) {
	fetcher := &fakeFetcher{html: "<html>page</html>"}
	service := newTestImportService(fetcher, &fakeExtractor{src: testSource()}, newFakeWriter())

	cases := []string{
		"",
		"not a url",
		"https://evil.example.com/products/thing",
		"https://hhcdropshipping.com.evil.example/products/thing",
		"ftp://hhcdropshipping.com/products/thing",
	}
	for _, pageURL := range cases {
		_, err := service.ImportFromURL(context.Background(), pageURL, 30)
		require.Error(t, err, pageURL)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr, pageURL)
		assert.Equal(t, "VALIDATION_ERROR", domainErr.Code, pageURL)
	}
	// Rejection happens before any fetch.
	assert.Equal(t, 0, fetcher.calls)
}

func TestImportService_ImportFromURL_AcceptsSubdomainAndWWW(t *testing.T) {
	fetcher := &fakeFetcher{html: "<html>page</html>"}
	service := newTestImportService(fetcher, &fakeExtractor{src: testSource()}, newFakeWriter())

	_, err := service.ImportFromURL(context.Background(),
		"https://www.hhcdropshipping.com/products/65w-gan-charger", 30)
	require.NoError(t, err)
}

func TestImportService_ImportFromURL_ExtractionFailure(t *testing.T) {
	extractor := &fakeExtractor{err: shared.ErrExtraction.WithMessage("source product has no price")}
	writer := newFakeWriter()
	service := newTestImportService(&fakeFetcher{html: "<html></html>"}, extractor, writer)

	_, err := service.ImportFromURL(context.Background(),
		"https://hhcdropshipping.com/products/broken", 30)
	require.Error(t, err)
	assert.ErrorIs(t, err, shared.ErrExtraction)
	assert.Equal(t, 0, writer.createCalls)
}

func TestImportService_ImportFromURL_FetchFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: shared.ErrTransport.WithMessage("supplier: product page fetch failed")}
	writer := newFakeWriter()
	service := newTestImportService(fetcher, &fakeExtractor{src: testSource()}, writer)

	_, err := service.ImportFromURL(context.Background(),
		"https://hhcdropshipping.com/products/down", 30)
	assert.ErrorIs(t, err, shared.ErrTransport)
	assert.Equal(t, 0, writer.createCalls)
}

func TestImportService_ImportFromURL_PublishFailure(t *testing.T) {
	writer := newFakeWriter()
	writer.failCreate = shared.ErrBackend.WithMessage("admin api rejected the product")
	service := newTestImportService(&fakeFetcher{html: "<html></html>"}, &fakeExtractor{src: testSource()}, writer)

	_, err := service.ImportFromURL(context.Background(),
		"https://hhcdropshipping.com/products/65w-gan-charger", 30)
	assert.ErrorIs(t, err, shared.ErrBackend)
}
