package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/application/importer"
	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/shared"
	"github.com/zaylo/backend/internal/interfaces/http/middleware"
)

type stubFetcher struct {
	html string
	err  error
}

func (f *stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return f.html, f.err
}

type stubExtractor struct {
	src *catalog.SourceProduct
	err error
}

func (e *stubExtractor) Extract(_ string) (*catalog.SourceProduct, error) {
	return e.src, e.err
}

// stubWriter publishes products into memory.
type stubWriter struct {
	nextID  int64
	created []*catalog.Product
}

func (w *stubWriter) CreateProduct(_ context.Context, product *catalog.Product) (*catalog.RemoteProduct, error) {
	w.nextID++
	w.created = append(w.created, product)
	return &catalog.RemoteProduct{
		ID:     w.nextID,
		Handle: "imported-product",
		Title:  product.Title,
		Variants: []catalog.RemoteVariant{{
			ID:    w.nextID * 10,
			SKU:   product.PrimarySKU(),
			Price: product.Variants[0].Price,
		}},
	}, nil
}

func (w *stubWriter) UpdateProduct(_ context.Context, id int64, product *catalog.Product) (*catalog.RemoteProduct, error) {
	return &catalog.RemoteProduct{ID: id, Title: product.Title}, nil
}

func (w *stubWriter) FindProductBySKU(_ context.Context, _ string) (*catalog.RemoteProduct, error) {
	return nil, shared.ErrNotFound
}

func newImportTestRouter(fetcher *stubFetcher, extractor *stubExtractor, writer *stubWriter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	service := importer.NewImportService(fetcher, extractor, writer,
		"hhcdropshipping.com", "zaylo-store.myshopify.com", zap.NewNop())

	engine := gin.New()
	NewImportHandler(service).RegisterRoutes(engine.Group("/api/v1"))
	return engine
}

func importSource() *catalog.SourceProduct {
	return &catalog.SourceProduct{
		Title: "65W GaN Charger",
		Price: decimal.NewFromInt(1000),
	}
}

func postImport(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/imports/product", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestImportHandler_ImportProduct(t *testing.T) {
	writer := &stubWriter{}
	engine := newImportTestRouter(&stubFetcher{html: "<html></html>"}, &stubExtractor{src: importSource()}, writer)

	rec := postImport(t, engine,
		`{"url":"https://hhcdropshipping.com/products/65w-gan-charger","markup_percent":50}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool                     `json:"success"`
		Data    importer.ImportedProduct `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, int64(1), envelope.Data.ProductID)
	assert.True(t, envelope.Data.SellingPrice.Equal(decimal.NewFromInt(1500)))
	assert.Equal(t, "https://zaylo-store.myshopify.com/admin/products/1", envelope.Data.AdminURL)
	require.Len(t, writer.created, 1)
}

func TestImportHandler_ImportProduct_InvalidBody(t *testing.T) {
	engine := newImportTestRouter(&stubFetcher{}, &stubExtractor{}, &stubWriter{})

	cases := []string{
		`{}`,
		`{"url":"not a url"}`,
		`{"url":"https://hhcdropshipping.com/p/1","markup_percent":9000}`,
		`{"url":"https://hhcdropshipping.com/p/1","markup_percent":-5}`,
	}
	for _, body := range cases {
		rec := postImport(t, engine, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestImportHandler_ImportProduct_ForeignDomain(t *testing.T) {
	engine := newImportTestRouter(&stubFetcher{}, &stubExtractor{}, &stubWriter{})

	rec := postImport(t, engine, `{"url":"https://evil.example.com/products/thing"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestImportHandler_ImportProduct_ExtractionFailure(t *testing.T) {
	extractor := &stubExtractor{err: shared.ErrExtraction.WithMessage("source product has no price")}
	engine := newImportTestRouter(&stubFetcher{html: "<html></html>"}, extractor, &stubWriter{})

	rec := postImport(t, engine, `{"url":"https://hhcdropshipping.com/products/broken"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
