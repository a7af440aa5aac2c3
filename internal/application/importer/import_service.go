package importer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/shared"
)

// Fetcher downloads a supplier product page.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Extractor parses a supplier product page into a source product.
type Extractor interface {
	Extract(html string) (*catalog.SourceProduct, error)
}

// ImportedProduct is the result of one single-product import.
type ImportedProduct struct {
	ProductID    int64            `json:"product_id"`
	VariantID    int64            `json:"variant_id,omitempty"`
	Title        string           `json:"title"`
	Handle       string           `json:"handle"`
	Category     catalog.Category `json:"category"`
	SourcePrice  decimal.Decimal  `json:"source_price"`
	SellingPrice decimal.Decimal  `json:"selling_price"`
	Profit       decimal.Decimal  `json:"profit"`
	AdminURL     string           `json:"admin_url"`
	StoreURL     string           `json:"store_url"`
}

// ImportService imports a single supplier product into the store catalog:
// fetch the product page, extract its fields, normalize with markup, publish.
type ImportService struct {
	fetcher        Fetcher
	extractor      Extractor
	writer         catalog.Writer
	supplierDomain string
	storeDomain    string
	logger         *zap.Logger

	now func() time.Time
}

// NewImportService creates an import service. supplierDomain restricts which
// URLs may be imported; storeDomain builds the result's admin and store links.
func NewImportService(fetcher Fetcher, extractor Extractor, writer catalog.Writer, supplierDomain, storeDomain string, logger *zap.Logger) *ImportService {
	return &ImportService{
		fetcher:        fetcher,
		extractor:      extractor,
		writer:         writer,
		supplierDomain: strings.ToLower(supplierDomain),
		storeDomain:    storeDomain,
		logger:         logger.Named("import"),
		now:            time.Now,
	}
}

// ImportFromURL imports the product behind a supplier page URL. The URL is
// validated against the supplier domain before any network call; a markup of
// zero or less falls back to the default.
func (s *ImportService) ImportFromURL(ctx context.Context, pageURL string, markupPercent float64) (*ImportedProduct, error) {
	if err := s.validateURL(pageURL); err != nil {
		return nil, err
	}

	html, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	src, err := s.extractor.Extract(html)
	if err != nil {
		return nil, err
	}

	markup := catalog.NormalizeMarkup(markupPercent)
	product := catalog.NormalizeSource(src, markup, s.now())

	created, err := s.writer.CreateProduct(ctx, product)
	if err != nil {
		s.logger.Error("product import failed",
			zap.String("url", pageURL), zap.String("title", src.Title), zap.Error(err))
		return nil, err
	}

	sellingPrice := product.Variants[0].Price
	result := &ImportedProduct{
		ProductID:    created.ID,
		Title:        created.Title,
		Handle:       created.Handle,
		Category:     product.ProductType,
		SourcePrice:  src.Price,
		SellingPrice: sellingPrice,
		Profit:       catalog.Profit(src.Price, sellingPrice),
		AdminURL:     fmt.Sprintf("https://%s/admin/products/%d", s.storeDomain, created.ID),
		StoreURL:     fmt.Sprintf("https://%s/products/%s", s.storeDomain, created.Handle),
	}
	if variant := created.PrimaryVariant(); variant != nil {
		result.VariantID = variant.ID
	}

	s.logger.Info("product imported",
		zap.Int64("product_id", created.ID),
		zap.String("title", created.Title),
		zap.String("category", product.ProductType.String()))
	return result, nil
}

// validateURL rejects URLs outside the supplier domain without touching the
// network.
func (s *ImportService) validateURL(pageURL string) error {
	if pageURL == "" {
		return shared.ErrValidation.WithMessage("import: url is required")
	}
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return shared.ErrValidation.WithMessage("import: url is not a valid absolute url")
	}
	host := strings.ToLower(parsed.Hostname())
	if host != s.supplierDomain && !strings.HasSuffix(host, "."+s.supplierDomain) {
		return shared.ErrValidation.WithMessage(
			fmt.Sprintf("import: url must be a %s product page", s.supplierDomain))
	}
	return nil
}
