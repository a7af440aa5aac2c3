package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zaylo/backend/internal/domain/shared"
)

// DefaultVendor is used when the supplier page does not name a vendor.
const DefaultVendor = "HHC Dropshipping"

// skuPrefix is the prefix for generated fallback SKUs.
const skuPrefix = "HHC"

// SourceProduct holds the raw fields scraped or fetched from the supplier.
// It may be incomplete; Validate rejects products missing required fields.
type SourceProduct struct {
	Title       string
	Description string
	Price       decimal.Decimal
	Currency    string
	Category    string
	Images      []string
	SKU         string
	Vendor      string
}

// Validate checks that the required fields for import are present.
// A product without a title or a positive price cannot be imported.
func (p *SourceProduct) Validate() error {
	if p.Title == "" {
		return shared.ErrExtraction.WithMessage("source product has no title")
	}
	if !p.Price.IsPositive() {
		return shared.ErrExtraction.WithMessage("source product has no price")
	}
	return nil
}

// Variant is one purchasable configuration of a normalized product.
type Variant struct {
	Price             decimal.Decimal
	CompareAtPrice    decimal.Decimal
	SKU               string
	InventoryPolicy   string
	InventoryQuantity int
	Option1           string
	Option2           string
}

// Product is a catalog entry normalized for the commerce backend.
type Product struct {
	Title       string
	BodyHTML    string
	Vendor      string
	ProductType Category
	Tags        []string
	Variants    []Variant
	Images      []string
}

// FallbackSKU generates a non-empty SKU for products the supplier did not
// assign one, so the upsert-by-SKU key always exists.
func FallbackSKU(now time.Time) string {
	return fmt.Sprintf("%s-%d", skuPrefix, now.UnixMilli())
}

// NormalizeSource builds a normalized product from supplier fields, applying
// the markup and classifying the product into a category. The caller is
// expected to have validated the source first.
func NormalizeSource(src *SourceProduct, markupPercent decimal.Decimal, now time.Time) *Product {
	sku := src.SKU
	if sku == "" {
		sku = FallbackSKU(now)
	}

	vendor := src.Vendor
	if vendor == "" {
		vendor = DefaultVendor
	}

	body := src.Description
	if body == "" {
		body = src.Title
	}

	return &Product{
		Title:       src.Title,
		BodyHTML:    body,
		Vendor:      vendor,
		ProductType: classify(src),
		Tags:        []string{"HHC", "Imported", "Dropshipping"},
		Variants: []Variant{{
			Price:           SellingPrice(src.Price, markupPercent),
			SKU:             sku,
			InventoryPolicy: "continue",
		}},
		Images: src.Images,
	}
}

// classify prefers the supplier's own category slug when it is one we
// recognize; everything else is keyword-classified from the product text.
func classify(src *SourceProduct) Category {
	if c, ok := CategoryFromSlug(src.Category); ok {
		return c
	}
	return Categorize(src.Title, src.Description)
}

// PrimarySKU returns the SKU of the first variant, the upsert key.
func (p *Product) PrimarySKU() string {
	if len(p.Variants) == 0 {
		return ""
	}
	return p.Variants[0].SKU
}
