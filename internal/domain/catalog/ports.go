package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// StorefrontVariant is one purchasable variant as exposed by the storefront API.
type StorefrontVariant struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Price            decimal.Decimal `json:"price"`
	CurrencyCode     string          `json:"currency_code"`
	AvailableForSale bool            `json:"available_for_sale"`
}

// StorefrontProduct is the storefront read model of a published product.
type StorefrontProduct struct {
	ID              string              `json:"id"`
	Handle          string              `json:"handle"`
	Title           string              `json:"title"`
	DescriptionHTML string              `json:"description_html,omitempty"`
	Vendor          string              `json:"vendor,omitempty"`
	ProductType     string              `json:"product_type,omitempty"`
	Tags            []string            `json:"tags,omitempty"`
	Images          []string            `json:"images,omitempty"`
	Variants        []StorefrontVariant `json:"variants"`
}

// Reader lists and fetches published products from the commerce backend.
type Reader interface {
	// ListProducts returns up to first products from the whole catalog.
	ListProducts(ctx context.Context, first int) ([]*StorefrontProduct, error)

	// ListCollectionProducts returns up to first products of a collection.
	ListCollectionProducts(ctx context.Context, handle string, first int) ([]*StorefrontProduct, error)

	// GetProductByHandle returns one product, or shared.ErrNotFound.
	GetProductByHandle(ctx context.Context, handle string) (*StorefrontProduct, error)
}

// RemoteVariant is a variant as stored by the commerce backend admin API.
type RemoteVariant struct {
	ID                int64           `json:"id"`
	SKU               string          `json:"sku"`
	Price             decimal.Decimal `json:"price"`
	InventoryQuantity int             `json:"inventory_quantity"`
}

// RemoteProduct is a product as stored by the commerce backend admin API.
type RemoteProduct struct {
	ID       int64           `json:"id"`
	Handle   string          `json:"handle"`
	Title    string          `json:"title"`
	Tags     string          `json:"tags"`
	Variants []RemoteVariant `json:"variants"`
}

// PrimaryVariant returns the first variant, or nil when the product has none.
func (p *RemoteProduct) PrimaryVariant() *RemoteVariant {
	if len(p.Variants) == 0 {
		return nil
	}
	return &p.Variants[0]
}

// Writer creates and updates products through the commerce backend admin API.
type Writer interface {
	// CreateProduct publishes a new product.
	CreateProduct(ctx context.Context, product *Product) (*RemoteProduct, error)

	// UpdateProduct replaces the mutable fields of an existing product.
	UpdateProduct(ctx context.Context, id int64, product *Product) (*RemoteProduct, error)

	// FindProductBySKU scans the catalog for a product owning the SKU.
	// Returns shared.ErrNotFound when no variant matches.
	FindProductBySKU(ctx context.Context, sku string) (*RemoteProduct, error)
}
