package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/shared"
)

// defaultPageSize bounds catalog listings when the caller passes no limit.
const defaultPageSize = 20

// StorefrontClient implements catalog.Reader via the product queries.
var _ catalog.Reader = (*StorefrontClient)(nil)

// ListProducts returns the newest products, up to first.
func (c *StorefrontClient) ListProducts(ctx context.Context, first int) ([]*catalog.StorefrontProduct, error) {
	if first <= 0 {
		first = defaultPageSize
	}

	data, err := c.Execute(ctx, productsQuery, map[string]any{"first": first})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Products productConnectionPayload `json:"products"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return resp.Products.toDomain(), nil
}

// ListCollectionProducts returns products of one collection, up to first.
// An unknown collection handle maps to shared.ErrNotFound.
func (c *StorefrontClient) ListCollectionProducts(ctx context.Context, handle string, first int) ([]*catalog.StorefrontProduct, error) {
	if handle == "" {
		return nil, shared.ErrValidation.WithMessage("collection handle is required")
	}
	if first <= 0 {
		first = defaultPageSize
	}

	data, err := c.Execute(ctx, collectionProductsQuery, map[string]any{
		"handle": handle,
		"first":  first,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Collection *struct {
			Products productConnectionPayload `json:"products"`
		} `json:"collection"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if resp.Collection == nil {
		return nil, shared.ErrNotFound
	}
	return resp.Collection.Products.toDomain(), nil
}

// GetProductByHandle returns one product with variants, options and images.
func (c *StorefrontClient) GetProductByHandle(ctx context.Context, handle string) (*catalog.StorefrontProduct, error) {
	if handle == "" {
		return nil, shared.ErrValidation.WithMessage("product handle is required")
	}

	data, err := c.Execute(ctx, productByHandleQuery, map[string]any{"handle": handle})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Product *productPayload `json:"product"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	product := resp.Product.toDomain()
	if product == nil {
		return nil, shared.ErrNotFound
	}
	return product, nil
}
