package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/shared"
	"github.com/zaylo/backend/internal/infrastructure/config"
)

// adminPageSize is the maximum page size the admin REST API allows.
const adminPageSize = 250

// AdminClient talks to the commerce backend admin REST API.
type AdminClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewAdminClient creates an admin client from configuration. As with the
// storefront client, missing credentials surface as ErrNotConfigured on the
// first call rather than at construction.
func NewAdminClient(cfg *config.ShopifyConfig, logger *zap.Logger) *AdminClient {
	c := &AdminClient{logger: logger.Named("shopify.admin")}
	if cfg.AdminConfigured() {
		c.baseURL = fmt.Sprintf("https://%s/admin/api/%s", cfg.StoreDomain, cfg.APIVersion)
		c.token = cfg.AdminToken
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

// AdminClient implements catalog.Writer.
var _ catalog.Writer = (*AdminClient)(nil)

type adminVariant struct {
	ID                int64  `json:"id,omitempty"`
	SKU               string `json:"sku,omitempty"`
	Price             string `json:"price,omitempty"`
	CompareAtPrice    string `json:"compare_at_price,omitempty"`
	InventoryPolicy   string `json:"inventory_policy,omitempty"`
	InventoryQuantity int    `json:"inventory_quantity,omitempty"`
	Option1           string `json:"option1,omitempty"`
	Option2           string `json:"option2,omitempty"`
}

type adminImage struct {
	Src string `json:"src"`
}

type adminProduct struct {
	ID       int64          `json:"id,omitempty"`
	Title    string         `json:"title,omitempty"`
	BodyHTML string         `json:"body_html,omitempty"`
	Vendor   string         `json:"vendor,omitempty"`
	Type     string         `json:"product_type,omitempty"`
	Tags     string         `json:"tags,omitempty"`
	Handle   string         `json:"handle,omitempty"`
	Variants []adminVariant `json:"variants,omitempty"`
	Images   []adminImage   `json:"images,omitempty"`
}

type adminProductEnvelope struct {
	Product adminProduct `json:"product"`
}

type adminProductsEnvelope struct {
	Products []adminProduct `json:"products"`
}

func toAdminProduct(p *catalog.Product) adminProduct {
	wire := adminProduct{
		Title:    p.Title,
		BodyHTML: p.BodyHTML,
		Vendor:   p.Vendor,
		Type:     string(p.ProductType),
		Tags:     strings.Join(p.Tags, ", "),
	}
	for _, v := range p.Variants {
		wireVariant := adminVariant{
			SKU:               v.SKU,
			Price:             v.Price.StringFixed(2),
			InventoryPolicy:   v.InventoryPolicy,
			InventoryQuantity: v.InventoryQuantity,
			Option1:           v.Option1,
			Option2:           v.Option2,
		}
		if v.CompareAtPrice.IsPositive() {
			wireVariant.CompareAtPrice = v.CompareAtPrice.StringFixed(2)
		}
		wire.Variants = append(wire.Variants, wireVariant)
	}
	for _, src := range p.Images {
		wire.Images = append(wire.Images, adminImage{Src: src})
	}
	return wire
}

func toRemoteProduct(p *adminProduct) *catalog.RemoteProduct {
	remote := &catalog.RemoteProduct{
		ID:     p.ID,
		Handle: p.Handle,
		Title:  p.Title,
		Tags:   p.Tags,
	}
	for _, v := range p.Variants {
		price, err := decimal.NewFromString(v.Price)
		if err != nil {
			price = decimal.Zero
		}
		remote.Variants = append(remote.Variants, catalog.RemoteVariant{
			ID:                v.ID,
			SKU:               v.SKU,
			Price:             price,
			InventoryQuantity: v.InventoryQuantity,
		})
	}
	return remote
}

// CreateProduct publishes a new product.
func (c *AdminClient) CreateProduct(ctx context.Context, product *catalog.Product) (*catalog.RemoteProduct, error) {
	body, err := c.do(ctx, http.MethodPost, "/products.json", adminProductEnvelope{Product: toAdminProduct(product)})
	if err != nil {
		return nil, err
	}

	var resp adminProductEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	c.logger.Info("product created",
		zap.Int64("product_id", resp.Product.ID),
		zap.String("sku", product.PrimarySKU()),
	)
	return toRemoteProduct(&resp.Product), nil
}

// UpdateProduct replaces the mutable fields of an existing product.
func (c *AdminClient) UpdateProduct(ctx context.Context, id int64, product *catalog.Product) (*catalog.RemoteProduct, error) {
	path := fmt.Sprintf("/products/%d.json", id)
	wire := toAdminProduct(product)
	wire.ID = id

	body, err := c.do(ctx, http.MethodPut, path, adminProductEnvelope{Product: wire})
	if err != nil {
		return nil, err
	}

	var resp adminProductEnvelope
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return toRemoteProduct(&resp.Product), nil
}

// FindProductBySKU walks the whole catalog page by page until a variant with
// the SKU is found. Returns shared.ErrNotFound after the last page.
func (c *AdminClient) FindProductBySKU(ctx context.Context, sku string) (*catalog.RemoteProduct, error) {
	if sku == "" {
		return nil, shared.ErrValidation.WithMessage("sku is required")
	}

	sinceID := int64(0)
	for {
		path := fmt.Sprintf("/products.json?limit=%d&fields=id,title,handle,tags,variants", adminPageSize)
		if sinceID > 0 {
			path += fmt.Sprintf("&since_id=%d", sinceID)
		}

		body, err := c.do(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, err
		}

		var resp adminProductsEnvelope
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
		}

		for i := range resp.Products {
			for _, v := range resp.Products[i].Variants {
				if v.SKU == sku {
					return toRemoteProduct(&resp.Products[i]), nil
				}
			}
		}

		if len(resp.Products) < adminPageSize {
			return nil, shared.ErrNotFound
		}
		sinceID = resp.Products[len(resp.Products)-1].ID
	}
}

// do issues one admin REST request and returns the size-capped body.
func (c *AdminClient) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	if c.baseURL == "" || c.token == "" {
		return nil, ErrNotConfigured
	}

	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("shopify: failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrRequestFailed, resp.StatusCode, truncateBody(body))
	}

	return body, nil
}

// truncateBody keeps error logs readable for large error payloads.
func truncateBody(body []byte) string {
	const limit = 512
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
