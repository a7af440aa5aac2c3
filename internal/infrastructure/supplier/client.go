package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/shared"
	"github.com/zaylo/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the supplier API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Sentinel errors for supplier API calls.
var (
	ErrNotConfigured = shared.ErrNotConfigured.WithMessage("supplier: api credentials not configured")
	ErrAuthFailed    = shared.ErrBackend.WithMessage("supplier: authentication failed")
	ErrUnavailable   = shared.ErrTransport.WithMessage("supplier: api unreachable")
	ErrRequestFailed = shared.ErrBackend.WithMessage("supplier: request failed")
)

// Variant is one purchasable configuration of a supplier product.
type Variant struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Price             decimal.Decimal `json:"price"`
	SKU               string          `json:"sku"`
	InventoryQuantity int             `json:"inventory_quantity"`
	Option1           string          `json:"option1,omitempty"`
	Option2           string          `json:"option2,omitempty"`
}

// Product is a supplier catalog entry as returned by the API.
type Product struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	CompareAtPrice    decimal.Decimal `json:"compare_at_price"`
	Currency          string          `json:"currency"`
	Category          string          `json:"category"`
	Images            []string        `json:"images"`
	Variants          []Variant       `json:"variants"`
	InventoryQuantity int             `json:"inventory_quantity"`
	Tags              []string        `json:"tags"`
	Vendor            string          `json:"vendor"`
	ProductType       string          `json:"product_type"`
}

// ToSource converts a supplier product to the import pipeline's source shape.
func (p *Product) ToSource() *catalog.SourceProduct {
	src := &catalog.SourceProduct{
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Currency:    p.Currency,
		Category:    p.Category,
		Images:      p.Images,
		Vendor:      p.Vendor,
	}
	if len(p.Variants) > 0 {
		src.SKU = p.Variants[0].SKU
	}
	return src
}

// Category is a supplier catalog category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Client talks to the supplier dropshipping API. Authentication happens at
// most once per client lifetime; the outcome, success or failure, is cached
// so a broken credential never triggers a re-auth loop.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	logger     *zap.Logger

	authOnce sync.Once
	token    string
	authErr  error
}

// NewClient creates a supplier API client from configuration.
func NewClient(cfg *config.SupplierConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("supplier"),
	}
}

// authenticate exchanges credentials for a bearer token, once per process.
func (c *Client) authenticate(ctx context.Context) error {
	if c.apiKey == "" || c.apiSecret == "" {
		return ErrNotConfigured
	}

	c.authOnce.Do(func() {
		payload, err := json.Marshal(map[string]string{
			"api_key":    c.apiKey,
			"api_secret": c.apiSecret,
		})
		if err != nil {
			c.authErr = fmt.Errorf("supplier: failed to encode auth request: %w", err)
			return
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", bytes.NewReader(payload))
		if err != nil {
			c.authErr = fmt.Errorf("supplier: failed to create auth request: %w", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.authErr = fmt.Errorf("%w: %v", ErrUnavailable, err)
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			c.authErr = fmt.Errorf("supplier: failed to read auth response: %w", err)
			return
		}
		if resp.StatusCode >= 400 {
			c.authErr = fmt.Errorf("%w: HTTP %d", ErrAuthFailed, resp.StatusCode)
			return
		}

		var tokenResp struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(body, &tokenResp); err != nil {
			c.authErr = fmt.Errorf("%w: invalid token response: %v", ErrAuthFailed, err)
			return
		}
		if tokenResp.AccessToken == "" {
			c.authErr = fmt.Errorf("%w: empty access token", ErrAuthFailed)
			return
		}

		c.token = tokenResp.AccessToken
		c.logger.Info("supplier api authenticated")
	})

	return c.authErr
}

// GetWinningProducts returns up to limit trending products of a category.
func (c *Client) GetWinningProducts(ctx context.Context, category string, limit int) ([]Product, error) {
	params := url.Values{}
	params.Set("type", "winning")
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if category != "" {
		params.Set("category", category)
	}

	body, err := c.doGet(ctx, "/products?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp struct {
		Products []Product `json:"products"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: invalid products payload: %v", ErrRequestFailed, err)
	}
	return resp.Products, nil
}

// GetProductDetails returns a single supplier product by ID.
func (c *Client) GetProductDetails(ctx context.Context, productID string) (*Product, error) {
	if productID == "" {
		return nil, shared.ErrValidation.WithMessage("supplier: product id is required")
	}

	body, err := c.doGet(ctx, "/products/"+url.PathEscape(productID))
	if err != nil {
		return nil, err
	}

	var resp struct {
		Product *Product `json:"product"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: invalid product payload: %v", ErrRequestFailed, err)
	}
	if resp.Product == nil {
		return nil, shared.ErrNotFound
	}
	return resp.Product, nil
}

// GetInventory returns the available quantity for a supplier product.
func (c *Client) GetInventory(ctx context.Context, productID string) (int, error) {
	if productID == "" {
		return 0, shared.ErrValidation.WithMessage("supplier: product id is required")
	}

	body, err := c.doGet(ctx, "/inventory/"+url.PathEscape(productID))
	if err != nil {
		return 0, err
	}

	var resp struct {
		Quantity int `json:"quantity"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("%w: invalid inventory payload: %v", ErrRequestFailed, err)
	}
	return resp.Quantity, nil
}

// GetCategories returns the supplier's category list.
func (c *Client) GetCategories(ctx context.Context) ([]Category, error) {
	body, err := c.doGet(ctx, "/categories")
	if err != nil {
		return nil, err
	}

	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: invalid categories payload: %v", ErrRequestFailed, err)
	}
	return resp.Categories, nil
}

// doGet authenticates if needed and issues one bearer-authorized GET.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	if err := c.authenticate(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("supplier: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("supplier: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}
	return body, nil
}
