package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/infrastructure/config"
)

// maxResponseSize is the maximum allowed response size from the API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// StorefrontClient talks to the storefront GraphQL API. Responses are never
// cached; every call is a live request.
type StorefrontClient struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStorefrontClient creates a storefront client from configuration.
// Missing credentials are not an error at construction time; calls fail
// fast with ErrNotConfigured instead.
func NewStorefrontClient(cfg *config.ShopifyConfig, logger *zap.Logger) *StorefrontClient {
	c := &StorefrontClient{logger: logger.Named("shopify.storefront")}
	if cfg.StorefrontConfigured() {
		c.endpoint = fmt.Sprintf("https://%s/api/%s/graphql.json", cfg.StoreDomain, cfg.APIVersion)
		c.token = cfg.StorefrontToken
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// Execute runs one GraphQL operation and returns the raw data payload.
func (c *StorefrontClient) Execute(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	if c.endpoint == "" || c.token == "" {
		return nil, ErrNotConfigured
	}

	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

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
		return nil, fmt.Errorf("%w: HTTP %d", ErrRequestFailed, resp.StatusCode)
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(envelope.Errors) > 0 {
		c.logger.Warn("graphql operation rejected",
			zap.String("message", envelope.Errors[0].Message),
			zap.Int("error_count", len(envelope.Errors)),
		)
		return nil, fmt.Errorf("%w: %s", ErrBackendRejected, envelope.Errors[0].Message)
	}

	return envelope.Data, nil
}
