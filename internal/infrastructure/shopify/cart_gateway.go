package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/zaylo/backend/internal/domain/cart"
	"github.com/zaylo/backend/internal/domain/shared"
)

// StorefrontClient implements cart.Gateway via the cart GraphQL mutations.
var _ cart.Gateway = (*StorefrontClient)(nil)

// CreateCart creates a new empty remote cart.
func (c *StorefrontClient) CreateCart(ctx context.Context) (*cart.Cart, error) {
	data, err := c.Execute(ctx, cartCreateMutation, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		CartCreate cartMutationPayload `json:"cartCreate"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return cartFromMutation(&resp.CartCreate)
}

// GetCart fetches the remote cart by ID. Returns shared.ErrNotFound when the
// backend no longer knows the cart (expired or completed checkout).
func (c *StorefrontClient) GetCart(ctx context.Context, cartID string) (*cart.Cart, error) {
	if cartID == "" {
		return nil, cart.ErrEmptyCartID
	}

	data, err := c.Execute(ctx, cartQuery, map[string]any{"cartId": cartID})
	if err != nil {
		return nil, err
	}

	var resp struct {
		Cart *cartPayload `json:"cart"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	domainCart := resp.Cart.toDomain()
	if domainCart == nil {
		return nil, shared.ErrNotFound
	}
	return domainCart, nil
}

// AddLines appends lines to the cart and returns the full updated snapshot.
func (c *StorefrontClient) AddLines(ctx context.Context, cartID string, lines []cart.LineInput) (*cart.Cart, error) {
	if cartID == "" {
		return nil, cart.ErrEmptyCartID
	}
	wireLines := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		wireLines = append(wireLines, map[string]any{
			"merchandiseId": line.MerchandiseID,
			"quantity":      line.Quantity,
		})
	}

	data, err := c.Execute(ctx, cartLinesAddMutation, map[string]any{
		"cartId": cartID,
		"lines":  wireLines,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		CartLinesAdd cartMutationPayload `json:"cartLinesAdd"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return cartFromMutation(&resp.CartLinesAdd)
}

// RemoveLines removes lines by ID and returns the full updated snapshot.
func (c *StorefrontClient) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*cart.Cart, error) {
	if cartID == "" {
		return nil, cart.ErrEmptyCartID
	}
	for _, id := range lineIDs {
		if id == "" {
			return nil, cart.ErrEmptyLineID
		}
	}

	data, err := c.Execute(ctx, cartLinesRemoveMutation, map[string]any{
		"cartId":  cartID,
		"lineIds": lineIDs,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		CartLinesRemove cartMutationPayload `json:"cartLinesRemove"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return cartFromMutation(&resp.CartLinesRemove)
}

// UpdateLines changes line quantities and returns the full updated snapshot.
func (c *StorefrontClient) UpdateLines(ctx context.Context, cartID string, updates []cart.LineUpdate) (*cart.Cart, error) {
	if cartID == "" {
		return nil, cart.ErrEmptyCartID
	}
	wireLines := make([]map[string]any, 0, len(updates))
	for _, update := range updates {
		if err := update.Validate(); err != nil {
			return nil, err
		}
		wireLines = append(wireLines, map[string]any{
			"id":       update.LineID,
			"quantity": update.Quantity,
		})
	}

	data, err := c.Execute(ctx, cartLinesUpdateMutation, map[string]any{
		"cartId": cartID,
		"lines":  wireLines,
	})
	if err != nil {
		return nil, err
	}

	var resp struct {
		CartLinesUpdate cartMutationPayload `json:"cartLinesUpdate"`
	}
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return cartFromMutation(&resp.CartLinesUpdate)
}

// cartFromMutation unwraps a cart mutation payload, surfacing user errors.
func cartFromMutation(payload *cartMutationPayload) (*cart.Cart, error) {
	if len(payload.UserErrors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrBackendRejected, payload.UserErrors[0].Message)
	}
	domainCart := payload.Cart.toDomain()
	if domainCart == nil {
		return nil, fmt.Errorf("%w: mutation returned no cart", ErrInvalidResponse)
	}
	return domainCart, nil
}
