package cart

import "context"

// Gateway is the port to the remote commerce backend's cart API.
// The concrete implementation lives in the infrastructure layer.
// Every mutation returns the full cart as confirmed by the backend;
// callers replace their snapshot with it wholesale.
type Gateway interface {
	// CreateCart creates a new empty cart on the backend.
	CreateCart(ctx context.Context) (*Cart, error)

	// GetCart fetches a cart by its opaque ID. Returns shared.ErrNotFound
	// when the backend no longer knows the cart.
	GetCart(ctx context.Context, cartID string) (*Cart, error)

	// AddLines appends lines to the cart and returns the updated cart.
	AddLines(ctx context.Context, cartID string, lines []LineInput) (*Cart, error)

	// RemoveLines removes the given lines and returns the updated cart.
	RemoveLines(ctx context.Context, cartID string, lineIDs []string) (*Cart, error)

	// UpdateLines changes line quantities and returns the updated cart.
	UpdateLines(ctx context.Context, cartID string, updates []LineUpdate) (*Cart, error)
}

// IDStore persists the opaque cart identifier across sessions, keyed by an
// opaque session key. Only the ID is persisted; cart contents always come
// from the backend.
type IDStore interface {
	// Load returns the persisted cart ID for the key, or "" when absent.
	Load(ctx context.Context, key string) (string, error)

	// Save persists the cart ID for the key.
	Save(ctx context.Context, key, cartID string) error
}
