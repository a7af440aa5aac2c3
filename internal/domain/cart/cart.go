package cart

import (
	"github.com/shopspring/decimal"

	"github.com/zaylo/backend/internal/domain/shared"
)

// Cart errors. All are validation failures so the HTTP layer maps them to
// client errors rather than a generic server error.
var (
	ErrInvalidQuantity = shared.ErrValidation.WithMessage("cart line quantity must be at least 1")
	ErrEmptyCartID     = shared.ErrValidation.WithMessage("cart ID is empty")
	ErrEmptyLineID     = shared.ErrValidation.WithMessage("cart line ID is empty")
	ErrEmptyVariantID  = shared.ErrValidation.WithMessage("merchandise variant ID is empty")
)

// Money is an amount in a specific currency as reported by the commerce backend.
type Money struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currency_code"`
}

// Merchandise is one concrete purchasable configuration of a product
// (a specific variant) carrying its own price and identifier.
type Merchandise struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	ProductTitle  string `json:"product_title"`
	ProductHandle string `json:"product_handle"`
	ImageURL      string `json:"image_url,omitempty"`
	Price         Money  `json:"price"`
}

// Line is a single line item in a cart. Quantity is always a positive integer.
type Line struct {
	ID          string      `json:"id"`
	Quantity    int         `json:"quantity"`
	Merchandise Merchandise `json:"merchandise"`
	Cost        Money       `json:"cost"`
}

// Cost is the backend-computed cost summary for the whole cart.
type Cost struct {
	Subtotal Money `json:"subtotal"`
	Total    Money `json:"total"`
	Tax      Money `json:"tax"`
}

// Cart mirrors the remote backend's cart object. It is a snapshot: the remote
// cart is the single source of truth, local copies are a cache and never
// authoritative.
type Cart struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkout_url,omitempty"`
	Lines         []Line `json:"lines"`
	Cost          Cost   `json:"cost"`
	TotalQuantity int    `json:"total_quantity"`
}

// Validate checks the cart invariants: non-empty ID and positive line quantities.
func (c *Cart) Validate() error {
	if c.ID == "" {
		return ErrEmptyCartID
	}
	for i := range c.Lines {
		if c.Lines[i].Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// FindLine returns the line with the given ID, or nil if absent.
func (c *Cart) FindLine(lineID string) *Line {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// LineInput describes a line to append to a cart.
type LineInput struct {
	MerchandiseID string
	Quantity      int
}

// Validate checks the line input invariants.
func (l LineInput) Validate() error {
	if l.MerchandiseID == "" {
		return ErrEmptyVariantID
	}
	if l.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// LineUpdate describes a quantity change for an existing line.
type LineUpdate struct {
	LineID   string
	Quantity int
}

// Validate checks the line update invariants.
func (l LineUpdate) Validate() error {
	if l.LineID == "" {
		return ErrEmptyLineID
	}
	if l.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}
