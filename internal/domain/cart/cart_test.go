package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zaylo/backend/internal/domain/shared"
)

func TestCartErrors_AreValidationFailures(t *testing.T) {
	assert.ErrorIs(t, ErrInvalidQuantity, shared.ErrValidation)
	assert.ErrorIs(t, ErrEmptyCartID, shared.ErrValidation)
	assert.ErrorIs(t, ErrEmptyLineID, shared.ErrValidation)
	assert.ErrorIs(t, ErrEmptyVariantID, shared.ErrValidation)
}

func TestCart_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cart    Cart
		wantErr error
	}{
		{
			name: "valid cart",
			cart: Cart{
				ID: "gid://shopify/Cart/abc123",
				Lines: []Line{
					{ID: "line-1", Quantity: 1},
					{ID: "line-2", Quantity: 3},
				},
			},
			wantErr: nil,
		},
		{
			name:    "missing ID",
			cart:    Cart{},
			wantErr: ErrEmptyCartID,
		},
		{
			name: "zero quantity line",
			cart: Cart{
				ID:    "gid://shopify/Cart/abc123",
				Lines: []Line{{ID: "line-1", Quantity: 0}},
			},
			wantErr: ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cart.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCart_FindLine(t *testing.T) {
	c := Cart{
		ID: "cart-1",
		Lines: []Line{
			{ID: "line-1", Quantity: 1, Cost: Money{Amount: decimal.NewFromInt(1300), CurrencyCode: "PKR"}},
			{ID: "line-2", Quantity: 2},
		},
	}

	line := c.FindLine("line-2")
	assert.NotNil(t, line)
	assert.Equal(t, 2, line.Quantity)

	assert.Nil(t, c.FindLine("line-9"))
}

func TestLineInput_Validate(t *testing.T) {
	assert.NoError(t, LineInput{MerchandiseID: "variant-1", Quantity: 1}.Validate())
	assert.ErrorIs(t, LineInput{Quantity: 1}.Validate(), ErrEmptyVariantID)
	assert.ErrorIs(t, LineInput{MerchandiseID: "variant-1", Quantity: 0}.Validate(), ErrInvalidQuantity)
}

func TestLineUpdate_Validate(t *testing.T) {
	assert.NoError(t, LineUpdate{LineID: "line-1", Quantity: 2}.Validate())
	assert.ErrorIs(t, LineUpdate{Quantity: 2}.Validate(), ErrEmptyLineID)
	assert.ErrorIs(t, LineUpdate{LineID: "line-1", Quantity: -1}.Validate(), ErrInvalidQuantity)
}
