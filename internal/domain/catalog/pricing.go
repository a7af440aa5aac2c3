package catalog

import "github.com/shopspring/decimal"

// DefaultMarkupPercent is applied when the caller provides no markup
// (or a non-positive one).
const DefaultMarkupPercent = 30

var hundred = decimal.NewFromInt(100)

// NormalizeMarkup returns the markup to use: the given value when positive,
// otherwise the default.
func NormalizeMarkup(markupPercent float64) decimal.Decimal {
	if markupPercent <= 0 {
		return decimal.NewFromInt(DefaultMarkupPercent)
	}
	return decimal.NewFromFloat(markupPercent)
}

// SellingPrice computes the selling price from a supplier cost price:
// round(sourcePrice * (1 + markup/100)), rounded to the nearest integer
// currency unit.
func SellingPrice(sourcePrice, markupPercent decimal.Decimal) decimal.Decimal {
	return sourcePrice.Mul(hundred.Add(markupPercent)).Div(hundred).Round(0)
}

// Profit is the difference between the selling price and the supplier cost.
func Profit(sourcePrice, sellingPrice decimal.Decimal) decimal.Decimal {
	return sellingPrice.Sub(sourcePrice)
}
