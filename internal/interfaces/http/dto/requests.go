package dto

// AddLineRequest adds one variant to the cart.
type AddLineRequest struct {
	VariantID string `json:"variant_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateLineRequest changes a cart line's quantity.
type UpdateLineRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// ListProductsRequest bounds catalog listings.
type ListProductsRequest struct {
	First int `form:"first" binding:"omitempty,min=1,max=100"`
}

// ImportProductRequest imports one supplier product page.
type ImportProductRequest struct {
	URL           string  `json:"url" binding:"required,url"`
	MarkupPercent float64 `json:"markup_percent" binding:"omitempty,markup"`
}

// ListRunsRequest bounds sync history listings.
type ListRunsRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}
