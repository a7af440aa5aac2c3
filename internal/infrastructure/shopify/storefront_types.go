package shopify

import (
	"github.com/shopspring/decimal"

	"github.com/zaylo/backend/internal/domain/cart"
	"github.com/zaylo/backend/internal/domain/catalog"
)

// Wire types mirroring the storefront GraphQL schema. Amounts arrive as
// decimal strings and are parsed leniently: an unparsable amount becomes zero
// rather than failing the whole operation.

type moneyPayload struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

func (m *moneyPayload) toDomain() cart.Money {
	if m == nil {
		return cart.Money{}
	}
	return cart.Money{
		Amount:       parseAmount(m.Amount),
		CurrencyCode: m.CurrencyCode,
	}
}

func parseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

type imagePayload struct {
	URL string `json:"url"`
}

type cartMerchandisePayload struct {
	ID      string        `json:"id"`
	Title   string        `json:"title"`
	Price   *moneyPayload `json:"price"`
	Product struct {
		Title  string `json:"title"`
		Handle string `json:"handle"`
	} `json:"product"`
	Image *imagePayload `json:"image"`
}

type cartLinePayload struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
	Cost     struct {
		TotalAmount *moneyPayload `json:"totalAmount"`
	} `json:"cost"`
	Merchandise cartMerchandisePayload `json:"merchandise"`
}

type cartPayload struct {
	ID            string `json:"id"`
	CheckoutURL   string `json:"checkoutUrl"`
	TotalQuantity int    `json:"totalQuantity"`
	Cost          struct {
		SubtotalAmount *moneyPayload `json:"subtotalAmount"`
		TotalAmount    *moneyPayload `json:"totalAmount"`
		TotalTaxAmount *moneyPayload `json:"totalTaxAmount"`
	} `json:"cost"`
	Lines struct {
		Edges []struct {
			Node cartLinePayload `json:"node"`
		} `json:"edges"`
	} `json:"lines"`
}

func (p *cartPayload) toDomain() *cart.Cart {
	if p == nil || p.ID == "" {
		return nil
	}
	c := &cart.Cart{
		ID:            p.ID,
		CheckoutURL:   p.CheckoutURL,
		TotalQuantity: p.TotalQuantity,
		Lines:         make([]cart.Line, 0, len(p.Lines.Edges)),
		Cost: cart.Cost{
			Subtotal: p.Cost.SubtotalAmount.toDomain(),
			Total:    p.Cost.TotalAmount.toDomain(),
			Tax:      p.Cost.TotalTaxAmount.toDomain(),
		},
	}
	for _, edge := range p.Lines.Edges {
		node := edge.Node
		line := cart.Line{
			ID:       node.ID,
			Quantity: node.Quantity,
			Cost:     node.Cost.TotalAmount.toDomain(),
			Merchandise: cart.Merchandise{
				ID:            node.Merchandise.ID,
				Title:         node.Merchandise.Title,
				ProductTitle:  node.Merchandise.Product.Title,
				ProductHandle: node.Merchandise.Product.Handle,
				Price:         node.Merchandise.Price.toDomain(),
			},
		}
		if node.Merchandise.Image != nil {
			line.Merchandise.ImageURL = node.Merchandise.Image.URL
		}
		c.Lines = append(c.Lines, line)
	}
	return c
}

type userErrorPayload struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type cartMutationPayload struct {
	Cart       *cartPayload       `json:"cart"`
	UserErrors []userErrorPayload `json:"userErrors"`
}

type productVariantPayload struct {
	ID               string        `json:"id"`
	Title            string        `json:"title"`
	AvailableForSale bool          `json:"availableForSale"`
	Price            *moneyPayload `json:"price"`
}

type productPayload struct {
	ID              string   `json:"id"`
	Handle          string   `json:"handle"`
	Title           string   `json:"title"`
	DescriptionHTML string   `json:"descriptionHtml"`
	Vendor          string   `json:"vendor"`
	ProductType     string   `json:"productType"`
	Tags            []string `json:"tags"`
	Images          struct {
		Edges []struct {
			Node imagePayload `json:"node"`
		} `json:"edges"`
	} `json:"images"`
	Variants struct {
		Edges []struct {
			Node productVariantPayload `json:"node"`
		} `json:"edges"`
	} `json:"variants"`
}

func (p *productPayload) toDomain() *catalog.StorefrontProduct {
	if p == nil || p.ID == "" {
		return nil
	}
	sp := &catalog.StorefrontProduct{
		ID:              p.ID,
		Handle:          p.Handle,
		Title:           p.Title,
		DescriptionHTML: p.DescriptionHTML,
		Vendor:          p.Vendor,
		ProductType:     p.ProductType,
		Tags:            p.Tags,
		Images:          make([]string, 0, len(p.Images.Edges)),
		Variants:        make([]catalog.StorefrontVariant, 0, len(p.Variants.Edges)),
	}
	for _, edge := range p.Images.Edges {
		sp.Images = append(sp.Images, edge.Node.URL)
	}
	for _, edge := range p.Variants.Edges {
		node := edge.Node
		variant := catalog.StorefrontVariant{
			ID:               node.ID,
			Title:            node.Title,
			AvailableForSale: node.AvailableForSale,
		}
		if node.Price != nil {
			variant.Price = parseAmount(node.Price.Amount)
			variant.CurrencyCode = node.Price.CurrencyCode
		}
		sp.Variants = append(sp.Variants, variant)
	}
	return sp
}

type productConnectionPayload struct {
	Edges []struct {
		Node productPayload `json:"node"`
	} `json:"edges"`
}

func (p *productConnectionPayload) toDomain() []*catalog.StorefrontProduct {
	products := make([]*catalog.StorefrontProduct, 0, len(p.Edges))
	for i := range p.Edges {
		if sp := p.Edges[i].Node.toDomain(); sp != nil {
			products = append(products, sp)
		}
	}
	return products
}
