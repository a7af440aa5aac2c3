package supplier

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/shared"
)

// browserUserAgent is sent when fetching supplier product pages; the
// supplier storefront serves a different (incomplete) page to bare clients.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// priceDigits matches the numeric part of a displayed price ("Rs. 1,299").
var priceDigits = regexp.MustCompile(`[\d,]+(?:\.\d+)?`)

// PageFetcher downloads supplier product pages.
type PageFetcher struct {
	httpClient *http.Client
}

// NewPageFetcher creates a fetcher with the given timeout.
func NewPageFetcher(timeout time.Duration) *PageFetcher {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &PageFetcher{httpClient: &http.Client{Timeout: timeout}}
}

// Fetch downloads one page and returns its HTML. Non-2xx responses and empty
// bodies are transport errors; the import fails before extraction starts.
func (f *PageFetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("supplier: failed to create page request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: HTTP %d fetching product page", shared.ErrTransport.WithMessage("supplier: product page fetch failed"), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("supplier: failed to read page: %w", err)
	}
	if len(body) == 0 {
		return "", shared.ErrTransport.WithMessage("supplier: product page is empty")
	}
	return string(body), nil
}

// PageExtractor pulls product fields out of a supplier product page.
// Selector lists are ordered from most to least specific; the storefront
// theme changes occasionally so each field has fallbacks.
type PageExtractor struct {
	baseURL string
}

// NewPageExtractor creates an extractor. baseURL absolutizes relative image
// sources, e.g. "https://hhcdropshipping.com".
func NewPageExtractor(baseURL string) *PageExtractor {
	return &PageExtractor{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Extract parses the page HTML into a source product. Missing title or price
// is an extraction error: a partial product is never returned.
func (e *PageExtractor) Extract(html string) (*catalog.SourceProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrExtraction.WithMessage("supplier: page could not be parsed"), err)
	}

	title := strings.TrimSpace(doc.Find(`h1.product-title, h1[class*="product"], .product-name, h1`).First().Text())

	description := ""
	if node := doc.Find(`.product-description, .description, [class*="description"]`).First(); node.Length() > 0 {
		if inner, err := node.Html(); err == nil {
			description = strings.TrimSpace(inner)
		}
	}

	priceText := doc.Find(`.price, .product-price, [class*="price"]`).First().Text()
	price := parsePrice(priceText)

	images := e.extractImages(doc)

	category := strings.TrimSpace(doc.Find(".breadcrumb a, .category-link").Last().Text())
	if category == "" {
		category = string(catalog.CategoryAccessories)
	}

	sku := strings.TrimSpace(skuPrefixPattern.ReplaceAllString(
		doc.Find(`.sku, [class*="sku"]`).First().Text(), ""))

	src := &catalog.SourceProduct{
		Title:       title,
		Description: description,
		Price:       price,
		Category:    category,
		Images:      images,
		SKU:         sku,
		Vendor:      catalog.DefaultVendor,
	}
	if src.Description == "" {
		src.Description = title
	}

	if err := src.Validate(); err != nil {
		return nil, err
	}
	return src, nil
}

// skuPrefixPattern strips a leading "SKU:" label from the displayed SKU.
var skuPrefixPattern = regexp.MustCompile(`(?i)SKU:?\s*`)

// parsePrice extracts the first numeric run from a displayed price.
func parsePrice(text string) decimal.Decimal {
	match := priceDigits.FindString(text)
	if match == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(match, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// extractImages collects product gallery images, skipping placeholders and
// logos, and absolutizes relative sources.
func (e *PageExtractor) extractImages(doc *goquery.Document) []string {
	images := make([]string, 0, 4)
	doc.Find(`img[class*="product"], .product-image img, .gallery img`).Each(func(_ int, sel *goquery.Selection) {
		src, ok := sel.Attr("src")
		if !ok || src == "" {
			src, _ = sel.Attr("data-src")
		}
		if src == "" || strings.Contains(src, "placeholder") || strings.Contains(src, "logo") {
			return
		}
		if !strings.HasPrefix(src, "http") {
			src = e.baseURL + src
		}
		images = append(images, src)
	})
	return images
}
