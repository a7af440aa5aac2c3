package shopify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/zaylo/backend/internal/domain/catalog"
	"github.com/zaylo/backend/internal/domain/shared"
	"github.com/zaylo/backend/internal/infrastructure/config"
)

func newTestAdminClient(server *httptest.Server) *AdminClient {
	return &AdminClient{
		baseURL:    server.URL,
		token:      "shpat_test",
		httpClient: server.Client(),
		logger:     zap.NewNop(),
	}
}

func testNormalizedProduct() *catalog.Product {
	return &catalog.Product{
		Title:       "65W GaN Charger",
		BodyHTML:    "<p>Compact fast charger.</p>",
		Vendor:      catalog.DefaultVendor,
		ProductType: catalog.CategoryChargers,
		Tags:        []string{"HHC", "Imported", "Dropshipping"},
		Variants: []catalog.Variant{{
			Price:           decimal.RequireFromString("25.99"),
			SKU:             "HHC-1700000000000",
			InventoryPolicy: "continue",
		}},
		Images: []string{"https://hhcdropshipping.com/img/charger.jpg"},
	}
}

func TestAdminClient_NotConfigured(t *testing.T) {
	client := NewAdminClient(&config.ShopifyConfig{}, zap.NewNop())

	_, err := client.CreateProduct(context.Background(), testNormalizedProduct())
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = client.FindProductBySKU(context.Background(), "HHC-1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAdminClient_CreateProduct(t *testing.T) {
	var gotMethod, gotPath, gotToken string
	var gotBody adminProductEnvelope

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Write([]byte(`{"product":{"id":7001,"handle":"65w-gan-charger","title":"65W GaN Charger","tags":"HHC, Imported, Dropshipping","variants":[{"id":9001,"sku":"HHC-1700000000000","price":"25.99","inventory_quantity":0}]}}`))
	}))
	defer server.Close()

	client := newTestAdminClient(server)
	remote, err := client.CreateProduct(context.Background(), testNormalizedProduct())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/products.json", gotPath)
	assert.Equal(t, "shpat_test", gotToken)

	// The wire payload carries the normalized fields.
	assert.Equal(t, "65W GaN Charger", gotBody.Product.Title)
	assert.Equal(t, "Chargers", gotBody.Product.Type)
	assert.Equal(t, "HHC, Imported, Dropshipping", gotBody.Product.Tags)
	require.Len(t, gotBody.Product.Variants, 1)
	assert.Equal(t, "25.99", gotBody.Product.Variants[0].Price)
	assert.Equal(t, "continue", gotBody.Product.Variants[0].InventoryPolicy)
	require.Len(t, gotBody.Product.Images, 1)

	assert.Equal(t, int64(7001), remote.ID)
	assert.Equal(t, "65w-gan-charger", remote.Handle)
	require.NotNil(t, remote.PrimaryVariant())
	assert.Equal(t, "HHC-1700000000000", remote.PrimaryVariant().SKU)
	assert.True(t, remote.PrimaryVariant().Price.Equal(decimal.RequireFromString("25.99")))
}

func TestAdminClient_UpdateProduct(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.Write([]byte(`{"product":{"id":42,"handle":"65w-gan-charger","variants":[{"id":9001,"sku":"HHC-1700000000000","price":"27.99"}]}}`))
	}))
	defer server.Close()

	client := newTestAdminClient(server)
	remote, err := client.UpdateProduct(context.Background(), 42, testNormalizedProduct())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/products/42.json", gotPath)
	assert.Equal(t, int64(42), remote.ID)
}

func TestAdminClient_CreateProduct_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"title":["can't be blank"]}}`))
	}))
	defer server.Close()

	client := newTestAdminClient(server)
	_, err := client.CreateProduct(context.Background(), testNormalizedProduct())
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Contains(t, err.Error(), "422")
}

func TestAdminClient_FindProductBySKU_SinglePage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "250", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"products":[
			{"id":1,"handle":"a","variants":[{"id":11,"sku":"OTHER-1","price":"9.99"}]},
			{"id":2,"handle":"b","variants":[{"id":22,"sku":"HHC-42","price":"19.99"}]}
		]}`))
	}))
	defer server.Close()

	client := newTestAdminClient(server)
	remote, err := client.FindProductBySKU(context.Background(), "HHC-42")
	require.NoError(t, err)
	assert.Equal(t, int64(2), remote.ID)
}

func TestAdminClient_FindProductBySKU_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"products":[{"id":1,"handle":"a","variants":[{"id":11,"sku":"OTHER-1","price":"9.99"}]}]}`))
	}))
	defer server.Close()

	client := newTestAdminClient(server)
	_, err := client.FindProductBySKU(context.Background(), "HHC-404")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestAdminClient_FindProductBySKU_Paginates(t *testing.T) {
	var requests []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r.URL.Query().Get("since_id"))

		if r.URL.Query().Get("since_id") == "" {
			// Full first page, no match: the client must keep going.
			page := adminProductsEnvelope{Products: make([]adminProduct, adminPageSize)}
			for i := range page.Products {
				page.Products[i] = adminProduct{
					ID:       int64(i + 1),
					Variants: []adminVariant{{ID: int64(i + 1000), SKU: fmt.Sprintf("OTHER-%d", i), Price: "1.00"}},
				}
			}
			json.NewEncoder(w).Encode(page)
			return
		}

		w.Write([]byte(`{"products":[{"id":251,"handle":"deep","variants":[{"id":999,"sku":"HHC-DEEP","price":"5.00"}]}]}`))
	}))
	defer server.Close()

	client := newTestAdminClient(server)
	remote, err := client.FindProductBySKU(context.Background(), "HHC-DEEP")
	require.NoError(t, err)
	assert.Equal(t, int64(251), remote.ID)

	require.Len(t, requests, 2)
	assert.Equal(t, "", requests[0])
	assert.Equal(t, "250", requests[1])
}

func TestAdminClient_FindProductBySKU_EmptySKU(t *testing.T) {
	client := NewAdminClient(&config.ShopifyConfig{
		StoreDomain: "shop.myshopify.com",
		AdminToken:  "shpat_x",
	}, zap.NewNop())

	_, err := client.FindProductBySKU(context.Background(), "")
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}
