package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipment-sync/internal/core/config"
	"shipment-sync/internal/core/httpclient"
	"shipment-sync/internal/core/proxy"
	"shipment-sync/internal/features/orders/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// newTestServer serves a canned GraphQL response and records the last request.
func newTestServer(t *testing.T, status int, response string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/api/2024-10/graphql.json", r.URL.Path)
		assert.Equal(t, "shpat_test", r.Header.Get("X-Shopify-Access-Token"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newTestAdapter(url string) *ShopifyAdapter {
	cfg := config.ShopifyConfig{Shop: url, AccessToken: "shpat_test", APIVersion: "2024-10"}
	return NewShopifyAdapter(cfg, httpclient.NewClient(2*time.Second, proxy.Settings{}))
}

func TestNewShopifyAdapter_Endpoint(t *testing.T) {
	a := NewShopifyAdapter(config.ShopifyConfig{Shop: "my-store.myshopify.com", APIVersion: "2024-10"}, http.DefaultClient)
	assert.Equal(t, "https://my-store.myshopify.com/admin/api/2024-10/graphql.json", a.endpoint)
}

func TestShopifyAdapter_FindByName(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{"data":{"orders":{"nodes":[{
		"id":"gid://shopify/Order/1","name":"#LP-1009",
		"fulfillmentOrders":{"nodes":[{"id":"fo_1","status":"OPEN"},{"id":"fo_2","status":"CLOSED"}]}
	}]}}}`)

	order, err := newTestAdapter(server.URL).FindByName(context.Background(), `name:"#LP-1009" OR name:"LP-1009"`)
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, "gid://shopify/Order/1", order.ID)
	assert.Equal(t, "#LP-1009", order.Name)
	assert.Equal(t, []domain.FulfillmentUnit{
		{ID: "fo_1", Status: domain.FulfillmentStatusOpen},
		{ID: "fo_2", Status: domain.FulfillmentStatusClosed},
	}, order.Units)

	assert.Contains(t, captured.Query, "orders(first: 1, query: $query)")
	assert.Equal(t, `name:"#LP-1009" OR name:"LP-1009"`, captured.Variables["query"])
}

func TestShopifyAdapter_FindByName_NoMatch(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"data":{"orders":{"nodes":[]}}}`)

	order, err := newTestAdapter(server.URL).FindByName(context.Background(), "name:x")
	require.NoError(t, err)
	assert.Nil(t, order)
}

func TestShopifyAdapter_FindByReference(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		server, captured := newTestServer(t, http.StatusOK, `{"data":{"order":{
			"id":"gid://shopify/Order/7708726460709","name":"#LP-2001",
			"fulfillmentOrders":{"nodes":[]}
		}}}`)

		order, err := newTestAdapter(server.URL).FindByReference(context.Background(), "gid://shopify/Order/7708726460709")
		require.NoError(t, err)
		require.NotNil(t, order)
		assert.Equal(t, "#LP-2001", order.Name)
		assert.Empty(t, order.Units)
		assert.Equal(t, "gid://shopify/Order/7708726460709", captured.Variables["id"])
	})

	t.Run("Null order", func(t *testing.T) {
		server, _ := newTestServer(t, http.StatusOK, `{"data":{"order":null}}`)

		order, err := newTestAdapter(server.URL).FindByReference(context.Background(), "gid://shopify/Order/1")
		require.NoError(t, err)
		assert.Nil(t, order)
	})
}

func TestShopifyAdapter_CreateFulfillment(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{"data":{"fulfillmentCreateV2":{
		"fulfillment":{"id":"gid://shopify/Fulfillment/9","status":"SUCCESS"},
		"userErrors":[]
	}}}`)

	result, err := newTestAdapter(server.URL).CreateFulfillment(context.Background(), "fo_1",
		domain.TrackingWrite{Company: "Other", Number: "TRK1"}, true)
	require.NoError(t, err)
	assert.Equal(t, &domain.FulfillmentResult{
		UnitID:        "fo_1",
		FulfillmentID: "gid://shopify/Fulfillment/9",
		Status:        "SUCCESS",
	}, result)

	input, ok := captured.Variables["fulfillment"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, input["notifyCustomer"])
	assert.Equal(t, map[string]any{"company": "Other", "number": "TRK1"}, input["trackingInfo"])
	assert.Equal(t, []any{map[string]any{"fulfillmentOrderId": "fo_1"}}, input["lineItemsByFulfillmentOrder"])
}

func TestShopifyAdapter_CreateFulfillment_UserErrors(t *testing.T) {
	server, _ := newTestServer(t, http.StatusOK, `{"data":{"fulfillmentCreateV2":{
		"fulfillment":null,
		"userErrors":[{"field":["fulfillment"],"message":"Fulfillment order is closed"}]
	}}}`)

	_, err := newTestAdapter(server.URL).CreateFulfillment(context.Background(), "fo_1",
		domain.TrackingWrite{Company: "Other", Number: "TRK1", URL: "https://t.example/TRK1"}, false)

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "fo_1", validationErr.UnitID)
	assert.Equal(t, []domain.UserError{{Field: []string{"fulfillment"}, Message: "Fulfillment order is closed"}}, validationErr.Errors)
}

func TestShopifyAdapter_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		response string
		contains string
	}{
		{name: "Top-level GraphQL errors", status: http.StatusOK, response: `{"errors":[{"message":"Throttled"}]}`, contains: "Throttled"},
		{name: "Non-2xx", status: http.StatusUnauthorized, response: `{"errors":"Invalid API key"}`, contains: "status 401"},
		{name: "Missing data", status: http.StatusOK, response: `{}`, contains: "response has no data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newTestServer(t, tt.status, tt.response)

			_, err := newTestAdapter(server.URL).FindByName(context.Background(), "name:x")
			require.ErrorIs(t, err, httpclient.ErrUpstream)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestShopifyAdapter_HealthCheck(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{"data":{"shop":{"name":"LP Store"}}}`)

	require.NoError(t, newTestAdapter(server.URL).HealthCheck(context.Background()))
	assert.Contains(t, captured.Query, "shop")
}
