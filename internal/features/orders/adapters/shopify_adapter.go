package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"shipment-sync/internal/core/config"
	"shipment-sync/internal/core/httpclient"
	"shipment-sync/internal/features/orders/domain"
)

const serviceName = "shopify"

// errGraphQL is the cause attached to responses carrying top-level GraphQL errors.
var errGraphQL = errors.New("graphql errors")

const orderFields = `
fragment OrderFields on Order {
  id
  name
  fulfillmentOrders(first: 50) {
    nodes { id status }
  }
}`

const findByNameQuery = `query FindOrderByName($query: String!) {
  orders(first: 1, query: $query) {
    nodes { ...OrderFields }
  }
}` + orderFields

const findByReferenceQuery = `query FindOrderByID($id: ID!) {
  order(id: $id) { ...OrderFields }
}` + orderFields

const createFulfillmentMutation = `mutation CreateFulfillment($fulfillment: FulfillmentV2Input!) {
  fulfillmentCreateV2(fulfillment: $fulfillment) {
    fulfillment { id status }
    userErrors { field message }
  }
}`

const healthQuery = `query { shop { name } }`

// ShopifyAdapter implements the OrderProvider interface using the Shopify Admin GraphQL API.
type ShopifyAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// endpoint is the fully qualified graphql.json URL.
	endpoint string
	// token is the Admin API access token.
	token string
}

// NewShopifyAdapter creates a new instance of ShopifyAdapter.
// Shop may be a bare myshopify domain or a full base URL.
func NewShopifyAdapter(cfg config.ShopifyConfig, client *http.Client) *ShopifyAdapter {
	base := strings.TrimRight(cfg.Shop, "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return &ShopifyAdapter{
		client:   client,
		endpoint: fmt.Sprintf("%s/admin/api/%s/graphql.json", base, cfg.APIVersion),
		token:    cfg.AccessToken,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlResponse struct {
	Data   json.RawMessage   `json:"data"`
	Errors []json.RawMessage `json:"errors"`
}

type orderNode struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	FulfillmentOrders struct {
		Nodes []domain.FulfillmentUnit `json:"nodes"`
	} `json:"fulfillmentOrders"`
}

func (n *orderNode) toDomain() *domain.ResolvedOrder {
	units := n.FulfillmentOrders.Nodes
	if units == nil {
		units = []domain.FulfillmentUnit{}
	}
	return &domain.ResolvedOrder{ID: n.ID, Name: n.Name, Units: units}
}

// FindByName returns the first order matching the search query, or nil.
func (a *ShopifyAdapter) FindByName(ctx context.Context, query string) (*domain.ResolvedOrder, error) {
	var data struct {
		Orders struct {
			Nodes []orderNode `json:"nodes"`
		} `json:"orders"`
	}
	if err := a.execute(ctx, findByNameQuery, map[string]any{"query": query}, &data); err != nil {
		return nil, err
	}
	if len(data.Orders.Nodes) == 0 {
		return nil, nil
	}
	return data.Orders.Nodes[0].toDomain(), nil
}

// FindByReference fetches an order by global id, or nil when Shopify returns null.
func (a *ShopifyAdapter) FindByReference(ctx context.Context, gid string) (*domain.ResolvedOrder, error) {
	var data struct {
		Order *orderNode `json:"order"`
	}
	if err := a.execute(ctx, findByReferenceQuery, map[string]any{"id": gid}, &data); err != nil {
		return nil, err
	}
	if data.Order == nil {
		return nil, nil
	}
	return data.Order.toDomain(), nil
}

type trackingInfoInput struct {
	Company string `json:"company"`
	Number  string `json:"number"`
	URL     string `json:"url,omitempty"`
}

type lineItemsByFulfillmentOrder struct {
	FulfillmentOrderID string `json:"fulfillmentOrderId"`
}

type fulfillmentInput struct {
	NotifyCustomer              bool                          `json:"notifyCustomer"`
	TrackingInfo                trackingInfoInput             `json:"trackingInfo"`
	LineItemsByFulfillmentOrder []lineItemsByFulfillmentOrder `json:"lineItemsByFulfillmentOrder"`
}

// CreateFulfillment runs fulfillmentCreateV2 for a single fulfillment order.
func (a *ShopifyAdapter) CreateFulfillment(ctx context.Context, unitID string, tracking domain.TrackingWrite, notifyCustomer bool) (*domain.FulfillmentResult, error) {
	input := fulfillmentInput{
		NotifyCustomer: notifyCustomer,
		TrackingInfo: trackingInfoInput{
			Company: tracking.Company,
			Number:  tracking.Number,
			URL:     tracking.URL,
		},
		LineItemsByFulfillmentOrder: []lineItemsByFulfillmentOrder{{FulfillmentOrderID: unitID}},
	}

	var data struct {
		FulfillmentCreateV2 struct {
			Fulfillment *struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"fulfillment"`
			UserErrors []domain.UserError `json:"userErrors"`
		} `json:"fulfillmentCreateV2"`
	}
	if err := a.execute(ctx, createFulfillmentMutation, map[string]any{"fulfillment": input}, &data); err != nil {
		return nil, err
	}

	payload := data.FulfillmentCreateV2
	if len(payload.UserErrors) > 0 {
		return nil, &domain.ValidationError{UnitID: unitID, Errors: payload.UserErrors}
	}
	if payload.Fulfillment == nil {
		upstreamErr := httpclient.NewUpstreamError(serviceName, 0, nil)
		upstreamErr.Cause = errors.New("fulfillmentCreateV2 returned no fulfillment")
		return nil, upstreamErr
	}

	return &domain.FulfillmentResult{
		UnitID:        unitID,
		FulfillmentID: payload.Fulfillment.ID,
		Status:        payload.Fulfillment.Status,
	}, nil
}

// HealthCheck verifies that the Admin API is reachable and the token is valid.
func (a *ShopifyAdapter) HealthCheck(ctx context.Context) error {
	var data struct {
		Shop struct {
			Name string `json:"name"`
		} `json:"shop"`
	}
	if err := a.execute(ctx, healthQuery, nil, &data); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// execute posts a GraphQL document and decodes its data member into out.
// Top-level errors are reported as upstream failures.
func (a *ShopifyAdapter) execute(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", a.token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to execute request: %w", serviceName, err)
	}
	defer resp.Body.Close()

	var envelope gqlResponse
	if err := httpclient.DecodeJSON(serviceName, resp, &envelope); err != nil {
		return err
	}

	if len(envelope.Errors) > 0 {
		raw, _ := json.Marshal(envelope.Errors)
		upstreamErr := httpclient.NewUpstreamError(serviceName, 0, raw)
		upstreamErr.Cause = errGraphQL
		return upstreamErr
	}

	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		upstreamErr := httpclient.NewUpstreamError(serviceName, 0, nil)
		upstreamErr.Cause = errors.New("response has no data")
		return upstreamErr
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		upstreamErr := httpclient.NewUpstreamError(serviceName, 0, envelope.Data)
		upstreamErr.Cause = err
		return upstreamErr
	}
	return nil
}
