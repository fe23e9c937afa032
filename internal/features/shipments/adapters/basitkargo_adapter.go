package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"shipment-sync/internal/core/config"
	"shipment-sync/internal/core/httpclient"
	"shipment-sync/internal/features/shipments/domain"
	"shipment-sync/internal/features/shipments/ports"
)

const serviceName = "basitkargo"

// listKeys are the envelope keys BasitKargo has been seen wrapping filter results in.
var listKeys = []string{"content", "items", "data"}

// BasitKargoAdapter implements the ShipmentProvider interface using the BasitKargo REST API.
type BasitKargoAdapter struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewBasitKargoAdapter creates a new instance of BasitKargoAdapter.
func NewBasitKargoAdapter(cfg config.BasitKargoConfig, client *http.Client) *BasitKargoAdapter {
	return &BasitKargoAdapter{
		client:  client,
		baseURL: strings.TrimRight(cfg.URL, "/"),
		token:   cfg.Token,
	}
}

// GetOrder fetches the detail record of a shipment order.
func (a *BasitKargoAdapter) GetOrder(ctx context.Context, id string) (domain.Document, error) {
	endpoint := fmt.Sprintf("%s/order/%s", a.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var doc domain.Document
	if err := a.do(req, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = domain.Document{}
	}
	return doc, nil
}

type filterRequest struct {
	StartDate  string   `json:"startDate"`
	EndDate    string   `json:"endDate"`
	StatusList []string `json:"statusList,omitempty"`
	Page       int      `json:"page"`
	Size       int      `json:"size"`
}

// FilterOrders returns one page of orders created in the query window.
func (a *BasitKargoAdapter) FilterOrders(ctx context.Context, q ports.FilterQuery) ([]domain.Document, error) {
	payload, err := json.Marshal(filterRequest{
		StartDate:  q.StartDate,
		EndDate:    q.EndDate,
		StatusList: q.Statuses,
		Page:       q.Page,
		Size:       q.Size,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode filter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/order/filter", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var raw any
	if err := a.do(req, &raw); err != nil {
		return nil, err
	}
	return listFrom(raw), nil
}

func (a *BasitKargoAdapter) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: failed to execute request: %w", serviceName, err)
	}
	defer resp.Body.Close()

	return httpclient.DecodeJSON(serviceName, resp, out)
}

// listFrom accepts a bare array or an object wrapping one.
func listFrom(raw any) []domain.Document {
	var items []any
	switch t := raw.(type) {
	case []any:
		items = t
	case map[string]any:
		for _, key := range listKeys {
			if arr, ok := t[key].([]any); ok {
				items = arr
				break
			}
		}
	}

	docs := make([]domain.Document, 0, len(items))
	for _, item := range items {
		if obj, ok := item.(map[string]any); ok {
			docs = append(docs, domain.Document(obj))
		}
	}
	return docs
}
