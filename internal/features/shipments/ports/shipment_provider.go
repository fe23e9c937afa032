package ports

import (
	"context"

	"shipment-sync/internal/features/shipments/domain"
)

// FilterQuery selects a page of shipment orders in a creation date window.
type FilterQuery struct {
	// StartDate and EndDate are inclusive, formatted 2006-01-02.
	StartDate string
	EndDate   string
	Statuses  []string
	// Page is zero based.
	Page int
	Size int
}

// ShipmentProvider defines the interface for reading orders from the shipping provider.
type ShipmentProvider interface {
	// GetOrder fetches the full detail record of a shipment order.
	GetOrder(ctx context.Context, id string) (domain.Document, error)
	// FilterOrders returns one page of orders matching the query.
	FilterOrders(ctx context.Context, q FilterQuery) ([]domain.Document, error)
}
