package ports

import (
	"context"

	"shipment-sync/internal/features/orders/domain"
)

// OrderProvider defines the interface for reading and fulfilling e-commerce orders.
// This is a Secondary Port (Driven Port).
type OrderProvider interface {
	// FindByName runs an order search and returns the first match, or nil when nothing matched.
	FindByName(ctx context.Context, query string) (*domain.ResolvedOrder, error)

	// FindByReference fetches an order by global id, or nil when it does not exist.
	FindByReference(ctx context.Context, gid string) (*domain.ResolvedOrder, error)

	// CreateFulfillment writes tracking against a single fulfillment unit.
	// Field-level rejections are returned as *domain.ValidationError.
	CreateFulfillment(ctx context.Context, unitID string, tracking domain.TrackingWrite, notifyCustomer bool) (*domain.FulfillmentResult, error)
}
