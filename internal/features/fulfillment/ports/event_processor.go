package ports

import (
	"context"

	"shipment-sync/internal/features/fulfillment/domain"
	shipments "shipment-sync/internal/features/shipments/domain"
)

// EventProcessor defines the interface for turning a shipment event into fulfillment writes.
// This is a Primary Port (Driving Port).
type EventProcessor interface {
	Process(ctx context.Context, ev shipments.ShipmentEvent) (domain.Outcome, error)
}
