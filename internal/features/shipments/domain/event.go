package domain

import "strings"

// Shipment statuses observed on BasitKargo webhooks.
const (
	StatusShipped     = "SHIPPED"
	StatusReadyToShip = "READY_TO_SHIP"
)

var (
	statusFields = []string{"status", "orderStatus", "content.status"}
	idFields     = []string{"id", "orderId", "basitKargoId", "content.id"}
)

// ShipmentEvent is an incoming BasitKargo status notification.
// It only lives for the duration of one request.
type ShipmentEvent struct {
	// Status is upper-cased, e.g. SHIPPED.
	Status string
	// RemoteOrderID is BasitKargo's own order id, used to fetch the order detail.
	RemoteOrderID string
	// Raw keeps the original payload for field extraction.
	Raw Document
}

// NewShipmentEvent reads the status and correlation id out of a raw payload.
func NewShipmentEvent(raw Document) ShipmentEvent {
	if raw == nil {
		raw = Document{}
	}
	return ShipmentEvent{
		Status:        strings.ToUpper(firstOf(raw, statusFields)),
		RemoteOrderID: firstOf(raw, idFields),
		Raw:           raw,
	}
}

// WithStatus returns a copy of the event with a forced status.
func (e ShipmentEvent) WithStatus(status string) ShipmentEvent {
	e.Status = strings.ToUpper(strings.TrimSpace(status))
	return e
}

// IsProbe reports whether the payload carries neither a status nor an id,
// which is what BasitKargo sends when testing a webhook URL.
func (e ShipmentEvent) IsProbe() bool {
	return e.Status == "" && e.RemoteOrderID == ""
}

func firstOf(d Document, paths []string) string {
	for _, p := range paths {
		if v, ok := d.Lookup(p); ok {
			return v
		}
	}
	return ""
}
