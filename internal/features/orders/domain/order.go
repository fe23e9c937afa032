package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IdentifierKind tells the locator which lookup strategy to use.
type IdentifierKind string

const (
	// KindSearchQuery is a normalized order name such as "#LP-1001".
	KindSearchQuery IdentifierKind = "searchQuery"
	// KindReference is a global id such as "gid://shopify/Order/7708726460709".
	KindReference IdentifierKind = "reference"
)

// OrderGIDPrefix prefixes every Shopify order global id.
const OrderGIDPrefix = "gid://shopify/Order/"

// OrderIdentifier is what the extractor resolved a shipment to.
type OrderIdentifier struct {
	Kind  IdentifierKind
	Value string
}

// SearchQuery builds an identifier for a text search by order name.
func SearchQuery(name string) OrderIdentifier {
	return OrderIdentifier{Kind: KindSearchQuery, Value: name}
}

// Reference builds a direct-reference identifier from a numeric platform id.
func Reference(numericID string) OrderIdentifier {
	return OrderIdentifier{Kind: KindReference, Value: OrderGIDPrefix + numericID}
}

func (i OrderIdentifier) String() string {
	return fmt.Sprintf("%s(%s)", i.Kind, i.Value)
}

// FulfillmentStatus is the status of a Shopify fulfillment order.
type FulfillmentStatus string

const (
	FulfillmentStatusOpen       FulfillmentStatus = "OPEN"
	FulfillmentStatusInProgress FulfillmentStatus = "IN_PROGRESS"
	FulfillmentStatusClosed     FulfillmentStatus = "CLOSED"
	FulfillmentStatusCancelled  FulfillmentStatus = "CANCELLED"
	FulfillmentStatusOnHold     FulfillmentStatus = "ON_HOLD"
)

// Actionable reports whether tracking can be written against a unit in this status.
func (s FulfillmentStatus) Actionable() bool {
	return s == FulfillmentStatusOpen || s == FulfillmentStatusInProgress
}

// FulfillmentUnit is one Shopify fulfillment order.
type FulfillmentUnit struct {
	ID     string            `json:"id"`
	Status FulfillmentStatus `json:"status"`
}

// ResolvedOrder is a located order with all of its fulfillment units.
type ResolvedOrder struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Units []FulfillmentUnit `json:"units"`
}

// OpenUnits returns the units that can still receive tracking, in their original order.
func (o *ResolvedOrder) OpenUnits() []FulfillmentUnit {
	open := make([]FulfillmentUnit, 0, len(o.Units))
	for _, u := range o.Units {
		if u.Status.Actionable() {
			open = append(open, u)
		}
	}
	return open
}

// DefaultCarrier is the tracking company reported when none is known.
const DefaultCarrier = "Other"

// TrackingWrite is the tracking payload applied to a fulfillment unit.
type TrackingWrite struct {
	Company string `json:"company"`
	Number  string `json:"number"`
	URL     string `json:"url,omitempty"`
}

// FulfillmentResult records one successful write.
type FulfillmentResult struct {
	UnitID        string `json:"unitId"`
	FulfillmentID string `json:"fulfillmentId"`
	Status        string `json:"status"`
}

// UserError is a field-level error reported by the fulfillment mutation.
type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

// ValidationError carries the userErrors of a rejected fulfillment write.
type ValidationError struct {
	UnitID string
	Errors []UserError
}

func (e *ValidationError) Error() string {
	detail, err := json.Marshal(e.Errors)
	if err != nil {
		msgs := make([]string, 0, len(e.Errors))
		for _, ue := range e.Errors {
			msgs = append(msgs, ue.Message)
		}
		detail = []byte(strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("fulfillment rejected for %s: %s", e.UnitID, detail)
}
