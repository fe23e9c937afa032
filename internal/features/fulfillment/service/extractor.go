package service

import (
	"regexp"
	"strings"

	orders "shipment-sync/internal/features/orders/domain"
	shipments "shipment-sync/internal/features/shipments/domain"
)

// Candidate paths, in priority order. Detail fields win over event fields.
var (
	detailIdentifierPaths = []string{
		"content.code", "content.orderCode", "content.shopOrderCode", "content.externalOrderNo",
		"content.referenceNo", "content.note",
		"code", "orderCode", "externalOrderNo", "referenceNo", "note",
	}
	eventIdentifierPaths = []string{
		"content.code", "orderName", "shopifyOrderName", "orderCode", "code", "referenceNo", "note",
	}

	detailPlatformIDPaths = []string{
		"content.shopifyOrderId", "content.externalOrderId", "content.platformOrderId", "content.code",
		"shopifyOrderId", "externalOrderId", "code",
	}
	eventPlatformIDPaths = []string{"shopifyOrderId", "externalOrderId"}

	detailTrackingNestedPaths = []string{
		"content.shipmentInfo.trackingCode", "content.shipmentInfo.trackingNumber", "content.shipment.trackingCode",
	}
	eventTrackingNestedPaths = []string{"shipmentInfo.trackingCode", "shipmentInfo.trackingNumber"}
	detailTrackingFlatPaths  = []string{"content.trackingCode", "content.barcode", "trackingCode", "trackingNumber", "barcode"}
	eventTrackingFlatPaths   = []string{"trackingNumber", "trackingCode", "barcode"}

	detailTrackingURLPaths = []string{
		"content.shipmentInfo.trackingLink", "content.shipmentInfo.trackingUrl", "content.trackingLink", "trackingLink",
	}
	eventTrackingURLPaths = []string{"shipmentInfo.trackingLink", "trackingUrl", "trackingLink"}

	detailCarrierNamePaths = []string{"content.shipmentInfo.handlerName", "content.handler.name"}
	eventCarrierNamePaths  = []string{"shipmentInfo.handlerName", "handlerName", "carrier"}
	detailCarrierCodePaths = []string{"content.shipmentInfo.handlerCode", "content.handler.code"}
	eventCarrierCodePaths  = []string{"handlerCode", "carrierCode"}
)

var (
	exactOrderName    = regexp.MustCompile(`(?i)^#?LP-(\d+)$`)
	embeddedOrderName = regexp.MustCompile(`(?i)LP-(\d+)`)
	bareOrderNumber   = regexp.MustCompile(`(?:^|\D)(\d{3,8})(?:\D|$)`)
	platformOrderID   = regexp.MustCompile(`^\d{10,16}$`)
)

// candidateSource pairs a document with the paths read from it.
type candidateSource struct {
	doc   shipments.Document
	paths []string
}

// ExtractOrderIdentifier resolves the store order an event refers to.
// It returns false when nothing usable is present.
func ExtractOrderIdentifier(detail, event shipments.Document) (orders.OrderIdentifier, bool) {
	candidates := collect(
		candidateSource{detail, detailIdentifierPaths},
		candidateSource{event, eventIdentifierPaths},
	)

	for _, c := range candidates {
		if m := exactOrderName.FindStringSubmatch(c); m != nil {
			return orders.SearchQuery(orderName(m[1])), true
		}
	}

	joined := strings.Join(candidates, " | ")
	if m := embeddedOrderName.FindStringSubmatch(joined); m != nil {
		return orders.SearchQuery(orderName(m[1])), true
	}
	if m := bareOrderNumber.FindStringSubmatch(joined); m != nil {
		return orders.SearchQuery(orderName(m[1])), true
	}

	ids := collect(
		candidateSource{detail, detailPlatformIDPaths},
		candidateSource{event, eventPlatformIDPaths},
	)
	for _, id := range ids {
		if platformOrderID.MatchString(id) {
			return orders.Reference(id), true
		}
	}

	return orders.OrderIdentifier{}, false
}

// ExtractTrackingNumber returns the first non-empty tracking number, nested fields first.
func ExtractTrackingNumber(detail, event shipments.Document) string {
	return first(
		candidateSource{detail, detailTrackingNestedPaths},
		candidateSource{event, eventTrackingNestedPaths},
		candidateSource{detail, detailTrackingFlatPaths},
		candidateSource{event, eventTrackingFlatPaths},
	)
}

// ExtractTrackingURL returns the carrier tracking link, or "".
func ExtractTrackingURL(detail, event shipments.Document) string {
	return first(
		candidateSource{detail, detailTrackingURLPaths},
		candidateSource{event, eventTrackingURLPaths},
	)
}

// ExtractCarrier prefers carrier names over codes. It returns "" when neither payload names one.
func ExtractCarrier(detail, event shipments.Document) string {
	return first(
		candidateSource{detail, detailCarrierNamePaths},
		candidateSource{event, eventCarrierNamePaths},
		candidateSource{detail, detailCarrierCodePaths},
		candidateSource{event, eventCarrierCodePaths},
	)
}

// HasOrderHint reports whether an event carries any field the extractor could use on its own.
func HasOrderHint(event shipments.Document) bool {
	return len(collect(
		candidateSource{event, eventIdentifierPaths},
		candidateSource{event, eventPlatformIDPaths},
	)) > 0
}

func orderName(digits string) string {
	return "#LP-" + digits
}

func collect(sources ...candidateSource) []string {
	var out []string
	for _, src := range sources {
		if src.doc == nil {
			continue
		}
		for _, p := range src.paths {
			if v, ok := src.doc.Lookup(p); ok {
				out = append(out, v)
			}
		}
	}
	return out
}

func first(sources ...candidateSource) string {
	for _, src := range sources {
		if src.doc == nil {
			continue
		}
		for _, p := range src.paths {
			if v, ok := src.doc.Lookup(p); ok {
				return v
			}
		}
	}
	return ""
}
