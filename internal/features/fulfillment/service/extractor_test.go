package service

import (
	"testing"

	orders "shipment-sync/internal/features/orders/domain"
	shipments "shipment-sync/internal/features/shipments/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doc(t *testing.T, raw string) shipments.Document {
	t.Helper()
	d, err := shipments.ParseDocument([]byte(raw))
	require.NoError(t, err)
	return d
}

func TestExtractOrderIdentifier(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		event  string
		want   orders.OrderIdentifier
		wantOK bool
	}{
		{
			name:   "Exact code",
			detail: `{"content":{"code":"LP-1009"}}`,
			want:   orders.SearchQuery("#LP-1009"),
			wantOK: true,
		},
		{
			name:   "Lower case with hash",
			detail: `{"content":{"code":"#lp-42"}}`,
			want:   orders.SearchQuery("#LP-42"),
			wantOK: true,
		},
		{
			name:   "Exact match wins over earlier embedded one",
			detail: `{"content":{"note":"see lp-1 later"},"orderCode":"LP-77"}`,
			want:   orders.SearchQuery("#LP-77"),
			wantOK: true,
		},
		{
			name:   "Embedded in a note",
			detail: `{"content":{"note":"Customer order LP-5521 fragile"}}`,
			want:   orders.SearchQuery("#LP-5521"),
			wantOK: true,
		},
		{
			name:   "Bare number",
			detail: `{"content":{"referenceNo":"ref 10234"}}`,
			want:   orders.SearchQuery("#LP-10234"),
			wantOK: true,
		},
		{
			name:   "Numeric JSON value",
			detail: `{"content":{"orderCode":1009}}`,
			want:   orders.SearchQuery("#LP-1009"),
			wantOK: true,
		},
		{
			name:   "Long platform id becomes a reference",
			detail: `{"content":{"code":"7708726460709"}}`,
			want:   orders.Reference("7708726460709"),
			wantOK: true,
		},
		{
			name:   "Platform id as JSON number",
			detail: `{"content":{"shopifyOrderId":7708726460709}}`,
			want:   orders.Reference("7708726460709"),
			wantOK: true,
		},
		{
			name:   "Detail beats event",
			detail: `{"content":{"code":"LP-1"}}`,
			event:  `{"orderName":"#LP-2"}`,
			want:   orders.SearchQuery("#LP-1"),
			wantOK: true,
		},
		{
			name:   "Event only",
			event:  `{"orderName":"#LP-2002","trackingNumber":"TRK"}`,
			want:   orders.SearchQuery("#LP-2002"),
			wantOK: true,
		},
		{
			name:   "Event platform id",
			event:  `{"shopifyOrderId":"5512345678901"}`,
			want:   orders.Reference("5512345678901"),
			wantOK: true,
		},
		{
			name:   "Nothing usable",
			detail: `{"content":{"receiver":{"name":"Ayse"},"code":"AB"}}`,
			event:  `{"id":"BK-1","status":"SHIPPED"}`,
			wantOK: false,
		},
		{
			name:   "Too long for a name, too short for an id",
			detail: `{"content":{"code":"123456789"}}`,
			wantOK: false,
		},
		{
			name:   "Non scalar values skipped",
			detail: `{"content":{"code":{"value":"LP-1"},"note":["LP-2"]}}`,
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var detail, event shipments.Document
			if tt.detail != "" {
				detail = doc(t, tt.detail)
			}
			if tt.event != "" {
				event = doc(t, tt.event)
			}

			got, ok := ExtractOrderIdentifier(detail, event)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractOrderIdentifier_Idempotent(t *testing.T) {
	for _, in := range []string{"LP-1", "#lp-0042", "lP-987654321", "#LP-5"} {
		first, ok := ExtractOrderIdentifier(shipments.Document{"code": in}, nil)
		require.True(t, ok, in)
		assert.Regexp(t, `^#LP-\d+$`, first.Value)

		again, ok := ExtractOrderIdentifier(shipments.Document{"code": first.Value}, nil)
		require.True(t, ok, in)
		assert.Equal(t, first, again)
	}
}

func TestExtractTrackingNumber(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		event  string
		want   string
	}{
		{
			name:   "Nested detail",
			detail: `{"content":{"trackingCode":"FLAT","shipmentInfo":{"trackingCode":"NESTED"}}}`,
			want:   "NESTED",
		},
		{
			name:   "Nested event before flat detail",
			detail: `{"content":{"barcode":"FLAT"}}`,
			event:  `{"shipmentInfo":{"trackingNumber":"EVENT-NESTED"}}`,
			want:   "EVENT-NESTED",
		},
		{
			name:   "Flat detail before flat event",
			detail: `{"trackingNumber":"D"}`,
			event:  `{"trackingNumber":"E"}`,
			want:   "D",
		},
		{
			name:  "Event only",
			event: `{"barcode":" 12345 "}`,
			want:  "12345",
		},
		{
			name:   "Blank ignored",
			detail: `{"content":{"shipmentInfo":{"trackingCode":"  "}},"barcode":"B1"}`,
			want:   "B1",
		},
		{
			name: "Missing",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := shipments.Document{}
			event := shipments.Document{}
			if tt.detail != "" {
				detail = doc(t, tt.detail)
			}
			if tt.event != "" {
				event = doc(t, tt.event)
			}
			assert.Equal(t, tt.want, ExtractTrackingNumber(detail, event))
		})
	}
}

func TestExtractTrackingURL(t *testing.T) {
	detail := doc(t, `{"content":{"shipmentInfo":{"trackingUrl":"https://t.example/1"}}}`)
	assert.Equal(t, "https://t.example/1", ExtractTrackingURL(detail, nil))

	event := doc(t, `{"trackingUrl":"https://t.example/2"}`)
	assert.Equal(t, "https://t.example/2", ExtractTrackingURL(shipments.Document{}, event))

	assert.Empty(t, ExtractTrackingURL(nil, nil))
}

func TestExtractCarrier(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		event  string
		want   string
	}{
		{
			name:   "Name beats code",
			detail: `{"content":{"shipmentInfo":{"handlerCode":"ARAS","handlerName":"Aras Kargo"}}}`,
			want:   "Aras Kargo",
		},
		{
			name:   "Event name beats detail code",
			detail: `{"content":{"handler":{"code":"YK"}}}`,
			event:  `{"carrier":"Yurtici"}`,
			want:   "Yurtici",
		},
		{
			name:   "Code fallback",
			detail: `{"content":{"handler":{"code":"YK"}}}`,
			want:   "YK",
		},
		{
			name:  "None",
			event: `{"status":"SHIPPED"}`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var detail, event shipments.Document
			if tt.detail != "" {
				detail = doc(t, tt.detail)
			}
			if tt.event != "" {
				event = doc(t, tt.event)
			}
			assert.Equal(t, tt.want, ExtractCarrier(detail, event))
		})
	}
}

func TestHasOrderHint(t *testing.T) {
	assert.True(t, HasOrderHint(doc(t, `{"orderName":"#LP-1"}`)))
	assert.True(t, HasOrderHint(doc(t, `{"shopifyOrderId":"7708726460709"}`)))
	assert.False(t, HasOrderHint(doc(t, `{"trackingNumber":"TRK"}`)))
	assert.False(t, HasOrderHint(nil))
}
