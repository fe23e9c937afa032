package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shipment-sync/internal/core/logger"
	"shipment-sync/internal/core/metrics"
	"shipment-sync/internal/features/orders/domain"
	"shipment-sync/internal/features/orders/ports"

	"go.uber.org/zap"
)

// ErrMissingTrackingNumber is returned when a write has no tracking number.
var ErrMissingTrackingNumber = errors.New("tracking number is required")

// Writer applies one tracking payload to every open fulfillment unit of an order.
type Writer struct {
	provider       ports.OrderProvider
	notifyCustomer bool
}

// NewWriter creates a new Writer.
func NewWriter(provider ports.OrderProvider, notifyCustomer bool) *Writer {
	return &Writer{provider: provider, notifyCustomer: notifyCustomer}
}

// WriteAll writes units strictly in order and stops at the first failure.
// The results of writes that already succeeded are returned alongside the error.
func (w *Writer) WriteAll(ctx context.Context, units []domain.FulfillmentUnit, tracking domain.TrackingWrite) ([]domain.FulfillmentResult, error) {
	tracking.Number = strings.TrimSpace(tracking.Number)
	if tracking.Number == "" {
		return nil, ErrMissingTrackingNumber
	}
	if strings.TrimSpace(tracking.Company) == "" {
		tracking.Company = domain.DefaultCarrier
	}

	log := logger.Named("fulfillment-writer")
	results := make([]domain.FulfillmentResult, 0, len(units))

	for _, unit := range units {
		result, err := w.provider.CreateFulfillment(ctx, unit.ID, tracking, w.notifyCustomer)
		if err != nil {
			var validationErr *domain.ValidationError
			if errors.As(err, &validationErr) {
				metrics.FulfillmentWrites.WithLabelValues("rejected").Inc()
			} else {
				metrics.FulfillmentWrites.WithLabelValues("error").Inc()
			}
			log.Warn("Fulfillment write failed",
				zap.String("unit_id", unit.ID),
				zap.Int("written", len(results)),
				zap.Error(err),
			)
			return results, err
		}

		metrics.FulfillmentWrites.WithLabelValues("success").Inc()
		log.Info("Fulfillment created",
			zap.String("unit_id", unit.ID),
			zap.String("fulfillment_id", result.FulfillmentID),
			zap.String("status", result.Status),
		)
		results = append(results, *result)
	}

	return results, nil
}

// Summary is the success message for a completed write pass.
func Summary(order *domain.ResolvedOrder, tracking domain.TrackingWrite, results []domain.FulfillmentResult) string {
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.FulfillmentID)
	}
	return fmt.Sprintf("Fulfilled %s with tracking %s: %s", order.Name, tracking.Number, strings.Join(ids, ","))
}
