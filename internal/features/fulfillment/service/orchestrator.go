package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"shipment-sync/internal/core/cache"
	"shipment-sync/internal/core/config"
	"shipment-sync/internal/core/logger"
	"shipment-sync/internal/features/fulfillment/domain"
	orders "shipment-sync/internal/features/orders/domain"
	orderservice "shipment-sync/internal/features/orders/service"
	shipments "shipment-sync/internal/features/shipments/domain"
	"shipment-sync/internal/features/shipments/ports"

	"go.uber.org/zap"
)

// OrderLocator resolves an identifier to a store order.
type OrderLocator interface {
	Locate(ctx context.Context, id orders.OrderIdentifier) (*orders.ResolvedOrder, error)
}

// FulfillmentWriter applies tracking to a list of fulfillment units.
type FulfillmentWriter interface {
	WriteAll(ctx context.Context, units []orders.FulfillmentUnit, tracking orders.TrackingWrite) ([]orders.FulfillmentResult, error)
}

// Options tunes which events are acted on and how the carrier is reported.
type Options struct {
	// ActionableStatuses are the upper-case statuses that lead to a write.
	ActionableStatuses []string
	// CarrierMode is config.CarrierModePassthrough or config.CarrierModeFixed.
	CarrierMode string
	// DefaultCarrier is used in fixed mode and when no carrier is found.
	DefaultCarrier string
}

// Orchestrator turns one shipment event into tracking writes on the store order.
type Orchestrator struct {
	provider ports.ShipmentProvider
	locator  OrderLocator
	writer   FulfillmentWriter
	locker   cache.Locker
	opts     Options
}

// NewOrchestrator creates a new Orchestrator. A nil locker disables order locking.
func NewOrchestrator(provider ports.ShipmentProvider, locator OrderLocator, writer FulfillmentWriter, locker cache.Locker, opts Options) *Orchestrator {
	if locker == nil {
		locker = cache.NopLocker{}
	}
	if len(opts.ActionableStatuses) == 0 {
		opts.ActionableStatuses = []string{shipments.StatusShipped, shipments.StatusReadyToShip}
	}
	if opts.CarrierMode == "" {
		opts.CarrierMode = config.CarrierModePassthrough
	}
	if strings.TrimSpace(opts.DefaultCarrier) == "" {
		opts.DefaultCarrier = orders.DefaultCarrier
	}
	return &Orchestrator{
		provider: provider,
		locator:  locator,
		writer:   writer,
		locker:   locker,
		opts:     opts,
	}
}

// Process runs one event to a terminal Outcome.
// Errors are reserved for upstream transport failures and lock timeouts.
func (o *Orchestrator) Process(ctx context.Context, ev shipments.ShipmentEvent) (domain.Outcome, error) {
	log := logger.Named("orchestrator").With(
		zap.String("remote_order_id", ev.RemoteOrderID),
		zap.String("status", ev.Status),
	)

	if ev.IsProbe() && !HasOrderHint(ev.Raw) && ExtractTrackingNumber(nil, ev.Raw) == "" {
		log.Info("Test payload acknowledged")
		return domain.Succeeded(domain.StateTestPing, "OK: test payload received"), nil
	}

	if !slices.Contains(o.opts.ActionableStatuses, ev.Status) {
		log.Debug("Event ignored")
		return domain.Succeeded(domain.StateIgnored, fmt.Sprintf("Ignored: status %q is not actionable", ev.Status)), nil
	}

	var detail shipments.Document
	switch {
	case ev.RemoteOrderID != "":
		var err error
		detail, err = o.provider.GetOrder(ctx, ev.RemoteOrderID)
		if err != nil {
			return domain.Outcome{}, fmt.Errorf("fetch shipment %s: %w", ev.RemoteOrderID, err)
		}
	case HasOrderHint(ev.Raw):
		detail = shipments.Document{}
	default:
		log.Warn("Event has no correlation id")
		return domain.Failed(domain.StateFailed, "Missing id in shipment event"), nil
	}

	identifier, ok := ExtractOrderIdentifier(detail, ev.Raw)
	if !ok {
		log.Warn("Order identifier not found in shipment")
		return domain.Failed(domain.StateFailed,
			fmt.Sprintf("Cannot resolve order for shipment %q: no order name or id found", ev.RemoteOrderID)), nil
	}
	log = log.With(zap.Stringer("identifier", identifier))

	tracking := orders.TrackingWrite{
		Company: o.carrier(detail, ev.Raw),
		Number:  ExtractTrackingNumber(detail, ev.Raw),
		URL:     ExtractTrackingURL(detail, ev.Raw),
	}
	if tracking.Number == "" {
		log.Warn("Tracking number missing")
		return domain.Failed(domain.StateFailed,
			fmt.Sprintf("Tracking number missing for %s", identifier.Value)), nil
	}

	var outcome domain.Outcome
	var procErr error
	err := o.locker.WithLock(ctx, identifier.Value, func(ctx context.Context) error {
		outcome, procErr = o.fulfill(ctx, log, identifier, tracking)
		return nil
	})
	if err != nil {
		return domain.Outcome{}, fmt.Errorf("lock order %s: %w", identifier.Value, err)
	}
	if procErr != nil {
		return domain.Outcome{}, procErr
	}
	return outcome, nil
}

// fulfill runs while the order lock is held, so the open units it reads are
// still open when they are written.
func (o *Orchestrator) fulfill(ctx context.Context, log *zap.Logger, identifier orders.OrderIdentifier, tracking orders.TrackingWrite) (domain.Outcome, error) {
	order, err := o.locator.Locate(ctx, identifier)
	if err != nil {
		var resErr *orderservice.ResolutionError
		if errors.As(err, &resErr) {
			log.Warn("Order not found", zap.Error(err))
			return domain.Failed(domain.StateFailed, resErr.Error()), nil
		}
		return domain.Outcome{}, fmt.Errorf("locate order %s: %w", identifier.Value, err)
	}

	open := order.OpenUnits()
	if len(open) == 0 {
		log.Info("No open fulfillment orders", zap.String("order", order.Name))
		return domain.Succeeded(domain.StateNoOpenUnits,
			fmt.Sprintf("Order %s has no open fulfillment orders (already fulfilled or closed)", order.Name)), nil
	}

	results, err := o.writer.WriteAll(ctx, open, tracking)
	if err != nil {
		var validationErr *orders.ValidationError
		if errors.As(err, &validationErr) {
			log.Warn("Fulfillment rejected", zap.Int("written", len(results)), zap.Error(err))
			outcome := domain.Failed(domain.StatePartialFailure,
				fmt.Sprintf("Order %s: %d of %d fulfillment orders written; %v", order.Name, len(results), len(open), err))
			outcome.Writes = results
			return outcome, nil
		}
		return domain.Outcome{}, fmt.Errorf("write order %s: %w", order.Name, err)
	}

	log.Info("Order fulfilled", zap.String("order", order.Name), zap.Int("writes", len(results)))
	outcome := domain.Succeeded(domain.StateDone, orderservice.Summary(order, tracking, results))
	outcome.Writes = results
	return outcome, nil
}

func (o *Orchestrator) carrier(detail, event shipments.Document) string {
	if o.opts.CarrierMode == config.CarrierModeFixed {
		return o.opts.DefaultCarrier
	}
	if carrier := ExtractCarrier(detail, event); carrier != "" {
		return carrier
	}
	return o.opts.DefaultCarrier
}
