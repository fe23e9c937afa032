package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipment-sync/internal/core/logger"
	"shipment-sync/internal/core/metrics"
	"shipment-sync/internal/features/backfill/domain"
	fulfillment "shipment-sync/internal/features/fulfillment/ports"
	shipments "shipment-sync/internal/features/shipments/domain"
	"shipment-sync/internal/features/shipments/ports"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ErrInvalidRequest is returned when the override body fails validation.
var ErrInvalidRequest = errors.New("invalid backfill request")

// Defaults are the page settings used when a request leaves them out.
type Defaults struct {
	Statuses []string
	PageSize int
	MaxPages int
	// Location decides which calendar day "today" is.
	Location *time.Location
}

// Driver replays a day's shipped orders through the event processor, page by page.
type Driver struct {
	provider  ports.ShipmentProvider
	processor fulfillment.EventProcessor
	defaults  Defaults
	validate  *validator.Validate
	now       func() time.Time
}

// NewDriver creates a new Driver.
func NewDriver(provider ports.ShipmentProvider, processor fulfillment.EventProcessor, defaults Defaults) *Driver {
	if defaults.Location == nil {
		defaults.Location = time.UTC
	}
	if defaults.PageSize <= 0 {
		defaults.PageSize = 50
	}
	if defaults.MaxPages <= 0 {
		defaults.MaxPages = 20
	}
	if len(defaults.Statuses) == 0 {
		defaults.Statuses = []string{shipments.StatusShipped}
	}
	return &Driver{
		provider:  provider,
		processor: processor,
		defaults:  defaults,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		now:       time.Now,
	}
}

// Run scans the requested window. A single item's failure is recorded and the
// run continues; a page that cannot be fetched aborts the run and the partial
// report is returned with the error.
func (d *Driver) Run(ctx context.Context, req domain.Request) (*domain.Report, error) {
	if err := d.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	today := d.now().In(d.defaults.Location).Format(dateLayout)
	report := &domain.Report{
		RunID:     uuid.NewString(),
		StartDate: valueOr(req.StartDate, today),
		EndDate:   valueOr(req.EndDate, today),
		Failed:    []domain.FailedItem{},
	}
	if report.StartDate > report.EndDate {
		return nil, fmt.Errorf("%w: startDate %s is after endDate %s", ErrInvalidRequest, report.StartDate, report.EndDate)
	}

	statuses := req.StatusList
	if len(statuses) == 0 {
		statuses = d.defaults.Statuses
	}
	size := intOr(req.Size, d.defaults.PageSize)
	maxPages := intOr(req.MaxPages, d.defaults.MaxPages)

	log := logger.Named("backfill").With(
		zap.String("run_id", report.RunID),
		zap.String("start_date", report.StartDate),
		zap.String("end_date", report.EndDate),
	)
	log.Info("Backfill started", zap.Strings("statuses", statuses), zap.Int("size", size), zap.Int("max_pages", maxPages))

	for page := 0; page < maxPages; page++ {
		items, err := d.provider.FilterOrders(ctx, ports.FilterQuery{
			StartDate: report.StartDate,
			EndDate:   report.EndDate,
			Statuses:  statuses,
			Page:      page,
			Size:      size,
		})
		if err != nil {
			log.Error("Backfill page fetch failed", zap.Int("page", page), zap.Error(err))
			return report, fmt.Errorf("fetch page %d: %w", page, err)
		}
		report.Pages++

		if len(items) == 0 {
			break
		}
		for _, item := range items {
			d.processItem(ctx, item, report)
		}
		if len(items) < size {
			break
		}
	}

	log.Info("Backfill finished",
		zap.Int("pages", report.Pages),
		zap.Int("done", report.DoneCount),
		zap.Int("failed", report.FailedCount),
	)
	return report, nil
}

func (d *Driver) processItem(ctx context.Context, item shipments.Document, report *domain.Report) {
	id := shipments.NewShipmentEvent(item).RemoteOrderID
	if id == "" {
		metrics.BackfillItems.WithLabelValues("failed").Inc()
		report.AddFailure("", "item has no id")
		return
	}

	ev := shipments.NewShipmentEvent(shipments.Document{"id": id, "status": shipments.StatusShipped})
	outcome, err := d.processor.Process(ctx, ev)
	switch {
	case err != nil:
		metrics.BackfillItems.WithLabelValues("failed").Inc()
		report.AddFailure(id, err.Error())
	case !outcome.OK:
		metrics.BackfillItems.WithLabelValues("failed").Inc()
		report.AddFailure(id, outcome.Message)
	default:
		metrics.BackfillItems.WithLabelValues("done").Inc()
		report.DoneCount++
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func intOr(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
