package ports

import (
	"context"

	"shipment-sync/internal/features/backfill/domain"
)

// Runner defines the interface for executing a backfill run.
type Runner interface {
	Run(ctx context.Context, req domain.Request) (*domain.Report, error)
}
