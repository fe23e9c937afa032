package jobs

import (
	"context"
	"fmt"
	"time"

	"shipment-sync/internal/core/logger"
	"shipment-sync/internal/features/backfill/domain"
	"shipment-sync/internal/features/backfill/ports"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// BackfillJob runs the daily backfill on a cron schedule.
// A run that is still in progress when the next tick fires is skipped.
type BackfillJob struct {
	runner  ports.Runner
	spec    string
	timeout time.Duration
	cron    *cron.Cron
}

// NewBackfillJob creates a job for the given five-field cron spec, evaluated in loc.
func NewBackfillJob(runner ports.Runner, spec string, loc *time.Location, timeout time.Duration) *BackfillJob {
	if loc == nil {
		loc = time.UTC
	}
	return &BackfillJob{
		runner:  runner,
		spec:    spec,
		timeout: timeout,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// Start registers the schedule and starts the scheduler.
func (j *BackfillJob) Start() error {
	if _, err := j.cron.AddFunc(j.spec, j.run); err != nil {
		return fmt.Errorf("invalid backfill schedule %q: %w", j.spec, err)
	}

	j.cron.Start()
	logger.Named("backfill_job").Info("Backfill job started", zap.String("schedule", j.spec))
	return nil
}

// Stop stops the scheduler and waits for a running backfill to finish.
func (j *BackfillJob) Stop() {
	<-j.cron.Stop().Done()
	logger.Named("backfill_job").Info("Backfill job stopped")
}

func (j *BackfillJob) run() {
	log := logger.Named("backfill_job")

	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	report, err := j.runner.Run(ctx, domain.Request{})
	if err != nil {
		log.Error("Scheduled backfill failed", zap.Error(err))
		return
	}

	log.Info("Scheduled backfill finished",
		zap.String("run_id", report.RunID),
		zap.Int("pages", report.Pages),
		zap.Int("done", report.DoneCount),
		zap.Int("failed", report.FailedCount),
	)
}
