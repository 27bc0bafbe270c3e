package jobs

import (
	"context"
	"log/slog"

	"pizzeria/internal/core/application/usecases"

	"github.com/robfig/cron/v3"
)

// PriceRefresher re-snapshots the cart lines of pending orders.
// It is implemented by *usecases.OrderService.
type PriceRefresher interface {
	RefreshPendingOrderPrices(ctx context.Context) (usecases.RefreshResult, error)
}

// PriceRefreshJob re-prices pending orders from the current catalog on a cron schedule.
// Confirmed and cancelled orders are never touched.
type PriceRefreshJob struct {
	refresher PriceRefresher
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPriceRefreshJob creates the job. schedule is a cron expression with a seconds field,
// e.g. "0 */5 * * * *" for every five minutes.
func NewPriceRefreshJob(refresher PriceRefresher, schedule string, logger *slog.Logger) *PriceRefreshJob {
	return &PriceRefreshJob{
		refresher: refresher,
		schedule:  schedule,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "price_refresh_job"),
	}
}

// Start registers the job and starts the scheduler.
func (j *PriceRefreshJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Price refresh job started", "schedule", j.schedule)
	return nil
}

// Run performs one refresh. Failures are logged; the next tick tries again.
func (j *PriceRefreshJob) Run(ctx context.Context) {
	result, err := j.refresher.RefreshPendingOrderPrices(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Price refresh job failed", "error", err)
		return
	}
	j.logger.DebugContext(ctx, "Price refresh job finished",
		"orders_scanned", result.OrdersScanned,
		"orders_updated", result.OrdersUpdated,
		"orders_skipped", result.OrdersSkipped,
		"items_repriced", result.ItemsRepriced,
	)
}

// Stop stops the scheduler and waits for a running refresh to finish.
func (j *PriceRefreshJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Price refresh job stopped")
}
