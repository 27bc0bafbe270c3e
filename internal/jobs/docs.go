// Package jobs provides scheduled background tasks for the pizzeria.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
// Schedules use the six-field form with seconds.
//
// # Available Jobs
//
// 1. PriceRefreshJob - Re-prices the cart lines of pending orders from the current catalog
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(logger)
//	jobManager.Register("price refresh", jobs.NewPriceRefreshJob(orderService, "0 */5 * * * *", logger))
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed run is logged and retried on the next tick
// - An invalid schedule fails Start
// - Failed job starts will stop any already running jobs
package jobs
