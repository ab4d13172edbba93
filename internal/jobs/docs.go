// Package jobs provides scheduled background tasks for the order engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for keeping order snapshots fresh.
//
// # Available Jobs
//
// 1. OrderRecalculationJob - Runs every fifteen seconds to drain the backlog of
// orders flagged for recalculation and persist refreshed totals
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(backlogHandler, recalculateOrderHandler, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The recalculation job uses the cron expression "*/15 * * * * *", running
// every fifteen seconds. Recalculation is idempotent, so an order picked up twice
// in a row converges to the same snapshot.
//
// # Error Handling
//
// - A failed order is logged and skipped; the rest of the backlog still drains
// - Failed job starts will stop any already running jobs
package jobs
