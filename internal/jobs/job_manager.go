package jobs

import (
	"fmt"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	orderRecalculationJob *OrderRecalculationJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command and query handlers as dependencies to wire up the job execution.
func NewJobManager(
	backlogHandler queries.GetOrdersAwaitingRecalculationQueryHandler,
	recalculateOrderHandler *commands.RecalculateOrderCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderRecalculationJob: NewOrderRecalculationJob(backlogHandler, recalculateOrderHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.orderRecalculationJob.Start(); err != nil {
		return fmt.Errorf("failed to start order recalculation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.orderRecalculationJob.Stop()
}
