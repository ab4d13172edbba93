package jobs

import (
	"context"
	"log/slog"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// OrderRecalculationJob drains the recalculation backlog on a schedule.
// Every pass reads the stale orders and runs a full recalculation for each,
// so snapshots converge shortly after adjustments change.
type OrderRecalculationJob struct {
	backlogHandler queries.GetOrdersAwaitingRecalculationQueryHandler
	handler        *commands.RecalculateOrderCommandHandler
	cron           *cron.Cron
	logger         *slog.Logger
}

// NewOrderRecalculationJob creates a new job for recalculating stale orders.
func NewOrderRecalculationJob(
	backlogHandler queries.GetOrdersAwaitingRecalculationQueryHandler,
	handler *commands.RecalculateOrderCommandHandler,
	logger *slog.Logger,
) *OrderRecalculationJob {
	return &OrderRecalculationJob{
		backlogHandler: backlogHandler,
		handler:        handler,
		cron:           cron.New(cron.WithSeconds()),
		logger:         logger.With("component", "order_recalculation_job"),
	}
}

// Start begins the recalculation job to run every fifteen seconds.
func (j *OrderRecalculationJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()
		j.drainBacklog(ctx)
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order recalculation job started (running every fifteen seconds)")
	return nil
}

// Stop stops the recalculation job.
func (j *OrderRecalculationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order recalculation job stopped")
}

func (j *OrderRecalculationJob) drainBacklog(ctx context.Context) {
	query, err := queries.NewGetOrdersAwaitingRecalculationQuery()
	if err != nil {
		j.logger.ErrorContext(ctx, "Order recalculation job failed to build backlog query", "error", err)
		return
	}

	backlog, err := j.backlogHandler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Order recalculation job failed to read backlog", "error", err)
		return
	}

	for _, entry := range backlog {
		cmd, cmdErr := commands.NewRecalculateOrderCommand(entry.ID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Order recalculation job failed to build command",
				"order_id", entry.ID.String(), "error", cmdErr)
			continue
		}

		// One failed order must not block the rest of the backlog.
		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			j.logger.ErrorContext(ctx, "Order recalculation failed",
				"order_id", entry.ID.String(), "error", handleErr)
		}
	}
}
