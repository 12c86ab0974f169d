package jobs

import (
	"context"
	"log/slog"

	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ordersByStatusHandler is the read-side dependency of the reminder job.
type ordersByStatusHandler interface {
	Handle(ctx context.Context, query queries.GetOrdersByStatusQuery) ([]queries.OrderResponse, error)
}

// PendingOrderReminderJob periodically finds orders that were created but
// never placed and publishes a reminder notification for each one. The
// reminder goes through the same bus as the lifecycle events, so every
// subscribed channel nags the customer.
type PendingOrderReminderJob struct {
	handler   ordersByStatusHandler
	publisher ports.NotificationPublisher
	schedule  string
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewPendingOrderReminderJob creates a reminder job with the given cron
// schedule (standard five-field cron expression, e.g. "*/5 * * * *").
func NewPendingOrderReminderJob(
	handler ordersByStatusHandler,
	publisher ports.NotificationPublisher,
	schedule string,
	logger *slog.Logger,
) *PendingOrderReminderJob {
	return &PendingOrderReminderJob{
		handler:   handler,
		publisher: publisher,
		schedule:  schedule,
		cron:      cron.New(),
		logger:    logger.With("component", "pending_order_reminder_job"),
	}
}

// Start begins the reminder job on its schedule.
func (j *PendingOrderReminderJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Pending order reminder job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reminder job.
func (j *PendingOrderReminderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Pending order reminder job stopped")
}

// Run executes one reminder pass. Exposed for the cron schedule and tests.
func (j *PendingOrderReminderJob) Run(ctx context.Context) {
	query, err := queries.NewGetOrdersByStatusQuery(order.Pending)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order reminder job failed", "error", err)
		return
	}

	pending, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Pending order reminder job failed", "error", err)
		return
	}

	for _, o := range pending {
		j.publisher.Publish(ctx, "reminder: order awaiting placement: "+o.ID.String())
	}
}
