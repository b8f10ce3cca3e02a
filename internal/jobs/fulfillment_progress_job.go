package jobs

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// FulfillmentProgressJob runs the simulated-carrier sweep on a schedule.
// Each tick picks up every order whose persisted due time has elapsed, which
// also catches orders that came due while the process was down.
type FulfillmentProgressJob struct {
	handler commands.AutoProgressOrdersCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewFulfillmentProgressJob creates a job for the auto-progression sweep.
// Uses AutoProgressOrdersCommandHandler to advance due orders every second.
func NewFulfillmentProgressJob(
	handler commands.AutoProgressOrdersCommandHandler,
	logger *slog.Logger,
) *FulfillmentProgressJob {
	return &FulfillmentProgressJob{
		handler: handler,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "fulfillment_progress_job"),
	}
}

// Start begins the sweep job, running every second.
func (j *FulfillmentProgressJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, err := commands.NewAutoProgressOrdersCommand()
		if err != nil {
			j.logger.ErrorContext(ctx, "Fulfillment progress command construction failed", "error", err)
			return
		}

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Fulfillment progress job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Fulfillment progress job started (running every second)")
	return nil
}

// Stop stops the sweep job.
func (j *FulfillmentProgressJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Fulfillment progress job stopped")
}
