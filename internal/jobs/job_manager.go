package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	fulfillmentProgressJob *FulfillmentProgressJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	autoProgressHandler commands.AutoProgressOrdersCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		fulfillmentProgressJob: NewFulfillmentProgressJob(autoProgressHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.fulfillmentProgressJob.Start(); err != nil {
		return fmt.Errorf("failed to start fulfillment progress job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.fulfillmentProgressJob.Stop()
}
