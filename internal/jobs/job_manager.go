package jobs

import (
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dhlTrackingJob *CarrierTrackingJob
	dpdTrackingJob *CarrierTrackingJob
}

// NewJobManager creates a new job manager with one tracking job per carrier.
// Both jobs feed the same carrier status handler; only the tracker differs.
func NewJobManager(
	dhlTracker ports.CarrierTracker,
	dpdTracker ports.CarrierTracker,
	uowFactory ports.UnitOfWorkFactory,
	updateCarrierStatusHandler commands.UpdateCarrierStatusCommandHandler,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dhlTrackingJob: NewCarrierTrackingJob(dhlTracker, uowFactory, updateCarrierStatusHandler, logger),
		dpdTrackingJob: NewCarrierTrackingJob(dpdTracker, uowFactory, updateCarrierStatusHandler, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dhlTrackingJob.Start(); err != nil {
		return fmt.Errorf("failed to start DHL tracking job: %w", err)
	}

	if err := jm.dpdTrackingJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dhlTrackingJob.Stop()
		return fmt.Errorf("failed to start DPD tracking job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.dhlTrackingJob.Stop()
	jm.dpdTrackingJob.Stop()
}
