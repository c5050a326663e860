package jobs

import (
	"fmt"
	"log/slog"

	"purchases/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	priceAdjustmentJob *PriceAdjustmentJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	catalog ports.ProductCatalog,
	priceFilePath string,
	priceCronSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		priceAdjustmentJob: NewPriceAdjustmentJob(catalog, priceFilePath, priceCronSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.priceAdjustmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start price adjustment job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.priceAdjustmentJob.Stop()
}
