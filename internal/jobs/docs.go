// Package jobs provides scheduled background tasks for the purchases service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations around the purchase lifecycle.
//
// # Available Jobs
//
// 1. PriceAdjustmentJob - Periodically reads the price file and upserts product
// rows (name, description, price, quantity) into the product catalog.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required dependencies
//	jobManager := jobs.NewJobManager(catalog, priceFilePath, priceCronSpec, logger)
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
// Schedules are six-field cron expressions with a seconds column, taken from
// configuration. The price adjustment job defaults to an hourly run.
//
// # Error Handling
//
// - A price row that fails to parse or upsert is logged and skipped
// - A run that cannot read the price file at all is logged as a failed run
// - Failed job starts surface from StartAll so main can abort
package jobs
