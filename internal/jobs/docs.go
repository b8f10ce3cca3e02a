// Package jobs provides scheduled background tasks for the fulfillment system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. FulfillmentProgressJob - Runs every second and advances physical orders
// whose persisted ship or deliver due time has elapsed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(autoProgressHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep uses the cron expression "* * * * * *", running every second.
// Because due times are stored on the order row rather than held in memory,
// a sweep after a restart still finds every order that came due in between;
// no pending transition is lost with the process.
//
// # Error Handling
//
// Sweep-level failures (e.g. the due-order query) are logged each tick.
// Per-order failures are handled inside the command handler and never stop
// the rest of the sweep.
package jobs
