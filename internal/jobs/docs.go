// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. TelemetryTickJob - moves simulated drivers and raises idle alerts on every tick
// 2. SmartAssignmentJob - asks the assignment oracle to dispatch Pending orders on a schedule
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager, err := jobs.NewJobManager(moveDriversHandler, smartAssignHandler, jobs.Schedules{
//		TelemetryTick:   "@every 5s",
//		SmartAssignment: "@every 1m",
//	}, logger)
//	if err != nil {
//		log.Fatal("Invalid job schedule:", err)
//	}
//
//	// Blocks until ctx is cancelled, then waits for running jobs
//	err = jobManager.Run(ctx)
//
// # Scheduling
//
// Schedules accept the robfig/cron syntax with an optional seconds field, as
// well as descriptors such as "@every 5s". An empty SmartAssignment schedule
// disables the job; smart assignment is then only triggered over HTTP.
//
// # Error Handling
//
// - Telemetry errors are logged and the next tick runs as usual
// - Oracle failures are logged as warnings; the handler already notified the admin
// - Failed job starts will stop any already running jobs
package jobs
