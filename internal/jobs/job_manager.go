package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// DefaultTelemetrySchedule matches the simulator's five second tick.
const DefaultTelemetrySchedule = "@every 5s"

// scheduleParser accepts an optional seconds field and descriptors such as "@every 5s".
var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Schedules configures when each job runs.
type Schedules struct {
	TelemetryTick   string
	SmartAssignment string // empty disables the job
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	telemetryTickJob   *TelemetryTickJob
	smartAssignmentJob *SmartAssignmentJob
}

// NewJobManager creates a job manager and validates the schedules up front.
func NewJobManager(
	moveDriversHandler DriverMover,
	smartAssignHandler SmartAssigner,
	schedules Schedules,
	logger *slog.Logger,
) (*JobManager, error) {
	if schedules.TelemetryTick == "" {
		schedules.TelemetryTick = DefaultTelemetrySchedule
	}
	if _, err := scheduleParser.Parse(schedules.TelemetryTick); err != nil {
		return nil, fmt.Errorf("invalid telemetry tick schedule %q: %w", schedules.TelemetryTick, err)
	}

	jm := &JobManager{
		telemetryTickJob: NewTelemetryTickJob(moveDriversHandler, schedules.TelemetryTick, logger),
	}
	if schedules.SmartAssignment != "" {
		if _, err := scheduleParser.Parse(schedules.SmartAssignment); err != nil {
			return nil, fmt.Errorf("invalid smart assignment schedule %q: %w", schedules.SmartAssignment, err)
		}
		jm.smartAssignmentJob = NewSmartAssignmentJob(smartAssignHandler, schedules.SmartAssignment, logger)
	}
	return jm, nil
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.telemetryTickJob.Start(); err != nil {
		return fmt.Errorf("failed to start telemetry tick job: %w", err)
	}

	if jm.smartAssignmentJob != nil {
		if err := jm.smartAssignmentJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.telemetryTickJob.Stop()
			return fmt.Errorf("failed to start smart assignment job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.smartAssignmentJob != nil {
		jm.smartAssignmentJob.Stop()
	}
	jm.telemetryTickJob.Stop()
}

// Run starts all jobs and stops them once ctx is done.
func (jm *JobManager) Run(ctx context.Context) error {
	if err := jm.StartAll(); err != nil {
		return err
	}
	<-ctx.Done()
	jm.StopAll()
	return nil
}

// SmartAssignmentEnabled reports whether a smart assignment schedule is configured.
func (jm *JobManager) SmartAssignmentEnabled() bool {
	return jm.smartAssignmentJob != nil
}
