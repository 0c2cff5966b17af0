package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DriverMover advances the telemetry simulation by one tick.
type DriverMover interface {
	Handle(ctx context.Context, cmd commands.MoveDriversCommand) error
}

// TelemetryTickJob manages the periodic movement of simulated drivers.
type TelemetryTickJob struct {
	handler  DriverMover
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewTelemetryTickJob(handler DriverMover, schedule string, logger *slog.Logger) *TelemetryTickJob {
	return &TelemetryTickJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
		logger:   logger.With("component", "telemetry_tick_job"),
	}
}

// Start registers the tick and starts the scheduler.
func (j *TelemetryTickJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Tick(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Telemetry tick job started", "schedule", j.schedule)
	return nil
}

// Tick runs a single simulation step.
func (j *TelemetryTickJob) Tick(ctx context.Context) {
	if err := j.handler.Handle(ctx, commands.NewMoveDriversCommand()); err != nil {
		j.logger.ErrorContext(ctx, "Telemetry tick failed", "error", err)
	}
}

// Stop stops the scheduler and waits for a running tick.
func (j *TelemetryTickJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Telemetry tick job stopped")
}
