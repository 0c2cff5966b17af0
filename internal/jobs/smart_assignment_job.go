package jobs

import (
	"context"
	"errors"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/pkg/errs"

	"github.com/robfig/cron/v3"
)

// SmartAssigner runs one oracle-assisted dispatch round.
type SmartAssigner interface {
	Handle(ctx context.Context, cmd commands.SmartAssignCommand) (commands.SmartAssignResult, error)
}

// SmartAssignmentJob periodically dispatches Pending orders through the
// assignment oracle.
type SmartAssignmentJob struct {
	handler  SmartAssigner
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSmartAssignmentJob(handler SmartAssigner, schedule string, logger *slog.Logger) *SmartAssignmentJob {
	return &SmartAssignmentJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
		logger:   logger.With("component", "smart_assignment_job"),
	}
}

func (j *SmartAssignmentJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Dispatch(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Smart assignment job started", "schedule", j.schedule)
	return nil
}

// Dispatch runs a single round. Rounds that apply nothing are not logged.
func (j *SmartAssignmentJob) Dispatch(ctx context.Context) {
	result, err := j.handler.Handle(ctx, commands.NewSmartAssignCommand())
	if errors.Is(err, errs.ErrOracleUnavailable) {
		j.logger.WarnContext(ctx, "Assignment oracle unavailable", "error", err)
		return
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "Smart assignment failed", "error", err)
		return
	}
	if result.Applied > 0 || len(result.Rejected) > 0 {
		j.logger.InfoContext(ctx, "Smart assignment round finished",
			"proposed", result.Proposed,
			"applied", result.Applied,
			"rejected", len(result.Rejected),
		)
	}
}

func (j *SmartAssignmentJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Smart assignment job stopped")
}
