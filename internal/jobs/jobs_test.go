package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDriverMover struct {
	mock.Mock
}

func (m *MockDriverMover) Handle(ctx context.Context, cmd commands.MoveDriversCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

type MockSmartAssigner struct {
	mock.Mock
}

func (m *MockSmartAssigner) Handle(ctx context.Context, cmd commands.SmartAssignCommand) (commands.SmartAssignResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.SmartAssignResult), args.Error(1)
}

type countingMover struct {
	ticks atomic.Int32
}

func (c *countingMover) Handle(context.Context, commands.MoveDriversCommand) error {
	c.ticks.Add(1)
	return nil
}

var discard = slog.New(slog.DiscardHandler)

func TestTelemetryTickJob_Tick(t *testing.T) {
	t.Run("should run one simulation step", func(t *testing.T) {
		mover := new(MockDriverMover)
		mover.On("Handle", mock.Anything, mock.AnythingOfType("commands.MoveDriversCommand")).Return(nil).Once()

		jobs.NewTelemetryTickJob(mover, "@every 5s", discard).Tick(t.Context())

		mover.AssertExpectations(t)
	})

	t.Run("should survive a failing step", func(t *testing.T) {
		mover := new(MockDriverMover)
		mover.On("Handle", mock.Anything, mock.Anything).Return(errors.New("store closed")).Twice()

		job := jobs.NewTelemetryTickJob(mover, "@every 5s", discard)
		job.Tick(t.Context())
		job.Tick(t.Context())

		mover.AssertNumberOfCalls(t, "Handle", 2)
	})
}

func TestSmartAssignmentJob_Dispatch(t *testing.T) {
	tests := []struct {
		name   string
		result commands.SmartAssignResult
		err    error
	}{
		{"should apply a round", commands.SmartAssignResult{Proposed: 2, Applied: 1,
			Rejected: []commands.RejectedProposal{{OrderID: "ORD-AAAAA", DriverID: "D002", Reason: commands.RejectDriverNotFound}}}, nil},
		{"should stay quiet on an empty round", commands.SmartAssignResult{}, nil},
		{"should tolerate an unavailable oracle", commands.SmartAssignResult{},
			errs.NewOracleUnavailableError("test", context.DeadlineExceeded)},
		{"should tolerate other failures", commands.SmartAssignResult{}, errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assigner := new(MockSmartAssigner)
			assigner.On("Handle", mock.Anything, mock.AnythingOfType("commands.SmartAssignCommand")).
				Return(tt.result, tt.err).Once()

			jobs.NewSmartAssignmentJob(assigner, "@every 1m", discard).Dispatch(t.Context())

			assigner.AssertExpectations(t)
		})
	}
}

func TestNewJobManager(t *testing.T) {
	t.Run("should default the telemetry schedule", func(t *testing.T) {
		jm, err := jobs.NewJobManager(new(MockDriverMover), new(MockSmartAssigner), jobs.Schedules{}, discard)
		require.NoError(t, err)
		assert.False(t, jm.SmartAssignmentEnabled())
	})

	t.Run("should enable smart assignment when scheduled", func(t *testing.T) {
		jm, err := jobs.NewJobManager(new(MockDriverMover), new(MockSmartAssigner), jobs.Schedules{
			TelemetryTick:   "*/5 * * * * *",
			SmartAssignment: "0 */2 * * * *",
		}, discard)
		require.NoError(t, err)
		assert.True(t, jm.SmartAssignmentEnabled())
	})

	t.Run("should reject an invalid telemetry schedule", func(t *testing.T) {
		_, err := jobs.NewJobManager(new(MockDriverMover), new(MockSmartAssigner), jobs.Schedules{
			TelemetryTick: "every five seconds",
		}, discard)
		require.Error(t, err)
	})

	t.Run("should reject an invalid smart assignment schedule", func(t *testing.T) {
		_, err := jobs.NewJobManager(new(MockDriverMover), new(MockSmartAssigner), jobs.Schedules{
			SmartAssignment: "@sometimes",
		}, discard)
		require.Error(t, err)
	})
}

func TestJobManager_Run(t *testing.T) {
	mover := &countingMover{}
	jm, err := jobs.NewJobManager(mover, new(MockSmartAssigner), jobs.Schedules{TelemetryTick: "@every 1s"}, discard)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- jm.Run(ctx) }()

	require.Eventually(t, func() bool { return mover.ticks.Load() >= 1 }, 5*time.Second, 20*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("job manager did not stop")
	}
}
