package commands

import (
	"context"
	"math/rand/v2"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Defaults of the telemetry simulator.
const (
	DefaultMoveProbability = 0.7
	DefaultMoveDelta       = 0.001
	DefaultIdleThreshold   = 15 * time.Second
)

// Randomizer yields numbers in [0, 1).
type Randomizer interface {
	Float64() float64
}

// SystemRandomizer draws from math/rand/v2.
type SystemRandomizer struct{}

func (SystemRandomizer) Float64() float64 {
	return rand.Float64() //nolint:gosec // simulation jitter
}

// TelemetrySettings tune the simulator.
type TelemetrySettings struct {
	// MoveProbability is the chance an Online driver moves on a tick.
	MoveProbability float64
	// MoveDelta is the largest offset per axis in degrees.
	MoveDelta float64
	// IdleThreshold is how long an Online driver may stand still before an alert.
	IdleThreshold time.Duration
}

func DefaultTelemetrySettings() TelemetrySettings {
	return TelemetrySettings{
		MoveProbability: DefaultMoveProbability,
		MoveDelta:       DefaultMoveDelta,
		IdleThreshold:   DefaultIdleThreshold,
	}
}

// MoveDriversCommandHandler advances every driver that is not reporting live
// positions. Online drivers jitter around their position; drivers that stand
// still past the idle threshold raise one admin warning per idle period.
// The whole tick is a single transaction.
type MoveDriversCommandHandler struct {
	uowFactory UoWFactory
	live       ports.LiveTracking
	random     Randomizer
	settings   TelemetrySettings
	clock      kernel.Clock
}

func NewMoveDriversCommandHandler(
	uowFactory UoWFactory,
	live ports.LiveTracking,
	random Randomizer,
	settings TelemetrySettings,
	clock kernel.Clock,
) MoveDriversCommandHandler {
	return MoveDriversCommandHandler{
		uowFactory: uowFactory,
		live:       live,
		random:     random,
		settings:   settings,
		clock:      clock,
	}
}

func (h MoveDriversCommandHandler) Handle(ctx context.Context, cmd MoveDriversCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	drivers, err := driverRepo.GetAll(ctx)
	if err != nil {
		return err
	}

	now := h.clock.Now()
	for _, d := range drivers {
		if h.live.IsLive(d.ID()) {
			continue
		}

		changed := false
		if d.Status() == driver.Online && h.random.Float64() < h.settings.MoveProbability {
			next, offsetErr := d.Location().Offset(h.jitter(), h.jitter())
			if offsetErr == nil {
				if err = d.MoveTo(next, now); err != nil {
					return err
				}
				changed = true
			}
		}

		if d.DetectIdle(now, h.settings.IdleThreshold) {
			changed = true
			if err = notifyf(ctx, uow, journal.Admin, journal.Warning, "Idle alert", now,
				"Driver %s appears to be idle longer than expected.", d.Name()); err != nil {
				return err
			}
		}

		if changed {
			if err = driverRepo.Update(ctx, d); err != nil {
				return err
			}
		}
	}

	return uow.Commit(ctx)
}

func (h MoveDriversCommandHandler) jitter() float64 {
	return (h.random.Float64() - 0.5) * 2 * h.settings.MoveDelta
}
