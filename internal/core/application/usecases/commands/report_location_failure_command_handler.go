package commands

import (
	"context"

	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
)

// ReportLocationFailureCommandHandler warns a driver whose device stopped
// delivering positions. Permanent failures produce one warning notification;
// the caller deduplicates per session. Timeouts change nothing.
//
// The driver keeps its last known position. The live session still counts
// as live-tracked, so the simulator does not move the driver either.
type ReportLocationFailureCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewReportLocationFailureCommandHandler(uowFactory UoWFactory, clock kernel.Clock) ReportLocationFailureCommandHandler {
	return ReportLocationFailureCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h ReportLocationFailureCommandHandler) Handle(ctx context.Context, cmd ReportLocationFailureCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var title, message string
	switch cmd.Failure() {
	case LocationPermissionDenied:
		title = "Location permission denied"
		message = "Your location cannot be updated in real time. Please enable location permissions."
	case LocationUnavailable:
		title = "Geolocation not supported"
		message = "Your device does not support geolocation."
	default:
		return nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.DriverRepository().Get(ctx, cmd.DriverID()); err != nil {
		return err
	}

	if err := notify(ctx, uow, cmd.DriverID(), journal.Warning, title, message, h.clock.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
