package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/journal"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// DefaultOracleTimeout bounds a single oracle call.
const DefaultOracleTimeout = 20 * time.Second

// Reasons reported for proposals that were not applied.
const (
	RejectOrderNotFound    = "order not found"
	RejectOrderNotPending  = "order is no longer pending"
	RejectDriverNotFound   = "driver not found"
	RejectDriverIneligible = "driver is not online and approved"
)

// RejectedProposal is an oracle proposal that failed validation.
type RejectedProposal struct {
	OrderID  string `json:"orderId"`
	DriverID string `json:"driverId"`
	Reason   string `json:"reason"`
}

// SmartAssignResult summarises one smart assignment run.
type SmartAssignResult struct {
	Proposed int                `json:"proposed"`
	Applied  int                `json:"applied"`
	Rejected []RejectedProposal `json:"rejected"`
}

// SmartAssignCommandHandler runs oracle-assisted batch dispatch.
//
// The oracle sees a snapshot and may be stale by the time it answers, so
// every proposal is validated again against current state before it is
// applied through the same routine as manual assignment. An oracle failure
// changes nothing apart from an admin warning and is never retried.
type SmartAssignCommandHandler struct {
	uowFactory UoWFactory
	reader     ports.FleetReader
	oracle     ports.AssignmentOracle
	timeout    time.Duration
	clock      kernel.Clock
	logger     *slog.Logger
}

func NewSmartAssignCommandHandler(
	uowFactory UoWFactory,
	reader ports.FleetReader,
	oracle ports.AssignmentOracle,
	timeout time.Duration,
	clock kernel.Clock,
	logger *slog.Logger,
) SmartAssignCommandHandler {
	if timeout <= 0 {
		timeout = DefaultOracleTimeout
	}
	return SmartAssignCommandHandler{
		uowFactory: uowFactory,
		reader:     reader,
		oracle:     oracle,
		timeout:    timeout,
		clock:      clock,
		logger:     logger.With("component", "smart_assignment"),
	}
}

func (h SmartAssignCommandHandler) Handle(ctx context.Context, cmd SmartAssignCommand) (SmartAssignResult, error) {
	if err := cmd.Validate(); err != nil {
		return SmartAssignResult{}, err
	}

	req := h.buildRequest(h.reader.Snapshot())
	if len(req.Orders) == 0 || len(req.Drivers) == 0 {
		return SmartAssignResult{Rejected: []RejectedProposal{}}, nil
	}

	proposals, err := h.propose(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "Assignment oracle failed", "error", err)
		if notifyErr := h.reportFailure(ctx, err); notifyErr != nil {
			h.logger.ErrorContext(ctx, "Failed to record oracle failure", "error", notifyErr)
		}
		return SmartAssignResult{}, err
	}

	result, err := h.apply(ctx, proposals)
	if err != nil {
		return SmartAssignResult{}, err
	}

	h.logger.InfoContext(ctx, "Smart assignment completed",
		"proposed", result.Proposed, "applied", result.Applied, "rejected", len(result.Rejected))
	return result, nil
}

func (h SmartAssignCommandHandler) buildRequest(snap ports.FleetSnapshot) ports.AssignmentRequest {
	req := ports.AssignmentRequest{
		Orders:     make([]*order.Order, 0),
		Drivers:    make([]*driver.Driver, 0),
		ActiveLoad: make(map[string]int),
	}
	for _, o := range snap.Orders {
		switch o.Status() {
		case order.Pending:
			req.Orders = append(req.Orders, o)
		case order.InProgress:
			req.ActiveLoad[*o.DriverID()]++
		default:
		}
	}
	for _, d := range snap.Drivers {
		if d.IsEligibleForAssignment() {
			req.Drivers = append(req.Drivers, d)
		}
	}
	return req
}

func (h SmartAssignCommandHandler) propose(ctx context.Context, req ports.AssignmentRequest) ([]ports.AssignmentProposal, error) {
	callCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	proposals, err := h.oracle.ProposeAssignments(callCtx, req)
	if err == nil {
		return proposals, nil
	}
	if errors.Is(err, errs.ErrOracleUnavailable) {
		return nil, err
	}
	return nil, errs.NewOracleUnavailableError("assignment", err)
}

func (h SmartAssignCommandHandler) reportFailure(ctx context.Context, cause error) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := notify(ctx, uow, journal.Admin, journal.Warning, "Smart assignment failed",
		fmt.Sprintf("The assignment service could not be reached: %v", cause), h.clock.Now()); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func (h SmartAssignCommandHandler) apply(ctx context.Context, proposals []ports.AssignmentProposal) (SmartAssignResult, error) {
	result := SmartAssignResult{
		Proposed: len(proposals),
		Rejected: make([]RejectedProposal, 0),
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return SmartAssignResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	for _, p := range proposals {
		o, d, reason, err := h.validate(ctx, uow, p)
		if err != nil {
			return SmartAssignResult{}, err
		}
		if reason != "" {
			result.Rejected = append(result.Rejected, RejectedProposal{OrderID: p.OrderID, DriverID: p.DriverID, Reason: reason})
			continue
		}

		if err = applyAssignment(ctx, uow, o, d, now); err != nil {
			return SmartAssignResult{}, err
		}
		result.Applied++
	}

	var err error
	if result.Applied > 0 {
		err = notifyf(ctx, uow, journal.Admin, journal.Success, "Smart assignment completed", now,
			"Smart assignment completed: %d orders assigned.", result.Applied)
	} else {
		err = notify(ctx, uow, journal.Admin, journal.Info, "Smart assignment",
			"No new optimal assignments were found.", now)
	}
	if err != nil {
		return SmartAssignResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return SmartAssignResult{}, err
	}

	return result, nil
}

// validate returns a non-empty reason when the proposal must be skipped.
func (h SmartAssignCommandHandler) validate(
	ctx context.Context,
	uow UoW,
	p ports.AssignmentProposal,
) (*order.Order, *driver.Driver, string, error) {
	o, err := uow.OrderRepository().Get(ctx, p.OrderID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, RejectOrderNotFound, nil
	}
	if err != nil {
		return nil, nil, "", err
	}
	if o.Status() != order.Pending {
		return nil, nil, RejectOrderNotPending, nil
	}

	d, err := uow.DriverRepository().Get(ctx, p.DriverID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, nil, RejectDriverNotFound, nil
	}
	if err != nil {
		return nil, nil, "", err
	}
	if !d.IsEligibleForAssignment() {
		return nil, nil, RejectDriverIneligible, nil
	}

	return o, d, "", nil
}
