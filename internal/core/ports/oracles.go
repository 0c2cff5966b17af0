package ports

import (
	"context"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AssignmentRequest is the input of an assignment oracle: the Pending orders,
// the eligible drivers and the number of InProgress orders per driver.
type AssignmentRequest struct {
	Orders     []*order.Order
	Drivers    []*driver.Driver
	ActiveLoad map[string]int
}

// AssignmentProposal suggests giving OrderID to DriverID. Proposals are
// untrusted and validated against current state before they are applied.
type AssignmentProposal struct {
	OrderID  string `json:"orderId"`
	DriverID string `json:"driverId"`
	Reason   string `json:"reason"`
}

// AssignmentOracle proposes order-to-driver matches. Any failure, including a
// malformed answer, is reported as errs.OracleUnavailableError.
type AssignmentOracle interface {
	ProposeAssignments(ctx context.Context, req AssignmentRequest) ([]AssignmentProposal, error)
}

// CoPilot roles.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// CoPilotTurn is one utterance of the conversation history.
type CoPilotTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// CoPilotStop is an active order as the assistant sees it.
type CoPilotStop struct {
	OrderID         string
	CustomerName    string
	DeliveryAddress string
	Instructions    string
}

// CoPilotContext describes the driver the assistant is talking to.
type CoPilotContext struct {
	DriverID   string
	DriverName string
	Status     string
	Location   kernel.Location
	Stops      []CoPilotStop
}

// FunctionCall is a tool invocation requested by the assistant.
type FunctionCall struct {
	Name string
	Args map[string]any
}

// CoPilotReply is either plain text or a function call.
type CoPilotReply struct {
	Text         string
	FunctionCall *FunctionCall
}

// CoPilotOracle is the conversational assistant used by drivers.
type CoPilotOracle interface {
	Converse(ctx context.Context, fleet CoPilotContext, history []CoPilotTurn) (CoPilotReply, error)
}
