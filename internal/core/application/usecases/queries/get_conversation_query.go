package queries

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	ErrGetConversationQueryIsNotConstructed = errors.New(
		"GetConversationQuery must be created via NewGetConversationQuery constructor",
	)
	ErrDriverIDIsRequired = errs.NewValueIsRequiredError("driver id")
)

// GetConversationQuery reads the message thread between dispatch and one driver.
type GetConversationQuery struct {
	driverID string

	guard guard.ConstructorGuard
}

func NewGetConversationQuery(driverID string) (GetConversationQuery, error) {
	driverID = strings.TrimSpace(driverID)
	if driverID == "" {
		return GetConversationQuery{}, ErrDriverIDIsRequired
	}
	return GetConversationQuery{driverID: driverID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetConversationQuery) Validate() error {
	return q.guard.Validate(ErrGetConversationQueryIsNotConstructed)
}

func (q GetConversationQuery) DriverID() string {
	return q.driverID
}

// GetConversationQueryResponse holds the thread oldest first.
type GetConversationQueryResponse struct {
	DriverID string        `json:"driverId"`
	Messages []MessageView `json:"messages"`
}
