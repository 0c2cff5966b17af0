package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Pending ──> InProgress ──┬──> Delivered
//	   ^            │  ^     └──> Failed
//	   └────────────┘  └─┘
//	     (release)    (reassignment)
//
// Delivered and Failed are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending orders wait for a driver.
	Pending

	// InProgress orders have a driver and are on their way.
	InProgress

	// Delivered orders reached the customer. Terminal.
	Delivered

	// Failed orders could not be delivered. Terminal.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Pending:    "Pending",
		InProgress: "InProgress",
		Delivered:  "Delivered",
		Failed:     "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:    "Pending",
		InProgress: "InProgress",
		Delivered:  "Delivered",
		Failed:     "Failed",
	}
}

// ParseStatus converts the string form produced by String back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is one of Pending, InProgress, Delivered or Failed.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the name of the status, or "Unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// ValidateCanHaveDriver checks the consistency between status and driver assignment:
// Pending orders have no driver, every other status has one.
func (s Status) ValidateCanHaveDriver(hasDriver bool) error {
	if hasDriver && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !hasDriver && (s == InProgress || s == Delivered || s == Failed) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// Assign transitions Pending or InProgress (reassignment) to InProgress.
func (s Status) Assign() (Status, error) {
	if s != Pending && s != InProgress {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), InProgress.String())
	}
	return InProgress, nil
}

// Deliver transitions InProgress to Delivered.
func (s Status) Deliver() (Status, error) {
	if s != InProgress {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Delivered.String())
	}
	return Delivered, nil
}

// Fail transitions InProgress to Failed.
func (s Status) Fail() (Status, error) {
	if s != InProgress {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Failed.String())
	}
	return Failed, nil
}

// Release transitions InProgress back to Pending.
func (s Status) Release() (Status, error) {
	if s != InProgress {
		return Unknown, errs.NewInvalidTransitionError("order", s.String(), Pending.String())
	}
	return Pending, nil
}
