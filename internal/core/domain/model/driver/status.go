package driver

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the operational availability of a driver.
type Status int

const (
	StatusUnknown Status = iota
	Online
	OnBreak
	Offline
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Online:        "Online",
		OnBreak:       "OnBreak",
		Offline:       "Offline",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s Status) Validate() error {
	if s != Online && s != OnBreak && s != Offline {
		return errs.NewValueIsInvalidErrorWithCause("driver status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus converts "Online", "OnBreak" or "Offline" into a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("driver status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// AccountStatus is the administrative approval state of a driver account.
//
//	Pending ──┬──> Approved
//	          └──> Rejected
//
// Both outcomes are final.
type AccountStatus int

const (
	AccountUnknown AccountStatus = iota
	AccountPending
	AccountApproved
	AccountRejected
)

func getAccountStatusStrings() map[AccountStatus]string {
	return map[AccountStatus]string{
		AccountUnknown:  "Unknown",
		AccountPending:  "Pending",
		AccountApproved: "Approved",
		AccountRejected: "Rejected",
	}
}

func (s AccountStatus) String() string {
	if str, ok := getAccountStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

func (s AccountStatus) Validate() error {
	if s != AccountPending && s != AccountApproved && s != AccountRejected {
		return errs.NewValueIsInvalidErrorWithCause("account status is invalid", fmt.Errorf("%d is not a valid account status", s))
	}
	return nil
}

// ParseAccountStatus converts "Pending", "Approved" or "Rejected" into an AccountStatus.
func ParseAccountStatus(s string) (AccountStatus, error) {
	for status, str := range getAccountStatusStrings() {
		if status != AccountUnknown && str == s {
			return status, nil
		}
	}
	return AccountUnknown, errs.NewValueIsInvalidErrorWithCause(
		"account status is invalid", fmt.Errorf("%q is not a valid account status", s))
}

// Fuel is the energy source of a vehicle.
type Fuel string

const (
	Gasoline Fuel = "Gasoline"
	Diesel   Fuel = "Diesel"
	Electric Fuel = "Electric"
	Hybrid   Fuel = "Hybrid"
)

func (f Fuel) Validate() error {
	switch f {
	case Gasoline, Diesel, Electric, Hybrid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("fuel is invalid", fmt.Errorf("%q is not a valid fuel", string(f)))
	}
}
