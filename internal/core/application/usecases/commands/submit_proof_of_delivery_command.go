package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/guard"
)

var ErrSubmitProofOfDeliveryCommandIsNotConstructed = errors.New(
	"SubmitProofOfDeliveryCommand must be created via NewSubmitProofOfDeliveryCommand constructor",
)

// SubmitProofOfDeliveryCommand marks an order Delivered with evidence attached.
// The evidence itself is checked by the handler so that a missing signature
// and photo surfaces as errs.ErrMissingEvidence.
type SubmitProofOfDeliveryCommand struct {
	orderID   string
	signature string
	photoURL  string
	notes     string

	guard guard.ConstructorGuard
}

func NewSubmitProofOfDeliveryCommand(orderID, signature, photoURL, notes string) (SubmitProofOfDeliveryCommand, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return SubmitProofOfDeliveryCommand{}, ErrOrderIDIsRequired
	}

	return SubmitProofOfDeliveryCommand{
		orderID:   orderID,
		signature: signature,
		photoURL:  photoURL,
		notes:     notes,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SubmitProofOfDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrSubmitProofOfDeliveryCommandIsNotConstructed)
}

func (c SubmitProofOfDeliveryCommand) OrderID() string {
	return c.orderID
}

func (c SubmitProofOfDeliveryCommand) Signature() string {
	return c.signature
}

func (c SubmitProofOfDeliveryCommand) PhotoURL() string {
	return c.photoURL
}

func (c SubmitProofOfDeliveryCommand) Notes() string {
	return c.notes
}
