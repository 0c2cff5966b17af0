package order

import (
	"strings"

	"dispatch/internal/pkg/errs"
)

// ProofOfDelivery is the evidence attached when an order is delivered.
// At least one of signature or photo must be present.
type ProofOfDelivery struct {
	signature string
	photoURL  string
	notes     string
}

// NewProofOfDelivery fails with errs.ErrMissingEvidence when both signature and photo are blank.
func NewProofOfDelivery(signature, photoURL, notes string) (ProofOfDelivery, error) {
	signature = strings.TrimSpace(signature)
	photoURL = strings.TrimSpace(photoURL)
	if signature == "" && photoURL == "" {
		return ProofOfDelivery{}, errs.ErrMissingEvidence
	}
	return ProofOfDelivery{
		signature: signature,
		photoURL:  photoURL,
		notes:     strings.TrimSpace(notes),
	}, nil
}

func (p ProofOfDelivery) Signature() string {
	return p.signature
}

func (p ProofOfDelivery) PhotoURL() string {
	return p.photoURL
}

func (p ProofOfDelivery) Notes() string {
	return p.notes
}
