package payment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const StatusApproved = "approved"

// Receipt is what the gateway reports about a payment.
type Receipt struct {
	Ref               string
	Status            string
	Amount            float64
	ExternalReference string
}

func (r *Receipt) Approved() bool {
	return r.Status == StatusApproved
}

type Gateway interface {
	Verify(ctx context.Context, ref string) (*Receipt, error)
	Refund(ctx context.Context, ref string) error
}

var ErrPaymentsDisabled = httperr.ErrInvalidState("payments_disabled")

// Disabled is used when no gateway credentials are configured.
type Disabled struct{}

func (Disabled) Verify(context.Context, string) (*Receipt, error) {
	return nil, ErrPaymentsDisabled
}

func (Disabled) Refund(context.Context, string) error {
	return ErrPaymentsDisabled
}
