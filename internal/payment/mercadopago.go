package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/refund"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type MercadoPago struct {
	payments payment.Client
	refunds  refund.Client
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}

	return &MercadoPago{
		payments: payment.NewClient(cfg),
		refunds:  refund.NewClient(cfg),
	}, nil
}

func (m *MercadoPago) Verify(ctx context.Context, ref string) (*Receipt, error) {
	id, err := paymentID(ref)
	if err != nil {
		return nil, err
	}

	res, err := m.payments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment %d: %w", id, err)
	}

	return &Receipt{
		Ref:               strconv.Itoa(res.ID),
		Status:            res.Status,
		Amount:            res.TransactionAmount,
		ExternalReference: res.ExternalReference,
	}, nil
}

func (m *MercadoPago) Refund(ctx context.Context, ref string) error {
	id, err := paymentID(ref)
	if err != nil {
		return err
	}

	if _, err := m.refunds.Create(ctx, id); err != nil {
		return fmt.Errorf("mercadopago refund %d: %w", id, err)
	}
	return nil
}

// Mercado Pago payment ids are numeric.
func paymentID(ref string) (int, error) {
	id, err := strconv.Atoi(ref)
	if err != nil || id <= 0 {
		return 0, httperr.ErrValidation("invalid_payment_ref")
	}
	return id, nil
}

var _ Gateway = (*MercadoPago)(nil)
var _ Gateway = Disabled{}
