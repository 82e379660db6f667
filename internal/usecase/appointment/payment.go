package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
)

// ======================================================
// SETTLE
// ======================================================

// SettlePayment marks an appointment paid once the gateway confirms an
// approved payment covering the fee.
type SettlePayment struct {
	repo    domain.Repository
	gateway payment.Gateway
	audit   audit.Recorder
}

func NewSettlePayment(
	repo domain.Repository,
	gateway payment.Gateway,
	audit audit.Recorder,
) *SettlePayment {
	return &SettlePayment{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *SettlePayment) Execute(
	ctx context.Context,
	a actor.Actor,
	id uuid.UUID,
	ref string,
) (*models.Appointment, error) {

	if a.IsDoctor() {
		return nil, httperr.ErrForbidden("not_authorized")
	}

	ap, err := loadAuthorized(ctx, uc.repo, a, id)
	if err != nil {
		return nil, err
	}

	if !domain.Status(ap.Status).HoldsSlot() {
		return nil, httperr.ErrInvalidState("appointment_not_payable")
	}
	if domain.PaymentStatus(ap.PaymentStatus) != domain.PaymentPending {
		return nil, httperr.ErrInvalidState("payment_already_settled")
	}

	receipt, err := uc.gateway.Verify(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !receipt.Approved() {
		return nil, httperr.ErrInvalidState("payment_not_approved")
	}
	if receipt.Amount < ap.Fee ||
		(receipt.ExternalReference != "" && receipt.ExternalReference != ap.ID.String()) {
		return nil, httperr.ErrValidation("payment_mismatch")
	}

	guard := domain.Guard{Status: domain.Status(ap.Status), PaymentStatus: domain.PaymentPending}
	ap.PaymentStatus = string(domain.PaymentPaid)
	ap.PaymentRef = receipt.Ref

	if err := uc.repo.UpdateAppointment(ctx, ap, guard, domain.SettleColumns); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(a, "payment_settled", ap, map[string]any{
		"ref":    receipt.Ref,
		"amount": receipt.Amount,
	}))

	return ap, nil
}

// ======================================================
// REFUND
// ======================================================

type RefundPayment struct {
	repo    domain.Repository
	gateway payment.Gateway
	audit   audit.Recorder
}

func NewRefundPayment(
	repo domain.Repository,
	gateway payment.Gateway,
	audit audit.Recorder,
) *RefundPayment {
	return &RefundPayment{
		repo:    repo,
		gateway: gateway,
		audit:   audit,
	}
}

func (uc *RefundPayment) Execute(
	ctx context.Context,
	a actor.Actor,
	id uuid.UUID,
) (*models.Appointment, error) {

	if !a.IsAdmin() {
		return nil, httperr.ErrForbidden("not_authorized")
	}

	ap, err := uc.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "appointment_not_found")
	}

	if domain.PaymentStatus(ap.PaymentStatus) != domain.PaymentPaid {
		return nil, httperr.ErrInvalidState("payment_not_settled")
	}

	// Payments marked paid by hand carry no gateway reference.
	if ap.PaymentRef != "" {
		if err := uc.gateway.Refund(ctx, ap.PaymentRef); err != nil {
			return nil, err
		}
	}

	guard := domain.Guard{Status: domain.Status(ap.Status), PaymentStatus: domain.PaymentPaid}
	ap.PaymentStatus = string(domain.PaymentRefunded)

	if err := uc.repo.UpdateAppointment(ctx, ap, guard, domain.RefundColumns); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(a, "payment_refunded", ap, map[string]any{
		"ref": ap.PaymentRef,
	}))

	return ap, nil
}
