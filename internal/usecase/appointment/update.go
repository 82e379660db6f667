package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// UpdateAppointment applies a partial update restricted to the fields the
// caller's role may write. Other fields in the patch are ignored.
type UpdateAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit audit.Recorder,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	a actor.Actor,
	id uuid.UUID,
	patch domain.Patch,
) (*models.Appointment, error) {

	ap, err := loadAuthorized(ctx, uc.repo, a, id)
	if err != nil {
		return nil, err
	}

	if a.IsPatient() && domain.Status(ap.Status).IsTerminal() {
		return nil, httperr.ErrInvalidState("appointment_not_editable")
	}

	patch = patch.Project(a.Role)
	if patch.IsEmpty() {
		return ap, nil
	}

	guard := domain.GuardOf(ap)
	if patch.PaymentStatus != nil {
		guard.PaymentStatus = domain.PaymentStatus(ap.PaymentStatus)
	}

	if err := patch.Apply(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap, guard, patch.Columns()); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(a, "appointment_updated", ap, nil))

	return ap, nil
}
