package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type UpdateStatusInput struct {
	Status             string
	CancellationReason string
	Diagnosis          string
	Prescription       string
	Notes              string
}

type UpdateStatus struct {
	repo  domain.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	audit audit.Recorder,
	now func() time.Time,
) *UpdateStatus {
	if now == nil {
		now = time.Now
	}
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	a actor.Actor,
	id uuid.UUID,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := loadAuthorized(ctx, uc.repo, a, id)
	if err != nil {
		return nil, err
	}

	// Patients may only cancel their own appointment.
	if a.IsPatient() && to != domain.StatusCancelled {
		return nil, httperr.ErrForbidden("not_authorized")
	}

	rec := domain.ClinicalRecord{
		Diagnosis:    in.Diagnosis,
		Prescription: in.Prescription,
		Notes:        in.Notes,
	}
	if !rec.IsEmpty() && to != domain.StatusCompleted {
		return nil, httperr.ErrValidation("clinical_fields_require_completion")
	}

	from := ap.Status
	guard := domain.GuardOf(ap)
	now := uc.now()

	switch to {
	case domain.StatusCancelled:
		if !a.IsPatient() && in.CancellationReason == "" {
			return nil, httperr.ErrValidation("cancellation_reason_required")
		}
		err = domain.Cancel(ap, in.CancellationReason, now)

	case domain.StatusCompleted:
		err = domain.Complete(ap, rec, now)

	default:
		err = domain.Transition(ap, to, now)
	}
	if err != nil {
		return nil, err
	}

	if err := saveStatus(ctx, uc.repo, ap, guard); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(a, "appointment_status_changed", ap, map[string]any{
		"from": from,
		"to":   ap.Status,
	}))

	return ap, nil
}
