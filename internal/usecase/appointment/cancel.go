package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit audit.Recorder
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit audit.Recorder,
	now func() time.Time,
) *CancelAppointment {
	if now == nil {
		now = time.Now
	}
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	a actor.Actor,
	id uuid.UUID,
	reason string,
) (*models.Appointment, error) {

	ap, err := loadAuthorized(ctx, uc.repo, a, id)
	if err != nil {
		return nil, err
	}

	guard := domain.GuardOf(ap)
	if err := domain.Cancel(ap, reason, uc.now()); err != nil {
		return nil, err
	}

	if err := saveStatus(ctx, uc.repo, ap, guard); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(a, "appointment_cancelled", ap, map[string]any{
		"reason": ap.CancellationReason,
	}))

	return ap, nil
}
