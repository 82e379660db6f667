package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// authorize lets through the owning patient, the assigned doctor and admins.
func authorize(
	ctx context.Context,
	repo domain.Repository,
	a actor.Actor,
	ap *models.Appointment,
) error {

	switch a.Role {
	case actor.RoleAdmin:
		return nil

	case actor.RolePatient:
		if ap.PatientID == a.UserID {
			return nil
		}

	case actor.RoleDoctor:
		doc, err := repo.GetDoctorByUserID(ctx, a.UserID)
		if err != nil && !httperr.IsRecordNotFound(err) {
			return err
		}
		if doc != nil && doc.ID == ap.DoctorID {
			return nil
		}
	}

	return httperr.ErrForbidden("not_authorized")
}

func loadAuthorized(
	ctx context.Context,
	repo domain.Repository,
	a actor.Actor,
	id uuid.UUID,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "appointment_not_found")
	}
	if err := authorize(ctx, repo, a, ap); err != nil {
		return nil, err
	}
	return ap, nil
}

// saveStatus persists a transition decided against guard. A row that moved
// in between means the transition no longer applies.
func saveStatus(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
	guard domain.Guard,
) error {
	err := repo.UpdateAppointment(ctx, ap, guard, domain.StatusColumns)
	if errors.Is(err, domain.ErrStale) {
		return httperr.ErrInvalidState("invalid_transition")
	}
	return err
}

func event(a actor.Actor, action string, ap *models.Appointment, meta any) audit.Event {
	actorID := a.UserID
	entityID := ap.ID
	return audit.Event{
		ActorID:   &actorID,
		ActorRole: string(a.Role),
		Action:    action,
		Entity:    "appointment",
		EntityID:  &entityID,
		Metadata:  meta,
	}
}
