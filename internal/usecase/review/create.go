package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CreateReviewInput struct {
	AppointmentID uuid.UUID
	Rating        int
	Comment       string
	IsAnonymous   bool
}

type CreateReview struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewCreateReview(repo domain.Repository, audit audit.Recorder) *CreateReview {
	return &CreateReview{repo: repo, audit: audit}
}

// Execute admits one review per completed appointment, written by the
// patient who attended it.
func (uc *CreateReview) Execute(
	ctx context.Context,
	a actor.Actor,
	in CreateReviewInput,
) (*models.Review, error) {

	if !a.IsPatient() {
		return nil, httperr.ErrForbidden("not_authorized")
	}
	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}
	if err := domain.ValidateComment(in.Comment); err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "appointment_not_found")
	}
	if err := domain.CanReview(ap, a.UserID); err != nil {
		return nil, err
	}

	rv := &models.Review{
		PatientID:     a.UserID,
		DoctorID:      ap.DoctorID,
		AppointmentID: ap.ID,
		Rating:        in.Rating,
		Comment:       in.Comment,
		IsAnonymous:   in.IsAnonymous,
	}

	if err := uc.repo.CreateReview(ctx, rv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(a, "review_created", rv))

	return rv, nil
}

func event(a actor.Actor, action string, rv *models.Review) audit.Event {
	actorID := a.UserID
	entityID := rv.ID
	return audit.Event{
		ActorID:   &actorID,
		ActorRole: string(a.Role),
		Action:    action,
		Entity:    "review",
		EntityID:  &entityID,
		Metadata: map[string]any{
			"doctor_id": rv.DoctorID,
			"rating":    rv.Rating,
		},
	}
}
