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

type UpdateReviewInput struct {
	Rating      *int
	Comment     *string
	IsAnonymous *bool
}

type UpdateReview struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateReview(repo domain.Repository, audit audit.Recorder) *UpdateReview {
	return &UpdateReview{repo: repo, audit: audit}
}

func (uc *UpdateReview) Execute(
	ctx context.Context,
	a actor.Actor,
	id uuid.UUID,
	in UpdateReviewInput,
) (*models.Review, error) {

	rv, err := uc.repo.GetReview(ctx, id)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "review_not_found")
	}
	if !a.IsPatient() || rv.PatientID != a.UserID {
		return nil, httperr.ErrForbidden("not_authorized")
	}

	if in.Rating != nil {
		if err := domain.ValidateRating(*in.Rating); err != nil {
			return nil, err
		}
	}
	if in.Comment != nil {
		if err := domain.ValidateComment(*in.Comment); err != nil {
			return nil, err
		}
	}

	if in.Rating != nil {
		rv.Rating = *in.Rating
	}
	if in.Comment != nil {
		rv.Comment = *in.Comment
	}
	if in.IsAnonymous != nil {
		rv.IsAnonymous = *in.IsAnonymous
	}

	if err := uc.repo.UpdateReview(ctx, rv); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(event(a, "review_updated", rv))

	return rv, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteReview struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewDeleteReview(repo domain.Repository, audit audit.Recorder) *DeleteReview {
	return &DeleteReview{repo: repo, audit: audit}
}

// Execute lets the author or an admin remove a review.
func (uc *DeleteReview) Execute(ctx context.Context, a actor.Actor, id uuid.UUID) error {
	rv, err := uc.repo.GetReview(ctx, id)
	if err != nil {
		return httperr.NotFoundAs(err, "review_not_found")
	}

	owner := a.IsPatient() && rv.PatientID == a.UserID
	if !owner && !a.IsAdmin() {
		return httperr.ErrForbidden("not_authorized")
	}

	if err := uc.repo.DeleteReview(ctx, rv); err != nil {
		return err
	}

	uc.audit.Dispatch(event(a, "review_deleted", rv))
	return nil
}
