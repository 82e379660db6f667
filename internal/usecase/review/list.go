package review

import (
	"context"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type ListDoctorReviews struct {
	repo domain.Repository
}

func NewListDoctorReviews(repo domain.Repository) *ListDoctorReviews {
	return &ListDoctorReviews{repo: repo}
}

func (uc *ListDoctorReviews) Execute(
	ctx context.Context,
	doctorID uuid.UUID,
	page, limit int,
) ([]dto.ReviewDTO, int64, error) {

	ok, err := uc.repo.DoctorExists(ctx, doctorID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, httperr.ErrNotFound("doctor_not_found")
	}

	reviews, total, err := uc.repo.ListByDoctor(ctx, doctorID, domain.Page{
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, 0, err
	}

	out := make([]dto.ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, dto.NewReviewDTO(r))
	}
	return out, total, nil
}
