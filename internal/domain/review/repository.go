package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Page struct {
	Offset int
	Limit  int
}

// Repository persists reviews. Every mutation recomputes the doctor's rating
// and review count in the same transaction.
type Repository interface {
	GetAppointment(ctx context.Context, id uuid.UUID) (*models.Appointment, error)

	GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error)

	// CreateReview fails with Conflict "already_reviewed" when the patient
	// already reviewed the appointment.
	CreateReview(ctx context.Context, r *models.Review) error
	UpdateReview(ctx context.Context, r *models.Review) error
	DeleteReview(ctx context.Context, r *models.Review) error

	// ListByDoctor returns reviews newest first with the patient preloaded.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, page Page) ([]models.Review, int64, error)

	DoctorExists(ctx context.Context, doctorID uuid.UUID) (bool, error)
}
