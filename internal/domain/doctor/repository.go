package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ListFilter narrows the doctor directory. Zero values mean "any".
type ListFilter struct {
	DepartmentID   *uuid.UUID
	Specialization string
	AvailableOnly  bool
	MinRating      float64
	Search         string

	Offset int
	Limit  int
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Doctor, error)

	// List sorts by rating, best first, then newest.
	List(ctx context.Context, filter ListFilter) ([]models.Doctor, int64, error)
	ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]models.Doctor, error)

	UpdateAvailability(ctx context.Context, doc *models.Doctor) error
}
