package doctor

import (
	"context"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// READ
// ======================================================

type GetDoctor struct {
	repo domain.Repository
}

func NewGetDoctor(repo domain.Repository) *GetDoctor {
	return &GetDoctor{repo: repo}
}

func (uc *GetDoctor) Execute(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "doctor_not_found")
	}
	return doc, nil
}

type GetDoctorByUser struct {
	repo domain.Repository
}

func NewGetDoctorByUser(repo domain.Repository) *GetDoctorByUser {
	return &GetDoctorByUser{repo: repo}
}

func (uc *GetDoctorByUser) Execute(ctx context.Context, userID uuid.UUID) (*models.Doctor, error) {
	doc, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "doctor_not_found")
	}
	return doc, nil
}

type ListDoctorsInput struct {
	DepartmentID   *uuid.UUID
	Specialization string
	AvailableOnly  bool
	MinRating      float64
	Search         string

	Page  int
	Limit int
}

type ListDoctors struct {
	repo domain.Repository
}

func NewListDoctors(repo domain.Repository) *ListDoctors {
	return &ListDoctors{repo: repo}
}

func (uc *ListDoctors) Execute(ctx context.Context, in ListDoctorsInput) ([]models.Doctor, int64, error) {
	if in.MinRating < 0 || in.MinRating > 5 {
		return nil, 0, httperr.ErrValidation("invalid_rating")
	}

	docs, total, err := uc.repo.List(ctx, domain.ListFilter{
		DepartmentID:   in.DepartmentID,
		Specialization: in.Specialization,
		AvailableOnly:  in.AvailableOnly,
		MinRating:      in.MinRating,
		Search:         in.Search,
		Offset:         (in.Page - 1) * in.Limit,
		Limit:          in.Limit,
	})
	if err != nil {
		return nil, 0, err
	}
	if docs == nil {
		docs = []models.Doctor{}
	}
	return docs, total, nil
}

type ListDoctorsByDepartment struct {
	repo domain.Repository
}

func NewListDoctorsByDepartment(repo domain.Repository) *ListDoctorsByDepartment {
	return &ListDoctorsByDepartment{repo: repo}
}

func (uc *ListDoctorsByDepartment) Execute(ctx context.Context, departmentID uuid.UUID) ([]models.Doctor, error) {
	docs, err := uc.repo.ListByDepartment(ctx, departmentID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Doctor{}
	}
	return docs, nil
}

// ======================================================
// AVAILABILITY
// ======================================================

// UpdateAvailability changes a doctor's weekly template. Appointments already
// booked are left as they are.
type UpdateAvailability struct {
	repo  domain.Repository
	audit audit.Recorder
}

func NewUpdateAvailability(repo domain.Repository, audit audit.Recorder) *UpdateAvailability {
	return &UpdateAvailability{repo: repo, audit: audit}
}

func (uc *UpdateAvailability) Execute(
	ctx context.Context,
	a actor.Actor,
	doctorID uuid.UUID,
	upd domain.AvailabilityUpdate,
) (*models.Doctor, error) {

	doc, err := uc.repo.GetByID(ctx, doctorID)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "doctor_not_found")
	}

	owner := a.IsDoctor() && doc.UserID == a.UserID
	if !owner && !a.IsAdmin() {
		return nil, httperr.ErrForbidden("not_authorized")
	}

	if err := upd.Apply(doc); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAvailability(ctx, doc); err != nil {
		return nil, err
	}

	actorID := a.UserID
	entityID := doc.ID
	uc.audit.Dispatch(audit.Event{
		ActorID:   &actorID,
		ActorRole: string(a.Role),
		Action:    "doctor_availability_updated",
		Entity:    "doctor",
		EntityID:  &entityID,
		Metadata: map[string]any{
			"available_days": doc.AvailableDays,
			"slots":          len(doc.AvailableSlots),
			"is_available":   doc.IsAvailable,
		},
	})

	return doc, nil
}
