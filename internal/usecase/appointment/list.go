package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

type ListAppointmentsInput struct {
	Status string
	Type   string

	// Date selects one day and wins over StartDate/EndDate.
	Date      string
	StartDate string
	EndDate   string

	Page  int
	Limit int
}

type ListAppointmentsResult struct {
	Items []dto.AppointmentListDTO
	Total int64
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	a actor.Actor,
	in ListAppointmentsInput,
) (*ListAppointmentsResult, error) {

	f := domain.ListFilter{
		Offset: (in.Page - 1) * in.Limit,
		Limit:  in.Limit,
	}

	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		f.Status = string(st)
	}
	if in.Type != "" {
		typ, err := domain.ParseType(in.Type)
		if err != nil {
			return nil, err
		}
		f.Type = string(typ)
	}

	if err := applyDateRange(&f, in); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Scope by role
	// --------------------------------------------------
	switch a.Role {
	case actor.RolePatient:
		id := a.UserID
		f.PatientID = &id

	case actor.RoleDoctor:
		doc, err := uc.repo.GetDoctorByUserID(ctx, a.UserID)
		if httperr.IsRecordNotFound(err) {
			return &ListAppointmentsResult{Items: []dto.AppointmentListDTO{}}, nil
		}
		if err != nil {
			return nil, err
		}
		f.DoctorID = &doc.ID

	case actor.RoleAdmin:

	default:
		return nil, httperr.ErrForbidden("not_authorized")
	}

	apps, total, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.NewAppointmentListDTO(ap))
	}

	if a.IsPatient() && len(apps) > 0 {
		ids := make([]uuid.UUID, 0, len(apps))
		for _, ap := range apps {
			ids = append(ids, ap.ID)
		}

		reviewed, err := uc.repo.ReviewedAppointmentIDs(ctx, a.UserID, ids)
		if err != nil {
			return nil, err
		}
		for i := range out {
			has := reviewed[out[i].ID]
			out[i].HasReviewed = &has
		}
	}

	return &ListAppointmentsResult{Items: out, Total: total}, nil
}

func applyDateRange(f *domain.ListFilter, in ListAppointmentsInput) error {
	parse := func(s string) (time.Time, error) {
		if s == "" {
			return time.Time{}, nil
		}
		d, err := timezone.ParseDate(s)
		if err != nil {
			return time.Time{}, httperr.ErrValidation("invalid_date")
		}
		return d, nil
	}

	if in.Date != "" {
		d, err := parse(in.Date)
		if err != nil {
			return err
		}
		f.From, f.To = d, d
		return nil
	}

	from, err := parse(in.StartDate)
	if err != nil {
		return err
	}
	to, err := parse(in.EndDate)
	if err != nil {
		return err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return httperr.ErrValidation("invalid_date_range")
	}

	f.From, f.To = from, to
	return nil
}
