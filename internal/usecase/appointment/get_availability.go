package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const msgDoctorOff = "Doctor does not work on this day"

type AvailabilityResult struct {
	Slots   []domain.TimeSlot
	Message string
}

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*AvailabilityResult, error) {

	doc, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "doctor_not_found")
	}

	if !domain.WorksOn(doc, in.Date) {
		return &AvailabilityResult{
			Slots:   []domain.TimeSlot{},
			Message: msgDoctorOff,
		}, nil
	}

	booked, err := uc.repo.ListActiveAppointmentsForDay(ctx, in.DoctorID, in.Date)
	if err != nil {
		return nil, err
	}

	return &AvailabilityResult{
		Slots: domain.ResolveAvailableSlots(doc, in.Date, booked),
	}, nil
}
