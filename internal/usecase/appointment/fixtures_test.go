package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Monday 2024-06-03 08:00 UTC.
var fixedNow = time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

// 2024-06-10 is a Monday.
var bookingDate = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

type fixture struct {
	repo   *memRepo
	audit  *recorder
	doctor *models.Doctor

	patient      actor.Actor
	otherPatient actor.Actor
	doctorActor  actor.Actor
	otherDoctor  actor.Actor
	admin        actor.Actor
}

func newFixture() *fixture {
	repo := newMemRepo()

	doctorUser := uuid.New()
	doc := &models.Doctor{
		ID:              uuid.New(),
		UserID:          doctorUser,
		Specialization:  "Cardiology",
		ConsultationFee: 150,
		AvailableDays:   []string{"Monday", "Wednesday"},
		AvailableSlots: []models.TimeSlot{
			{StartTime: "09:00", EndTime: "09:30"},
			{StartTime: "09:30", EndTime: "10:00"},
		},
		Rating:      models.DefaultDoctorRating,
		IsAvailable: true,
	}
	repo.addDoctor(doc)

	otherDoctorUser := uuid.New()
	repo.addDoctor(&models.Doctor{
		ID:             uuid.New(),
		UserID:         otherDoctorUser,
		AvailableDays:  []string{"Monday"},
		AvailableSlots: []models.TimeSlot{{StartTime: "09:00", EndTime: "09:30"}},
		IsAvailable:    true,
	})

	return &fixture{
		repo:         repo,
		audit:        &recorder{},
		doctor:       doc,
		patient:      actor.Actor{UserID: uuid.New(), Role: actor.RolePatient},
		otherPatient: actor.Actor{UserID: uuid.New(), Role: actor.RolePatient},
		doctorActor:  actor.Actor{UserID: doctorUser, Role: actor.RoleDoctor},
		otherDoctor:  actor.Actor{UserID: otherDoctorUser, Role: actor.RoleDoctor},
		admin:        actor.Actor{UserID: uuid.New(), Role: actor.RoleAdmin},
	}
}

// seed stores an appointment of f.patient with f.doctor in status.
func (f *fixture) seed(status, start string) *models.Appointment {
	slot := models.TimeSlot{StartTime: start}
	for _, s := range f.doctor.AvailableSlots {
		if s.StartTime == start {
			slot = s
		}
	}

	ap := &models.Appointment{
		PatientID:       f.patient.UserID,
		DoctorID:        f.doctor.ID,
		AppointmentDate: bookingDate,
		TimeSlot:        slot,
		Status:          status,
		Type:            "consultation",
		Fee:             f.doctor.ConsultationFee,
		PaymentStatus:   "pending",
	}
	f.repo.addAppointment(ap)
	return ap
}

func (f *fixture) stored(id uuid.UUID) *models.Appointment {
	f.repo.mu.Lock()
	defer f.repo.mu.Unlock()
	cp := *f.repo.appointments[id]
	return &cp
}
