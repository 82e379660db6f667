package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	DoctorID  uuid.UUID
	Date      string
	StartTime string
	EndTime   string
	Type      string
	Symptoms  string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	locker domain.SlotLocker
	audit  audit.Recorder
	tz     string
	now    func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	locker domain.SlotLocker,
	audit audit.Recorder,
	tz string,
	now func() time.Time,
) *CreateAppointment {
	if now == nil {
		now = time.Now
	}
	return &CreateAppointment{
		repo:   repo,
		locker: locker,
		audit:  audit,
		tz:     tz,
		now:    now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	a actor.Actor,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if !a.IsPatient() {
		return nil, httperr.ErrForbidden("not_authorized")
	}

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date")
	}
	if date.Before(timezone.Today(uc.tz, uc.now())) {
		return nil, httperr.ErrValidation("date_in_past")
	}

	if !validators.IsClock(in.StartTime) || !validators.IsClock(in.EndTime) {
		return nil, httperr.ErrValidation("invalid_time_format")
	}
	if !validators.ClockBefore(in.StartTime, in.EndTime) {
		return nil, httperr.ErrValidation("invalid_time_range")
	}

	typ, err := domain.ParseType(in.Type)
	if err != nil {
		return nil, err
	}
	if !validators.MaxLen(in.Symptoms, domain.MaxSymptomsLen) {
		return nil, httperr.ErrValidation("field_too_long")
	}

	// --------------------------------------------------
	// Doctor and slot template
	// --------------------------------------------------
	doc, err := uc.repo.GetDoctorByID(ctx, in.DoctorID)
	if err != nil {
		return nil, httperr.NotFoundAs(err, "doctor_not_found")
	}
	if !doc.IsAvailable {
		return nil, httperr.ErrInvalidState("doctor_not_available")
	}

	slot := domain.TimeSlot{StartTime: in.StartTime, EndTime: in.EndTime}
	if !domain.IsSlotOffered(doc, date, slot) {
		return nil, httperr.ErrValidation("slot_not_offered")
	}

	// --------------------------------------------------
	// Atomic booking
	// --------------------------------------------------
	unlock, err := uc.locker.Lock(ctx, domain.SlotKey(doc.ID, date, slot.StartTime))
	if err != nil {
		uc.dispatchConflict(a, doc.ID, date, slot, err)
		return nil, err
	}
	defer unlock()

	ap := &models.Appointment{
		PatientID:       a.UserID,
		DoctorID:        doc.ID,
		AppointmentDate: date,
		TimeSlot:        slot,
		Status:          string(domain.InitialStatus()),
		Type:            string(typ),
		Symptoms:        in.Symptoms,
		Fee:             doc.ConsultationFee,
		PaymentStatus:   string(domain.PaymentPending),
	}

	if err := uc.repo.CreateAppointmentIfSlotFree(ctx, ap); err != nil {
		uc.dispatchConflict(a, doc.ID, date, slot, err)
		return nil, err
	}

	uc.audit.Dispatch(event(a, "appointment_created", ap, nil))

	return ap, nil
}

func (uc *CreateAppointment) dispatchConflict(
	a actor.Actor,
	doctorID uuid.UUID,
	date time.Time,
	slot domain.TimeSlot,
	err error,
) {
	if httperr.KindOf(err) != httperr.KindConflict {
		return
	}

	actorID := a.UserID
	uc.audit.Dispatch(audit.Event{
		ActorID:   &actorID,
		ActorRole: string(a.Role),
		Action:    "appointment_conflict",
		Entity:    "appointment",
		Metadata: map[string]any{
			"doctor_id": doctorID,
			"date":      date.Format(timezone.DateLayout),
			"start":     slot.StartTime,
		},
	})
}
