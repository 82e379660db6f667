package appointment

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func newCreate(f *fixture) *CreateAppointment {
	return NewCreateAppointment(f.repo, newMemLocker(), f.audit, "UTC", clock)
}

func validInput(f *fixture) CreateAppointmentInput {
	return CreateAppointmentInput{
		DoctorID:  f.doctor.ID,
		Date:      "2024-06-10",
		StartTime: "09:00",
		EndTime:   "09:30",
		Symptoms:  "chest pain",
	}
}

func TestCreateAppointment_Success(t *testing.T) {
	f := newFixture()

	ap, err := newCreate(f).Execute(context.Background(), f.patient, validInput(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ap.Status != string(domain.StatusPending) {
		t.Errorf("expected pending, got %s", ap.Status)
	}
	if ap.Type != string(domain.TypeConsultation) {
		t.Errorf("expected default type, got %s", ap.Type)
	}
	if ap.PaymentStatus != string(domain.PaymentPending) {
		t.Errorf("expected payment pending, got %s", ap.PaymentStatus)
	}
	if ap.Fee != 150 {
		t.Errorf("expected fee 150, got %v", ap.Fee)
	}
	if ap.PatientID != f.patient.UserID {
		t.Error("patient must be the caller")
	}
	if !ap.AppointmentDate.Equal(bookingDate) {
		t.Errorf("unexpected date %v", ap.AppointmentDate)
	}

	if got := f.audit.actions(); len(got) != 1 || got[0] != "appointment_created" {
		t.Errorf("unexpected audit trail %v", got)
	}
}

func TestCreateAppointment_FeeIsSnapshot(t *testing.T) {
	f := newFixture()

	ap, err := newCreate(f).Execute(context.Background(), f.patient, validInput(f))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f.repo.mu.Lock()
	f.repo.doctors[f.doctor.ID].ConsultationFee = 300
	f.repo.mu.Unlock()

	if got := f.stored(ap.ID).Fee; got != 150 {
		t.Errorf("fee changed with doctor's fee: %v", got)
	}
}

func TestCreateAppointment_SlotTaken(t *testing.T) {
	f := newFixture()
	uc := newCreate(f)

	if _, err := uc.Execute(context.Background(), f.patient, validInput(f)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := uc.Execute(context.Background(), f.otherPatient, validInput(f))
	if !httperr.IsBusiness(err, "slot_already_booked") {
		t.Fatalf("expected slot_already_booked, got %v", err)
	}

	actions := f.audit.actions()
	if actions[len(actions)-1] != "appointment_conflict" {
		t.Errorf("conflict not audited: %v", actions)
	}
}

func TestCreateAppointment_SlotFreedByCancellation(t *testing.T) {
	f := newFixture()
	f.seed(string(domain.StatusCancelled), "09:00")
	f.seed(string(domain.StatusNoShow), "09:00")

	if _, err := newCreate(f).Execute(context.Background(), f.patient, validInput(f)); err != nil {
		t.Fatalf("cancelled and no-show must not hold the slot: %v", err)
	}
}

func TestCreateAppointment_ConcurrentBookings(t *testing.T) {
	f := newFixture()
	uc := newCreate(f)

	const n = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), f.patient, validInput(f))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case httperr.KindOf(err) == httperr.KindConflict:
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || conflicts != n-1 {
		t.Errorf("expected 1 success and %d conflicts, got %d and %d", n-1, successes, conflicts)
	}
}

func TestCreateAppointment_Validation(t *testing.T) {
	f := newFixture()
	uc := newCreate(f)

	tests := []struct {
		name   string
		mutate func(*CreateAppointmentInput)
		code   string
	}{
		{"bad date", func(in *CreateAppointmentInput) { in.Date = "10/06/2024" }, "invalid_date"},
		{"past date", func(in *CreateAppointmentInput) { in.Date = "2024-06-02" }, "date_in_past"},
		{"bad clock", func(in *CreateAppointmentInput) { in.StartTime = "9am" }, "invalid_time_format"},
		{"reversed", func(in *CreateAppointmentInput) { in.StartTime, in.EndTime = "09:30", "09:00" }, "invalid_time_range"},
		{"bad type", func(in *CreateAppointmentInput) { in.Type = "surgery" }, "invalid_type"},
		{"off day", func(in *CreateAppointmentInput) { in.Date = "2024-06-11" }, "slot_not_offered"},
		{"unknown slot", func(in *CreateAppointmentInput) { in.StartTime, in.EndTime = "11:00", "11:30" }, "slot_not_offered"},
		{"unknown doctor", func(in *CreateAppointmentInput) { in.DoctorID = uuid.New() }, "doctor_not_found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput(f)
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), f.patient, in)
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
		})
	}
}

func TestCreateAppointment_TodayIsAllowed(t *testing.T) {
	f := newFixture()
	in := validInput(f)
	in.Date = "2024-06-03"

	if _, err := newCreate(f).Execute(context.Background(), f.patient, in); err != nil {
		t.Fatalf("booking today should be allowed: %v", err)
	}
}

func TestCreateAppointment_DoctorUnavailable(t *testing.T) {
	f := newFixture()
	f.repo.mu.Lock()
	f.repo.doctors[f.doctor.ID].IsAvailable = false
	f.repo.mu.Unlock()

	_, err := newCreate(f).Execute(context.Background(), f.patient, validInput(f))
	if httperr.KindOf(err) != httperr.KindInvalidState {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestCreateAppointment_OnlyPatients(t *testing.T) {
	f := newFixture()

	_, err := newCreate(f).Execute(context.Background(), f.doctorActor, validInput(f))
	if httperr.KindOf(err) != httperr.KindForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}
