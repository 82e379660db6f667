package review

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type fixture struct {
	repo    *memRepo
	audit   *recorder
	doctor  *models.Doctor
	patient actor.Actor
	admin   actor.Actor
}

func newFixture() *fixture {
	repo := newMemRepo()
	doc := &models.Doctor{ID: uuid.New(), Rating: models.DefaultDoctorRating}
	repo.doctors[doc.ID] = doc

	return &fixture{
		repo:    repo,
		audit:   &recorder{},
		doctor:  doc,
		patient: actor.Actor{UserID: uuid.New(), Role: actor.RolePatient},
		admin:   actor.Actor{UserID: uuid.New(), Role: actor.RoleAdmin},
	}
}

func (f *fixture) appointment(patient uuid.UUID, status string) *models.Appointment {
	ap := &models.Appointment{
		ID:        uuid.New(),
		PatientID: patient,
		DoctorID:  f.doctor.ID,
		Status:    status,
	}
	f.repo.appointments[ap.ID] = ap
	return ap
}

func TestCreateReview_UpdatesRating(t *testing.T) {
	f := newFixture()
	ap := f.appointment(f.patient.UserID, "completed")

	rv, err := NewCreateReview(f.repo, f.audit).Execute(context.Background(), f.patient, CreateReviewInput{
		AppointmentID: ap.ID,
		Rating:        5,
		Comment:       "Great",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rv.DoctorID != f.doctor.ID {
		t.Error("review must be attributed to the appointment's doctor")
	}
	if f.doctor.Rating != 5.0 || f.doctor.TotalReviews != 1 {
		t.Errorf("expected 5.0/1, got %v/%d", f.doctor.Rating, f.doctor.TotalReviews)
	}
}

func TestCreateReview_Gate(t *testing.T) {
	f := newFixture()
	uc := NewCreateReview(f.repo, f.audit)

	completed := f.appointment(f.patient.UserID, "completed")
	confirmed := f.appointment(f.patient.UserID, "confirmed")
	foreign := f.appointment(uuid.New(), "completed")

	tests := []struct {
		name string
		in   CreateReviewInput
		kind httperr.Kind
		code string
	}{
		{"rating too high", CreateReviewInput{AppointmentID: completed.ID, Rating: 6}, httperr.KindValidation, "invalid_rating"},
		{"rating zero", CreateReviewInput{AppointmentID: completed.ID, Rating: 0}, httperr.KindValidation, "invalid_rating"},
		{"unknown appointment", CreateReviewInput{AppointmentID: uuid.New(), Rating: 4}, httperr.KindNotFound, "appointment_not_found"},
		{"not the patient", CreateReviewInput{AppointmentID: foreign.ID, Rating: 4}, httperr.KindForbidden, "not_authorized"},
		{"not completed", CreateReviewInput{AppointmentID: confirmed.ID, Rating: 4}, httperr.KindInvalidState, "appointment_not_completed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), f.patient, tt.in)
			if httperr.KindOf(err) != tt.kind || !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("expected %s/%s, got %v", tt.kind, tt.code, err)
			}
		})
	}

	if f.doctor.TotalReviews != 0 || f.doctor.Rating != models.DefaultDoctorRating {
		t.Error("rejected reviews must not touch the rating")
	}
}

func TestCreateReview_OncePerAppointment(t *testing.T) {
	f := newFixture()
	ap := f.appointment(f.patient.UserID, "completed")
	uc := NewCreateReview(f.repo, f.audit)

	if _, err := uc.Execute(context.Background(), f.patient, CreateReviewInput{AppointmentID: ap.ID, Rating: 4}); err != nil {
		t.Fatalf("first review: %v", err)
	}

	_, err := uc.Execute(context.Background(), f.patient, CreateReviewInput{AppointmentID: ap.ID, Rating: 2})
	if !httperr.IsBusiness(err, "already_reviewed") || httperr.KindOf(err) != httperr.KindConflict {
		t.Fatalf("expected already_reviewed conflict, got %v", err)
	}
	if f.doctor.Rating != 4.0 || f.doctor.TotalReviews != 1 {
		t.Errorf("duplicate changed rating: %v/%d", f.doctor.Rating, f.doctor.TotalReviews)
	}
}

func TestCreateReview_ConcurrentRatingsStayConsistent(t *testing.T) {
	f := newFixture()
	uc := NewCreateReview(f.repo, f.audit)

	const n = 12
	type job struct {
		patient actor.Actor
		ap      *models.Appointment
		rating  int
	}
	jobs := make([]job, 0, n)
	for i := 0; i < n; i++ {
		patient := actor.Actor{UserID: uuid.New(), Role: actor.RolePatient}
		jobs = append(jobs, job{patient, f.appointment(patient.UserID, "completed"), i%5 + 1})
	}

	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			if _, err := uc.Execute(context.Background(), j.patient, CreateReviewInput{AppointmentID: j.ap.ID, Rating: j.rating}); err != nil {
				t.Errorf("review: %v", err)
			}
		}(j)
	}
	wg.Wait()

	// 1..5, 1..5, 1, 2: 33/12 = 2.75
	if f.doctor.TotalReviews != n || f.doctor.Rating != 2.8 {
		t.Errorf("expected 2.8/%d, got %v/%d", n, f.doctor.Rating, f.doctor.TotalReviews)
	}
}

func TestUpdateAndDeleteReview(t *testing.T) {
	f := newFixture()
	ap1 := f.appointment(f.patient.UserID, "completed")
	ap2 := f.appointment(f.patient.UserID, "completed")
	create := NewCreateReview(f.repo, f.audit)

	rv1, err := create.Execute(context.Background(), f.patient, CreateReviewInput{AppointmentID: ap1.ID, Rating: 5})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := create.Execute(context.Background(), f.patient, CreateReviewInput{AppointmentID: ap2.ID, Rating: 4}); err != nil {
		t.Fatal(err)
	}
	if f.doctor.Rating != 4.5 {
		t.Fatalf("expected 4.5, got %v", f.doctor.Rating)
	}

	three := 3
	if _, err := NewUpdateReview(f.repo, f.audit).Execute(context.Background(), f.patient, rv1.ID, UpdateReviewInput{Rating: &three}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if f.doctor.Rating != 3.5 {
		t.Errorf("expected 3.5 after update, got %v", f.doctor.Rating)
	}

	stranger := actor.Actor{UserID: uuid.New(), Role: actor.RolePatient}
	if _, err := NewUpdateReview(f.repo, f.audit).Execute(context.Background(), stranger, rv1.ID, UpdateReviewInput{Rating: &three}); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("stranger update: expected forbidden, got %v", err)
	}
	bad := 9
	if _, err := NewUpdateReview(f.repo, f.audit).Execute(context.Background(), f.patient, rv1.ID, UpdateReviewInput{Rating: &bad}); httperr.KindOf(err) != httperr.KindValidation {
		t.Errorf("bad rating: expected validation, got %v", err)
	}

	del := NewDeleteReview(f.repo, f.audit)
	if err := del.Execute(context.Background(), stranger, rv1.ID); httperr.KindOf(err) != httperr.KindForbidden {
		t.Errorf("stranger delete: expected forbidden, got %v", err)
	}
	if err := del.Execute(context.Background(), f.admin, rv1.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if f.doctor.Rating != 4.0 || f.doctor.TotalReviews != 1 {
		t.Errorf("expected 4.0/1 after delete, got %v/%d", f.doctor.Rating, f.doctor.TotalReviews)
	}
	if err := del.Execute(context.Background(), f.admin, rv1.ID); !httperr.IsBusiness(err, "review_not_found") {
		t.Errorf("expected review_not_found, got %v", err)
	}
}

func TestListDoctorReviews_HidesAnonymousNames(t *testing.T) {
	f := newFixture()
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	f.repo.reviews[uuid.New()] = &models.Review{
		DoctorID: f.doctor.ID, Rating: 5, IsAnonymous: true,
		Patient: models.User{Name: "Alice"}, CreatedAt: now,
	}
	f.repo.reviews[uuid.New()] = &models.Review{
		DoctorID: f.doctor.ID, Rating: 3,
		Patient: models.User{Name: "Bob"}, CreatedAt: now.Add(-time.Hour),
	}

	items, total, err := NewListDoctorReviews(f.repo).Execute(context.Background(), f.doctor.ID, 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(items) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(items))
	}
	if items[0].PatientName != "Anonymous" || items[1].PatientName != "Bob" {
		t.Errorf("unexpected names %q, %q", items[0].PatientName, items[1].PatientName)
	}

	if _, _, err := NewListDoctorReviews(f.repo).Execute(context.Background(), uuid.New(), 1, 10); !httperr.IsBusiness(err, "doctor_not_found") {
		t.Errorf("expected doctor_not_found, got %v", err)
	}
}
