package review

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// memRepo recomputes ratings under its mutex, the in-memory counterpart of
// the doctor row lock.
type memRepo struct {
	mu           sync.Mutex
	doctors      map[uuid.UUID]*models.Doctor
	appointments map[uuid.UUID]*models.Appointment
	reviews      map[uuid.UUID]*models.Review
}

func newMemRepo() *memRepo {
	return &memRepo{
		doctors:      map[uuid.UUID]*models.Doctor{},
		appointments: map[uuid.UUID]*models.Appointment{},
		reviews:      map[uuid.UUID]*models.Review{},
	}
}

func (r *memRepo) GetAppointment(_ context.Context, id uuid.UUID) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *memRepo) GetReview(_ context.Context, id uuid.UUID) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.reviews[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rv
	return &cp, nil
}

func (r *memRepo) DoctorExists(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.doctors[id]
	return ok, nil
}

func (r *memRepo) CreateReview(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.reviews {
		if other.PatientID == rv.PatientID && other.AppointmentID == rv.AppointmentID {
			return httperr.ErrConflict("already_reviewed")
		}
	}

	rv.ID = uuid.New()
	cp := *rv
	r.reviews[rv.ID] = &cp
	r.recompute(rv.DoctorID)
	return nil
}

func (r *memRepo) UpdateReview(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rv
	r.reviews[rv.ID] = &cp
	r.recompute(rv.DoctorID)
	return nil
}

func (r *memRepo) DeleteReview(_ context.Context, rv *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reviews, rv.ID)
	r.recompute(rv.DoctorID)
	return nil
}

func (r *memRepo) recompute(doctorID uuid.UUID) {
	var ratings []int
	for _, rv := range r.reviews {
		if rv.DoctorID == doctorID {
			ratings = append(ratings, rv.Rating)
		}
	}
	avg, n := domain.Aggregate(ratings)
	r.doctors[doctorID].Rating = avg
	r.doctors[doctorID].TotalReviews = n
}

func (r *memRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, page domain.Page) ([]models.Review, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Review
	for _, rv := range r.reviews {
		if rv.DoctorID == doctorID {
			out = append(out, *rv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	total := int64(len(out))
	if page.Offset >= len(out) {
		return []models.Review{}, total, nil
	}
	out = out[page.Offset:]
	if len(out) > page.Limit {
		out = out[:page.Limit]
	}
	return out, total, nil
}

var _ domain.Repository = (*memRepo)(nil)

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}
