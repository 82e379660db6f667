package appointment

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
)

// =========== In-memory repository ===========

type memRepo struct {
	mu           sync.Mutex
	doctors      map[uuid.UUID]*models.Doctor
	appointments map[uuid.UUID]*models.Appointment
	reviewed     map[uuid.UUID]bool

	// beforeWrite, when set, runs once ahead of the next UpdateAppointment,
	// after the caller has already read the row.
	beforeWrite func()
}

func newMemRepo() *memRepo {
	return &memRepo{
		doctors:      map[uuid.UUID]*models.Doctor{},
		appointments: map[uuid.UUID]*models.Appointment{},
		reviewed:     map[uuid.UUID]bool{},
	}
}

func (r *memRepo) addDoctor(doc *models.Doctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[doc.ID] = doc
}

func (r *memRepo) addAppointment(ap *models.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ap.ID == uuid.Nil {
		ap.ID = uuid.New()
	}
	cp := *ap
	r.appointments[ap.ID] = &cp
}

func (r *memRepo) GetDoctorByID(_ context.Context, id uuid.UUID) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.doctors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *doc
	return &cp, nil
}

func (r *memRepo) GetDoctorByUserID(_ context.Context, userID uuid.UUID) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range r.doctors {
		if doc.UserID == userID {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepo) CreateAppointmentIfSlotFree(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, other := range r.appointments {
		if other.DoctorID == ap.DoctorID &&
			other.AppointmentDate.Equal(ap.AppointmentDate) &&
			other.TimeSlot.StartTime == ap.TimeSlot.StartTime &&
			domain.Status(other.Status).HoldsSlot() {
			return httperr.ErrConflict("slot_already_booked")
		}
	}

	ap.ID = uuid.New()
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
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

func (r *memRepo) UpdateAppointment(
	_ context.Context,
	ap *models.Appointment,
	guard domain.Guard,
	columns []string,
) error {
	r.mu.Lock()
	hook := r.beforeWrite
	r.beforeWrite = nil
	r.mu.Unlock()
	if hook != nil {
		hook()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.appointments[ap.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if cur.Status != string(guard.Status) ||
		(guard.PaymentStatus != "" && cur.PaymentStatus != string(guard.PaymentStatus)) {
		return domain.ErrStale
	}

	next := *cur
	for _, col := range columns {
		if err := copyColumn(&next, ap, col); err != nil {
			return err
		}
	}

	if next.PaymentRef != "" {
		for id, other := range r.appointments {
			if id != ap.ID && other.PaymentRef == next.PaymentRef {
				return httperr.ErrConflict("payment_already_used")
			}
		}
	}

	r.appointments[ap.ID] = &next
	return nil
}

// copyColumn mirrors a single-column UPDATE.
func copyColumn(dst, src *models.Appointment, col string) error {
	switch col {
	case "status":
		dst.Status = src.Status
	case "cancellation_reason":
		dst.CancellationReason = src.CancellationReason
	case "confirmed_at":
		dst.ConfirmedAt = src.ConfirmedAt
	case "completed_at":
		dst.CompletedAt = src.CompletedAt
	case "cancelled_at":
		dst.CancelledAt = src.CancelledAt
	case "symptoms":
		dst.Symptoms = src.Symptoms
	case "type":
		dst.Type = src.Type
	case "notes":
		dst.Notes = src.Notes
	case "diagnosis":
		dst.Diagnosis = src.Diagnosis
	case "prescription":
		dst.Prescription = src.Prescription
	case "payment_status":
		dst.PaymentStatus = src.PaymentStatus
	case "payment_ref":
		dst.PaymentRef = src.PaymentRef
	default:
		return fmt.Errorf("unknown column %q", col)
	}
	return nil
}

func (r *memRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if f.PatientID != nil && ap.PatientID != *f.PatientID {
			continue
		}
		if f.DoctorID != nil && ap.DoctorID != *f.DoctorID {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		if f.Type != "" && ap.Type != f.Type {
			continue
		}
		if !f.From.IsZero() && ap.AppointmentDate.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && ap.AppointmentDate.After(f.To) {
			continue
		}
		out = append(out, *ap)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].AppointmentDate.Equal(out[j].AppointmentDate) {
			return out[i].AppointmentDate.After(out[j].AppointmentDate)
		}
		return out[i].TimeSlot.StartTime < out[j].TimeSlot.StartTime
	})

	total := int64(len(out))
	if f.Offset >= len(out) {
		return []models.Appointment{}, total, nil
	}
	out = out[f.Offset:]
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, total, nil
}

func (r *memRepo) ReviewedAppointmentIDs(_ context.Context, _ uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[uuid.UUID]bool{}
	for _, id := range ids {
		if r.reviewed[id] {
			out[id] = true
		}
	}
	return out, nil
}

func (r *memRepo) ListActiveAppointmentsForDay(_ context.Context, doctorID uuid.UUID, date time.Time) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && ap.AppointmentDate.Equal(date) && domain.Status(ap.Status).HoldsSlot() {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *memRepo) CountByStatus(context.Context) ([]domain.StatusCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, ap := range r.appointments {
		counts[ap.Status]++
	}
	var out []domain.StatusCount
	for s, n := range counts {
		out = append(out, domain.StatusCount{Status: s, Count: n})
	}
	return out, nil
}

func (r *memRepo) SumPaidRevenue(context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sum float64
	for _, ap := range r.appointments {
		if ap.PaymentStatus == string(domain.PaymentPaid) {
			sum += ap.Fee
		}
	}
	return sum, nil
}

func (r *memRepo) CountForDate(_ context.Context, date time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, ap := range r.appointments {
		if ap.AppointmentDate.Equal(date) {
			n++
		}
	}
	return n, nil
}

var _ domain.Repository = (*memRepo)(nil)

// =========== Slot locker ===========

type memLocker struct {
	mu   sync.Mutex
	held map[string]bool
}

func newMemLocker() *memLocker {
	return &memLocker{held: map[string]bool{}}
}

func (l *memLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, httperr.ErrConflict("slot_already_booked")
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		delete(l.held, key)
		l.mu.Unlock()
	}, nil
}

// =========== Audit recorder ===========

type recorder struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *recorder) Dispatch(ev audit.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

// =========== Payment gateway ===========

type fakeGateway struct {
	receipts map[string]*payment.Receipt
	refunded []string
}

func (g *fakeGateway) Verify(_ context.Context, ref string) (*payment.Receipt, error) {
	r, ok := g.receipts[ref]
	if !ok {
		return nil, httperr.ErrValidation("invalid_payment_ref")
	}
	return r, nil
}

func (g *fakeGateway) Refund(_ context.Context, ref string) error {
	g.refunded = append(g.refunded, ref)
	return nil
}
