package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ListFilter scopes an appointment listing. Nil ids mean "any".
type ListFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID

	Status string
	Type   string

	// Inclusive civil-date range; either bound may be zero.
	From time.Time
	To   time.Time

	Offset int
	Limit  int
}

// Guard is the stored state an update was decided against. The write only
// lands while the row still carries it; an empty PaymentStatus is not checked.
type Guard struct {
	Status        Status
	PaymentStatus PaymentStatus
}

// GuardOf pins the current status of ap.
func GuardOf(ap *models.Appointment) Guard {
	return Guard{Status: Status(ap.Status)}
}

// ErrStale means the row changed between read and write.
var ErrStale = httperr.ErrInvalidState("appointment_changed")

// Column sets written by each kind of update.
var (
	StatusColumns = []string{
		"status", "cancellation_reason",
		"confirmed_at", "completed_at", "cancelled_at",
		"diagnosis", "prescription", "notes",
	}
	SettleColumns = []string{"payment_status", "payment_ref"}
	RefundColumns = []string{"payment_status"}
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type Repository interface {
	// -------- Doctor --------
	GetDoctorByID(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Doctor, error)

	GetDoctorByUserID(
		ctx context.Context,
		userID uuid.UUID,
	) (*models.Doctor, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointmentIfSlotFree inserts ap unless another appointment
	// holding the same doctor/date/start exists; in that case it fails with
	// a Conflict business error. Check and insert are atomic.
	CreateAppointmentIfSlotFree(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------
	GetAppointment(
		ctx context.Context,
		id uuid.UUID,
	) (*models.Appointment, error)

	// UpdateAppointment writes only columns of ap, and only while the stored
	// row matches guard; otherwise it fails with ErrStale.
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
		guard Guard,
		columns []string,
	) error

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, int64, error)

	ReviewedAppointmentIDs(
		ctx context.Context,
		patientID uuid.UUID,
		appointmentIDs []uuid.UUID,
	) (map[uuid.UUID]bool, error)

	// -------- Availability --------

	// ListActiveAppointmentsForDay returns the appointments of doctorID on
	// date whose status still holds the slot.
	ListActiveAppointmentsForDay(
		ctx context.Context,
		doctorID uuid.UUID,
		date time.Time,
	) ([]models.Appointment, error)

	// -------- Stats --------
	CountByStatus(ctx context.Context) ([]StatusCount, error)

	SumPaidRevenue(ctx context.Context) (float64, error)

	CountForDate(ctx context.Context, date time.Time) (int64, error)
}

// SlotLocker serializes booking attempts on one slot key across processes.
// The storage constraint stays the source of truth; the lock only narrows
// the race window.
type SlotLocker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}
