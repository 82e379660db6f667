package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/db"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Doctor
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id uuid.UUID,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *AppointmentGormRepository) GetDoctorByUserID(
	ctx context.Context,
	userID uuid.UUID,
) (*models.Doctor, error) {

	var doc models.Doctor
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointmentIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Serializes bookings of one doctor inside the database; an empty
		// slot has no appointment row to lock.
		var doc models.Doctor
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&doc, "id = ?", ap.DoctorID).Error; err != nil {
			return err
		}

		var conflicts []models.Appointment
		if err := tx.
			Select("id").
			Where(
				"doctor_id = ? AND appointment_date = ? AND slot_start_time = ? AND status NOT IN ?",
				ap.DoctorID, ap.AppointmentDate, ap.TimeSlot.StartTime, domain.FreeingStatuses(),
			).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrConflict("slot_already_booked")
		}

		return tx.Create(ap).Error
	})

	if httperr.IsUniqueViolation(err, db.ActiveSlotIndex) {
		return httperr.ErrConflict("slot_already_booked")
	}
	return err
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor.User").
		First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

// UpdateAppointment is a compare-and-swap on the guarded state: only the
// listed columns are written, and only if nobody moved the row since it was
// read.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	guard domain.Guard,
	columns []string,
) error {

	q := r.db.WithContext(ctx).
		Model(ap).
		Where("status = ?", string(guard.Status))
	if guard.PaymentStatus != "" {
		q = q.Where("payment_status = ?", string(guard.PaymentStatus))
	}

	cols := append(append([]string{}, columns...), "updated_at")
	res := q.Select(cols).Updates(ap)

	switch {
	case httperr.IsUniqueViolation(res.Error, db.PaymentRefIndex):
		return httperr.ErrConflict("payment_already_used")
	case httperr.IsUniqueViolation(res.Error, db.ActiveSlotIndex):
		return httperr.ErrConflict("slot_already_booked")
	case res.Error != nil:
		return res.Error
	case res.RowsAffected == 0:
		return domain.ErrStale
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Appointment, int64, error) {

	q := r.db.WithContext(ctx).Model(&models.Appointment{})

	if f.PatientID != nil {
		q = q.Where("patient_id = ?", *f.PatientID)
	}
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if !f.From.IsZero() {
		q = q.Where("appointment_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("appointment_date <= ?", f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Appointment
	if err := q.
		Preload("Patient").
		Preload("Doctor.User").
		Order("appointment_date DESC").
		Order("slot_start_time ASC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&apps).Error; err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *AppointmentGormRepository) ReviewedAppointmentIDs(
	ctx context.Context,
	patientID uuid.UUID,
	appointmentIDs []uuid.UUID,
) (map[uuid.UUID]bool, error) {

	out := make(map[uuid.UUID]bool, len(appointmentIDs))
	if len(appointmentIDs) == 0 {
		return out, nil
	}

	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("patient_id = ? AND appointment_id IN ?", patientID, appointmentIDs).
		Pluck("appointment_id", &ids).Error; err != nil {
		return nil, err
	}

	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveAppointmentsForDay(
	ctx context.Context,
	doctorID uuid.UUID,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "slot_start_time", "slot_end_time", "status").
		Where(
			"doctor_id = ? AND appointment_date = ? AND status NOT IN ?",
			doctorID, date, domain.FreeingStatuses(),
		).
		Order("slot_start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Stats
// --------------------------------------------------

func (r *AppointmentGormRepository) CountByStatus(
	ctx context.Context,
) ([]domain.StatusCount, error) {

	var out []domain.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AppointmentGormRepository) SumPaidRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Select("COALESCE(SUM(fee), 0)").
		Where("payment_status = ?", string(domain.PaymentPaid)).
		Scan(&total).Error
	return total, err
}

func (r *AppointmentGormRepository) CountForDate(
	ctx context.Context,
	date time.Time,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("appointment_date = ?", date).
		Count(&n).Error
	return n, err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
