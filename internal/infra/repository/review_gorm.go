package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/review"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ReviewGormRepository struct {
	db *gorm.DB
}

func NewReviewGormRepository(db *gorm.DB) *ReviewGormRepository {
	return &ReviewGormRepository{db: db}
}

func (r *ReviewGormRepository) GetAppointment(
	ctx context.Context,
	id uuid.UUID,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ReviewGormRepository) GetReview(
	ctx context.Context,
	id uuid.UUID,
) (*models.Review, error) {

	var rv models.Review
	if err := r.db.WithContext(ctx).First(&rv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewGormRepository) DoctorExists(ctx context.Context, doctorID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Where("id = ?", doctorID).
		Count(&n).Error
	return n > 0, err
}

// --------------------------------------------------
// Mutations (each one recomputes the doctor's rating)
// --------------------------------------------------

func (r *ReviewGormRepository) CreateReview(ctx context.Context, rv *models.Review) error {
	err := r.withDoctorLocked(ctx, rv.DoctorID, func(tx *gorm.DB) error {
		var existing int64
		if err := tx.
			Model(&models.Review{}).
			Where("patient_id = ? AND appointment_id = ?", rv.PatientID, rv.AppointmentID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return httperr.ErrConflict("already_reviewed")
		}

		return tx.Omit(clause.Associations).Create(rv).Error
	})

	if httperr.IsUniqueViolation(err, "ux_reviews_patient_appointment") {
		return httperr.ErrConflict("already_reviewed")
	}
	return err
}

func (r *ReviewGormRepository) UpdateReview(ctx context.Context, rv *models.Review) error {
	return r.withDoctorLocked(ctx, rv.DoctorID, func(tx *gorm.DB) error {
		return tx.Omit(clause.Associations).Save(rv).Error
	})
}

func (r *ReviewGormRepository) DeleteReview(ctx context.Context, rv *models.Review) error {
	return r.withDoctorLocked(ctx, rv.DoctorID, func(tx *gorm.DB) error {
		return tx.Delete(&models.Review{}, "id = ?", rv.ID).Error
	})
}

// withDoctorLocked runs fn and the rating recomputation in one transaction
// holding the doctor row lock, so concurrent reviews of one doctor apply one
// after another.
func (r *ReviewGormRepository) withDoctorLocked(
	ctx context.Context,
	doctorID uuid.UUID,
	fn func(tx *gorm.DB) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var doc models.Doctor
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&doc, "id = ?", doctorID).Error; err != nil {
			return err
		}

		if err := fn(tx); err != nil {
			return err
		}

		var ratings []int
		if err := tx.
			Model(&models.Review{}).
			Where("doctor_id = ?", doctorID).
			Pluck("rating", &ratings).Error; err != nil {
			return err
		}

		avg, count := domain.Aggregate(ratings)

		return tx.
			Model(&models.Doctor{}).
			Where("id = ?", doctorID).
			Updates(map[string]any{
				"rating":        avg,
				"total_reviews": count,
			}).Error
	})
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *ReviewGormRepository) ListByDoctor(
	ctx context.Context,
	doctorID uuid.UUID,
	page domain.Page,
) ([]models.Review, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Where("doctor_id = ?", doctorID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	if err := q.
		Preload("Patient").
		Order("created_at DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

// Compile-time check
var _ domain.Repository = (*ReviewGormRepository)(nil)
