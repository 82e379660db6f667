package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/doctor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type DoctorGormRepository struct {
	db *gorm.DB
}

func NewDoctorGormRepository(db *gorm.DB) *DoctorGormRepository {
	return &DoctorGormRepository{db: db}
}

func (r *DoctorGormRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Doctor, error) {
	var doc models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		First(&doc, "doctors.id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DoctorGormRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Doctor, error) {
	var doc models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Where("user_id = ?", userID).
		First(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *DoctorGormRepository) List(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Doctor, int64, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Doctor{}).
		Joins("JOIN users ON users.id = doctors.user_id")

	if f.DepartmentID != nil {
		q = q.Where("doctors.department_id = ?", *f.DepartmentID)
	}
	if f.Specialization != "" {
		q = q.Where("doctors.specialization ILIKE ?", "%"+escapeLike(f.Specialization)+"%")
	}
	if f.AvailableOnly {
		q = q.Where("doctors.is_available = ?", true)
	}
	if f.MinRating > 0 {
		q = q.Where("doctors.rating >= ?", f.MinRating)
	}
	if f.Search != "" {
		term := "%" + escapeLike(f.Search) + "%"
		q = q.Where("users.name ILIKE ? OR doctors.specialization ILIKE ?", term, term)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []models.Doctor
	if err := q.
		Select("doctors.*").
		Preload("User").
		Preload("Department").
		Order("doctors.rating DESC").
		Order("doctors.created_at DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&docs).Error; err != nil {
		return nil, 0, err
	}

	return docs, total, nil
}

func (r *DoctorGormRepository) ListByDepartment(
	ctx context.Context,
	departmentID uuid.UUID,
) ([]models.Doctor, error) {

	var docs []models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Department").
		Where("department_id = ? AND is_available = ?", departmentID, true).
		Order("rating DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *DoctorGormRepository) UpdateAvailability(ctx context.Context, doc *models.Doctor) error {
	return r.db.WithContext(ctx).
		Model(doc).
		Select("available_days", "available_slots", "is_available").
		Updates(doc).Error
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// Compile-time check
var _ domain.Repository = (*DoctorGormRepository)(nil)
