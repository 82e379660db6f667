package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultDoctorRating = 4.5

type Doctor struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`

	DepartmentID uuid.UUID  `gorm:"type:uuid;index;not null" json:"department_id"`
	Department   Department `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"department"`

	Specialization  string  `gorm:"size:100;not null" json:"specialization"`
	Qualification   string  `gorm:"size:200;not null" json:"qualification"`
	Experience      int     `json:"experience"`
	ConsultationFee float64 `gorm:"not null" json:"consultation_fee"`
	Bio             string  `gorm:"size:1000" json:"bio"`

	AvailableDays  []string   `gorm:"type:jsonb;serializer:json" json:"available_days"`
	AvailableSlots []TimeSlot `gorm:"type:jsonb;serializer:json" json:"available_slots"`

	Rating       float64 `gorm:"default:4.5" json:"rating"`
	TotalReviews int     `gorm:"default:0" json:"total_reviews"`
	IsAvailable  bool    `gorm:"default:true" json:"is_available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
