package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	PatientID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_reviews_patient_appointment,priority:1" json:"patient_id"`
	Patient       User      `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"patient"`
	DoctorID      uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:ux_reviews_patient_appointment,priority:2" json:"appointment_id"`

	Rating      int    `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment     string `gorm:"size:500" json:"comment"`
	IsAnonymous bool   `json:"is_anonymous"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
