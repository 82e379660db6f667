package models

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`

	PatientID uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_patient_date,priority:1" json:"patient_id"`
	Patient   User      `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"patient"`

	DoctorID uuid.UUID `gorm:"type:uuid;not null;index:idx_appointments_doctor_date,priority:1" json:"doctor_id"`
	Doctor   Doctor    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"doctor"`

	// Civil date, stored as midnight UTC.
	AppointmentDate time.Time `gorm:"type:date;not null;index:idx_appointments_patient_date,priority:2;index:idx_appointments_doctor_date,priority:2" json:"appointment_date"`
	TimeSlot        TimeSlot  `gorm:"embedded;embeddedPrefix:slot_" json:"time_slot"`

	Status string `gorm:"size:20;default:'pending';index" json:"status"`
	Type   string `gorm:"size:20;default:'consultation'" json:"type"`

	Symptoms     string `gorm:"size:500" json:"symptoms"`
	Notes        string `gorm:"size:1000" json:"notes"`
	Diagnosis    string `gorm:"size:1000" json:"diagnosis"`
	Prescription string `gorm:"size:2000" json:"prescription"`

	Fee           float64 `gorm:"not null" json:"fee"`
	PaymentStatus string  `gorm:"size:20;default:'pending'" json:"payment_status"`
	PaymentRef    string  `gorm:"size:64" json:"payment_ref,omitempty"`

	CancellationReason string     `gorm:"size:500" json:"cancellation_reason,omitempty"`
	ConfirmedAt        *time.Time `json:"confirmed_at"`
	CompletedAt        *time.Time `json:"completed_at"`
	CancelledAt        *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
