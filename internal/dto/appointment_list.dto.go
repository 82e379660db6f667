package dto

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID              uuid.UUID       `json:"id"`
	AppointmentDate string          `json:"appointment_date"`
	TimeSlot        models.TimeSlot `json:"time_slot"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`

	PatientID      uuid.UUID `json:"patient_id"`
	PatientName    string    `json:"patient_name"`
	DoctorID       uuid.UUID `json:"doctor_id"`
	DoctorName     string    `json:"doctor_name"`
	Specialization string    `json:"specialization"`

	Symptoms           string `json:"symptoms"`
	Diagnosis          string `json:"diagnosis,omitempty"`
	Prescription       string `json:"prescription,omitempty"`
	Notes              string `json:"notes,omitempty"`
	CancellationReason string `json:"cancellation_reason,omitempty"`

	Fee           float64 `json:"fee"`
	PaymentStatus string  `json:"payment_status"`

	// Set only on patient listings.
	HasReviewed *bool `json:"has_reviewed,omitempty"`
}

func NewAppointmentListDTO(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:                 ap.ID,
		AppointmentDate:    ap.AppointmentDate.Format("2006-01-02"),
		TimeSlot:           ap.TimeSlot,
		Status:             ap.Status,
		Type:               ap.Type,
		PatientID:          ap.PatientID,
		PatientName:        ap.Patient.Name,
		DoctorID:           ap.DoctorID,
		DoctorName:         ap.Doctor.User.Name,
		Specialization:     ap.Doctor.Specialization,
		Symptoms:           ap.Symptoms,
		Diagnosis:          ap.Diagnosis,
		Prescription:       ap.Prescription,
		Notes:              ap.Notes,
		CancellationReason: ap.CancellationReason,
		Fee:                ap.Fee,
		PaymentStatus:      ap.PaymentStatus,
	}
}
