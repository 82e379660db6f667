package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const AnonymousReviewer = "Anonymous"

type ReviewDTO struct {
	ID            uuid.UUID `json:"id"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	PatientName   string    `json:"patient_name"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	IsAnonymous   bool      `json:"is_anonymous"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewReviewDTO hides the patient's name on anonymous reviews.
func NewReviewDTO(r models.Review) ReviewDTO {
	name := r.Patient.Name
	if r.IsAnonymous {
		name = AnonymousReviewer
	}
	return ReviewDTO{
		ID:            r.ID,
		DoctorID:      r.DoctorID,
		AppointmentID: r.AppointmentID,
		PatientName:   name,
		Rating:        r.Rating,
		Comment:       r.Comment,
		IsAnonymous:   r.IsAnonymous,
		CreatedAt:     r.CreatedAt,
	}
}
