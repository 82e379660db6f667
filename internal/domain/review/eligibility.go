package review

import (
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// CanReview checks that patientID may review ap. Duplicate detection is left
// to the repository, where the unique index backs it.
func CanReview(ap *models.Appointment, patientID uuid.UUID) error {
	if ap.PatientID != patientID {
		return httperr.ErrForbidden("not_authorized")
	}
	if appointment.Status(ap.Status) != appointment.StatusCompleted {
		return httperr.ErrInvalidState("appointment_not_completed")
	}
	return nil
}
