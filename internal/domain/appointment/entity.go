package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const DefaultCancellationReason = "Cancelled by user"

// ClinicalRecord is what a doctor attaches when completing a visit.
type ClinicalRecord struct {
	Diagnosis    string
	Prescription string
	Notes        string
}

func (r ClinicalRecord) IsEmpty() bool {
	return r.Diagnosis == "" && r.Prescription == "" && r.Notes == ""
}

func (r ClinicalRecord) Validate() error {
	if !validators.MaxLen(r.Diagnosis, MaxDiagnosisLen) ||
		!validators.MaxLen(r.Prescription, MaxPrescriptionLen) ||
		!validators.MaxLen(r.Notes, MaxNotesLen) {
		return httperr.ErrValidation("field_too_long")
	}
	return nil
}

// ===============================
// Domain Actions
// ===============================

// Transition moves ap to status to, stamping the matching timestamp.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	if reason == "" {
		reason = DefaultCancellationReason
	}
	if !validators.MaxLen(reason, MaxReasonLen) {
		return httperr.ErrValidation("field_too_long")
	}

	if err := Transition(ap, StatusCancelled, now); err != nil {
		return err
	}
	ap.CancellationReason = reason
	return nil
}

func Complete(ap *models.Appointment, rec ClinicalRecord, now time.Time) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := Transition(ap, StatusCompleted, now); err != nil {
		return err
	}

	if rec.Diagnosis != "" {
		ap.Diagnosis = rec.Diagnosis
	}
	if rec.Prescription != "" {
		ap.Prescription = rec.Prescription
	}
	if rec.Notes != "" {
		ap.Notes = rec.Notes
	}
	return nil
}
