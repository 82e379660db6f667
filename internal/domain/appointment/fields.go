package appointment

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const (
	MaxSymptomsLen     = 500
	MaxNotesLen        = 1000
	MaxDiagnosisLen    = 1000
	MaxPrescriptionLen = 2000
	MaxReasonLen       = 500
)

type Type string

const (
	TypeConsultation   Type = "consultation"
	TypeFollowUp       Type = "follow-up"
	TypeEmergency      Type = "emergency"
	TypeRoutineCheckup Type = "routine-checkup"
)

// ParseType defaults an empty value to consultation.
func ParseType(s string) (Type, error) {
	if s == "" {
		return TypeConsultation, nil
	}
	switch t := Type(s); t {
	case TypeConsultation, TypeFollowUp, TypeEmergency, TypeRoutineCheckup:
		return t, nil
	}
	return "", httperr.ErrValidation("invalid_type")
}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch p := PaymentStatus(s); p {
	case PaymentPending, PaymentPaid, PaymentRefunded:
		return p, nil
	}
	return "", httperr.ErrValidation("invalid_payment_status")
}

// ===============================
// Field policy
// ===============================

type Field string

const (
	FieldSymptoms      Field = "symptoms"
	FieldType          Field = "type"
	FieldNotes         Field = "notes"
	FieldDiagnosis     Field = "diagnosis"
	FieldPrescription  Field = "prescription"
	FieldPaymentStatus Field = "payment_status"
)

var permittedFields = map[actor.Role][]Field{
	actor.RolePatient: {FieldSymptoms, FieldType},
	actor.RoleDoctor:  {FieldSymptoms, FieldType, FieldNotes, FieldDiagnosis, FieldPrescription, FieldPaymentStatus},
	actor.RoleAdmin:   {FieldSymptoms, FieldType, FieldNotes, FieldDiagnosis, FieldPrescription, FieldPaymentStatus},
}

// PermittedFields is the set of fields role may change through a partial
// update. Status, fee, date and slot are never in it.
func PermittedFields(role actor.Role) map[Field]bool {
	out := make(map[Field]bool, len(permittedFields[role]))
	for _, f := range permittedFields[role] {
		out[f] = true
	}
	return out
}

// Patch is a partial update; nil means "leave unchanged".
type Patch struct {
	Symptoms      *string
	Type          *string
	Notes         *string
	Diagnosis     *string
	Prescription  *string
	PaymentStatus *string
}

// Project drops every field role may not write.
func (p Patch) Project(role actor.Role) Patch {
	allowed := PermittedFields(role)
	keep := func(f Field, v *string) *string {
		if allowed[f] {
			return v
		}
		return nil
	}
	return Patch{
		Symptoms:      keep(FieldSymptoms, p.Symptoms),
		Type:          keep(FieldType, p.Type),
		Notes:         keep(FieldNotes, p.Notes),
		Diagnosis:     keep(FieldDiagnosis, p.Diagnosis),
		Prescription:  keep(FieldPrescription, p.Prescription),
		PaymentStatus: keep(FieldPaymentStatus, p.PaymentStatus),
	}
}

func (p Patch) IsEmpty() bool {
	return p.Symptoms == nil && p.Type == nil && p.Notes == nil &&
		p.Diagnosis == nil && p.Prescription == nil && p.PaymentStatus == nil
}

// Columns lists the stored columns the patch writes.
func (p Patch) Columns() []string {
	var cols []string
	add := func(f Field, v *string) {
		if v != nil {
			cols = append(cols, string(f))
		}
	}
	add(FieldSymptoms, p.Symptoms)
	add(FieldType, p.Type)
	add(FieldNotes, p.Notes)
	add(FieldDiagnosis, p.Diagnosis)
	add(FieldPrescription, p.Prescription)
	add(FieldPaymentStatus, p.PaymentStatus)
	return cols
}

// Apply validates every present field and writes them onto ap. Nothing is
// written when any field is invalid.
func (p Patch) Apply(ap *models.Appointment) error {
	var (
		typ Type
		pay PaymentStatus
		err error
	)

	if p.Type != nil {
		if typ, err = ParseType(*p.Type); err != nil {
			return err
		}
	}
	if p.PaymentStatus != nil {
		if pay, err = ParsePaymentStatus(*p.PaymentStatus); err != nil {
			return err
		}
	}
	if (p.Symptoms != nil && !validators.MaxLen(*p.Symptoms, MaxSymptomsLen)) ||
		(p.Notes != nil && !validators.MaxLen(*p.Notes, MaxNotesLen)) ||
		(p.Diagnosis != nil && !validators.MaxLen(*p.Diagnosis, MaxDiagnosisLen)) ||
		(p.Prescription != nil && !validators.MaxLen(*p.Prescription, MaxPrescriptionLen)) {
		return httperr.ErrValidation("field_too_long")
	}

	if p.Symptoms != nil {
		ap.Symptoms = *p.Symptoms
	}
	if p.Type != nil {
		ap.Type = string(typ)
	}
	if p.Notes != nil {
		ap.Notes = *p.Notes
	}
	if p.Diagnosis != nil {
		ap.Diagnosis = *p.Diagnosis
	}
	if p.Prescription != nil {
		ap.Prescription = *p.Prescription
	}
	if p.PaymentStatus != nil {
		ap.PaymentStatus = string(pay)
	}
	return nil
}
