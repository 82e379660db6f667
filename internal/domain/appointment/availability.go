package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilityInput struct {
	DoctorID uuid.UUID
	Date     time.Time
}

type TimeSlot = models.TimeSlot

// WorksOn reports whether the doctor takes bookings on the weekday of date.
func WorksOn(doc *models.Doctor, date time.Time) bool {
	day := date.Weekday().String()
	for _, d := range doc.AvailableDays {
		if d == day {
			return true
		}
	}
	return false
}

// ResolveAvailableSlots returns the doctor's slot templates for date minus
// those whose start time is held by one of booked. Template order is kept.
// A day the doctor does not work yields an empty, non-nil slice.
func ResolveAvailableSlots(
	doc *models.Doctor,
	date time.Time,
	booked []models.Appointment,
) []TimeSlot {

	slots := []TimeSlot{}
	if !WorksOn(doc, date) {
		return slots
	}

	taken := make(map[string]struct{}, len(booked))
	for _, ap := range booked {
		if Status(ap.Status).HoldsSlot() {
			taken[ap.TimeSlot.StartTime] = struct{}{}
		}
	}

	for _, s := range doc.AvailableSlots {
		if _, ok := taken[s.StartTime]; ok {
			continue
		}
		slots = append(slots, s)
	}

	return slots
}

// IsSlotOffered checks that slot is one of the doctor's templates and that the
// doctor works on date.
func IsSlotOffered(doc *models.Doctor, date time.Time, slot TimeSlot) bool {
	if !WorksOn(doc, date) {
		return false
	}
	for _, s := range doc.AvailableSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// SlotKey identifies one bookable (doctor, date, start) triple.
func SlotKey(doctorID uuid.UUID, date time.Time, start string) string {
	return doctorID.String() + ":" + date.Format("2006-01-02") + ":" + start
}
