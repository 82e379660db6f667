package doctor

import (
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// AvailabilityUpdate is a partial change to a doctor's weekly template.
// Nil fields stay unchanged.
type AvailabilityUpdate struct {
	Days        *[]string
	Slots       *[]models.TimeSlot
	IsAvailable *bool
}

func (u AvailabilityUpdate) IsEmpty() bool {
	return u.Days == nil && u.Slots == nil && u.IsAvailable == nil
}

func ValidateDays(days []string) error {
	seen := make(map[string]bool, len(days))
	for _, d := range days {
		if !validators.IsWeekday(d) {
			return httperr.ErrValidation("invalid_weekday")
		}
		if seen[d] {
			return httperr.ErrValidation("duplicate_weekday")
		}
		seen[d] = true
	}
	return nil
}

// ValidateSlots requires HH:MM clocks, start before end and a unique start
// time per template; start time is what identifies a booked slot.
func ValidateSlots(slots []models.TimeSlot) error {
	starts := make(map[string]bool, len(slots))
	for _, s := range slots {
		if !validators.IsClock(s.StartTime) || !validators.IsClock(s.EndTime) {
			return httperr.ErrValidation("invalid_time_format")
		}
		if !validators.ClockBefore(s.StartTime, s.EndTime) {
			return httperr.ErrValidation("invalid_time_range")
		}
		if starts[s.StartTime] {
			return httperr.ErrValidation("duplicate_slot")
		}
		starts[s.StartTime] = true
	}
	return nil
}

// Apply validates u and writes it onto doc. doc is untouched on error.
func (u AvailabilityUpdate) Apply(doc *models.Doctor) error {
	if u.Days != nil {
		if err := ValidateDays(*u.Days); err != nil {
			return err
		}
	}
	if u.Slots != nil {
		if err := ValidateSlots(*u.Slots); err != nil {
			return err
		}
	}

	if u.Days != nil {
		doc.AvailableDays = append([]string{}, *u.Days...)
	}
	if u.Slots != nil {
		doc.AvailableSlots = append([]models.TimeSlot{}, *u.Slots...)
	}
	if u.IsAvailable != nil {
		doc.IsAvailable = *u.IsAvailable
	}
	return nil
}
