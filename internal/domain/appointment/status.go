package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no-show"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return st, nil
	}
	return "", httperr.ErrValidation("invalid_status")
}

// IsTerminal: completed, cancelled and no-show admit no further transitions.
func (s Status) IsTerminal() bool {
	_, ok := transitions[s]
	return !ok
}

// HoldsSlot reports whether an appointment in this status keeps its slot
// booked.
func (s Status) HoldsSlot() bool {
	return s != StatusCancelled && s != StatusNoShow
}

// ===============================
// Validations
// ===============================

// CanTransition rejects anything outside the transition table, including
// self-transitions.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrInvalidState("invalid_transition")
}

// CanCancel reports the cancel-specific error for a status that cannot move
// to cancelled.
func CanCancel(current Status) error {
	if CanTransition(current, StatusCancelled) != nil {
		return httperr.ErrInvalidState("cannot_cancel")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}

// FreeingStatuses are the statuses that release a slot.
func FreeingStatuses() []string {
	return []string{string(StatusCancelled), string(StatusNoShow)}
}
