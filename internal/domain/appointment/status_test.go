package appointment

import (
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	all := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}

	legal := map[[2]Status]bool{
		{StatusPending, StatusConfirmed}:   true,
		{StatusPending, StatusCancelled}:   true,
		{StatusConfirmed, StatusCompleted}: true,
		{StatusConfirmed, StatusCancelled}: true,
		{StatusConfirmed, StatusNoShow}:    true,
	}

	for _, from := range all {
		for _, to := range all {
			err := CanTransition(from, to)
			if legal[[2]Status{from, to}] {
				if err != nil {
					t.Errorf("%s -> %s should be allowed, got %v", from, to, err)
				}
				continue
			}
			if httperr.KindOf(err) != httperr.KindInvalidState {
				t.Errorf("%s -> %s should be invalid_state, got %v", from, to, err)
			}
		}
	}
}

func TestStatus_Terminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPending, StatusConfirmed} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestStatus_HoldsSlot(t *testing.T) {
	if StatusCancelled.HoldsSlot() || StatusNoShow.HoldsSlot() {
		t.Error("cancelled and no-show release the slot")
	}
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusCompleted} {
		if !s.HoldsSlot() {
			t.Errorf("%s should hold the slot", s)
		}
	}
}

func TestCanCancel(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed} {
		if err := CanCancel(s); err != nil {
			t.Errorf("cancel from %s: %v", s, err)
		}
	}
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		if !httperr.IsBusiness(CanCancel(s), "cannot_cancel") {
			t.Errorf("cancel from %s should fail with cannot_cancel", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if _, err := ParseStatus("no-show"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if httperr.KindOf(func() error { _, err := ParseStatus("archived"); return err }()) != httperr.KindValidation {
		t.Error("unknown status should be a validation error")
	}
}
