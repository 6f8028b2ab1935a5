package scheduling_test

import (
	"testing"
	"time"

	"clinic-booking-server/internal/scheduling"
)

func at(hour, min int) time.Time {
	// 2025-01-06 is a Monday
	return time.Date(2025, 1, 6, hour, min, 0, 0, time.UTC)
}

func TestValidateSlot(t *testing.T) {
	cases := []struct {
		min int
		ok  bool
	}{
		{0, true},
		{20, true},
		{40, true},
		{25, false},
		{5, false},
		{59, false},
	}
	for _, c := range cases {
		err := scheduling.ValidateSlot(at(10, c.min))
		if c.ok && err != nil {
			t.Errorf("minute %d: unexpected error %v", c.min, err)
		}
		if !c.ok && err != scheduling.ErrInvalidSlot {
			t.Errorf("minute %d: want ErrInvalidSlot, got %v", c.min, err)
		}
	}
}
