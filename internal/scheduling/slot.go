package scheduling

import "time"

// SlotMinutes is the fixed appointment granularity. Every appointment
// starts on a multiple of this many minutes past the hour.
const SlotMinutes = 20

// ValidateSlot rejects timestamps that do not land on a slot boundary.
func ValidateSlot(t time.Time) error {
	if t.Minute()%SlotMinutes != 0 {
		return ErrInvalidSlot
	}
	return nil
}
