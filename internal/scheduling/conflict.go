package scheduling

import (
	"time"

	"clinic-booking-server/internal/models"
)

// ConflictDetector reports whether a candidate slot is already taken on
// a doctor's timeline.
type ConflictDetector struct {
	Appointments AppointmentStore
}

// occupiesSlot is the single place that decides whether an existing
// appointment blocks a candidate timestamp. Status is deliberately not
// inspected: a cancelled appointment at the same minute still blocks
// rebooking. Tighten the predicate here if that rule ever changes.
func occupiesSlot(a *models.Appointment, t time.Time, excludeID string) bool {
	if excludeID != "" && a.ID == excludeID {
		return false
	}
	return a.DateTime.Truncate(time.Minute).Equal(t.Truncate(time.Minute))
}

// HasConflict scans the doctor's appointments for one occupying the
// candidate timestamp, skipping excludeID (the appointment being moved,
// so it does not conflict with itself). An empty timeline never
// conflicts.
func (d *ConflictDetector) HasConflict(doctorID string, t time.Time, excludeID string) (bool, error) {
	existing, err := d.Appointments.FindByDoctor(doctorID)
	if err != nil {
		return false, err
	}
	for i := range existing {
		if occupiesSlot(&existing[i], t, excludeID) {
			return true, nil
		}
	}
	return false, nil
}
