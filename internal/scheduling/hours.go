package scheduling

import (
	"fmt"
	"time"

	"clinic-booking-server/internal/models"
)

// Weekday maps a timestamp's calendar day to the 1=Monday..7=Sunday
// numbering used by WorkingHours rows.
func Weekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 { // time.Sunday
		return 7
	}
	return wd
}

// HoursFor returns the doctor's working hours entry for the given
// weekday, or ErrOutsideHours if the doctor does not work that day.
func HoursFor(doctor *models.Doctor, weekday int) (*models.WorkingHours, error) {
	for i := range doctor.WorkingHours {
		if doctor.WorkingHours[i].DayOfWeek == weekday {
			return &doctor.WorkingHours[i], nil
		}
	}
	return nil, fmt.Errorf("%w: doctor not working this day", ErrOutsideHours)
}

// WithinHours reports whether the timestamp's time of day falls inside
// [StartTime, EndTime]. Times compare lexicographically as "HH:MM"
// strings; both bounds are inclusive, so a booking exactly at EndTime
// is accepted.
func WithinHours(wh *models.WorkingHours, t time.Time) bool {
	slot := t.Format("15:04")
	return slot >= wh.StartTime && slot <= wh.EndTime
}

// ValidateWorkingHours checks that the candidate timestamp falls inside
// the doctor's hours for that day.
func ValidateWorkingHours(doctor *models.Doctor, t time.Time) error {
	wh, err := HoursFor(doctor, Weekday(t))
	if err != nil {
		return err
	}
	if !WithinHours(wh, t) {
		return ErrOutsideHours
	}
	return nil
}
