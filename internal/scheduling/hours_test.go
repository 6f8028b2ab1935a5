package scheduling_test

import (
	"errors"
	"testing"
	"time"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
)

func mondayDoctor() *models.Doctor {
	return &models.Doctor{
		WorkingHours: []models.WorkingHours{
			{DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00"},
		},
	}
}

func TestWeekday(t *testing.T) {
	// 2025-01-06 is a Monday, 2025-01-12 a Sunday
	if got := scheduling.Weekday(time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)); got != 1 {
		t.Errorf("Monday: want 1, got %d", got)
	}
	if got := scheduling.Weekday(time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC)); got != 7 {
		t.Errorf("Sunday: want 7, got %d", got)
	}
}

func TestValidateWorkingHours(t *testing.T) {
	doc := mondayDoctor()

	cases := []struct {
		name string
		t    time.Time
		ok   bool
	}{
		{"before opening", at(7, 40), false},
		{"at opening", at(8, 0), true},
		{"mid day", at(12, 20), true},
		{"at closing, inclusive", at(16, 0), true},
		{"after closing", at(16, 20), false},
		{"day without hours", time.Date(2025, 1, 7, 9, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		err := scheduling.ValidateWorkingHours(doc, c.t)
		if c.ok && err != nil {
			t.Errorf("%s: unexpected error %v", c.name, err)
		}
		if !c.ok && !errors.Is(err, scheduling.ErrOutsideHours) {
			t.Errorf("%s: want ErrOutsideHours, got %v", c.name, err)
		}
	}
}

func TestWithinHoursInclusiveBounds(t *testing.T) {
	wh := &models.WorkingHours{DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00"}
	if !scheduling.WithinHours(wh, at(8, 0)) {
		t.Error("start bound should be inclusive")
	}
	if !scheduling.WithinHours(wh, at(16, 0)) {
		t.Error("end bound should be inclusive")
	}
	if scheduling.WithinHours(wh, at(16, 1)) {
		t.Error("past end should be outside")
	}
}
