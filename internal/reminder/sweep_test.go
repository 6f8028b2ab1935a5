package reminder_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/reminder"
)

type fakeSource struct {
	appts []models.Appointment
}

func (s *fakeSource) FindUpcomingBooked(after, before time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range s.appts {
		if a.Status == models.StatusBooked && a.DateTime.After(after) && a.DateTime.Before(before) {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeSink struct {
	saved   []models.Notification
	failFor string
}

func (s *fakeSink) ExistsForAppointment(userID, appointmentID string) (bool, error) {
	for _, n := range s.saved {
		if n.UserID == userID && n.AppointmentID != nil && *n.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeSink) Save(n *models.Notification) error {
	if s.failFor != "" && n.AppointmentID != nil && *n.AppointmentID == s.failFor {
		return errors.New("sink unavailable")
	}
	s.saved = append(s.saved, *n)
	return nil
}

func appt(id string, dateTime time.Time, status models.AppointmentStatus) models.Appointment {
	return models.Appointment{
		BaseModel: models.BaseModel{ID: id},
		PatientID: "patient-" + id,
		DateTime:  dateTime,
		Status:    status,
		Doctor: models.Doctor{
			User: models.User{LastName: "Petrova"},
		},
	}
}

func newSweep(src *fakeSource, sink *fakeSink) *reminder.Sweep {
	return reminder.New(src, sink, zap.NewNop())
}

func TestSweepWindow(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	src := &fakeSource{appts: []models.Appointment{
		appt("past", now.Add(-20*time.Minute), models.StatusBooked),
		appt("soon", now.Add(40*time.Minute), models.StatusBooked),
		appt("cancelled", now.Add(40*time.Minute), models.StatusCancelled),
		appt("on-horizon", now.Add(60*time.Minute), models.StatusBooked),
		appt("too-far", now.Add(90*time.Minute), models.StatusBooked),
	}}
	sink := &fakeSink{}

	created := newSweep(src, sink).RunOnce(now)
	if created != 1 {
		t.Fatalf("want 1 reminder, got %d", created)
	}
	n := sink.saved[0]
	if n.UserID != "patient-soon" {
		t.Errorf("reminder for wrong user %q", n.UserID)
	}
	want := "Reminder: appointment with Dr. Petrova at 2025-01-06T08:40"
	if n.Message != want {
		t.Errorf("message %q, want %q", n.Message, want)
	}
	if n.Read {
		t.Error("reminder should start unread")
	}
}

func TestSweepIdempotency(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	src := &fakeSource{appts: []models.Appointment{
		appt("a1", now.Add(40*time.Minute), models.StatusBooked),
	}}
	sink := &fakeSink{}
	sweep := newSweep(src, sink)

	if created := sweep.RunOnce(now); created != 1 {
		t.Fatalf("first run: want 1, got %d", created)
	}
	if created := sweep.RunOnce(now); created != 0 {
		t.Fatalf("second run: want 0, got %d", created)
	}
	if len(sink.saved) != 1 {
		t.Fatalf("want exactly 1 stored reminder, got %d", len(sink.saved))
	}
}

func TestSweepIsolatesFailures(t *testing.T) {
	now := time.Date(2025, 1, 6, 8, 0, 0, 0, time.UTC)
	src := &fakeSource{appts: []models.Appointment{
		appt("a0", now.Add(20*time.Minute), models.StatusBooked),
		appt("a1", now.Add(40*time.Minute), models.StatusBooked),
		appt("a2", now.Add(40*time.Minute), models.StatusBooked),
	}}
	sink := &fakeSink{failFor: "a1"}

	created := newSweep(src, sink).RunOnce(now)
	if created != 2 {
		t.Fatalf("want 2 reminders despite one failure, got %d", created)
	}
	for _, n := range sink.saved {
		if n.AppointmentID != nil && *n.AppointmentID == "a1" {
			t.Error("failed appointment should not have a stored reminder")
		}
		if !strings.HasPrefix(n.Message, "Reminder: appointment with Dr. ") {
			t.Errorf("unexpected message %q", n.Message)
		}
	}
}
