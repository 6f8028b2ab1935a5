package reminder

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
)

// Defaults for the sweep cadence and how far ahead it looks.
const (
	DefaultInterval = time.Minute
	DefaultHorizon  = 60 * time.Minute
)

// AppointmentSource lists BOOKED appointments with after < dateTime <
// before (both bounds exclusive), with the doctor's user and the
// patient preloaded.
type AppointmentSource interface {
	FindUpcomingBooked(after, before time.Time) ([]models.Appointment, error)
}

// NotificationSink persists reminders and answers the idempotency
// check.
type NotificationSink interface {
	ExistsForAppointment(userID, appointmentID string) (bool, error)
	Save(n *models.Notification) error
}

// Sweep periodically scans upcoming booked appointments and creates
// at most one reminder notification per appointment. Reminders are
// never re-sent and never retracted; a cancellation racing the sweep
// may leave one stale reminder behind, which is accepted.
type Sweep struct {
	Appointments  AppointmentSource
	Notifications NotificationSink
	Interval      time.Duration
	Horizon       time.Duration
	Log           *zap.Logger
}

// New builds a sweep with the default cadence and horizon.
func New(appointments AppointmentSource, notifications NotificationSink, log *zap.Logger) *Sweep {
	return &Sweep{
		Appointments:  appointments,
		Notifications: notifications,
		Interval:      DefaultInterval,
		Horizon:       DefaultHorizon,
		Log:           log,
	}
}

// Run loops until the context is cancelled, scanning once per interval.
func (s *Sweep) Run(ctx context.Context) {
	s.Log.Info("reminder sweep started",
		zap.Duration("interval", s.Interval),
		zap.Duration("horizon", s.Horizon))

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.Log.Info("reminder sweep stopped")
			return
		case <-ticker.C:
			s.RunOnce(time.Now())
		}
	}
}

// RunOnce performs a single scan and returns the number of reminders
// created. A failure on one appointment is logged and does not abort
// the rest of the batch.
func (s *Sweep) RunOnce(now time.Time) int {
	upcoming, err := s.Appointments.FindUpcomingBooked(now, now.Add(s.Horizon))
	if err != nil {
		s.Log.Error("reminder scan failed", zap.Error(err))
		return 0
	}

	created := 0
	for i := range upcoming {
		sent, err := s.remind(&upcoming[i])
		if err != nil {
			s.Log.Warn("failed to create reminder",
				zap.String("appointmentId", upcoming[i].ID),
				zap.Error(err))
			continue
		}
		if sent {
			created++
		}
	}
	return created
}

// remind creates the reminder for one appointment unless one already
// exists for it.
func (s *Sweep) remind(a *models.Appointment) (bool, error) {
	exists, err := s.Notifications.ExistsForAppointment(a.PatientID, a.ID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	n := &models.Notification{
		UserID:        a.PatientID,
		AppointmentID: &a.ID,
		Message: fmt.Sprintf("Reminder: appointment with Dr. %s at %s",
			a.Doctor.User.LastName, a.DateTime.Format(scheduling.ViewTimeLayout)),
	}
	if err := s.Notifications.Save(n); err != nil {
		return false, err
	}
	return true, nil
}
