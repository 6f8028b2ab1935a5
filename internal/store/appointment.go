package store

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
)

// Appointments is the gorm-backed appointment store used by the engine
// and the reminder sweep.
type Appointments struct {
	DB *gorm.DB
}

// NewAppointments creates an appointment store.
func NewAppointments(db *gorm.DB) *Appointments {
	return &Appointments{DB: db}
}

func (s *Appointments) withRelations() *gorm.DB {
	return s.DB.
		Preload("Doctor").
		Preload("Doctor.User").
		Preload("Doctor.WorkingHours").
		Preload("Patient")
}

// Get fetches one appointment with its doctor (user and working hours)
// and patient loaded. Returns (nil, nil) when the row does not exist.
func (s *Appointments) Get(id string) (*models.Appointment, error) {
	var a models.Appointment
	if err := s.withRelations().First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// FindByDoctor lists the doctor's full timeline, soonest first.
func (s *Appointments) FindByDoctor(doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.withRelations().
		Where("doctor_id = ?", doctorID).
		Order("date_time asc").
		Find(&appts).Error
	return appts, err
}

// FindByUser lists a patient's appointments, soonest first.
func (s *Appointments) FindByUser(userID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.withRelations().
		Where("patient_id = ?", userID).
		Order("date_time asc").
		Find(&appts).Error
	return appts, err
}

// Save inserts or updates an appointment.
func (s *Appointments) Save(a *models.Appointment) error {
	return s.DB.Save(a).Error
}

// FindUpcomingBooked lists BOOKED appointments strictly inside
// (after, before), feeding the reminder sweep.
func (s *Appointments) FindUpcomingBooked(after, before time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.DB.
		Preload("Doctor.User").
		Preload("Patient").
		Where("status = ? AND date_time > ? AND date_time < ?", models.StatusBooked, after, before).
		Find(&appts).Error
	return appts, err
}
