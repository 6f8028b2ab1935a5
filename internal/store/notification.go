package store

import (
	"errors"

	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
)

// Notifications is the gorm-backed notification store.
type Notifications struct {
	DB *gorm.DB
}

// NewNotifications creates a notification store.
func NewNotifications(db *gorm.DB) *Notifications {
	return &Notifications{DB: db}
}

// ExistsForAppointment reports whether a reminder already references
// the appointment for that user. Backed by the unique index on
// (user_id, appointment_id), so a racing duplicate insert fails at the
// database as well.
func (s *Notifications) ExistsForAppointment(userID, appointmentID string) (bool, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND appointment_id = ?", userID, appointmentID).
		Count(&count).Error
	return count > 0, err
}

// Save inserts or updates a notification.
func (s *Notifications) Save(n *models.Notification) error {
	return s.DB.Save(n).Error
}

// FindByUser lists a user's notifications, newest first.
func (s *Notifications) FindByUser(userID string) ([]models.Notification, error) {
	var out []models.Notification
	err := s.DB.
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// Get fetches one notification. Returns (nil, nil) when the row does
// not exist.
func (s *Notifications) Get(id string) (*models.Notification, error) {
	var n models.Notification
	if err := s.DB.First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}
