package store

import (
	"errors"

	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
)

// Doctors is the gorm-backed doctor store.
type Doctors struct {
	DB *gorm.DB
}

// NewDoctors creates a doctor store.
func NewDoctors(db *gorm.DB) *Doctors {
	return &Doctors{DB: db}
}

// Get fetches a doctor with user and working hours loaded. Returns
// (nil, nil) when the row does not exist.
func (s *Doctors) Get(id string) (*models.Doctor, error) {
	var d models.Doctor
	err := s.DB.Preload("User").Preload("WorkingHours").First(&d, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// GetByUser resolves the doctor record owned by a DOCTOR-role user.
func (s *Doctors) GetByUser(userID string) (*models.Doctor, error) {
	var d models.Doctor
	err := s.DB.Preload("User").Preload("WorkingHours").First(&d, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
