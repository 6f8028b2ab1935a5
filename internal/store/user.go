package store

import (
	"errors"

	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
)

// Users is the gorm-backed user store.
type Users struct {
	DB *gorm.DB
}

// NewUsers creates a user store.
func NewUsers(db *gorm.DB) *Users {
	return &Users{DB: db}
}

// Get fetches a user. Returns (nil, nil) when the row does not exist.
func (s *Users) Get(id string) (*models.User, error) {
	var u models.User
	if err := s.DB.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
