package store

import (
	"gorm.io/gorm"

	"clinic-booking-server/internal/models"
)

// AssistantDoctors is the gorm-backed delegation-edge store.
type AssistantDoctors struct {
	DB *gorm.DB
}

// NewAssistantDoctors creates a delegation-edge store.
func NewAssistantDoctors(db *gorm.DB) *AssistantDoctors {
	return &AssistantDoctors{DB: db}
}

// FindByAssistant lists all edges held by an assistant, with the doctor
// (and its user) loaded for listing views.
func (s *AssistantDoctors) FindByAssistant(assistantID string) ([]models.AssistantDoctor, error) {
	var edges []models.AssistantDoctor
	err := s.DB.
		Preload("Doctor").
		Preload("Doctor.User").
		Where("assistant_id = ?", assistantID).
		Find(&edges).Error
	return edges, err
}
