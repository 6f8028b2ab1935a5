package scheduling

import (
	"clinic-booking-server/internal/models"
)

// Store contracts the engine depends on. All lookups return (nil, nil)
// when no matching row exists; the engine maps that to its own
// not-found kinds. Implementations must give strongly consistent reads
// relative to the calling process, or conflict detection is unsound.

// DoctorStore resolves doctor records with their working hours and user
// preloaded.
type DoctorStore interface {
	Get(id string) (*models.Doctor, error)
}

// UserStore resolves user records.
type UserStore interface {
	Get(id string) (*models.User, error)
}

// AppointmentStore persists appointments. Get preloads the doctor (with
// its user and working hours) and the patient.
type AppointmentStore interface {
	Get(id string) (*models.Appointment, error)
	FindByDoctor(doctorID string) ([]models.Appointment, error)
	FindByUser(userID string) ([]models.Appointment, error)
	Save(a *models.Appointment) error
}

// AssistantDoctorStore resolves delegation edges.
type AssistantDoctorStore interface {
	FindByAssistant(assistantID string) ([]models.AssistantDoctor, error)
}
