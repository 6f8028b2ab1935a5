package scheduling

import (
	"clinic-booking-server/internal/models"
)

// Caller is the resolved identity of whoever triggered an operation.
// It is produced once at the HTTP boundary and passed in explicitly;
// the engine never looks identity up ambiently.
type Caller struct {
	UserID string
	Role   models.Role
}

// Valid reports whether the caller carries a resolvable identity.
func (c Caller) Valid() bool {
	return c.UserID != "" && c.Role != ""
}

// AccessGuard answers authorization questions for doctor-scoped and
// appointment-scoped actions.
type AccessGuard struct {
	Assistants AssistantDoctorStore
}

// isAssignedTo reports whether the assistant holds a delegation edge to
// the doctor.
func (g *AccessGuard) isAssignedTo(assistantID, doctorID string) (bool, error) {
	edges, err := g.Assistants.FindByAssistant(assistantID)
	if err != nil {
		return false, err
	}
	for _, e := range edges {
		if e.DoctorID == doctorID {
			return true, nil
		}
	}
	return false, nil
}

// CanActOnDoctor reports whether the caller may act on the doctor's
// schedule: admins always, the doctor themself, and assistants holding
// a delegation edge.
func (g *AccessGuard) CanActOnDoctor(caller Caller, doctor *models.Doctor) (bool, error) {
	switch caller.Role {
	case models.RoleAdmin:
		return true, nil
	case models.RoleDoctor:
		return doctor.UserID == caller.UserID, nil
	case models.RoleAssistant:
		return g.isAssignedTo(caller.UserID, doctor.ID)
	}
	return false, nil
}

// CanActOnAppointment reports whether the caller may edit or cancel the
// appointment: the booked patient, the treating doctor, or an assistant
// assigned to the treating doctor.
func (g *AccessGuard) CanActOnAppointment(caller Caller, a *models.Appointment) (bool, error) {
	switch caller.Role {
	case models.RoleUser:
		return a.PatientID == caller.UserID, nil
	case models.RoleDoctor:
		return a.Doctor.UserID == caller.UserID, nil
	case models.RoleAssistant:
		return g.isAssignedTo(caller.UserID, a.DoctorID)
	}
	return false, nil
}

// IsPatient reports whether the user holds the patient role. Used to
// reject delegated bookings whose target is a doctor, assistant or
// admin account.
func IsPatient(u *models.User) bool {
	return u.Role == models.RoleUser
}
