package scheduling

import (
	"clinic-booking-server/internal/models"
)

// ViewTimeLayout is the minute-precision format used for timestamps in
// caller-facing projections.
const ViewTimeLayout = "2006-01-02T15:04"

// AppointmentView is the projection returned to callers instead of the
// raw entity.
type AppointmentView struct {
	ID          string                   `json:"id"`
	DoctorID    string                   `json:"doctorId"`
	DoctorName  string                   `json:"doctorName"`
	PatientID   string                   `json:"patientId"`
	PatientName string                   `json:"patientName"`
	DateTime    string                   `json:"dateTime"`
	Type        models.AppointmentType   `json:"type"`
	PaymentType string                   `json:"paymentType"`
	Status      models.AppointmentStatus `json:"status"`
}

// NewAppointmentView projects an appointment whose doctor (with user)
// and patient relations are loaded.
func NewAppointmentView(a *models.Appointment) AppointmentView {
	return AppointmentView{
		ID:          a.ID,
		DoctorID:    a.DoctorID,
		DoctorName:  a.Doctor.User.FullName(),
		PatientID:   a.PatientID,
		PatientName: a.Patient.FullName(),
		DateTime:    a.DateTime.Format(ViewTimeLayout),
		Type:        a.Type,
		PaymentType: a.PaymentType,
		Status:      a.Status,
	}
}
