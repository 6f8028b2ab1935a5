package scheduling

import "errors"

// Error kinds returned by the engine. Handlers translate these to HTTP
// statuses; the engine never retries and aborts the operation on the
// first failure, leaving all state unchanged.
var (
	ErrUnauthenticated      = errors.New("caller is not authenticated")
	ErrAccessDenied         = errors.New("access denied")
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrWorkingHoursNotFound = errors.New("no working hours for this day")
	ErrNotPatient           = errors.New("selected user is not a patient")
	ErrInvalidSlot          = errors.New("appointments are booked in 20-minute slots")
	ErrOutsideHours         = errors.New("outside working hours")
	ErrConflict             = errors.New("doctor already has an appointment at this time")
	ErrInvalidOffset        = errors.New("offset must be +20 or -20 minutes")
	ErrAlreadyCancelled     = errors.New("appointment is cancelled")
)
