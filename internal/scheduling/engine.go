package scheduling

import (
	"fmt"
	"time"

	"clinic-booking-server/internal/models"
)

// Engine owns the appointment lifecycle. Every operation validates in
// the same fixed order — access, slot granularity, working hours,
// conflicts — and aborts on the first failure without writing anything.
// The validate-then-write sequence for slot-affecting operations runs
// inside a per-doctor critical section so two concurrent bookings for
// the same slot cannot both succeed.
type Engine struct {
	doctors      DoctorStore
	users        UserStore
	appointments AppointmentStore
	guard        *AccessGuard
	conflicts    *ConflictDetector
	locks        *doctorLocks
}

// NewEngine wires the engine onto its stores.
func NewEngine(doctors DoctorStore, users UserStore, appointments AppointmentStore, assistants AssistantDoctorStore) *Engine {
	return &Engine{
		doctors:      doctors,
		users:        users,
		appointments: appointments,
		guard:        &AccessGuard{Assistants: assistants},
		conflicts:    &ConflictDetector{Appointments: appointments},
		locks:        newDoctorLocks(),
	}
}

// Guard exposes the engine's access guard for read-side checks done in
// handlers (e.g. listing a doctor's schedule).
func (e *Engine) Guard() *AccessGuard {
	return e.guard
}

// Book creates a BOOKED appointment for the patient at the given slot.
// Patients book for themselves; assistants book on behalf of an
// explicitly named patient and must hold a delegation edge to the
// doctor. The target of a delegated booking must actually be a patient.
func (e *Engine) Book(caller Caller, doctorID, patientID string, t time.Time, typ models.AppointmentType, paymentType string) (*AppointmentView, error) {
	if !caller.Valid() {
		return nil, ErrUnauthenticated
	}

	doctor, err := e.doctors.Get(doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	var patient *models.User
	switch caller.Role {
	case models.RoleUser:
		if patientID != "" && patientID != caller.UserID {
			return nil, fmt.Errorf("%w: patients can only book for themselves", ErrAccessDenied)
		}
		patientID = caller.UserID
	case models.RoleAssistant:
		allowed, err := e.guard.CanActOnDoctor(caller, doctor)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, fmt.Errorf("%w: not assigned to this doctor", ErrAccessDenied)
		}
		if patientID == "" {
			return nil, fmt.Errorf("%w: patientId is required", ErrPatientNotFound)
		}
	default:
		return nil, ErrAccessDenied
	}

	patient, err = e.users.Get(patientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	if caller.Role == models.RoleAssistant && !IsPatient(patient) {
		return nil, ErrNotPatient
	}

	mu := e.locks.lock(doctor.ID)
	defer mu.Unlock()

	if err := e.validateSlotFree(doctor, t, ""); err != nil {
		return nil, err
	}

	a := &models.Appointment{
		DoctorID:    doctor.ID,
		PatientID:   patient.ID,
		DateTime:    t,
		Type:        typ,
		PaymentType: paymentType,
		Status:      models.StatusBooked,
	}
	if err := e.appointments.Save(a); err != nil {
		return nil, err
	}

	a.Doctor = *doctor
	a.Patient = *patient
	view := NewAppointmentView(a)
	return &view, nil
}

// Reschedule moves an appointment to a new slot on the same doctor's
// timeline, optionally updating type and payment label (empty values
// keep the current ones). Callable by the booked patient, the treating
// doctor, or an assigned assistant. A cancelled appointment cannot be
// rescheduled.
func (e *Engine) Reschedule(caller Caller, appointmentID string, newTime time.Time, newType models.AppointmentType, newPaymentType string) (*AppointmentView, error) {
	a, err := e.loadForUpdate(caller, appointmentID)
	if err != nil {
		return nil, err
	}

	mu := e.locks.lock(a.DoctorID)
	defer mu.Unlock()

	// The pre-lock load may be stale: a cancel can land between the
	// authorization check and the critical section, and CANCELLED is
	// terminal. Reload before writing.
	a, err = e.reloadBooked(appointmentID)
	if err != nil {
		return nil, err
	}

	if err := e.validateSlotFree(&a.Doctor, newTime, a.ID); err != nil {
		return nil, err
	}

	a.DateTime = newTime
	if newType != "" {
		a.Type = newType
	}
	if newPaymentType != "" {
		a.PaymentType = newPaymentType
	}
	if err := e.appointments.Save(a); err != nil {
		return nil, err
	}

	view := NewAppointmentView(a)
	return &view, nil
}

// Shift nudges an appointment by exactly one slot in either direction.
// Doctor-only: the caller must be the treating doctor. Any offset other
// than +20 or -20 minutes is rejected before anything else is looked at.
func (e *Engine) Shift(caller Caller, appointmentID string, offsetMinutes int) (*AppointmentView, error) {
	if !caller.Valid() {
		return nil, ErrUnauthenticated
	}
	if offsetMinutes != SlotMinutes && offsetMinutes != -SlotMinutes {
		return nil, ErrInvalidOffset
	}

	a, err := e.appointments.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAppointmentNotFound
	}
	if caller.Role != models.RoleDoctor || a.Doctor.UserID != caller.UserID {
		return nil, fmt.Errorf("%w: not your appointment", ErrAccessDenied)
	}
	if a.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	mu := e.locks.lock(a.DoctorID)
	defer mu.Unlock()

	// Reload inside the critical section; a concurrent cancel or
	// reschedule may have changed the row since the ownership check.
	a, err = e.reloadBooked(appointmentID)
	if err != nil {
		return nil, err
	}

	newTime := a.DateTime.Add(time.Duration(offsetMinutes) * time.Minute)

	if err := e.validateSlotFree(&a.Doctor, newTime, a.ID); err != nil {
		return nil, err
	}

	a.DateTime = newTime
	if err := e.appointments.Save(a); err != nil {
		return nil, err
	}

	view := NewAppointmentView(a)
	return &view, nil
}

// Cancel transitions an appointment from BOOKED to CANCELLED. The
// transition is irreversible. Cancelling an already-cancelled
// appointment is accepted as a no-op rather than an error.
func (e *Engine) Cancel(caller Caller, appointmentID string) error {
	a, err := e.loadForCancel(caller, appointmentID)
	if err != nil {
		return err
	}

	// Take the doctor's lock so the status write cannot interleave
	// with a reschedule's validate-then-write sequence.
	mu := e.locks.lock(a.DoctorID)
	defer mu.Unlock()

	a, err = e.appointments.Get(appointmentID)
	if err != nil {
		return err
	}
	if a == nil {
		return ErrAppointmentNotFound
	}
	if a.Status == models.StatusCancelled {
		return nil
	}
	a.Status = models.StatusCancelled
	return e.appointments.Save(a)
}

// ListMyAppointments returns the caller's own appointments as a
// patient.
func (e *Engine) ListMyAppointments(caller Caller) ([]AppointmentView, error) {
	if !caller.Valid() {
		return nil, ErrUnauthenticated
	}
	appts, err := e.appointments.FindByUser(caller.UserID)
	if err != nil {
		return nil, err
	}
	return views(appts), nil
}

// ListDoctorAppointments returns the doctor's schedule. Callable by the
// doctor themself, an assigned assistant, or an admin.
func (e *Engine) ListDoctorAppointments(caller Caller, doctorID string) ([]AppointmentView, error) {
	if !caller.Valid() {
		return nil, ErrUnauthenticated
	}
	doctor, err := e.doctors.Get(doctorID)
	if err != nil {
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	allowed, err := e.guard.CanActOnDoctor(caller, doctor)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}
	appts, err := e.appointments.FindByDoctor(doctorID)
	if err != nil {
		return nil, err
	}
	return views(appts), nil
}

// validateSlotFree runs the slot, working-hours and conflict checks in
// order. Callers hold the doctor's lock.
func (e *Engine) validateSlotFree(doctor *models.Doctor, t time.Time, excludeID string) error {
	if err := ValidateSlot(t); err != nil {
		return err
	}
	if err := ValidateWorkingHours(doctor, t); err != nil {
		return err
	}
	conflict, err := e.conflicts.HasConflict(doctor.ID, t, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrConflict
	}
	return nil
}

// loadForUpdate fetches an appointment and checks the caller may modify
// it. Cancelled appointments accept no further edits.
func (e *Engine) loadForUpdate(caller Caller, appointmentID string) (*models.Appointment, error) {
	a, err := e.loadForCancel(caller, appointmentID)
	if err != nil {
		return nil, err
	}
	if a.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	return a, nil
}

// reloadBooked re-fetches an appointment inside the doctor's critical
// section and rejects terminal states. Callers hold the doctor's lock.
func (e *Engine) reloadBooked(appointmentID string) (*models.Appointment, error) {
	a, err := e.appointments.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAppointmentNotFound
	}
	if a.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	return a, nil
}

// loadForCancel fetches an appointment and checks ownership/delegation
// without the terminal-state guard.
func (e *Engine) loadForCancel(caller Caller, appointmentID string) (*models.Appointment, error) {
	if !caller.Valid() {
		return nil, ErrUnauthenticated
	}
	a, err := e.appointments.Get(appointmentID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAppointmentNotFound
	}
	allowed, err := e.guard.CanActOnAppointment(caller, a)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrAccessDenied
	}
	return a, nil
}

func views(appts []models.Appointment) []AppointmentView {
	out := make([]AppointmentView, 0, len(appts))
	for i := range appts {
		out = append(out, NewAppointmentView(&appts[i]))
	}
	return out
}
