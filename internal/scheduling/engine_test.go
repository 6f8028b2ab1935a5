package scheduling_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
)

type fixture struct {
	db        *memDB
	engine    *scheduling.Engine
	doctor    *models.Doctor
	docUser   *models.User
	patient   *models.User
	assistant *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newMemDB()
	docUser := db.addUser(models.RoleDoctor, "Maria", "Petrova")
	doctor := db.addDoctor(docUser,
		models.WorkingHours{DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00"},
		models.WorkingHours{DayOfWeek: 3, StartTime: "10:00", EndTime: "14:00"},
	)
	patient := db.addUser(models.RoleUser, "Ivan", "Georgiev")
	assistant := db.addUser(models.RoleAssistant, "Elena", "Dimitrova")
	engine := scheduling.NewEngine(doctorStore{db}, userStore{db}, apptStore{db}, edgeStore{db})
	return &fixture{db: db, engine: engine, doctor: doctor, docUser: docUser, patient: patient, assistant: assistant}
}

func (f *fixture) patientCaller() scheduling.Caller {
	return scheduling.Caller{UserID: f.patient.ID, Role: models.RoleUser}
}

func (f *fixture) doctorCaller() scheduling.Caller {
	return scheduling.Caller{UserID: f.docUser.ID, Role: models.RoleDoctor}
}

func (f *fixture) assistantCaller() scheduling.Caller {
	return scheduling.Caller{UserID: f.assistant.ID, Role: models.RoleAssistant}
}

func (f *fixture) book(t *testing.T, slot time.Time) *scheduling.AppointmentView {
	t.Helper()
	v, err := f.engine.Book(f.patientCaller(), f.doctor.ID, "", slot, models.TypePrimary, "PRIVATE")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	return v
}

func TestBook(t *testing.T) {
	f := newFixture(t)

	v := f.book(t, at(9, 0))
	if v.Status != models.StatusBooked {
		t.Errorf("want BOOKED, got %s", v.Status)
	}
	if v.DoctorName != "Maria Petrova" || v.PatientName != "Ivan Georgiev" {
		t.Errorf("unexpected names in view: %q / %q", v.DoctorName, v.PatientName)
	}
	if v.DateTime != "2025-01-06T09:00" {
		t.Errorf("unexpected dateTime %q", v.DateTime)
	}
}

func TestBookValidationOrder(t *testing.T) {
	f := newFixture(t)
	f.book(t, at(9, 0))

	cases := []struct {
		name string
		slot time.Time
		want error
	}{
		{"off-grid minute", at(9, 25), scheduling.ErrInvalidSlot},
		{"before opening", at(7, 40), scheduling.ErrOutsideHours},
		{"occupied slot", at(9, 0), scheduling.ErrConflict},
	}
	for _, c := range cases {
		_, err := f.engine.Book(f.patientCaller(), f.doctor.ID, "", c.slot, models.TypePrimary, "PRIVATE")
		if !errors.Is(err, c.want) {
			t.Errorf("%s: want %v, got %v", c.name, c.want, err)
		}
	}
}

func TestBookClosingSlotInclusive(t *testing.T) {
	f := newFixture(t)
	if _, err := f.engine.Book(f.patientCaller(), f.doctor.ID, "", at(16, 0), models.TypePrimary, "PRIVATE"); err != nil {
		t.Fatalf("booking at closing time should succeed: %v", err)
	}
	if _, err := f.engine.Book(f.patientCaller(), f.doctor.ID, "", at(16, 20), models.TypePrimary, "PRIVATE"); !errors.Is(err, scheduling.ErrOutsideHours) {
		t.Fatalf("booking past closing: want ErrOutsideHours, got %v", err)
	}
}

func TestBookUnknownDoctor(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Book(f.patientCaller(), "no-such-doctor", "", at(9, 0), models.TypePrimary, "PRIVATE")
	if !errors.Is(err, scheduling.ErrDoctorNotFound) {
		t.Fatalf("want ErrDoctorNotFound, got %v", err)
	}
}

func TestBookForSomeoneElseDenied(t *testing.T) {
	f := newFixture(t)
	other := f.db.addUser(models.RoleUser, "Petar", "Ivanov")
	_, err := f.engine.Book(f.patientCaller(), f.doctor.ID, other.ID, at(9, 0), models.TypePrimary, "PRIVATE")
	if !errors.Is(err, scheduling.ErrAccessDenied) {
		t.Fatalf("want ErrAccessDenied, got %v", err)
	}
}

func TestBookUnauthenticated(t *testing.T) {
	f := newFixture(t)
	_, err := f.engine.Book(scheduling.Caller{}, f.doctor.ID, "", at(9, 0), models.TypePrimary, "PRIVATE")
	if !errors.Is(err, scheduling.ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
}

func TestAssistantBooking(t *testing.T) {
	f := newFixture(t)

	// no delegation edge yet
	_, err := f.engine.Book(f.assistantCaller(), f.doctor.ID, f.patient.ID, at(9, 0), models.TypePrimary, "NHIF")
	if !errors.Is(err, scheduling.ErrAccessDenied) {
		t.Fatalf("unassigned assistant: want ErrAccessDenied, got %v", err)
	}

	f.db.addEdge(f.assistant, f.doctor)

	// the appointment must be attributed to the patient, not the assistant
	v, err := f.engine.Book(f.assistantCaller(), f.doctor.ID, f.patient.ID, at(9, 0), models.TypePrimary, "NHIF")
	if err != nil {
		t.Fatalf("assigned assistant: %v", err)
	}
	if v.PatientID != f.patient.ID {
		t.Errorf("appointment attributed to %s, want patient %s", v.PatientID, f.patient.ID)
	}

	// an explicit patient id is required
	_, err = f.engine.Book(f.assistantCaller(), f.doctor.ID, "", at(9, 20), models.TypePrimary, "NHIF")
	if !errors.Is(err, scheduling.ErrPatientNotFound) {
		t.Errorf("missing patientId: want ErrPatientNotFound, got %v", err)
	}

	// the target must hold the patient role
	_, err = f.engine.Book(f.assistantCaller(), f.doctor.ID, f.docUser.ID, at(9, 20), models.TypePrimary, "NHIF")
	if !errors.Is(err, scheduling.ErrNotPatient) {
		t.Errorf("non-patient target: want ErrNotPatient, got %v", err)
	}
}

func TestConcurrentBookingSameSlot(t *testing.T) {
	f := newFixture(t)

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.engine.Book(f.patientCaller(), f.doctor.ID, "", at(9, 0), models.TypePrimary, "PRIVATE")
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, scheduling.ErrConflict):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflict != 1 {
		t.Fatalf("want exactly one success and one conflict, got %d/%d", ok, conflict)
	}
}

func TestRescheduleSelfExclusion(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))

	moved, err := f.engine.Reschedule(f.patientCaller(), v.ID, at(9, 20), "", "")
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.DateTime != "2025-01-06T09:20" {
		t.Errorf("unexpected dateTime %q", moved.DateTime)
	}

	// the vacated slot is NOT reusable: the conflict scan ignores status
	// and the moved appointment no longer sits there, so a fresh booking
	// at 09:00 must succeed.
	if _, err := f.engine.Book(f.patientCaller(), f.doctor.ID, "", at(9, 0), models.TypePrimary, "PRIVATE"); err != nil {
		t.Fatalf("rebooking vacated slot: %v", err)
	}
}

func TestRescheduleUpdatesTypeAndPayment(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))

	moved, err := f.engine.Reschedule(f.patientCaller(), v.ID, at(10, 0), models.TypeFollowUp, "NHIF")
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if moved.Type != models.TypeFollowUp || moved.PaymentType != "NHIF" {
		t.Errorf("got %s/%s", moved.Type, moved.PaymentType)
	}

	// empty values keep the current ones
	kept, err := f.engine.Reschedule(f.patientCaller(), v.ID, at(10, 20), "", "")
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if kept.Type != models.TypeFollowUp || kept.PaymentType != "NHIF" {
		t.Errorf("fields not kept: %s/%s", kept.Type, kept.PaymentType)
	}
}

func TestRescheduleDeniedForStranger(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))
	stranger := f.db.addUser(models.RoleUser, "Georgi", "Stoyanov")

	_, err := f.engine.Reschedule(scheduling.Caller{UserID: stranger.ID, Role: models.RoleUser}, v.ID, at(9, 20), "", "")
	if !errors.Is(err, scheduling.ErrAccessDenied) {
		t.Fatalf("want ErrAccessDenied, got %v", err)
	}
}

func TestAssistantDelegationScoping(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))

	_, err := f.engine.Reschedule(f.assistantCaller(), v.ID, at(9, 20), "", "")
	if !errors.Is(err, scheduling.ErrAccessDenied) {
		t.Fatalf("before edge: want ErrAccessDenied, got %v", err)
	}

	f.db.addEdge(f.assistant, f.doctor)

	if _, err := f.engine.Reschedule(f.assistantCaller(), v.ID, at(9, 20), "", ""); err != nil {
		t.Fatalf("after edge: %v", err)
	}
}

func TestShift(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))

	moved, err := f.engine.Shift(f.doctorCaller(), v.ID, 20)
	if err != nil {
		t.Fatalf("shift +20: %v", err)
	}
	if moved.DateTime != "2025-01-06T09:20" {
		t.Errorf("unexpected dateTime %q", moved.DateTime)
	}

	moved, err = f.engine.Shift(f.doctorCaller(), v.ID, -20)
	if err != nil {
		t.Fatalf("shift -20: %v", err)
	}
	if moved.DateTime != "2025-01-06T09:00" {
		t.Errorf("unexpected dateTime %q", moved.DateTime)
	}
}

func TestShiftRejectsOtherOffsets(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))

	for _, offset := range []int{5, -5, 0, 40, 21} {
		if _, err := f.engine.Shift(f.doctorCaller(), v.ID, offset); !errors.Is(err, scheduling.ErrInvalidOffset) {
			t.Errorf("offset %d: want ErrInvalidOffset, got %v", offset, err)
		}
	}
}

func TestShiftDoctorOnly(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))

	if _, err := f.engine.Shift(f.patientCaller(), v.ID, 20); !errors.Is(err, scheduling.ErrAccessDenied) {
		t.Errorf("patient shift: want ErrAccessDenied, got %v", err)
	}

	otherDoc := f.db.addUser(models.RoleDoctor, "Stefan", "Nikolov")
	f.db.addDoctor(otherDoc)
	if _, err := f.engine.Shift(scheduling.Caller{UserID: otherDoc.ID, Role: models.RoleDoctor}, v.ID, 20); !errors.Is(err, scheduling.ErrAccessDenied) {
		t.Errorf("other doctor shift: want ErrAccessDenied, got %v", err)
	}
}

func TestShiftIntoOccupiedSlot(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))
	f.book(t, at(9, 20))

	if _, err := f.engine.Shift(f.doctorCaller(), v.ID, 20); !errors.Is(err, scheduling.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestCancelIsIdempotentAndTerminal(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))

	if err := f.engine.Cancel(f.patientCaller(), v.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// cancelling again is a no-op, not an error
	if err := f.engine.Cancel(f.patientCaller(), v.ID); err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	// a cancelled appointment accepts no further edits
	if _, err := f.engine.Reschedule(f.patientCaller(), v.ID, at(9, 20), "", ""); !errors.Is(err, scheduling.ErrAlreadyCancelled) {
		t.Fatalf("reschedule after cancel: want ErrAlreadyCancelled, got %v", err)
	}
	if _, err := f.engine.Shift(f.doctorCaller(), v.ID, 20); !errors.Is(err, scheduling.ErrAlreadyCancelled) {
		t.Fatalf("shift after cancel: want ErrAlreadyCancelled, got %v", err)
	}
}

// gateStore wraps the appointment store and fires a callback after the
// first Get, opening the window between an operation's authorization
// load and its critical section.
type gateStore struct {
	apptStore
	mu    sync.Mutex
	fired bool
	onGet func()
}

func (s *gateStore) Get(id string) (*models.Appointment, error) {
	a, err := s.apptStore.Get(id)
	s.mu.Lock()
	fire := s.onGet != nil && !s.fired
	if fire {
		s.fired = true
	}
	hook := s.onGet
	s.mu.Unlock()
	if fire {
		hook()
	}
	return a, err
}

func newGatedFixture(t *testing.T) (*fixture, *gateStore) {
	t.Helper()
	db := newMemDB()
	docUser := db.addUser(models.RoleDoctor, "Maria", "Petrova")
	doctor := db.addDoctor(docUser,
		models.WorkingHours{DayOfWeek: 1, StartTime: "08:00", EndTime: "16:00"},
	)
	patient := db.addUser(models.RoleUser, "Ivan", "Georgiev")
	assistant := db.addUser(models.RoleAssistant, "Elena", "Dimitrova")
	gs := &gateStore{apptStore: apptStore{db}}
	engine := scheduling.NewEngine(doctorStore{db}, userStore{db}, gs, edgeStore{db})
	return &fixture{db: db, engine: engine, doctor: doctor, docUser: docUser, patient: patient, assistant: assistant}, gs
}

func TestCancelDuringRescheduleStaysCancelled(t *testing.T) {
	f, gs := newGatedFixture(t)
	v, err := f.engine.Book(f.patientCaller(), f.doctor.ID, "", at(9, 0), models.TypePrimary, "PRIVATE")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	// Cancel completes after the reschedule has loaded and authorized
	// the appointment but before it takes the doctor's lock.
	gs.onGet = func() {
		if err := f.engine.Cancel(f.patientCaller(), v.ID); err != nil {
			t.Errorf("cancel: %v", err)
		}
	}

	if _, err := f.engine.Reschedule(f.patientCaller(), v.ID, at(9, 20), "", ""); !errors.Is(err, scheduling.ErrAlreadyCancelled) {
		t.Fatalf("reschedule racing a cancel: want ErrAlreadyCancelled, got %v", err)
	}
	got, err := apptStore{f.db}.Get(v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusCancelled {
		t.Fatalf("cancellation lost: status %s at %s", got.Status, got.DateTime.Format(scheduling.ViewTimeLayout))
	}
}

func TestCancelDuringShiftStaysCancelled(t *testing.T) {
	f, gs := newGatedFixture(t)
	v, err := f.engine.Book(f.patientCaller(), f.doctor.ID, "", at(9, 0), models.TypePrimary, "PRIVATE")
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	gs.onGet = func() {
		if err := f.engine.Cancel(f.patientCaller(), v.ID); err != nil {
			t.Errorf("cancel: %v", err)
		}
	}

	if _, err := f.engine.Shift(f.doctorCaller(), v.ID, scheduling.SlotMinutes); !errors.Is(err, scheduling.ErrAlreadyCancelled) {
		t.Fatalf("shift racing a cancel: want ErrAlreadyCancelled, got %v", err)
	}
	got, err := apptStore{f.db}.Get(v.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusCancelled {
		t.Fatalf("cancellation lost: status %s", got.Status)
	}
}

func TestCancelledSlotStillBlocksRebooking(t *testing.T) {
	f := newFixture(t)
	v := f.book(t, at(9, 0))

	if err := f.engine.Cancel(f.patientCaller(), v.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	// conflict detection does not filter on status, so the cancelled
	// appointment keeps its slot occupied
	if _, err := f.engine.Book(f.patientCaller(), f.doctor.ID, "", at(9, 0), models.TypePrimary, "PRIVATE"); !errors.Is(err, scheduling.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

func TestListDoctorAppointments(t *testing.T) {
	f := newFixture(t)
	f.book(t, at(9, 0))
	f.book(t, at(9, 20))

	views, err := f.engine.ListDoctorAppointments(f.doctorCaller(), f.doctor.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("want 2 appointments, got %d", len(views))
	}

	// an unassigned assistant cannot read the schedule
	if _, err := f.engine.ListDoctorAppointments(f.assistantCaller(), f.doctor.ID); !errors.Is(err, scheduling.ErrAccessDenied) {
		t.Fatalf("want ErrAccessDenied, got %v", err)
	}
}

func TestListMyAppointments(t *testing.T) {
	f := newFixture(t)
	f.book(t, at(9, 0))

	views, err := f.engine.ListMyAppointments(f.patientCaller())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("want 1 appointment, got %d", len(views))
	}
	if views[0].DoctorName != "Maria Petrova" {
		t.Errorf("unexpected doctor name %q", views[0].DoctorName)
	}
}
