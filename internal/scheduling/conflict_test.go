package scheduling_test

import (
	"testing"
	"time"

	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/scheduling"
)

func TestConflictDetector(t *testing.T) {
	db := newMemDB()
	docUser := db.addUser(models.RoleDoctor, "Maria", "Petrova")
	doctor := db.addDoctor(docUser)
	patient := db.addUser(models.RoleUser, "Ivan", "Georgiev")
	store := apptStore{db}
	detector := &scheduling.ConflictDetector{Appointments: store}

	// empty timeline never conflicts
	conflict, err := detector.HasConflict(doctor.ID, at(9, 0), "")
	if err != nil {
		t.Fatalf("HasConflict: %v", err)
	}
	if conflict {
		t.Fatal("empty timeline reported a conflict")
	}

	a := &models.Appointment{
		DoctorID:  doctor.ID,
		PatientID: patient.ID,
		DateTime:  at(9, 0),
		Status:    models.StatusCancelled, // status is ignored by the scan
	}
	if err := store.Save(a); err != nil {
		t.Fatalf("save: %v", err)
	}

	cases := []struct {
		name    string
		t       time.Time
		exclude string
		want    bool
	}{
		{"same minute", at(9, 0), "", true},
		{"same minute, sub-minute difference", at(9, 0).Add(30 * time.Second), "", true},
		{"adjacent slot", at(9, 20), "", false},
		{"self excluded", at(9, 0), a.ID, false},
	}
	for _, c := range cases {
		got, err := detector.HasConflict(doctor.ID, c.t, c.exclude)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if got != c.want {
			t.Errorf("%s: want %v, got %v", c.name, c.want, got)
		}
	}
}
