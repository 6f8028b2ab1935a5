package scheduling_test

import (
	"sync"

	"github.com/google/uuid"

	"clinic-booking-server/internal/models"
)

// In-memory stores backing the engine tests. All stores share one memDB
// and are safe for concurrent use.

type memDB struct {
	mu      sync.Mutex
	doctors map[string]*models.Doctor
	users   map[string]*models.User
	appts   map[string]*models.Appointment
	edges   []models.AssistantDoctor
}

func newMemDB() *memDB {
	return &memDB{
		doctors: make(map[string]*models.Doctor),
		users:   make(map[string]*models.User),
		appts:   make(map[string]*models.Appointment),
	}
}

func (db *memDB) addUser(role models.Role, firstName, lastName string) *models.User {
	db.mu.Lock()
	defer db.mu.Unlock()
	u := &models.User{
		BaseModel: models.BaseModel{ID: uuid.New().String()},
		Role:      role,
		FirstName: firstName,
		LastName:  lastName,
	}
	db.users[u.ID] = u
	return u
}

func (db *memDB) addDoctor(user *models.User, hours ...models.WorkingHours) *models.Doctor {
	db.mu.Lock()
	defer db.mu.Unlock()
	d := &models.Doctor{
		BaseModel:    models.BaseModel{ID: uuid.New().String()},
		UserID:       user.ID,
		User:         *user,
		Specialty:    "General",
		WorkingHours: hours,
	}
	db.doctors[d.ID] = d
	return d
}

func (db *memDB) addEdge(assistant *models.User, doctor *models.Doctor) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.edges = append(db.edges, models.AssistantDoctor{
		BaseModel:   models.BaseModel{ID: uuid.New().String()},
		AssistantID: assistant.ID,
		DoctorID:    doctor.ID,
	})
}

// hydrate attaches the doctor and patient relations the way the gorm
// store's preloads would.
func (db *memDB) hydrate(a models.Appointment) models.Appointment {
	if d, ok := db.doctors[a.DoctorID]; ok {
		a.Doctor = *d
	}
	if u, ok := db.users[a.PatientID]; ok {
		a.Patient = *u
	}
	return a
}

type doctorStore struct{ db *memDB }

func (s doctorStore) Get(id string) (*models.Doctor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	d, ok := s.db.doctors[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

type userStore struct{ db *memDB }

func (s userStore) Get(id string) (*models.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

type apptStore struct{ db *memDB }

func (s apptStore) Get(id string) (*models.Appointment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	a, ok := s.db.appts[id]
	if !ok {
		return nil, nil
	}
	cp := s.db.hydrate(*a)
	return &cp, nil
}

func (s apptStore) FindByDoctor(doctorID string) ([]models.Appointment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.db.appts {
		if a.DoctorID == doctorID {
			out = append(out, s.db.hydrate(*a))
		}
	}
	return out, nil
}

func (s apptStore) FindByUser(userID string) ([]models.Appointment, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.db.appts {
		if a.PatientID == userID {
			out = append(out, s.db.hydrate(*a))
		}
	}
	return out, nil
}

func (s apptStore) Save(a *models.Appointment) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	cp := *a
	cp.Doctor = models.Doctor{}
	cp.Patient = models.User{}
	s.db.appts[a.ID] = &cp
	return nil
}

type edgeStore struct{ db *memDB }

func (s edgeStore) FindByAssistant(assistantID string) ([]models.AssistantDoctor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	var out []models.AssistantDoctor
	for _, e := range s.db.edges {
		if e.AssistantID == assistantID {
			out = append(out, e)
		}
	}
	return out, nil
}
