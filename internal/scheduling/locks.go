package scheduling

import "sync"

// doctorLocks serializes the validate-then-write sequence per doctor so
// two concurrent bookings for the same slot cannot both pass conflict
// detection. Locks are created on first use and never released; the
// doctor population is small and bounded.
type doctorLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newDoctorLocks() *doctorLocks {
	return &doctorLocks{locks: make(map[string]*sync.Mutex)}
}

func (d *doctorLocks) lock(doctorID string) *sync.Mutex {
	d.mu.Lock()
	m, ok := d.locks[doctorID]
	if !ok {
		m = &sync.Mutex{}
		d.locks[doctorID] = m
	}
	d.mu.Unlock()
	m.Lock()
	return m
}
