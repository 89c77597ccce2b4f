// Package memstore implements store.Store in memory. It backs the service
// tests and mirrors the postgres contract: store-assigned monotonic integer
// ids, (nil, nil) absent lookups, and transactional InTx with rollback via
// snapshot restore. A single mutex stands in for row locks, so the ForUpdate
// lookups are plain reads taken under the transaction's exclusive hold.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store"
)

type tables struct {
	nextID        int64
	users         map[int64]models.User
	seminars      map[int64]models.Seminar
	registrations map[int64]models.Registration
	attendance    map[int64]models.Attendance
	certificates  map[int64]models.Certificate
	emailLogs     map[int64]models.EmailLog
}

func newTables() *tables {
	return &tables{
		users:         make(map[int64]models.User),
		seminars:      make(map[int64]models.Seminar),
		registrations: make(map[int64]models.Registration),
		attendance:    make(map[int64]models.Attendance),
		certificates:  make(map[int64]models.Certificate),
		emailLogs:     make(map[int64]models.EmailLog),
	}
}

func (t *tables) clone() *tables {
	c := newTables()
	c.nextID = t.nextID
	for k, v := range t.users {
		c.users[k] = v
	}
	for k, v := range t.seminars {
		c.seminars[k] = v
	}
	for k, v := range t.registrations {
		c.registrations[k] = v
	}
	for k, v := range t.attendance {
		c.attendance[k] = v
	}
	for k, v := range t.certificates {
		c.certificates[k] = v
	}
	for k, v := range t.emailLogs {
		c.emailLogs[k] = v
	}
	return c
}

// Mem is an in-memory store.Store.
type Mem struct {
	mu   sync.Mutex
	t    *tables
	inTx bool
}

var _ store.Store = (*Mem)(nil)

// New creates an empty in-memory store.
func New() *Mem {
	return &Mem{t: newTables()}
}

func (m *Mem) lock() {
	if !m.inTx {
		m.mu.Lock()
	}
}

func (m *Mem) unlock() {
	if !m.inTx {
		m.mu.Unlock()
	}
}

// InTx runs fn under the store mutex; on error the tables are restored to
// their pre-transaction snapshot. Nested calls reuse the surrounding hold.
func (m *Mem) InTx(ctx context.Context, fn func(tx store.Store) error) error {
	if m.inTx {
		return fn(m)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	snapshot := m.t.clone()
	if err := fn(&Mem{t: m.t, inTx: true}); err != nil {
		*m.t = *snapshot
		return err
	}
	return nil
}

func (m *Mem) nextSequence() int64 {
	m.t.nextID++
	return m.t.nextID
}

// Users

func (m *Mem) CreateUser(ctx context.Context, u *models.User) error {
	m.lock()
	defer m.unlock()
	u.ID = m.nextSequence()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.t.users[u.ID] = *u
	return nil
}

func (m *Mem) GetUser(ctx context.Context, id int64) (*models.User, error) {
	m.lock()
	defer m.unlock()
	if u, ok := m.t.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (m *Mem) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.lock()
	defer m.unlock()
	for _, u := range m.t.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (m *Mem) ListUsers(ctx context.Context) ([]models.User, error) {
	m.lock()
	defer m.unlock()
	list := make([]models.User, 0, len(m.t.users))
	for _, u := range m.t.users {
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *Mem) UpdateUser(ctx context.Context, u *models.User) (bool, error) {
	m.lock()
	defer m.unlock()
	cur, ok := m.t.users[u.ID]
	if !ok {
		return false, nil
	}
	u.CreatedAt = cur.CreatedAt
	u.UpdatedAt = time.Now()
	m.t.users[u.ID] = *u
	return true, nil
}

func (m *Mem) DeleteUser(ctx context.Context, id int64) (bool, error) {
	m.lock()
	defer m.unlock()
	if _, ok := m.t.users[id]; !ok {
		return false, nil
	}
	delete(m.t.users, id)
	return true, nil
}

// Seminars

func (m *Mem) CreateSeminar(ctx context.Context, s *models.Seminar) error {
	m.lock()
	defer m.unlock()
	s.ID = m.nextSequence()
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	m.t.seminars[s.ID] = *s
	return nil
}

func (m *Mem) GetSeminar(ctx context.Context, id int64) (*models.Seminar, error) {
	m.lock()
	defer m.unlock()
	if s, ok := m.t.seminars[id]; ok {
		return &s, nil
	}
	return nil, nil
}

func (m *Mem) GetSeminarForUpdate(ctx context.Context, id int64) (*models.Seminar, error) {
	return m.GetSeminar(ctx, id)
}

func (m *Mem) ListSeminars(ctx context.Context) ([]models.Seminar, error) {
	m.lock()
	defer m.unlock()
	list := make([]models.Seminar, 0, len(m.t.seminars))
	for _, s := range m.t.seminars {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (m *Mem) UpdateSeminar(ctx context.Context, s *models.Seminar) (bool, error) {
	m.lock()
	defer m.unlock()
	cur, ok := m.t.seminars[s.ID]
	if !ok {
		return false, nil
	}
	s.CreatedAt = cur.CreatedAt
	s.UpdatedAt = time.Now()
	m.t.seminars[s.ID] = *s
	return true, nil
}

func (m *Mem) DeleteSeminar(ctx context.Context, id int64) (bool, error) {
	m.lock()
	defer m.unlock()
	if _, ok := m.t.seminars[id]; !ok {
		return false, nil
	}
	delete(m.t.seminars, id)
	return true, nil
}

func (m *Mem) CountSeminarsBySpeaker(ctx context.Context, speakerID int64) (int, error) {
	m.lock()
	defer m.unlock()
	n := 0
	for _, s := range m.t.seminars {
		if s.SpeakerID == speakerID {
			n++
		}
	}
	return n, nil
}

// Registrations

func (m *Mem) CreateRegistration(ctx context.Context, r *models.Registration) error {
	m.lock()
	defer m.unlock()
	r.ID = m.nextSequence()
	r.CreatedAt = time.Now()
	m.t.registrations[r.ID] = *r
	return nil
}

func (m *Mem) GetRegistration(ctx context.Context, id int64) (*models.Registration, error) {
	m.lock()
	defer m.unlock()
	if r, ok := m.t.registrations[id]; ok {
		return &r, nil
	}
	return nil, nil
}

func (m *Mem) GetRegistrationForUpdate(ctx context.Context, id int64) (*models.Registration, error) {
	return m.GetRegistration(ctx, id)
}

func (m *Mem) listRegistrations(match func(models.Registration) bool) []models.Registration {
	var list []models.Registration
	for _, r := range m.t.registrations {
		if match(r) {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list
}

func (m *Mem) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	m.lock()
	defer m.unlock()
	return m.listRegistrations(func(models.Registration) bool { return true }), nil
}

func (m *Mem) ListRegistrationsBySeminar(ctx context.Context, seminarID int64) ([]models.Registration, error) {
	m.lock()
	defer m.unlock()
	return m.listRegistrations(func(r models.Registration) bool { return r.SeminarID == seminarID }), nil
}

func (m *Mem) ListRegistrationsByParticipant(ctx context.Context, participantID int64) ([]models.Registration, error) {
	m.lock()
	defer m.unlock()
	return m.listRegistrations(func(r models.Registration) bool { return r.ParticipantID == participantID }), nil
}

func (m *Mem) UpdateRegistrationStatus(ctx context.Context, id int64, status models.RegistrationStatus) (bool, error) {
	m.lock()
	defer m.unlock()
	r, ok := m.t.registrations[id]
	if !ok {
		return false, nil
	}
	r.Status = status
	m.t.registrations[id] = r
	return true, nil
}

func (m *Mem) DeleteRegistrationsBySeminar(ctx context.Context, seminarID int64) (int64, error) {
	m.lock()
	defer m.unlock()
	var n int64
	for id, r := range m.t.registrations {
		if r.SeminarID == seminarID {
			delete(m.t.registrations, id)
			n++
		}
	}
	return n, nil
}

func (m *Mem) CountRegistrationsByParticipant(ctx context.Context, participantID int64) (int, error) {
	m.lock()
	defer m.unlock()
	n := 0
	for _, r := range m.t.registrations {
		if r.ParticipantID == participantID {
			n++
		}
	}
	return n, nil
}

// Attendance

func (m *Mem) CreateAttendance(ctx context.Context, a *models.Attendance) error {
	m.lock()
	defer m.unlock()
	a.ID = m.nextSequence()
	a.CreatedAt = time.Now()
	m.t.attendance[a.ID] = *a
	return nil
}

func (m *Mem) GetAttendanceByRegistration(ctx context.Context, registrationID int64) (*models.Attendance, error) {
	m.lock()
	defer m.unlock()
	for _, a := range m.t.attendance {
		if a.RegistrationID == registrationID {
			a := a
			return &a, nil
		}
	}
	return nil, nil
}

func (m *Mem) UpdateAttendance(ctx context.Context, a *models.Attendance) (bool, error) {
	m.lock()
	defer m.unlock()
	cur, ok := m.t.attendance[a.ID]
	if !ok {
		return false, nil
	}
	a.CreatedAt = cur.CreatedAt
	m.t.attendance[a.ID] = *a
	return true, nil
}

func (m *Mem) DeleteAttendanceByRegistration(ctx context.Context, registrationID int64) (int64, error) {
	m.lock()
	defer m.unlock()
	var n int64
	for id, a := range m.t.attendance {
		if a.RegistrationID == registrationID {
			delete(m.t.attendance, id)
			n++
		}
	}
	return n, nil
}

// Certificates

func (m *Mem) CreateCertificate(ctx context.Context, c *models.Certificate) error {
	m.lock()
	defer m.unlock()
	c.ID = m.nextSequence()
	c.CreatedAt = time.Now()
	m.t.certificates[c.ID] = *c
	return nil
}

func (m *Mem) GetCertificateByRegistration(ctx context.Context, registrationID int64) (*models.Certificate, error) {
	m.lock()
	defer m.unlock()
	for _, c := range m.t.certificates {
		if c.RegistrationID == registrationID {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (m *Mem) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	m.lock()
	defer m.unlock()
	list := make([]models.Certificate, 0, len(m.t.certificates))
	for _, c := range m.t.certificates {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (m *Mem) DeleteCertificateByRegistration(ctx context.Context, registrationID int64) (int64, error) {
	m.lock()
	defer m.unlock()
	var n int64
	for id, c := range m.t.certificates {
		if c.RegistrationID == registrationID {
			delete(m.t.certificates, id)
			n++
		}
	}
	return n, nil
}

// Email logs

func (m *Mem) CreateEmailLog(ctx context.Context, l *models.EmailLog) error {
	m.lock()
	defer m.unlock()
	l.ID = m.nextSequence()
	l.CreatedAt = time.Now()
	m.t.emailLogs[l.ID] = *l
	return nil
}

func (m *Mem) ListEmailLogsBySeminar(ctx context.Context, seminarID int64) ([]models.EmailLog, error) {
	m.lock()
	defer m.unlock()
	var list []models.EmailLog
	for _, l := range m.t.emailLogs {
		if l.SeminarID != nil && *l.SeminarID == seminarID {
			list = append(list, l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}
