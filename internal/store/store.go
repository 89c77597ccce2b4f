// Package store defines the entity-store capability the workflow components
// are built against. Implementations: store/postgres (pgx, production) and
// store/memstore (in-memory, tests). Point lookups return (nil, nil) when the
// entity is absent; errors are reserved for store faults. Foreign-key fields
// are plain integers validated by the callers, not enforced here.
package store

import (
	"context"

	"github.com/seminarhub/backend/internal/models"
)

// Store is the full entity store. InTx runs fn against a transaction-scoped
// store so a read-validate-write sequence executes atomically; the ForUpdate
// lookups additionally take a row lock inside a transaction, serializing
// concurrent eligibility checks against the same seminar or registration.
type Store interface {
	Users
	Seminars
	Registrations
	Attendances
	Certificates
	EmailLogs

	InTx(ctx context.Context, fn func(tx Store) error) error
}

// Users is the user table surface.
type Users interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, u *models.User) (bool, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
}

// Seminars is the seminar table surface.
type Seminars interface {
	CreateSeminar(ctx context.Context, s *models.Seminar) error
	GetSeminar(ctx context.Context, id int64) (*models.Seminar, error)
	GetSeminarForUpdate(ctx context.Context, id int64) (*models.Seminar, error)
	ListSeminars(ctx context.Context) ([]models.Seminar, error)
	UpdateSeminar(ctx context.Context, s *models.Seminar) (bool, error)
	DeleteSeminar(ctx context.Context, id int64) (bool, error)
	CountSeminarsBySpeaker(ctx context.Context, speakerID int64) (int, error)
}

// Registrations is the registration table surface.
type Registrations interface {
	CreateRegistration(ctx context.Context, r *models.Registration) error
	GetRegistration(ctx context.Context, id int64) (*models.Registration, error)
	GetRegistrationForUpdate(ctx context.Context, id int64) (*models.Registration, error)
	ListRegistrations(ctx context.Context) ([]models.Registration, error)
	ListRegistrationsBySeminar(ctx context.Context, seminarID int64) ([]models.Registration, error)
	ListRegistrationsByParticipant(ctx context.Context, participantID int64) ([]models.Registration, error)
	UpdateRegistrationStatus(ctx context.Context, id int64, status models.RegistrationStatus) (bool, error)
	DeleteRegistrationsBySeminar(ctx context.Context, seminarID int64) (int64, error)
	CountRegistrationsByParticipant(ctx context.Context, participantID int64) (int, error)
}

// Attendances is the attendance table surface (one row per registration).
type Attendances interface {
	CreateAttendance(ctx context.Context, a *models.Attendance) error
	GetAttendanceByRegistration(ctx context.Context, registrationID int64) (*models.Attendance, error)
	UpdateAttendance(ctx context.Context, a *models.Attendance) (bool, error)
	DeleteAttendanceByRegistration(ctx context.Context, registrationID int64) (int64, error)
}

// Certificates is the certificate table surface (one row per registration).
type Certificates interface {
	CreateCertificate(ctx context.Context, c *models.Certificate) error
	GetCertificateByRegistration(ctx context.Context, registrationID int64) (*models.Certificate, error)
	ListCertificates(ctx context.Context) ([]models.Certificate, error)
	DeleteCertificateByRegistration(ctx context.Context, registrationID int64) (int64, error)
}

// EmailLogs is the email delivery log surface.
type EmailLogs interface {
	CreateEmailLog(ctx context.Context, l *models.EmailLog) error
	ListEmailLogsBySeminar(ctx context.Context, seminarID int64) ([]models.EmailLog, error)
}
