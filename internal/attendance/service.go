// Package attendance records per-registration attendance, gated by the
// registration's workflow status.
package attendance

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store"
)

// Service is the attendance tracker.
type Service struct {
	store  store.Store
	logger *zap.Logger
}

// NewService creates an attendance tracker.
func NewService(st store.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, logger: logger}
}

// Detail is an attendance row enriched with participant display fields for
// per-seminar listings.
type Detail struct {
	models.Attendance
	ParticipantName  string                    `json:"participant_name"`
	ParticipantEmail string                    `json:"participant_email"`
	Status           models.RegistrationStatus `json:"registration_status"`
}

// Record marks attendance for a registration. The gate check and the upsert
// run in one transaction with a row lock on the registration, keeping exactly
// one attendance row per registration: a second mark updates the existing row
// in place, it never duplicates.
func (s *Service) Record(ctx context.Context, registrationID int64, attended bool) (*models.Attendance, error) {
	var att *models.Attendance
	err := s.store.InTx(ctx, func(tx store.Store) error {
		reg, err := tx.GetRegistrationForUpdate(ctx, registrationID)
		if err != nil {
			return fmt.Errorf("load registration: %w", err)
		}
		if err := eligibility.CanRecordAttendance(reg); err != nil {
			return err
		}
		att, err = tx.GetAttendanceByRegistration(ctx, registrationID)
		if err != nil {
			return fmt.Errorf("load attendance: %w", err)
		}
		now := time.Now()
		if att != nil {
			att.Attended = attended
			att.AttendanceDate = now
			_, err = tx.UpdateAttendance(ctx, att)
			return err
		}
		att = &models.Attendance{
			RegistrationID: registrationID,
			Attended:       attended,
			AttendanceDate: now,
		}
		return tx.CreateAttendance(ctx, att)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("attendance recorded",
		zap.Int64("registration_id", registrationID),
		zap.Bool("attended", attended))
	return att, nil
}

// GetByRegistration returns the unique attendance row for a registration, or
// nil when none exists. Absence is not an error.
func (s *Service) GetByRegistration(ctx context.Context, registrationID int64) (*models.Attendance, error) {
	return s.store.GetAttendanceByRegistration(ctx, registrationID)
}

// ListBySeminar returns the attendance rows for all of a seminar's
// registrations, enriched with participant display fields. Registrations
// without a mark yet are omitted.
func (s *Service) ListBySeminar(ctx context.Context, seminarID int64) ([]Detail, error) {
	regs, err := s.store.ListRegistrationsBySeminar(ctx, seminarID)
	if err != nil {
		return nil, err
	}
	details := make([]Detail, 0, len(regs))
	for _, reg := range regs {
		att, err := s.store.GetAttendanceByRegistration(ctx, reg.ID)
		if err != nil {
			return nil, fmt.Errorf("load attendance for registration %d: %w", reg.ID, err)
		}
		if att == nil {
			continue
		}
		d := Detail{Attendance: *att, Status: reg.Status}
		if u, err := s.store.GetUser(ctx, reg.ParticipantID); err != nil {
			return nil, fmt.Errorf("load participant %d: %w", reg.ParticipantID, err)
		} else if u != nil {
			d.ParticipantName = u.FullName
			d.ParticipantEmail = u.Email
		}
		details = append(details, d)
	}
	return details, nil
}
