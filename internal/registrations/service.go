// Package registrations implements the registration lifecycle workflow:
// eligibility-gated creation, admin status transitions, cancellation, and
// enriched read projections.
package registrations

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store"
	"github.com/seminarhub/backend/pkg/queue"
)

// Service orchestrates the registration state machine over the entity store.
type Service struct {
	store  store.Store
	queue  *queue.Queue
	logger *zap.Logger
}

// NewService creates a registration workflow service. queue may be nil, in
// which case no notification emails are enqueued.
func NewService(st store.Store, q *queue.Queue, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, queue: q, logger: logger}
}

// Detail is a registration enriched with display fields from its seminar and
// participant. These are read-side projections reconstructed per request,
// never stored.
type Detail struct {
	models.Registration
	SeminarTitle     string              `json:"seminar_title"`
	SeminarDate      time.Time           `json:"seminar_date"`
	SeminarTime      string              `json:"seminar_time"`
	SeminarLocation  string              `json:"seminar_location"`
	SeminarCost      decimal.NullDecimal `json:"seminar_cost"`
	ParticipantName  string              `json:"participant_name"`
	ParticipantEmail string              `json:"participant_email"`
}

// Create registers a participant for a seminar. The eligibility check, the
// initial-status decision, and the insert run in one transaction with a row
// lock on the seminar, so concurrent callers cannot both pass the capacity or
// duplicate check. The initial status is never caller-chosen.
func (s *Service) Create(ctx context.Context, seminarID, participantID int64) (*models.Registration, error) {
	var (
		reg         *models.Registration
		seminar     *models.Seminar
		participant *models.User
	)
	err := s.store.InTx(ctx, func(tx store.Store) error {
		var err error
		participant, err = tx.GetUser(ctx, participantID)
		if err != nil {
			return fmt.Errorf("load participant: %w", err)
		}
		seminar, err = tx.GetSeminarForUpdate(ctx, seminarID)
		if err != nil {
			return fmt.Errorf("load seminar: %w", err)
		}
		var existing []models.Registration
		if seminar != nil {
			existing, err = tx.ListRegistrationsBySeminar(ctx, seminarID)
			if err != nil {
				return fmt.Errorf("load registrations: %w", err)
			}
		}
		if err := eligibility.CanRegister(participant, seminar, existing); err != nil {
			return err
		}
		reg = &models.Registration{
			SeminarID:        seminarID,
			ParticipantID:    participantID,
			RegistrationDate: time.Now(),
			Status:           eligibility.InitialStatus(seminar),
		}
		return tx.CreateRegistration(ctx, reg)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("registration created",
		zap.Int64("registration_id", reg.ID),
		zap.Int64("seminar_id", seminarID),
		zap.Int64("participant_id", participantID),
		zap.String("status", string(reg.Status)))
	s.notify(ctx, queue.EmailPayload{
		EmailType:      models.EmailTypeRegistrationConfirmation,
		SeminarID:      seminar.ID,
		RegistrationID: reg.ID,
		RecipientEmail: participant.Email,
		RecipientName:  participant.FullName,
		SeminarTitle:   seminar.Title,
		Status:         reg.Status,
	})
	return reg, nil
}

// UpdateStatus overwrites a registration's status. Any status may replace any
// other; the transition graph is deliberately unconstrained because these are
// admin-driven corrections. Returns (nil, nil) when the registration is absent.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status models.RegistrationStatus) (*models.Registration, error) {
	if !models.ValidRegistrationStatus(status) {
		return nil, fmt.Errorf("unknown registration status %q", status)
	}
	var reg *models.Registration
	err := s.store.InTx(ctx, func(tx store.Store) error {
		var err error
		reg, err = tx.GetRegistrationForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("load registration: %w", err)
		}
		if reg == nil {
			return nil
		}
		if _, err := tx.UpdateRegistrationStatus(ctx, id, status); err != nil {
			return fmt.Errorf("update status: %w", err)
		}
		reg.Status = status
		return nil
	})
	if err != nil || reg == nil {
		return nil, err
	}

	s.logger.Info("registration status updated",
		zap.Int64("registration_id", id),
		zap.String("status", string(status)))
	s.notifyStatusChange(ctx, reg)
	return reg, nil
}

// Cancel forces a registration to cancelled. Returns false, without error,
// when the registration is absent. Cancelling an already-cancelled
// registration is a harmless overwrite.
func (s *Service) Cancel(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := s.store.InTx(ctx, func(tx store.Store) error {
		var err error
		found, err = tx.UpdateRegistrationStatus(ctx, id, models.RegistrationStatusCancelled)
		return err
	})
	if err != nil {
		return false, err
	}
	if found {
		s.logger.Info("registration cancelled", zap.Int64("registration_id", id))
	}
	return found, nil
}

// Get returns one enriched registration, or nil when absent.
func (s *Service) Get(ctx context.Context, id int64) (*Detail, error) {
	reg, err := s.store.GetRegistration(ctx, id)
	if err != nil || reg == nil {
		return nil, err
	}
	details, err := s.enrich(ctx, []models.Registration{*reg})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// ListAll returns every registration with display projections.
func (s *Service) ListAll(ctx context.Context) ([]Detail, error) {
	regs, err := s.store.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, regs)
}

// ListBySeminar returns a seminar's registrations with display projections.
func (s *Service) ListBySeminar(ctx context.Context, seminarID int64) ([]Detail, error) {
	regs, err := s.store.ListRegistrationsBySeminar(ctx, seminarID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, regs)
}

// ListByParticipant returns a participant's registrations with display projections.
func (s *Service) ListByParticipant(ctx context.Context, participantID int64) ([]Detail, error) {
	regs, err := s.store.ListRegistrationsByParticipant(ctx, participantID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, regs)
}

// enrich joins seminar and participant display fields onto registrations,
// memoizing lookups within the call.
func (s *Service) enrich(ctx context.Context, regs []models.Registration) ([]Detail, error) {
	seminars := make(map[int64]*models.Seminar)
	users := make(map[int64]*models.User)
	details := make([]Detail, 0, len(regs))
	for _, reg := range regs {
		d := Detail{Registration: reg}
		sem, ok := seminars[reg.SeminarID]
		if !ok {
			var err error
			sem, err = s.store.GetSeminar(ctx, reg.SeminarID)
			if err != nil {
				return nil, fmt.Errorf("load seminar %d: %w", reg.SeminarID, err)
			}
			seminars[reg.SeminarID] = sem
		}
		if sem != nil {
			d.SeminarTitle = sem.Title
			d.SeminarDate = sem.Date
			d.SeminarTime = sem.Time
			d.SeminarLocation = sem.Location
			d.SeminarCost = sem.Cost
		}
		u, ok := users[reg.ParticipantID]
		if !ok {
			var err error
			u, err = s.store.GetUser(ctx, reg.ParticipantID)
			if err != nil {
				return nil, fmt.Errorf("load participant %d: %w", reg.ParticipantID, err)
			}
			users[reg.ParticipantID] = u
		}
		if u != nil {
			d.ParticipantName = u.FullName
			d.ParticipantEmail = u.Email
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *Service) notifyStatusChange(ctx context.Context, reg *models.Registration) {
	if s.queue == nil {
		return
	}
	participant, err := s.store.GetUser(ctx, reg.ParticipantID)
	if err != nil || participant == nil {
		s.logger.Warn("status email skipped: participant unresolved", zap.Int64("registration_id", reg.ID))
		return
	}
	seminar, err := s.store.GetSeminar(ctx, reg.SeminarID)
	if err != nil || seminar == nil {
		s.logger.Warn("status email skipped: seminar unresolved", zap.Int64("registration_id", reg.ID))
		return
	}
	s.notify(ctx, queue.EmailPayload{
		EmailType:      models.EmailTypeStatusChanged,
		SeminarID:      seminar.ID,
		RegistrationID: reg.ID,
		RecipientEmail: participant.Email,
		RecipientName:  participant.FullName,
		SeminarTitle:   seminar.Title,
		Status:         reg.Status,
	})
}

// notify enqueues an email job; failures are logged, never surfaced, so a
// Redis outage cannot fail a committed workflow operation.
func (s *Service) notify(ctx context.Context, payload queue.EmailPayload) {
	if s.queue == nil {
		return
	}
	if err := s.queue.EnqueueEmail(ctx, payload); err != nil {
		s.logger.Warn("enqueue email failed",
			zap.Error(err),
			zap.String("email_type", payload.EmailType),
			zap.Int64("registration_id", payload.RegistrationID))
	}
}
