// Package seminars manages seminar CRUD and the cascade deletion that keeps
// dependent registrations, attendance, and certificates orphan-free.
package seminars

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store"
)

var (
	// ErrSpeakerNotFound means speaker_id resolved to no user.
	ErrSpeakerNotFound = errors.New("speaker not found")
	// ErrInvalidSpeakerRole means the referenced user does not hold the speaker role.
	ErrInvalidSpeakerRole = errors.New("user does not have the speaker role")
)

// Service manages seminars over the entity store.
type Service struct {
	store  store.Store
	cache  *Cache
	logger *zap.Logger
}

// NewService creates a seminars service. cache may be nil.
func NewService(st store.Store, cache *Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, cache: cache, logger: logger}
}

// validateSpeaker checks that id references a user holding the speaker role.
// Applied at creation and on every reassignment.
func (s *Service) validateSpeaker(ctx context.Context, st store.Store, id int64) error {
	u, err := st.GetUser(ctx, id)
	if err != nil {
		return fmt.Errorf("load speaker: %w", err)
	}
	if u == nil {
		return ErrSpeakerNotFound
	}
	if u.Role != models.RoleSpeaker {
		return ErrInvalidSpeakerRole
	}
	return nil
}

// Create validates the speaker reference and inserts the seminar.
func (s *Service) Create(ctx context.Context, sem *models.Seminar) error {
	err := s.store.InTx(ctx, func(tx store.Store) error {
		if err := s.validateSpeaker(ctx, tx, sem.SpeakerID); err != nil {
			return err
		}
		return tx.CreateSeminar(ctx, sem)
	})
	if err != nil {
		return err
	}
	s.logger.Info("seminar created", zap.Int64("seminar_id", sem.ID), zap.String("title", sem.Title))
	return nil
}

// Get returns a seminar by ID, consulting the read cache first. Returns nil
// when absent.
func (s *Service) Get(ctx context.Context, id int64) (*models.Seminar, error) {
	if sem := s.cache.Get(ctx, id); sem != nil {
		return sem, nil
	}
	sem, err := s.store.GetSeminar(ctx, id)
	if err != nil || sem == nil {
		return nil, err
	}
	s.cache.Set(ctx, sem)
	return sem, nil
}

// List returns all seminars, soonest first.
func (s *Service) List(ctx context.Context) ([]models.Seminar, error) {
	return s.store.ListSeminars(ctx)
}

// Update overwrites a seminar, revalidating the speaker reference. Returns
// false when the seminar is absent.
func (s *Service) Update(ctx context.Context, sem *models.Seminar) (bool, error) {
	var found bool
	err := s.store.InTx(ctx, func(tx store.Store) error {
		if err := s.validateSpeaker(ctx, tx, sem.SpeakerID); err != nil {
			return err
		}
		var err error
		found, err = tx.UpdateSeminar(ctx, sem)
		return err
	})
	if err != nil {
		return false, err
	}
	if found {
		s.cache.Invalidate(ctx, sem.ID)
		s.logger.Info("seminar updated", zap.Int64("seminar_id", sem.ID))
	}
	return found, nil
}

// Delete removes a seminar together with every dependent registration,
// attendance record, and certificate, children first so a store enforcing
// referential integrity never sees an orphan. Users (speaker, participants)
// are never touched. Returns false, without error, when the seminar is absent.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := s.store.InTx(ctx, func(tx store.Store) error {
		sem, err := tx.GetSeminarForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("load seminar: %w", err)
		}
		if sem == nil {
			return nil
		}
		regs, err := tx.ListRegistrationsBySeminar(ctx, id)
		if err != nil {
			return fmt.Errorf("load registrations: %w", err)
		}
		for _, reg := range regs {
			if _, err := tx.DeleteCertificateByRegistration(ctx, reg.ID); err != nil {
				return fmt.Errorf("delete certificate for registration %d: %w", reg.ID, err)
			}
			if _, err := tx.DeleteAttendanceByRegistration(ctx, reg.ID); err != nil {
				return fmt.Errorf("delete attendance for registration %d: %w", reg.ID, err)
			}
		}
		if _, err := tx.DeleteRegistrationsBySeminar(ctx, id); err != nil {
			return fmt.Errorf("delete registrations: %w", err)
		}
		found, err = tx.DeleteSeminar(ctx, id)
		return err
	})
	if err != nil {
		return false, err
	}
	if found {
		s.cache.Invalidate(ctx, id)
		s.logger.Info("seminar deleted", zap.Int64("seminar_id", id))
	}
	return found, nil
}
