// Package certificates issues completion certificates for attended
// registrations. Issuance is idempotent: one certificate per registration,
// ever.
package certificates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store"
	"github.com/seminarhub/backend/pkg/queue"
)

// Service is the certificate issuer.
type Service struct {
	store  store.Store
	queue  *queue.Queue
	logger *zap.Logger
}

// NewService creates a certificate issuer. queue may be nil, in which case no
// notification emails are enqueued.
func NewService(st store.Store, q *queue.Queue, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: st, queue: q, logger: logger}
}

// Issue creates the certificate for a registration, or returns the existing
// one unchanged. The gate checks and the insert run in one transaction with a
// row lock on the registration, so concurrent calls cannot insert twice.
func (s *Service) Issue(ctx context.Context, registrationID int64) (*models.Certificate, error) {
	var (
		cert    *models.Certificate
		reg     *models.Registration
		existed bool
	)
	err := s.store.InTx(ctx, func(tx store.Store) error {
		var err error
		reg, err = tx.GetRegistrationForUpdate(ctx, registrationID)
		if err != nil {
			return fmt.Errorf("load registration: %w", err)
		}
		att, err := tx.GetAttendanceByRegistration(ctx, registrationID)
		if err != nil {
			return fmt.Errorf("load attendance: %w", err)
		}
		if err := eligibility.CanIssueCertificate(reg, att); err != nil {
			return err
		}
		cert, err = tx.GetCertificateByRegistration(ctx, registrationID)
		if err != nil {
			return fmt.Errorf("load certificate: %w", err)
		}
		if cert != nil {
			existed = true
			return nil
		}
		cert = &models.Certificate{
			RegistrationID: registrationID,
			IssueDate:      time.Now(),
			CertificateURL: certificateURL(registrationID),
		}
		return tx.CreateCertificate(ctx, cert)
	})
	if err != nil {
		return nil, err
	}
	if existed {
		return cert, nil
	}

	s.logger.Info("certificate issued",
		zap.Int64("registration_id", registrationID),
		zap.Int64("certificate_id", cert.ID))
	s.notifyIssued(ctx, reg, cert)
	return cert, nil
}

// GetByRegistration returns the certificate for a registration, or nil when
// none has been issued.
func (s *Service) GetByRegistration(ctx context.Context, registrationID int64) (*models.Certificate, error) {
	return s.store.GetCertificateByRegistration(ctx, registrationID)
}

// ListAll returns every issued certificate.
func (s *Service) ListAll(ctx context.Context) ([]models.Certificate, error) {
	return s.store.ListCertificates(ctx)
}

// certificateURL builds the certificate locator. The random component keeps
// URLs collision-free even when issuances for different registrations land on
// the same timestamp.
func certificateURL(registrationID int64) string {
	return fmt.Sprintf("/certificates/%d/%s.pdf", registrationID, uuid.New().String())
}

func (s *Service) notifyIssued(ctx context.Context, reg *models.Registration, cert *models.Certificate) {
	if s.queue == nil {
		return
	}
	participant, err := s.store.GetUser(ctx, reg.ParticipantID)
	if err != nil || participant == nil {
		s.logger.Warn("certificate email skipped: participant unresolved", zap.Int64("registration_id", reg.ID))
		return
	}
	seminar, err := s.store.GetSeminar(ctx, reg.SeminarID)
	if err != nil || seminar == nil {
		s.logger.Warn("certificate email skipped: seminar unresolved", zap.Int64("registration_id", reg.ID))
		return
	}
	payload := queue.EmailPayload{
		EmailType:      models.EmailTypeCertificateIssued,
		SeminarID:      seminar.ID,
		RegistrationID: reg.ID,
		RecipientEmail: participant.Email,
		RecipientName:  participant.FullName,
		SeminarTitle:   seminar.Title,
		CertificateURL: cert.CertificateURL,
	}
	if err := s.queue.EnqueueEmail(ctx, payload); err != nil {
		s.logger.Warn("enqueue certificate email failed", zap.Error(err), zap.Int64("registration_id", reg.ID))
	}
}
