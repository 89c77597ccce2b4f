// Package worker runs the background email processor: it drains the
// notification queue, delivers over SMTP when configured, and records every
// attempt in the email log.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store"
	"github.com/seminarhub/backend/pkg/queue"
)

// EmailProcessor consumes email jobs: render, send, log.
type EmailProcessor struct {
	store  store.Store
	queue  *queue.Queue
	sender *Sender
	logger *zap.Logger
}

// NewEmailProcessor creates an email processor. sender may be nil, in which
// case deliveries are recorded as skipped.
func NewEmailProcessor(st store.Store, q *queue.Queue, sender *Sender, logger *zap.Logger) *EmailProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailProcessor{store: st, queue: q, sender: sender, logger: logger}
}

// Process executes one email job.
func (p *EmailProcessor) Process(ctx context.Context, job *queue.Job) error {
	var payload queue.EmailPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return fmt.Errorf("unmarshal payload: %w", err)
	}

	subject, body := render(payload)
	log := &models.EmailLog{
		SeminarID:      &payload.SeminarID,
		RegistrationID: &payload.RegistrationID,
		EmailType:      payload.EmailType,
		RecipientEmail: payload.RecipientEmail,
		Subject:        subject,
	}

	switch err := p.sender.Send(payload.RecipientEmail, subject, body); {
	case err == nil:
		now := time.Now()
		log.Status = models.EmailLogStatusSent
		log.SentAt = &now
	case errors.Is(err, ErrNotConfigured):
		log.Status = models.EmailLogStatusSkipped
	default:
		log.Status = models.EmailLogStatusFailed
		log.ErrorMessage = err.Error()
		if logErr := p.store.CreateEmailLog(ctx, log); logErr != nil {
			p.logger.Error("record email log failed", zap.Error(logErr))
		}
		return fmt.Errorf("send email: %w", err)
	}

	if err := p.store.CreateEmailLog(ctx, log); err != nil {
		return fmt.Errorf("record email log: %w", err)
	}
	p.logger.Info("email processed",
		zap.String("email_type", payload.EmailType),
		zap.String("recipient", payload.RecipientEmail),
		zap.String("status", log.Status))
	return nil
}

// Run starts the worker loop: dequeue, process, retry on error.
func (p *EmailProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("email worker stopping")
			return
		default:
		}

		job, err := p.queue.Dequeue(ctx)
		if err != nil {
			p.logger.Warn("dequeue error", zap.Error(err))
			select {
			case <-ctx.Done():
			case <-time.After(queue.RetryBackoff):
			}
			continue
		}
		if job == nil {
			continue
		}

		p.logger.Debug("processing job", zap.String("job_id", job.ID))
		if err := p.Process(ctx, job); err != nil {
			p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
			if reErr := p.queue.Retry(ctx, job); reErr != nil {
				p.logger.Error("retry enqueue failed", zap.Error(reErr))
			}
		}
	}
}

// render builds the subject and plain-text body for a notification.
func render(p queue.EmailPayload) (subject, body string) {
	switch p.EmailType {
	case models.EmailTypeRegistrationConfirmation:
		subject = fmt.Sprintf("Registration received: %s", p.SeminarTitle)
		if p.Status == models.RegistrationStatusApproved {
			body = fmt.Sprintf("Hi %s,\n\nYour registration for %q is confirmed. See you there!\n", p.RecipientName, p.SeminarTitle)
		} else {
			body = fmt.Sprintf("Hi %s,\n\nYour registration for %q was received and is pending review.\n", p.RecipientName, p.SeminarTitle)
		}
	case models.EmailTypeStatusChanged:
		subject = fmt.Sprintf("Registration update: %s", p.SeminarTitle)
		body = fmt.Sprintf("Hi %s,\n\nYour registration for %q is now %s.\n", p.RecipientName, p.SeminarTitle, p.Status)
	case models.EmailTypeCertificateIssued:
		subject = fmt.Sprintf("Your certificate: %s", p.SeminarTitle)
		body = fmt.Sprintf("Hi %s,\n\nYour certificate for %q is ready: %s\n", p.RecipientName, p.SeminarTitle, p.CertificateURL)
	default:
		subject = p.SeminarTitle
		body = fmt.Sprintf("Hi %s,\n\nThere is an update on your registration for %q.\n", p.RecipientName, p.SeminarTitle)
	}
	return subject, body
}
