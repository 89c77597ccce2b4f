package models

import "time"

// EmailType for workflow notifications.
const (
	EmailTypeRegistrationConfirmation = "registration_confirmation"
	EmailTypeStatusChanged            = "status_changed"
	EmailTypeCertificateIssued        = "certificate_issued"
)

// EmailLogStatus for delivery.
const (
	EmailLogStatusSent    = "sent"
	EmailLogStatusFailed  = "failed"
	EmailLogStatusSkipped = "skipped" // SMTP not configured
)

// EmailLog records notification emails attempted by the worker.
type EmailLog struct {
	ID             int64      `json:"id"`
	SeminarID      *int64     `json:"seminar_id,omitempty"`
	RegistrationID *int64     `json:"registration_id,omitempty"`
	EmailType      string     `json:"email_type"`
	RecipientEmail string     `json:"recipient_email"`
	Subject        string     `json:"subject,omitempty"`
	Status         string     `json:"status"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}
