package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegistrationType controls how a new registration enters the workflow.
type RegistrationType string

const (
	// RegistrationTypeFree admits registrations immediately (status approved).
	RegistrationTypeFree RegistrationType = "free"
	// RegistrationTypeApprovalRequired holds registrations as pending until an admin decides.
	RegistrationTypeApprovalRequired RegistrationType = "approval_required"
	// RegistrationTypePaymentRequired holds registrations as pending until payment is recorded.
	RegistrationTypePaymentRequired RegistrationType = "payment_required"
)

// ValidRegistrationType reports whether t is a known registration type.
func ValidRegistrationType(t RegistrationType) bool {
	switch t {
	case RegistrationTypeFree, RegistrationTypeApprovalRequired, RegistrationTypePaymentRequired:
		return true
	}
	return false
}

// Seminar represents a scheduled seminar. Cost is a fixed-point decimal
// (null means free of charge); capacity bounds approved+paid registrations.
type Seminar struct {
	ID               int64               `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Date             time.Time           `json:"date"`
	Time             string              `json:"time"`
	Location         string              `json:"location"`
	SpeakerID        int64               `json:"speaker_id"`
	Capacity         int                 `json:"capacity"`
	Cost             decimal.NullDecimal `json:"cost"`
	RegistrationType RegistrationType    `json:"registration_type"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}
