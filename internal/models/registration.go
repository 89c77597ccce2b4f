package models

import "time"

// RegistrationStatus is the lifecycle state of a registration.
type RegistrationStatus string

const (
	RegistrationStatusPending   RegistrationStatus = "pending"
	RegistrationStatusApproved  RegistrationStatus = "approved"
	RegistrationStatusRejected  RegistrationStatus = "rejected"
	RegistrationStatusPaid      RegistrationStatus = "paid"
	RegistrationStatusCancelled RegistrationStatus = "cancelled"
)

// ValidRegistrationStatus reports whether s is a known status.
func ValidRegistrationStatus(s RegistrationStatus) bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusApproved, RegistrationStatusRejected,
		RegistrationStatusPaid, RegistrationStatusCancelled:
		return true
	}
	return false
}

// CountsTowardCapacity reports whether a registration in status s occupies a
// seminar slot. Only confirmed registrations do; cancelled ones free their slot.
func (s RegistrationStatus) CountsTowardCapacity() bool {
	return s == RegistrationStatusApproved || s == RegistrationStatusPaid
}

// Registration links a participant to a seminar with a lifecycle status.
type Registration struct {
	ID               int64              `json:"id"`
	SeminarID        int64              `json:"seminar_id"`
	ParticipantID    int64              `json:"participant_id"`
	RegistrationDate time.Time          `json:"registration_date"`
	Status           RegistrationStatus `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
}
