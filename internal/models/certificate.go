package models

import "time"

// Certificate is the completion certificate for an attended registration.
// At most one exists per registration; repeat issuance returns it unchanged.
type Certificate struct {
	ID             int64     `json:"id"`
	RegistrationID int64     `json:"registration_id"`
	IssueDate      time.Time `json:"issue_date"`
	CertificateURL string    `json:"certificate_url"`
	CreatedAt      time.Time `json:"created_at"`
}
