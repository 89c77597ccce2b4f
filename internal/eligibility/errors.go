// Package eligibility holds the pure decision rules gating registration,
// attendance recording, and certificate issuance. Functions here only read
// the entities they are handed; callers load state and apply mutations.
package eligibility

import "errors"

// Not-found family: the referenced entity could not be resolved.
var (
	ErrParticipantNotFound  = errors.New("participant not found")
	ErrSeminarNotFound      = errors.New("seminar not found")
	ErrRegistrationNotFound = errors.New("registration not found")
)

// Validation family: the entities exist but the operation is not allowed.
var (
	ErrInvalidRole              = errors.New("user does not have the participant role")
	ErrDuplicateRegistration    = errors.New("participant already has an active registration for this seminar")
	ErrCapacityExceeded         = errors.New("seminar capacity exceeded")
	ErrInvalidRegistrationState = errors.New("registration status does not allow this operation")
	ErrDidNotAttend             = errors.New("participant did not attend the seminar")
)

// IsNotFound reports whether err belongs to the not-found family.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrParticipantNotFound) ||
		errors.Is(err, ErrSeminarNotFound) ||
		errors.Is(err, ErrRegistrationNotFound)
}

// IsValidation reports whether err belongs to the validation family.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidRole) ||
		errors.Is(err, ErrDuplicateRegistration) ||
		errors.Is(err, ErrCapacityExceeded) ||
		errors.Is(err, ErrInvalidRegistrationState) ||
		errors.Is(err, ErrDidNotAttend)
}
