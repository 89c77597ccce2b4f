package eligibility

import "github.com/seminarhub/backend/internal/models"

// CanRegister decides whether participant may register for seminar.
// existing must be every registration already stored for the seminar (any
// status). Checks run in order: participant resolved, participant role,
// seminar resolved, duplicate, capacity. Cancelled registrations neither
// block re-registration nor occupy capacity.
func CanRegister(participant *models.User, seminar *models.Seminar, existing []models.Registration) error {
	if participant == nil {
		return ErrParticipantNotFound
	}
	if participant.Role != models.RoleParticipant {
		return ErrInvalidRole
	}
	if seminar == nil {
		return ErrSeminarNotFound
	}
	confirmed := 0
	for _, reg := range existing {
		if reg.ParticipantID == participant.ID && reg.Status != models.RegistrationStatusCancelled {
			return ErrDuplicateRegistration
		}
		if reg.Status.CountsTowardCapacity() {
			confirmed++
		}
	}
	if confirmed >= seminar.Capacity {
		return ErrCapacityExceeded
	}
	return nil
}

// InitialStatus returns the status a new registration starts in. Free
// seminars admit immediately; approval- and payment-gated seminars hold the
// registration as pending. Never caller-chosen.
func InitialStatus(seminar *models.Seminar) models.RegistrationStatus {
	if seminar.RegistrationType == models.RegistrationTypeFree {
		return models.RegistrationStatusApproved
	}
	return models.RegistrationStatusPending
}

// CanRecordAttendance decides whether attendance may be recorded for reg.
// Only confirmed (approved or paid) registrations qualify.
func CanRecordAttendance(reg *models.Registration) error {
	if reg == nil {
		return ErrRegistrationNotFound
	}
	if !reg.Status.CountsTowardCapacity() {
		return ErrInvalidRegistrationState
	}
	return nil
}

// CanIssueCertificate decides whether a certificate may be issued for reg
// given its attendance record (nil when none exists). The registration must
// not be pending, rejected, or cancelled, and the participant must have
// actually attended.
func CanIssueCertificate(reg *models.Registration, attendance *models.Attendance) error {
	if reg == nil {
		return ErrRegistrationNotFound
	}
	switch reg.Status {
	case models.RegistrationStatusPending, models.RegistrationStatusRejected, models.RegistrationStatusCancelled:
		return ErrInvalidRegistrationState
	}
	if attendance == nil || !attendance.Attended {
		return ErrDidNotAttend
	}
	return nil
}
