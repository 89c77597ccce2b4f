package eligibility

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seminarhub/backend/internal/models"
)

func participant(id int64) *models.User {
	return &models.User{ID: id, FullName: "P", Email: "p@example.com", Role: models.RoleParticipant}
}

func seminar(capacity int, regType models.RegistrationType) *models.Seminar {
	return &models.Seminar{ID: 10, Title: "Go Concurrency", Capacity: capacity, RegistrationType: regType}
}

func reg(participantID int64, status models.RegistrationStatus) models.Registration {
	return models.Registration{SeminarID: 10, ParticipantID: participantID, Status: status}
}

func TestCanRegister(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		require.NoError(t, CanRegister(participant(1), seminar(2, models.RegistrationTypeFree), nil))
	})

	t.Run("participant not found", func(t *testing.T) {
		err := CanRegister(nil, seminar(2, models.RegistrationTypeFree), nil)
		require.ErrorIs(t, err, ErrParticipantNotFound)
	})

	t.Run("wrong role", func(t *testing.T) {
		u := participant(1)
		u.Role = models.RoleSpeaker
		err := CanRegister(u, seminar(2, models.RegistrationTypeFree), nil)
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("seminar not found", func(t *testing.T) {
		err := CanRegister(participant(1), nil, nil)
		require.ErrorIs(t, err, ErrSeminarNotFound)
	})

	t.Run("duplicate active registration", func(t *testing.T) {
		for _, status := range []models.RegistrationStatus{
			models.RegistrationStatusPending,
			models.RegistrationStatusApproved,
			models.RegistrationStatusRejected,
			models.RegistrationStatusPaid,
		} {
			err := CanRegister(participant(1), seminar(5, models.RegistrationTypeFree),
				[]models.Registration{reg(1, status)})
			require.ErrorIs(t, err, ErrDuplicateRegistration, "status %s", status)
		}
	})

	t.Run("cancelled registration allows re-registration", func(t *testing.T) {
		err := CanRegister(participant(1), seminar(5, models.RegistrationTypeFree),
			[]models.Registration{reg(1, models.RegistrationStatusCancelled)})
		require.NoError(t, err)
	})

	t.Run("capacity counts approved and paid only", func(t *testing.T) {
		existing := []models.Registration{
			reg(2, models.RegistrationStatusApproved),
			reg(3, models.RegistrationStatusPaid),
			reg(4, models.RegistrationStatusPending),
			reg(5, models.RegistrationStatusRejected),
			reg(6, models.RegistrationStatusCancelled),
		}
		err := CanRegister(participant(1), seminar(2, models.RegistrationTypeFree), existing)
		require.ErrorIs(t, err, ErrCapacityExceeded)

		require.NoError(t, CanRegister(participant(1), seminar(3, models.RegistrationTypeFree), existing))
	})

	t.Run("cancelled frees a slot", func(t *testing.T) {
		existing := []models.Registration{reg(2, models.RegistrationStatusCancelled)}
		require.NoError(t, CanRegister(participant(1), seminar(1, models.RegistrationTypeFree), existing))
	})
}

func TestInitialStatus(t *testing.T) {
	require.Equal(t, models.RegistrationStatusApproved,
		InitialStatus(seminar(1, models.RegistrationTypeFree)))
	require.Equal(t, models.RegistrationStatusPending,
		InitialStatus(seminar(1, models.RegistrationTypeApprovalRequired)))
	require.Equal(t, models.RegistrationStatusPending,
		InitialStatus(seminar(1, models.RegistrationTypePaymentRequired)))
}

func TestCanRecordAttendance(t *testing.T) {
	require.ErrorIs(t, CanRecordAttendance(nil), ErrRegistrationNotFound)

	for status, want := range map[models.RegistrationStatus]error{
		models.RegistrationStatusApproved:  nil,
		models.RegistrationStatusPaid:      nil,
		models.RegistrationStatusPending:   ErrInvalidRegistrationState,
		models.RegistrationStatusRejected:  ErrInvalidRegistrationState,
		models.RegistrationStatusCancelled: ErrInvalidRegistrationState,
	} {
		r := reg(1, status)
		err := CanRecordAttendance(&r)
		if want == nil {
			require.NoError(t, err, "status %s", status)
		} else {
			require.ErrorIs(t, err, want, "status %s", status)
		}
	}
}

func TestCanIssueCertificate(t *testing.T) {
	attended := &models.Attendance{RegistrationID: 1, Attended: true}
	absent := &models.Attendance{RegistrationID: 1, Attended: false}

	require.ErrorIs(t, CanIssueCertificate(nil, attended), ErrRegistrationNotFound)

	r := reg(1, models.RegistrationStatusPending)
	require.ErrorIs(t, CanIssueCertificate(&r, attended), ErrInvalidRegistrationState)
	r.Status = models.RegistrationStatusRejected
	require.ErrorIs(t, CanIssueCertificate(&r, attended), ErrInvalidRegistrationState)
	r.Status = models.RegistrationStatusCancelled
	require.ErrorIs(t, CanIssueCertificate(&r, attended), ErrInvalidRegistrationState)

	r.Status = models.RegistrationStatusApproved
	require.ErrorIs(t, CanIssueCertificate(&r, nil), ErrDidNotAttend)
	require.ErrorIs(t, CanIssueCertificate(&r, absent), ErrDidNotAttend)
	require.NoError(t, CanIssueCertificate(&r, attended))

	r.Status = models.RegistrationStatusPaid
	require.NoError(t, CanIssueCertificate(&r, attended))
}

func TestErrorFamilies(t *testing.T) {
	require.True(t, IsNotFound(ErrSeminarNotFound))
	require.True(t, IsNotFound(ErrParticipantNotFound))
	require.True(t, IsNotFound(ErrRegistrationNotFound))
	require.False(t, IsNotFound(ErrCapacityExceeded))

	require.True(t, IsValidation(ErrCapacityExceeded))
	require.True(t, IsValidation(ErrDuplicateRegistration))
	require.True(t, IsValidation(ErrDidNotAttend))
	require.False(t, IsValidation(ErrSeminarNotFound))
}
