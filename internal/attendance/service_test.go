package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store/memstore"
)

func seedRegistration(t *testing.T, st *memstore.Mem, status models.RegistrationStatus) *models.Registration {
	t.Helper()
	ctx := context.Background()
	p := &models.User{FullName: "Alex", Email: "alex@example.com", Password: "x", Role: models.RoleParticipant}
	require.NoError(t, st.CreateUser(ctx, p))
	speaker := &models.User{FullName: "Speaker", Email: "spk@example.com", Password: "x", Role: models.RoleSpeaker}
	require.NoError(t, st.CreateUser(ctx, speaker))
	sem := &models.Seminar{
		Title:            "Testing in Production",
		Date:             time.Now().Add(24 * time.Hour),
		SpeakerID:        speaker.ID,
		Capacity:         10,
		RegistrationType: models.RegistrationTypeFree,
	}
	require.NoError(t, st.CreateSeminar(ctx, sem))
	reg := &models.Registration{
		SeminarID:        sem.ID,
		ParticipantID:    p.ID,
		RegistrationDate: time.Now(),
		Status:           status,
	}
	require.NoError(t, st.CreateRegistration(ctx, reg))
	return reg
}

func TestRecordCreatesRow(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil)
	reg := seedRegistration(t, st, models.RegistrationStatusApproved)

	att, err := svc.Record(context.Background(), reg.ID, true)
	require.NoError(t, err)
	require.NotZero(t, att.ID)
	require.Equal(t, reg.ID, att.RegistrationID)
	require.True(t, att.Attended)
	require.False(t, att.AttendanceDate.IsZero())
}

func TestRecordUpsertsInPlace(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil)
	reg := seedRegistration(t, st, models.RegistrationStatusPaid)

	first, err := svc.Record(context.Background(), reg.ID, true)
	require.NoError(t, err)

	second, err := svc.Record(context.Background(), reg.ID, false)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.False(t, second.Attended)

	got, err := svc.GetByRegistration(context.Background(), reg.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, got.ID)
	require.False(t, got.Attended)
}

func TestRecordRequiresConfirmedRegistration(t *testing.T) {
	for _, status := range []models.RegistrationStatus{
		models.RegistrationStatusPending,
		models.RegistrationStatusRejected,
		models.RegistrationStatusCancelled,
	} {
		st := memstore.New()
		svc := NewService(st, nil)
		reg := seedRegistration(t, st, status)

		_, err := svc.Record(context.Background(), reg.ID, true)
		require.ErrorIs(t, err, eligibility.ErrInvalidRegistrationState, "status %s", status)

		att, err := svc.GetByRegistration(context.Background(), reg.ID)
		require.NoError(t, err)
		require.Nil(t, att)
	}
}

func TestRecordUnknownRegistration(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil)

	_, err := svc.Record(context.Background(), 9999, true)
	require.ErrorIs(t, err, eligibility.ErrRegistrationNotFound)
}

func TestGetByRegistrationAbsent(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil)
	reg := seedRegistration(t, st, models.RegistrationStatusApproved)

	att, err := svc.GetByRegistration(context.Background(), reg.ID)
	require.NoError(t, err)
	require.Nil(t, att)
}

func TestListBySeminar(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil)
	ctx := context.Background()

	speaker := &models.User{FullName: "Speaker", Email: "spk@example.com", Password: "x", Role: models.RoleSpeaker}
	require.NoError(t, st.CreateUser(ctx, speaker))
	sem := &models.Seminar{Title: "Go Generics", Date: time.Now(), SpeakerID: speaker.ID, Capacity: 10, RegistrationType: models.RegistrationTypeFree}
	require.NoError(t, st.CreateSeminar(ctx, sem))

	var marked *models.Registration
	for i, email := range []string{"a@example.com", "b@example.com"} {
		p := &models.User{FullName: "P", Email: email, Password: "x", Role: models.RoleParticipant}
		require.NoError(t, st.CreateUser(ctx, p))
		reg := &models.Registration{SeminarID: sem.ID, ParticipantID: p.ID, RegistrationDate: time.Now(), Status: models.RegistrationStatusApproved}
		require.NoError(t, st.CreateRegistration(ctx, reg))
		if i == 0 {
			marked = reg
		}
	}

	_, err := svc.Record(ctx, marked.ID, true)
	require.NoError(t, err)

	// Only the marked registration shows up; unmarked ones are omitted.
	details, err := svc.ListBySeminar(ctx, sem.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.Equal(t, marked.ID, details[0].RegistrationID)
	require.Equal(t, "a@example.com", details[0].ParticipantEmail)
	require.Equal(t, models.RegistrationStatusApproved, details[0].Status)
}
