package seminars

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store/memstore"
)

func seed(t *testing.T, st *memstore.Mem) (*models.User, *models.User) {
	t.Helper()
	ctx := context.Background()
	speaker := &models.User{FullName: "Speaker", Email: "spk@example.com", Password: "x", Role: models.RoleSpeaker}
	require.NoError(t, st.CreateUser(ctx, speaker))
	participant := &models.User{FullName: "Alex", Email: "alex@example.com", Password: "x", Role: models.RoleParticipant}
	require.NoError(t, st.CreateUser(ctx, participant))
	return speaker, participant
}

func newSeminar(speakerID int64) *models.Seminar {
	return &models.Seminar{
		Title:            "Observability Deep Dive",
		Description:      "Tracing and metrics",
		Date:             time.Now().Add(72 * time.Hour),
		Time:             "14:00",
		Location:         "Room 2",
		SpeakerID:        speakerID,
		Capacity:         30,
		Cost:             decimal.NewNullDecimal(decimal.NewFromInt(25)),
		RegistrationType: models.RegistrationTypePaymentRequired,
	}
}

func TestCreateValidatesSpeaker(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	speaker, participant := seed(t, st)

	sem := newSeminar(speaker.ID)
	require.NoError(t, svc.Create(context.Background(), sem))
	require.NotZero(t, sem.ID)

	err := svc.Create(context.Background(), newSeminar(9999))
	require.ErrorIs(t, err, ErrSpeakerNotFound)

	err = svc.Create(context.Background(), newSeminar(participant.ID))
	require.ErrorIs(t, err, ErrInvalidSpeakerRole)
}

func TestGetAndList(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	speaker, _ := seed(t, st)

	sem := newSeminar(speaker.ID)
	require.NoError(t, svc.Create(context.Background(), sem))

	got, err := svc.Get(context.Background(), sem.ID)
	require.NoError(t, err)
	require.Equal(t, sem.Title, got.Title)

	missing, err := svc.Get(context.Background(), 9999)
	require.NoError(t, err)
	require.Nil(t, missing)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestUpdateRevalidatesSpeaker(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	speaker, participant := seed(t, st)

	sem := newSeminar(speaker.ID)
	require.NoError(t, svc.Create(context.Background(), sem))

	sem.Title = "Observability Deep Dive, 2nd ed."
	found, err := svc.Update(context.Background(), sem)
	require.NoError(t, err)
	require.True(t, found)

	sem.SpeakerID = participant.ID
	_, err = svc.Update(context.Background(), sem)
	require.ErrorIs(t, err, ErrInvalidSpeakerRole)

	absent := newSeminar(speaker.ID)
	absent.ID = 9999
	found, err = svc.Update(context.Background(), absent)
	require.NoError(t, err)
	require.False(t, found)
}

func TestDeleteCascades(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	ctx := context.Background()
	speaker, participant := seed(t, st)

	sem := newSeminar(speaker.ID)
	require.NoError(t, svc.Create(ctx, sem))

	reg := &models.Registration{SeminarID: sem.ID, ParticipantID: participant.ID, RegistrationDate: time.Now(), Status: models.RegistrationStatusPaid}
	require.NoError(t, st.CreateRegistration(ctx, reg))
	att := &models.Attendance{RegistrationID: reg.ID, Attended: true, AttendanceDate: time.Now()}
	require.NoError(t, st.CreateAttendance(ctx, att))
	cert := &models.Certificate{RegistrationID: reg.ID, IssueDate: time.Now(), CertificateURL: "/certificates/1/x.pdf"}
	require.NoError(t, st.CreateCertificate(ctx, cert))

	found, err := svc.Delete(ctx, sem.ID)
	require.NoError(t, err)
	require.True(t, found)

	gone, err := st.GetSeminar(ctx, sem.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	regs, err := st.ListRegistrationsBySeminar(ctx, sem.ID)
	require.NoError(t, err)
	require.Empty(t, regs)

	a, err := st.GetAttendanceByRegistration(ctx, reg.ID)
	require.NoError(t, err)
	require.Nil(t, a)

	c, err := st.GetCertificateByRegistration(ctx, reg.ID)
	require.NoError(t, err)
	require.Nil(t, c)

	// Users survive the cascade untouched.
	for _, id := range []int64{speaker.ID, participant.ID} {
		u, err := st.GetUser(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, u)
	}
}

func TestDeleteAbsentSeminar(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)

	found, err := svc.Delete(context.Background(), 9999)
	require.NoError(t, err)
	require.False(t, found)
}
