package certificates

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store/memstore"
)

type fixture struct {
	st  *memstore.Mem
	svc *Service
	reg *models.Registration
}

func newFixture(t *testing.T, status models.RegistrationStatus, attended *bool) fixture {
	t.Helper()
	ctx := context.Background()
	st := memstore.New()

	p := &models.User{FullName: "Alex", Email: "alex@example.com", Password: "x", Role: models.RoleParticipant}
	require.NoError(t, st.CreateUser(ctx, p))
	speaker := &models.User{FullName: "Speaker", Email: "spk@example.com", Password: "x", Role: models.RoleSpeaker}
	require.NoError(t, st.CreateUser(ctx, speaker))
	sem := &models.Seminar{Title: "Profiling Go", Date: time.Now(), SpeakerID: speaker.ID, Capacity: 10, RegistrationType: models.RegistrationTypeFree}
	require.NoError(t, st.CreateSeminar(ctx, sem))
	reg := &models.Registration{SeminarID: sem.ID, ParticipantID: p.ID, RegistrationDate: time.Now(), Status: status}
	require.NoError(t, st.CreateRegistration(ctx, reg))
	if attended != nil {
		att := &models.Attendance{RegistrationID: reg.ID, Attended: *attended, AttendanceDate: time.Now()}
		require.NoError(t, st.CreateAttendance(ctx, att))
	}
	return fixture{st: st, svc: NewService(st, nil, nil), reg: reg}
}

func ptr(b bool) *bool { return &b }

func TestIssue(t *testing.T) {
	f := newFixture(t, models.RegistrationStatusApproved, ptr(true))

	cert, err := f.svc.Issue(context.Background(), f.reg.ID)
	require.NoError(t, err)
	require.NotZero(t, cert.ID)
	require.Equal(t, f.reg.ID, cert.RegistrationID)
	require.False(t, cert.IssueDate.IsZero())
	require.NotEmpty(t, cert.CertificateURL)
	require.True(t, strings.HasSuffix(cert.CertificateURL, ".pdf"))
}

func TestIssueIsIdempotent(t *testing.T) {
	f := newFixture(t, models.RegistrationStatusPaid, ptr(true))

	first, err := f.svc.Issue(context.Background(), f.reg.ID)
	require.NoError(t, err)

	second, err := f.svc.Issue(context.Background(), f.reg.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.CertificateURL, second.CertificateURL)

	all, err := f.svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestIssueRequiresAttendance(t *testing.T) {
	t.Run("no attendance row", func(t *testing.T) {
		f := newFixture(t, models.RegistrationStatusApproved, nil)
		_, err := f.svc.Issue(context.Background(), f.reg.ID)
		require.ErrorIs(t, err, eligibility.ErrDidNotAttend)
	})

	t.Run("marked absent", func(t *testing.T) {
		f := newFixture(t, models.RegistrationStatusApproved, ptr(false))
		_, err := f.svc.Issue(context.Background(), f.reg.ID)
		require.ErrorIs(t, err, eligibility.ErrDidNotAttend)
	})
}

func TestIssueRequiresConfirmedRegistration(t *testing.T) {
	for _, status := range []models.RegistrationStatus{
		models.RegistrationStatusPending,
		models.RegistrationStatusRejected,
		models.RegistrationStatusCancelled,
	} {
		f := newFixture(t, status, ptr(true))
		_, err := f.svc.Issue(context.Background(), f.reg.ID)
		require.ErrorIs(t, err, eligibility.ErrInvalidRegistrationState, "status %s", status)
	}
}

func TestIssueUnknownRegistration(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)

	_, err := svc.Issue(context.Background(), 9999)
	require.ErrorIs(t, err, eligibility.ErrRegistrationNotFound)
}

func TestGetByRegistration(t *testing.T) {
	f := newFixture(t, models.RegistrationStatusApproved, ptr(true))

	absent, err := f.svc.GetByRegistration(context.Background(), f.reg.ID)
	require.NoError(t, err)
	require.Nil(t, absent)

	issued, err := f.svc.Issue(context.Background(), f.reg.ID)
	require.NoError(t, err)

	got, err := f.svc.GetByRegistration(context.Background(), f.reg.ID)
	require.NoError(t, err)
	require.Equal(t, issued.ID, got.ID)
}
