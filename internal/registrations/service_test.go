package registrations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seminarhub/backend/internal/eligibility"
	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store/memstore"
)

func seedUser(t *testing.T, st *memstore.Mem, role models.Role) *models.User {
	t.Helper()
	u := &models.User{FullName: "Alex", Email: "alex@example.com", Password: "x", Role: role}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func seedSeminar(t *testing.T, st *memstore.Mem, capacity int, regType models.RegistrationType) *models.Seminar {
	t.Helper()
	speaker := &models.User{FullName: "Speaker", Email: "spk@example.com", Password: "x", Role: models.RoleSpeaker}
	require.NoError(t, st.CreateUser(context.Background(), speaker))
	sem := &models.Seminar{
		Title:            "Distributed Systems",
		Date:             time.Now().Add(48 * time.Hour),
		Time:             "10:00",
		Location:         "Hall A",
		SpeakerID:        speaker.ID,
		Capacity:         capacity,
		RegistrationType: regType,
	}
	require.NoError(t, st.CreateSeminar(context.Background(), sem))
	return sem
}

func TestCreateFreeSeminarApprovesImmediately(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	p := seedUser(t, st, models.RoleParticipant)
	sem := seedSeminar(t, st, 10, models.RegistrationTypeFree)

	reg, err := svc.Create(context.Background(), sem.ID, p.ID)
	require.NoError(t, err)
	require.NotZero(t, reg.ID)
	require.Equal(t, models.RegistrationStatusApproved, reg.Status)
	require.False(t, reg.RegistrationDate.IsZero())
}

func TestCreateGatedSeminarStartsPending(t *testing.T) {
	for _, regType := range []models.RegistrationType{
		models.RegistrationTypeApprovalRequired,
		models.RegistrationTypePaymentRequired,
	} {
		st := memstore.New()
		svc := NewService(st, nil, nil)
		p := seedUser(t, st, models.RoleParticipant)
		sem := seedSeminar(t, st, 10, regType)

		reg, err := svc.Create(context.Background(), sem.ID, p.ID)
		require.NoError(t, err, "type %s", regType)
		require.Equal(t, models.RegistrationStatusPending, reg.Status)
	}
}

func TestCreateRejectsNonParticipant(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	sem := seedSeminar(t, st, 10, models.RegistrationTypeFree)

	for _, role := range []models.Role{models.RoleSpeaker, models.RoleAdmin} {
		u := &models.User{FullName: "U", Email: string(role) + "@example.com", Password: "x", Role: role}
		require.NoError(t, st.CreateUser(context.Background(), u))
		_, err := svc.Create(context.Background(), sem.ID, u.ID)
		require.ErrorIs(t, err, eligibility.ErrInvalidRole, "role %s", role)
	}
}

func TestCreateRejectsUnknownEntities(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	p := seedUser(t, st, models.RoleParticipant)
	sem := seedSeminar(t, st, 10, models.RegistrationTypeFree)

	_, err := svc.Create(context.Background(), sem.ID, 9999)
	require.ErrorIs(t, err, eligibility.ErrParticipantNotFound)

	_, err = svc.Create(context.Background(), 9999, p.ID)
	require.ErrorIs(t, err, eligibility.ErrSeminarNotFound)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	p := seedUser(t, st, models.RoleParticipant)
	sem := seedSeminar(t, st, 10, models.RegistrationTypeApprovalRequired)

	_, err := svc.Create(context.Background(), sem.ID, p.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), sem.ID, p.ID)
	require.ErrorIs(t, err, eligibility.ErrDuplicateRegistration)

	regs, err := st.ListRegistrationsBySeminar(context.Background(), sem.ID)
	require.NoError(t, err)
	require.Len(t, regs, 1)
}

func TestCreateEnforcesCapacity(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	sem := seedSeminar(t, st, 1, models.RegistrationTypeFree)

	a := &models.User{FullName: "A", Email: "a@example.com", Password: "x", Role: models.RoleParticipant}
	b := &models.User{FullName: "B", Email: "b@example.com", Password: "x", Role: models.RoleParticipant}
	require.NoError(t, st.CreateUser(context.Background(), a))
	require.NoError(t, st.CreateUser(context.Background(), b))

	_, err := svc.Create(context.Background(), sem.ID, a.ID)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), sem.ID, b.ID)
	require.ErrorIs(t, err, eligibility.ErrCapacityExceeded)
}

func TestPendingDoesNotConsumeCapacity(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	sem := seedSeminar(t, st, 1, models.RegistrationTypeApprovalRequired)

	a := &models.User{FullName: "A", Email: "a@example.com", Password: "x", Role: models.RoleParticipant}
	b := &models.User{FullName: "B", Email: "b@example.com", Password: "x", Role: models.RoleParticipant}
	require.NoError(t, st.CreateUser(context.Background(), a))
	require.NoError(t, st.CreateUser(context.Background(), b))

	regA, err := svc.Create(context.Background(), sem.ID, a.ID)
	require.NoError(t, err)
	require.Equal(t, models.RegistrationStatusPending, regA.Status)

	// A's pending registration holds no seat, so B still fits.
	_, err = svc.Create(context.Background(), sem.ID, b.ID)
	require.NoError(t, err)

	// Once A is approved the single seat is gone.
	_, err = svc.UpdateStatus(context.Background(), regA.ID, models.RegistrationStatusApproved)
	require.NoError(t, err)
	c := &models.User{FullName: "C", Email: "c@example.com", Password: "x", Role: models.RoleParticipant}
	require.NoError(t, st.CreateUser(context.Background(), c))
	_, err = svc.Create(context.Background(), sem.ID, c.ID)
	require.ErrorIs(t, err, eligibility.ErrCapacityExceeded)
}

func TestCancelFreesSeatAndAllowsReRegistration(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	sem := seedSeminar(t, st, 1, models.RegistrationTypeFree)

	a := &models.User{FullName: "A", Email: "a@example.com", Password: "x", Role: models.RoleParticipant}
	b := &models.User{FullName: "B", Email: "b@example.com", Password: "x", Role: models.RoleParticipant}
	require.NoError(t, st.CreateUser(context.Background(), a))
	require.NoError(t, st.CreateUser(context.Background(), b))

	regA, err := svc.Create(context.Background(), sem.ID, a.ID)
	require.NoError(t, err)

	ok, err := svc.Cancel(context.Background(), regA.ID)
	require.NoError(t, err)
	require.True(t, ok)

	// The seat is free again and A may register anew.
	regB, err := svc.Create(context.Background(), sem.ID, b.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), regB.ID)
	require.NoError(t, err)
	regA2, err := svc.Create(context.Background(), sem.ID, a.ID)
	require.NoError(t, err)
	require.NotEqual(t, regA.ID, regA2.ID)
}

func TestCancelAbsentRegistration(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)

	ok, err := svc.Cancel(context.Background(), 42)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestUpdateStatus(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	p := seedUser(t, st, models.RoleParticipant)
	sem := seedSeminar(t, st, 5, models.RegistrationTypePaymentRequired)

	reg, err := svc.Create(context.Background(), sem.ID, p.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), reg.ID, models.RegistrationStatusPaid)
	require.NoError(t, err)
	require.Equal(t, models.RegistrationStatusPaid, updated.Status)

	got, err := st.GetRegistration(context.Background(), reg.ID)
	require.NoError(t, err)
	require.Equal(t, models.RegistrationStatusPaid, got.Status)

	_, err = svc.UpdateStatus(context.Background(), reg.ID, "shipped")
	require.Error(t, err)

	absent, err := svc.UpdateStatus(context.Background(), 9999, models.RegistrationStatusApproved)
	require.NoError(t, err)
	require.Nil(t, absent)
}

func TestListProjections(t *testing.T) {
	st := memstore.New()
	svc := NewService(st, nil, nil)
	p := seedUser(t, st, models.RoleParticipant)
	sem := seedSeminar(t, st, 5, models.RegistrationTypeFree)

	reg, err := svc.Create(context.Background(), sem.ID, p.ID)
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), reg.ID)
	require.NoError(t, err)
	require.Equal(t, sem.Title, detail.SeminarTitle)
	require.Equal(t, sem.Location, detail.SeminarLocation)
	require.Equal(t, p.FullName, detail.ParticipantName)
	require.Equal(t, p.Email, detail.ParticipantEmail)

	bySeminar, err := svc.ListBySeminar(context.Background(), sem.ID)
	require.NoError(t, err)
	require.Len(t, bySeminar, 1)

	byParticipant, err := svc.ListByParticipant(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, byParticipant, 1)

	all, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	missing, err := svc.Get(context.Background(), 9999)
	require.NoError(t, err)
	require.Nil(t, missing)
}
