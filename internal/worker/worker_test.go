package worker

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/seminarhub/backend/internal/models"
	"github.com/seminarhub/backend/internal/store/memstore"
	"github.com/seminarhub/backend/pkg/queue"
)

func emailJob(t *testing.T, payload queue.EmailPayload) *queue.Job {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return &queue.Job{ID: "job-1", Payload: raw}
}

func TestProcessSkipsWithoutSMTP(t *testing.T) {
	st := memstore.New()
	p := NewEmailProcessor(st, nil, nil, nil)

	job := emailJob(t, queue.EmailPayload{
		EmailType:      models.EmailTypeRegistrationConfirmation,
		SeminarID:      1,
		RegistrationID: 2,
		RecipientEmail: "alex@example.com",
		RecipientName:  "Alex",
		SeminarTitle:   "Go Internals",
		Status:         models.RegistrationStatusApproved,
	})
	require.NoError(t, p.Process(context.Background(), job))

	logs, err := st.ListEmailLogsBySeminar(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, models.EmailLogStatusSkipped, logs[0].Status)
	require.Equal(t, models.EmailTypeRegistrationConfirmation, logs[0].EmailType)
	require.Equal(t, "alex@example.com", logs[0].RecipientEmail)
	require.Nil(t, logs[0].SentAt)
}

func TestProcessRejectsMalformedPayload(t *testing.T) {
	p := NewEmailProcessor(memstore.New(), nil, nil, nil)
	job := &queue.Job{ID: "job-2", Payload: []byte("{not json")}
	require.Error(t, p.Process(context.Background(), job))
}

func TestRender(t *testing.T) {
	t.Run("confirmation approved", func(t *testing.T) {
		subject, body := render(queue.EmailPayload{
			EmailType:     models.EmailTypeRegistrationConfirmation,
			RecipientName: "Alex",
			SeminarTitle:  "Go Internals",
			Status:        models.RegistrationStatusApproved,
		})
		require.Contains(t, subject, "Go Internals")
		require.Contains(t, body, "confirmed")
	})

	t.Run("confirmation pending", func(t *testing.T) {
		_, body := render(queue.EmailPayload{
			EmailType:     models.EmailTypeRegistrationConfirmation,
			RecipientName: "Alex",
			SeminarTitle:  "Go Internals",
			Status:        models.RegistrationStatusPending,
		})
		require.Contains(t, body, "pending")
	})

	t.Run("status changed", func(t *testing.T) {
		subject, body := render(queue.EmailPayload{
			EmailType:     models.EmailTypeStatusChanged,
			RecipientName: "Alex",
			SeminarTitle:  "Go Internals",
			Status:        models.RegistrationStatusRejected,
		})
		require.True(t, strings.HasPrefix(subject, "Registration update"))
		require.Contains(t, body, "rejected")
	})

	t.Run("certificate issued", func(t *testing.T) {
		_, body := render(queue.EmailPayload{
			EmailType:      models.EmailTypeCertificateIssued,
			RecipientName:  "Alex",
			SeminarTitle:   "Go Internals",
			CertificateURL: "/certificates/2/abc.pdf",
		})
		require.Contains(t, body, "/certificates/2/abc.pdf")
	})
}

func TestSenderNotConfigured(t *testing.T) {
	var s *Sender
	require.ErrorIs(t, s.Send("a@example.com", "s", "b"), ErrNotConfigured)
}
