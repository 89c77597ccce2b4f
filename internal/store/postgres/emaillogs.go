package postgres

import (
	"context"

	"github.com/seminarhub/backend/internal/models"
)

// CreateEmailLog inserts an email delivery log row.
func (d *DB) CreateEmailLog(ctx context.Context, l *models.EmailLog) error {
	const q = `INSERT INTO email_logs (seminar_id, registration_id, email_type, recipient_email, subject, status, sent_at, error_message)
		VALUES ($1, $2, $3, $4, NULLIF($5,''), $6, $7, NULLIF($8,''))
		RETURNING id, created_at`
	return d.q.QueryRow(ctx, q, l.SeminarID, l.RegistrationID, l.EmailType, l.RecipientEmail,
		l.Subject, l.Status, l.SentAt, l.ErrorMessage).
		Scan(&l.ID, &l.CreatedAt)
}

// ListEmailLogsBySeminar returns email logs for a seminar, newest first.
func (d *DB) ListEmailLogsBySeminar(ctx context.Context, seminarID int64) ([]models.EmailLog, error) {
	const q = `SELECT id, seminar_id, registration_id, email_type, recipient_email,
		COALESCE(subject,''), status, sent_at, COALESCE(error_message,''), created_at
		FROM email_logs WHERE seminar_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := d.q.Query(ctx, q, seminarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.EmailLog
	for rows.Next() {
		var l models.EmailLog
		if err := rows.Scan(&l.ID, &l.SeminarID, &l.RegistrationID, &l.EmailType, &l.RecipientEmail,
			&l.Subject, &l.Status, &l.SentAt, &l.ErrorMessage, &l.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
