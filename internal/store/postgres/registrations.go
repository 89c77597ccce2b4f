package postgres

import (
	"context"

	"github.com/seminarhub/backend/internal/models"
)

const registrationColumns = `id, seminar_id, participant_id, registration_date, status, created_at`

func scanRegistration(row interface{ Scan(dest ...any) error }) (*models.Registration, error) {
	var r models.Registration
	err := row.Scan(&r.ID, &r.SeminarID, &r.ParticipantID, &r.RegistrationDate, &r.Status, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateRegistration inserts a registration. ID and created_at are store-assigned.
func (d *DB) CreateRegistration(ctx context.Context, r *models.Registration) error {
	const q = `INSERT INTO registrations (seminar_id, participant_id, registration_date, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	return d.q.QueryRow(ctx, q, r.SeminarID, r.ParticipantID, r.RegistrationDate, string(r.Status)).
		Scan(&r.ID, &r.CreatedAt)
}

// GetRegistration returns a registration by ID, or nil when absent.
func (d *DB) GetRegistration(ctx context.Context, id int64) (*models.Registration, error) {
	r, err := scanRegistration(d.q.QueryRow(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, id))
	if noRows(err) {
		return nil, nil
	}
	return r, err
}

// GetRegistrationForUpdate returns a registration with a row lock, serializing
// concurrent attendance upserts and certificate issuance for it.
func (d *DB) GetRegistrationForUpdate(ctx context.Context, id int64) (*models.Registration, error) {
	r, err := scanRegistration(d.q.QueryRow(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = $1 FOR UPDATE`, id))
	if noRows(err) {
		return nil, nil
	}
	return r, err
}

func (d *DB) listRegistrations(ctx context.Context, query string, args ...any) ([]models.Registration, error) {
	rows, err := d.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *r)
	}
	return list, rows.Err()
}

// ListRegistrations returns every registration, newest first.
func (d *DB) ListRegistrations(ctx context.Context) ([]models.Registration, error) {
	return d.listRegistrations(ctx, `SELECT `+registrationColumns+` FROM registrations ORDER BY created_at DESC, id DESC`)
}

// ListRegistrationsBySeminar returns all registrations for a seminar.
func (d *DB) ListRegistrationsBySeminar(ctx context.Context, seminarID int64) ([]models.Registration, error) {
	return d.listRegistrations(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE seminar_id = $1 ORDER BY created_at DESC, id DESC`, seminarID)
}

// ListRegistrationsByParticipant returns all registrations for a participant.
func (d *DB) ListRegistrationsByParticipant(ctx context.Context, participantID int64) ([]models.Registration, error) {
	return d.listRegistrations(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE participant_id = $1 ORDER BY created_at DESC, id DESC`, participantID)
}

// UpdateRegistrationStatus overwrites the status. Returns false when absent.
func (d *DB) UpdateRegistrationStatus(ctx context.Context, id int64, status models.RegistrationStatus) (bool, error) {
	tag, err := d.q.Exec(ctx, `UPDATE registrations SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteRegistrationsBySeminar removes all registrations for a seminar.
func (d *DB) DeleteRegistrationsBySeminar(ctx context.Context, seminarID int64) (int64, error) {
	tag, err := d.q.Exec(ctx, `DELETE FROM registrations WHERE seminar_id = $1`, seminarID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountRegistrationsByParticipant returns how many registrations reference the participant.
func (d *DB) CountRegistrationsByParticipant(ctx context.Context, participantID int64) (int, error) {
	var n int
	err := d.q.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE participant_id = $1`, participantID).Scan(&n)
	return n, err
}
