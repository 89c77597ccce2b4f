package postgres

import (
	"context"

	"github.com/seminarhub/backend/internal/models"
)

const seminarColumns = `id, title, description, seminar_date, seminar_time, location, speaker_id, capacity, cost, registration_type, created_at, updated_at`

func scanSeminar(row interface{ Scan(dest ...any) error }) (*models.Seminar, error) {
	var s models.Seminar
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Date, &s.Time, &s.Location,
		&s.SpeakerID, &s.Capacity, &s.Cost, &s.RegistrationType, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSeminar inserts a new seminar. ID and timestamps are store-assigned.
func (d *DB) CreateSeminar(ctx context.Context, s *models.Seminar) error {
	const q = `INSERT INTO seminars (title, description, seminar_date, seminar_time, location, speaker_id, capacity, cost, registration_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`
	return d.q.QueryRow(ctx, q, s.Title, s.Description, s.Date, s.Time, s.Location,
		s.SpeakerID, s.Capacity, s.Cost, string(s.RegistrationType)).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
}

// GetSeminar returns a seminar by ID, or nil when absent.
func (d *DB) GetSeminar(ctx context.Context, id int64) (*models.Seminar, error) {
	s, err := scanSeminar(d.q.QueryRow(ctx, `SELECT `+seminarColumns+` FROM seminars WHERE id = $1`, id))
	if noRows(err) {
		return nil, nil
	}
	return s, err
}

// GetSeminarForUpdate returns a seminar by ID with a row lock. Inside a
// transaction this serializes concurrent capacity checks on the seminar.
func (d *DB) GetSeminarForUpdate(ctx context.Context, id int64) (*models.Seminar, error) {
	s, err := scanSeminar(d.q.QueryRow(ctx, `SELECT `+seminarColumns+` FROM seminars WHERE id = $1 FOR UPDATE`, id))
	if noRows(err) {
		return nil, nil
	}
	return s, err
}

// ListSeminars returns all seminars, soonest first.
func (d *DB) ListSeminars(ctx context.Context) ([]models.Seminar, error) {
	rows, err := d.q.Query(ctx, `SELECT `+seminarColumns+` FROM seminars ORDER BY seminar_date, seminar_time, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Seminar
	for rows.Next() {
		s, err := scanSeminar(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *s)
	}
	return list, rows.Err()
}

// UpdateSeminar overwrites mutable seminar fields. Returns false when absent.
func (d *DB) UpdateSeminar(ctx context.Context, s *models.Seminar) (bool, error) {
	const q = `UPDATE seminars SET title = $1, description = $2, seminar_date = $3, seminar_time = $4,
		location = $5, speaker_id = $6, capacity = $7, cost = $8, registration_type = $9, updated_at = NOW()
		WHERE id = $10`
	tag, err := d.q.Exec(ctx, q, s.Title, s.Description, s.Date, s.Time, s.Location,
		s.SpeakerID, s.Capacity, s.Cost, string(s.RegistrationType), s.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteSeminar removes the seminar row only; dependent rows are removed by
// the cascade in the seminars service, children first.
func (d *DB) DeleteSeminar(ctx context.Context, id int64) (bool, error) {
	tag, err := d.q.Exec(ctx, `DELETE FROM seminars WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CountSeminarsBySpeaker returns how many seminars reference the speaker.
func (d *DB) CountSeminarsBySpeaker(ctx context.Context, speakerID int64) (int, error) {
	var n int
	err := d.q.QueryRow(ctx, `SELECT COUNT(*) FROM seminars WHERE speaker_id = $1`, speakerID).Scan(&n)
	return n, err
}
