package postgres

import (
	"context"

	"github.com/seminarhub/backend/internal/models"
)

const certificateColumns = `id, registration_id, issue_date, certificate_url, created_at`

// CreateCertificate inserts a certificate row. The unique index on
// registration_id backs up the issuer's idempotence check.
func (d *DB) CreateCertificate(ctx context.Context, c *models.Certificate) error {
	const q = `INSERT INTO certificates (registration_id, issue_date, certificate_url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return d.q.QueryRow(ctx, q, c.RegistrationID, c.IssueDate, c.CertificateURL).
		Scan(&c.ID, &c.CreatedAt)
}

// GetCertificateByRegistration returns the unique certificate for a
// registration, or nil when none exists.
func (d *DB) GetCertificateByRegistration(ctx context.Context, registrationID int64) (*models.Certificate, error) {
	var c models.Certificate
	err := d.q.QueryRow(ctx, `SELECT `+certificateColumns+` FROM certificates WHERE registration_id = $1`, registrationID).
		Scan(&c.ID, &c.RegistrationID, &c.IssueDate, &c.CertificateURL, &c.CreatedAt)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCertificates returns every certificate, newest first.
func (d *DB) ListCertificates(ctx context.Context) ([]models.Certificate, error) {
	rows, err := d.q.Query(ctx, `SELECT `+certificateColumns+` FROM certificates ORDER BY issue_date DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.Certificate
	for rows.Next() {
		var c models.Certificate
		if err := rows.Scan(&c.ID, &c.RegistrationID, &c.IssueDate, &c.CertificateURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// DeleteCertificateByRegistration removes certificate rows for a registration.
func (d *DB) DeleteCertificateByRegistration(ctx context.Context, registrationID int64) (int64, error) {
	tag, err := d.q.Exec(ctx, `DELETE FROM certificates WHERE registration_id = $1`, registrationID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
