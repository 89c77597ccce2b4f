package postgres

import (
	"context"

	"github.com/seminarhub/backend/internal/models"
)

const attendanceColumns = `id, registration_id, attended, attendance_date, created_at`

// CreateAttendance inserts an attendance row. The unique index on
// registration_id backs up the existence check done by the tracker.
func (d *DB) CreateAttendance(ctx context.Context, a *models.Attendance) error {
	const q = `INSERT INTO attendance (registration_id, attended, attendance_date)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return d.q.QueryRow(ctx, q, a.RegistrationID, a.Attended, a.AttendanceDate).
		Scan(&a.ID, &a.CreatedAt)
}

// GetAttendanceByRegistration returns the unique attendance row for a
// registration, or nil when none exists.
func (d *DB) GetAttendanceByRegistration(ctx context.Context, registrationID int64) (*models.Attendance, error) {
	var a models.Attendance
	err := d.q.QueryRow(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE registration_id = $1`, registrationID).
		Scan(&a.ID, &a.RegistrationID, &a.Attended, &a.AttendanceDate, &a.CreatedAt)
	if noRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAttendance overwrites attended and attendance_date. Returns false when absent.
func (d *DB) UpdateAttendance(ctx context.Context, a *models.Attendance) (bool, error) {
	const q = `UPDATE attendance SET attended = $1, attendance_date = $2 WHERE id = $3`
	tag, err := d.q.Exec(ctx, q, a.Attended, a.AttendanceDate, a.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteAttendanceByRegistration removes attendance rows for a registration.
func (d *DB) DeleteAttendanceByRegistration(ctx context.Context, registrationID int64) (int64, error) {
	tag, err := d.q.Exec(ctx, `DELETE FROM attendance WHERE registration_id = $1`, registrationID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
