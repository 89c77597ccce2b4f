package postgres

import (
	"context"

	"github.com/seminarhub/backend/internal/models"
)

const userColumns = `id, full_name, email, password_hash, role, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user. ID and timestamps are store-assigned.
func (d *DB) CreateUser(ctx context.Context, u *models.User) error {
	const q = `INSERT INTO users (full_name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`
	return d.q.QueryRow(ctx, q, u.FullName, u.Email, u.Password, string(u.Role)).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

// GetUser returns a user by ID, or nil when absent.
func (d *DB) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := scanUser(d.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if noRows(err) {
		return nil, nil
	}
	return u, err
}

// GetUserByEmail returns a user by email, or nil when absent.
func (d *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := scanUser(d.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if noRows(err) {
		return nil, nil
	}
	return u, err
}

// ListUsers returns all users ordered by name.
func (d *DB) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := d.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY full_name, email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *u)
	}
	return list, rows.Err()
}

// UpdateUser overwrites mutable user fields. Returns false when absent.
func (d *DB) UpdateUser(ctx context.Context, u *models.User) (bool, error) {
	const q = `UPDATE users SET full_name = $1, email = $2, password_hash = $3, role = $4, updated_at = NOW()
		WHERE id = $5`
	tag, err := d.q.Exec(ctx, q, u.FullName, u.Email, u.Password, string(u.Role), u.ID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteUser removes a user by ID. Returns false when absent.
func (d *DB) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tag, err := d.q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
