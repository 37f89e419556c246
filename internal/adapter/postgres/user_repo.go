package postgres

import (
	"context"

	"tracker/internal/domain"
)

const userColumns = "id, email, username, password_hash, role, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

// Create inserts a new user. A duplicate email yields domain.ErrConflict.
func (d *DB) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	return scanUser(d.sql.QueryRowContext(ctx,
		"INSERT INTO users (email, username, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING "+userColumns,
		u.Email, u.Username, u.PasswordHash, role,
	))
}

// GetByEmail retrieves a user by email.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1", email))
}

// GetByID retrieves a user by ID.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", id))
}

// ListUsers returns every user ordered by ID.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

// SetRole changes the role of the user with the given email.
func (d *DB) SetRole(ctx context.Context, email, role string) error {
	res, err := d.sql.ExecContext(ctx, "UPDATE users SET role = $1 WHERE email = $2", role, email)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
