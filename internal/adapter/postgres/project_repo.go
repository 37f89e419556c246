package postgres

import (
	"context"

	"tracker/internal/domain"
)

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

// CreateProject inserts a project owned by userID.
func (d *DB) CreateProject(ctx context.Context, userID int64, name string) (*domain.Project, error) {
	return scanProject(d.sql.QueryRowContext(ctx,
		"INSERT INTO projects (user_id, name) VALUES ($1, $2) RETURNING id, user_id, name, created_at",
		userID, name,
	))
}

// GetProject returns a project scoped to its owner.
func (d *DB) GetProject(ctx context.Context, userID, id int64) (*domain.Project, error) {
	return scanProject(d.sql.QueryRowContext(ctx,
		"SELECT id, user_id, name, created_at FROM projects WHERE id=$1 AND user_id=$2",
		id, userID,
	))
}

// ListProjects returns the user's projects ordered by ID.
func (d *DB) ListProjects(ctx context.Context, userID int64) ([]domain.Project, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, name, created_at FROM projects WHERE user_id=$1 ORDER BY id", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdateProject renames a project scoped to its owner.
func (d *DB) UpdateProject(ctx context.Context, userID, id int64, name string) (*domain.Project, error) {
	return scanProject(d.sql.QueryRowContext(ctx,
		"UPDATE projects SET name=$1 WHERE id=$2 AND user_id=$3 RETURNING id, user_id, name, created_at",
		name, id, userID,
	))
}

// DeleteProject removes a project scoped to its owner. Tasks cascade.
func (d *DB) DeleteProject(ctx context.Context, userID, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM projects WHERE id=$1 AND user_id=$2", id, userID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
