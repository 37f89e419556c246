package postgres

import (
	"context"
	"database/sql"

	"tracker/internal/domain"
)

const taskColumns = "id, user_id, project_id, title, description, created_at"

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t    domain.Task
		desc sql.NullString
	)
	if err := row.Scan(&t.ID, &t.UserID, &t.ProjectID, &t.Title, &desc, &t.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	if desc.Valid {
		t.Description = &desc.String
	}
	return &t, nil
}

// CreateTask inserts a task. The caller has already checked project ownership.
func (d *DB) CreateTask(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	return scanTask(d.sql.QueryRowContext(ctx,
		"INSERT INTO tasks (user_id, project_id, title, description) VALUES ($1, $2, $3, $4) RETURNING "+taskColumns,
		t.UserID, t.ProjectID, t.Title, t.Description,
	))
}

// GetTask returns a task scoped to its owner.
func (d *DB) GetTask(ctx context.Context, userID, id int64) (*domain.Task, error) {
	return scanTask(d.sql.QueryRowContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id=$1 AND user_id=$2", id, userID))
}

// ListProjectTasks returns the user's tasks in a project ordered by ID.
func (d *DB) ListProjectTasks(ctx context.Context, userID, projectID int64) ([]domain.Task, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE project_id=$1 AND user_id=$2 ORDER BY id",
		projectID, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// UpdateTask writes the mutable fields of a task scoped to t.UserID.
func (d *DB) UpdateTask(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	return scanTask(d.sql.QueryRowContext(ctx,
		"UPDATE tasks SET title=$1, description=$2, project_id=$3 WHERE id=$4 AND user_id=$5 RETURNING "+taskColumns,
		t.Title, t.Description, t.ProjectID, t.ID, t.UserID,
	))
}

// DeleteTask removes a task scoped to its owner.
func (d *DB) DeleteTask(ctx context.Context, userID, id int64) error {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM tasks WHERE id=$1 AND user_id=$2", id, userID)
	if err != nil {
		return err
	}
	return affectedOrNotFound(res)
}
