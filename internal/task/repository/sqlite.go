package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	"github.com/AlibekovAA/tasktracker/internal/common/db"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	"github.com/AlibekovAA/tasktracker/internal/task/domain"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(d *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: d}
}

func (r *SQLiteRepository) Create(ctx context.Context, task domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO tasks (id, user_id, title, done, created_at) VALUES (?, ?, ?, ?, ?)`,
		string(task.ID),
		string(task.OwnerID),
		task.Title,
		task.Done,
		task.CreatedAt.UnixNano(),
	)
	return db.HandleExecError(err, "create task", start)
}

// ListByOwner returns tasks in insertion order; rowid grows monotonically
// because rows are never reinserted.
func (r *SQLiteRepository) ListByOwner(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, user_id, title, done, created_at
		 FROM tasks
		 WHERE user_id = ?
		 ORDER BY rowid ASC`,
		string(ownerID),
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list tasks", start)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, db.HandleExecError(err, "scan task", start)
		}
		tasks = append(tasks, t)
	}

	return tasks, db.HandleExecError(rows.Err(), "list tasks", start)
}

func (r *SQLiteRepository) FindByID(ctx context.Context, ownerID userdomain.ID, id domain.ID) (domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, user_id, title, done, created_at FROM tasks WHERE id = ? AND user_id = ?`,
		string(id),
		string(ownerID),
	)

	t, err := scanTask(row)
	if err := db.HandleQueryError(err, commonerrors.ErrNotFound, "find task", start); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *SQLiteRepository) SetDone(ctx context.Context, ownerID userdomain.ID, id domain.ID, done bool) error {
	return r.updateOne(ctx, "set task done",
		`UPDATE tasks SET done = ? WHERE id = ? AND user_id = ?`,
		done, string(id), string(ownerID))
}

func (r *SQLiteRepository) UpdateTitle(ctx context.Context, ownerID userdomain.ID, id domain.ID, title string) error {
	return r.updateOne(ctx, "update task title",
		`UPDATE tasks SET title = ? WHERE id = ? AND user_id = ?`,
		title, string(id), string(ownerID))
}

func (r *SQLiteRepository) Delete(ctx context.Context, ownerID userdomain.ID, id domain.ID) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ? AND user_id = ?`, string(id), string(ownerID))
	return db.HandleExecError(err, "delete task", start)
}

// updateOne relies on SQLite reporting matched rows, so setting done to its
// current value still counts as found.
func (r *SQLiteRepository) updateOne(ctx context.Context, operation, query string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return db.HandleExecError(err, operation, start)
	}
	db.MeasureQueryDuration(operation, start)

	affected, err := res.RowsAffected()
	if err != nil {
		return db.HandleExecError(err, operation, start)
	}
	if affected == 0 {
		return commonerrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (domain.Task, error) {
	var (
		t         domain.Task
		createdAt int64
	)
	if err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Done, &createdAt); err != nil {
		return domain.Task{}, err
	}
	t.CreatedAt = time.Unix(0, createdAt).UTC()
	return t, nil
}
