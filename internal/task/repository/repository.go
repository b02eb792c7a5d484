package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	"github.com/AlibekovAA/tasktracker/internal/common/db"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	"github.com/AlibekovAA/tasktracker/internal/task/domain"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

// Repository scopes every lookup and mutation by owner. A task that exists
// but belongs to someone else is reported the same way as a missing one.
type Repository interface {
	Create(ctx context.Context, task domain.Task) error
	ListByOwner(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error)
	FindByID(ctx context.Context, ownerID userdomain.ID, id domain.ID) (domain.Task, error)
	SetDone(ctx context.Context, ownerID userdomain.ID, id domain.ID, done bool) error
	UpdateTitle(ctx context.Context, ownerID userdomain.ID, id domain.ID, title string) error
	Delete(ctx context.Context, ownerID userdomain.ID, id domain.ID) error
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, task domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO tasks (id, user_id, title, done, created_at) VALUES ($1, $2, $3, $4, $5)`,
		string(task.ID),
		string(task.OwnerID),
		task.Title,
		task.Done,
		task.CreatedAt,
	)
	return db.HandleExecError(err, "create task", start)
}

func (r *PgRepository) ListByOwner(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	rows, err := r.pool.Query(
		ctx,
		`SELECT id, user_id, title, done, created_at
		 FROM tasks
		 WHERE user_id = $1
		 ORDER BY seq ASC`,
		string(ownerID),
	)
	if err != nil {
		return nil, db.HandleExecError(err, "list tasks", start)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Done, &t.CreatedAt); err != nil {
			return nil, db.HandleExecError(err, "scan task", start)
		}
		tasks = append(tasks, t)
	}

	return tasks, db.HandleExecError(rows.Err(), "list tasks", start)
}

func (r *PgRepository) FindByID(ctx context.Context, ownerID userdomain.ID, id domain.ID) (domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, user_id, title, done, created_at FROM tasks WHERE id = $1 AND user_id = $2`,
		string(id),
		string(ownerID),
	)

	var t domain.Task
	err := row.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Done, &t.CreatedAt)
	if err := db.HandleQueryError(err, commonerrors.ErrNotFound, "find task", start); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func (r *PgRepository) SetDone(ctx context.Context, ownerID userdomain.ID, id domain.ID, done bool) error {
	return r.updateOne(ctx, "set task done",
		`UPDATE tasks SET done = $1 WHERE id = $2 AND user_id = $3`,
		done, string(id), string(ownerID))
}

func (r *PgRepository) UpdateTitle(ctx context.Context, ownerID userdomain.ID, id domain.ID, title string) error {
	return r.updateOne(ctx, "update task title",
		`UPDATE tasks SET title = $1 WHERE id = $2 AND user_id = $3`,
		title, string(id), string(ownerID))
}

func (r *PgRepository) Delete(ctx context.Context, ownerID userdomain.ID, id domain.ID) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`DELETE FROM tasks WHERE id = $1 AND user_id = $2`,
		string(id),
		string(ownerID),
	)
	return db.HandleExecError(err, "delete task", start)
}

func (r *PgRepository) updateOne(ctx context.Context, operation, query string, args ...any) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return db.HandleExecError(err, operation, start)
	}
	db.MeasureQueryDuration(operation, start)

	if tag.RowsAffected() == 0 {
		return commonerrors.ErrNotFound
	}
	return nil
}
