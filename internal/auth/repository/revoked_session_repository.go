package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	"github.com/AlibekovAA/tasktracker/internal/common/db"
)

// RevokedSessionRepository remembers logged-out session ids until the
// sessions would have expired on their own.
type RevokedSessionRepository interface {
	Revoke(ctx context.Context, sessionID string, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type PgRevokedSessionRepository struct {
	pool *pgxpool.Pool
}

func NewPgRevokedSessionRepository(pool *pgxpool.Pool) *PgRevokedSessionRepository {
	return &PgRevokedSessionRepository{pool: pool}
}

func (r *PgRevokedSessionRepository) Revoke(ctx context.Context, sessionID string, userID string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO revoked_sessions (jti, user_id, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (jti) DO NOTHING`,
		sessionID,
		userID,
		expiresAt,
	)
	return db.HandleExecError(err, "revoke session", start)
}

func (r *PgRevokedSessionRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	var exists bool
	err := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE jti = $1)`,
		sessionID,
	).Scan(&exists)
	if err := db.HandleQueryError(err, nil, "check revoked session", start); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRevokedSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	tag, err := r.pool.Exec(ctx, `DELETE FROM revoked_sessions WHERE expires_at < $1`, before)
	if err != nil {
		return 0, db.HandleExecError(err, "delete expired revoked sessions", start)
	}
	db.MeasureQueryDuration("delete expired revoked sessions", start)
	return tag.RowsAffected(), nil
}

// SQLiteRevokedSessionRepository stores expiry as unix seconds.
type SQLiteRevokedSessionRepository struct {
	db *sql.DB
}

func NewSQLiteRevokedSessionRepository(d *sql.DB) *SQLiteRevokedSessionRepository {
	return &SQLiteRevokedSessionRepository{db: d}
}

func (r *SQLiteRevokedSessionRepository) Revoke(ctx context.Context, sessionID string, userID string, expiresAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO revoked_sessions (jti, user_id, expires_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT (jti) DO NOTHING`,
		sessionID,
		userID,
		expiresAt.Unix(),
	)
	return db.HandleExecError(err, "revoke session", start)
}

func (r *SQLiteRevokedSessionRepository) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	var exists bool
	err := r.db.QueryRowContext(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_sessions WHERE jti = ?)`,
		sessionID,
	).Scan(&exists)
	if err := db.HandleQueryError(err, nil, "check revoked session", start); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *SQLiteRevokedSessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	start := time.Now()
	res, err := r.db.ExecContext(ctx, `DELETE FROM revoked_sessions WHERE expires_at < ?`, before.Unix())
	if err != nil {
		return 0, db.HandleExecError(err, "delete expired revoked sessions", start)
	}
	db.MeasureQueryDuration("delete expired revoked sessions", start)
	return res.RowsAffected()
}
