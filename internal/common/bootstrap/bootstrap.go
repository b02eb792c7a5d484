package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	authrepo "github.com/AlibekovAA/tasktracker/internal/auth/repository"
	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	"github.com/AlibekovAA/tasktracker/internal/common/db"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	taskrepo "github.com/AlibekovAA/tasktracker/internal/task/repository"
	userrepo "github.com/AlibekovAA/tasktracker/internal/user/repository"
)

// Store owns the database handle and the repositories built on it.
type Store struct {
	Driver          db.Driver
	Pool            *pgxpool.Pool
	SQL             *sql.DB
	Users           userrepo.Repository
	Tasks           taskrepo.Repository
	RevokedSessions authrepo.RevokedSessionRepository
}

// OpenStore connects to the database named by databaseURL. The scheme picks
// the backend: postgres:// or postgresql:// for PostgreSQL, sqlite:// for a
// local SQLite file.
func OpenStore(ctx context.Context, log *logger.Logger, databaseURL string) (*Store, error) {
	driver, dsn, err := db.ParseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	switch driver {
	case db.DriverPostgres:
		pool, err := db.NewPool(ctx, log, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		return NewPostgresStore(pool), nil
	default:
		d, err := db.OpenSQLite(ctx, log, dsn)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(d), nil
	}
}

func NewPostgresStore(pool *pgxpool.Pool) *Store {
	return &Store{
		Driver:          db.DriverPostgres,
		Pool:            pool,
		Users:           userrepo.NewPgRepository(pool),
		Tasks:           taskrepo.NewPgRepository(pool),
		RevokedSessions: authrepo.NewPgRevokedSessionRepository(pool),
	}
}

func NewSQLiteStore(d *sql.DB) *Store {
	return &Store{
		Driver:          db.DriverSQLite,
		SQL:             d,
		Users:           userrepo.NewSQLiteRepository(d),
		Tasks:           taskrepo.NewSQLiteRepository(d),
		RevokedSessions: authrepo.NewSQLiteRevokedSessionRepository(d),
	}
}

// Migrate applies pending schema migrations and returns how many ran.
func (s *Store) Migrate(ctx context.Context, log *logger.Logger) (int, error) {
	if s.Pool != nil {
		return db.MigratePostgres(ctx, s.Pool, log)
	}
	return db.MigrateSQLite(ctx, s.SQL, log)
}

func (s *Store) Ping(ctx context.Context) error {
	if s.Pool != nil {
		return s.Pool.Ping(ctx)
	}
	return s.SQL.PingContext(ctx)
}

// StartMetrics publishes connection pool gauges until ctx is done.
func (s *Store) StartMetrics(ctx context.Context) {
	if s.Pool != nil {
		db.StartPoolMetrics(ctx, s.Pool, constants.DBPoolMetricsInterval)
		return
	}
	db.StartSQLMetrics(ctx, s.SQL, s.Driver, constants.DBPoolMetricsInterval)
}

func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
	if s.SQL != nil {
		_ = s.SQL.Close()
	}
}

func InitializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
