package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
)

// OpenSQLite opens a database file (created if missing) with foreign keys
// enforced. A single connection is kept open so that ":memory:" databases
// survive for the lifetime of the handle and writers never contend.
func OpenSQLite(ctx context.Context, log *logger.Logger, path string) (*sql.DB, error) {
	d, err := sql.Open(string(DriverSQLite), sqliteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	d.SetMaxOpenConns(1)
	d.SetMaxIdleConns(1)
	d.SetConnMaxLifetime(0)

	if err := d.PingContext(ctx); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	log.Infof("sqlite database opened: path=%s", path)
	return d, nil
}

func sqliteDSN(path string) string {
	params := fmt.Sprintf("_foreign_keys=on&_busy_timeout=%d", constants.SQLiteBusyTimeoutMS)

	if path == ":memory:" {
		return "file::memory:?" + params
	}
	if !strings.Contains(path, "mode=memory") {
		params += "&_journal_mode=WAL"
	}
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}
	if strings.Contains(path, "?") {
		return path + "&" + params
	}
	return path + "?" + params
}
