package db

import (
	"fmt"
	"strings"

	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
)

type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite3"
)

// ParseURL picks the backend from the DATABASE_URL scheme. For sqlite the
// returned string is the file path (or ":memory:"), otherwise the URL itself.
func ParseURL(databaseURL string) (Driver, string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, databaseURL, nil
	case strings.HasPrefix(databaseURL, "sqlite://"):
		path := strings.TrimPrefix(databaseURL, "sqlite://")
		if path == "" {
			return "", "", commonerrors.ErrUnsupportedDatabaseURL.WithCause(fmt.Errorf("sqlite path is empty"))
		}
		return DriverSQLite, path, nil
	default:
		return "", "", commonerrors.ErrUnsupportedDatabaseURL
	}
}
