package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/AlibekovAA/tasktracker/internal/common/db"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
)

// SecretKey is long enough to pass config validation.
const SecretKey = "test-secret-key-that-is-at-least-32-bytes"

var dbCounter atomic.Int64

// OpenInMemoryDB returns a migrated, private in-memory SQLite database that
// is closed when the test ends.
func OpenInMemoryDB(t testing.TB) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("file:tasktracker_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	ctx := context.Background()

	d, err := db.OpenSQLite(ctx, logger.NewNop(), name)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })

	if _, err := db.MigrateSQLite(ctx, d, logger.NewNop()); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return d
}
