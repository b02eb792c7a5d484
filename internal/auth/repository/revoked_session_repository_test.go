package repository

import (
	"context"
	"testing"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/testutil"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
	userrepo "github.com/AlibekovAA/tasktracker/internal/user/repository"
)

const testUserID = "11111111-1111-4111-8111-111111111111"

func newTestRevokedRepo(t *testing.T) *SQLiteRevokedSessionRepository {
	t.Helper()

	d := testutil.OpenInMemoryDB(t)
	err := userrepo.NewSQLiteRepository(d).Create(context.Background(), userdomain.User{
		ID:           testUserID,
		Username:     "alice",
		PasswordHash: "h",
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return NewSQLiteRevokedSessionRepository(d)
}

func TestSQLiteRevokedSessionRepository_Revoke(t *testing.T) {
	repo := newTestRevokedRepo(t)
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "sess-1")
	if err != nil || revoked {
		t.Fatalf("expected not revoked, got %v, %v", revoked, err)
	}

	expiresAt := time.Now().Add(time.Hour)
	if err := repo.Revoke(ctx, "sess-1", testUserID, expiresAt); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if err := repo.Revoke(ctx, "sess-1", testUserID, expiresAt); err != nil {
		t.Fatalf("second revoke should be a no-op, got %v", err)
	}

	revoked, err = repo.IsRevoked(ctx, "sess-1")
	if err != nil || !revoked {
		t.Fatalf("expected revoked, got %v, %v", revoked, err)
	}
}

func TestSQLiteRevokedSessionRepository_DeleteExpired(t *testing.T) {
	repo := newTestRevokedRepo(t)
	ctx := context.Background()
	now := time.Now()

	if err := repo.Revoke(ctx, "old", testUserID, now.Add(-time.Minute)); err != nil {
		t.Fatalf("revoke old: %v", err)
	}
	if err := repo.Revoke(ctx, "fresh", testUserID, now.Add(time.Hour)); err != nil {
		t.Fatalf("revoke fresh: %v", err)
	}

	deleted, err := repo.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if deleted != 1 {
		t.Errorf("expected 1 deleted, got %d", deleted)
	}

	if revoked, _ := repo.IsRevoked(ctx, "fresh"); !revoked {
		t.Error("expected unexpired revocation to remain")
	}
	if revoked, _ := repo.IsRevoked(ctx, "old"); revoked {
		t.Error("expected expired revocation to be removed")
	}
}
