package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	"github.com/AlibekovAA/tasktracker/internal/task/domain"
	"github.com/AlibekovAA/tasktracker/internal/testutil"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
	userrepo "github.com/AlibekovAA/tasktracker/internal/user/repository"
)

const (
	alice userdomain.ID = "11111111-1111-4111-8111-111111111111"
	bob   userdomain.ID = "22222222-2222-4222-8222-222222222222"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()

	d := testutil.OpenInMemoryDB(t)
	users := userrepo.NewSQLiteRepository(d)
	for _, u := range []userdomain.User{
		{ID: alice, Username: "alice", PasswordHash: "h", CreatedAt: time.Now()},
		{ID: bob, Username: "bobby", PasswordHash: "h", CreatedAt: time.Now()},
	} {
		if err := users.Create(context.Background(), u); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	return NewSQLiteRepository(d)
}

func TestSQLiteRepository_ListInInsertionOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	titles := []string{"zeta", "alpha", "mid"}
	ids := []domain.ID{
		"cccccccc-0000-4000-8000-000000000001",
		"aaaaaaaa-0000-4000-8000-000000000002",
		"bbbbbbbb-0000-4000-8000-000000000003",
	}
	for i, title := range titles {
		err := repo.Create(ctx, domain.Task{ID: ids[i], OwnerID: alice, Title: title, CreatedAt: time.Now()})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if err := repo.Create(ctx, domain.Task{ID: "dddddddd-0000-4000-8000-000000000004", OwnerID: bob, Title: "other", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := repo.ListByOwner(ctx, alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != len(titles) {
		t.Fatalf("expected %d tasks, got %d", len(titles), len(tasks))
	}
	for i, task := range tasks {
		if task.Title != titles[i] || task.OwnerID != alice || task.Done {
			t.Errorf("task %d: unexpected %+v", i, task)
		}
	}
}

func TestSQLiteRepository_ListEmpty(t *testing.T) {
	repo := newTestRepository(t)

	tasks, err := repo.ListByOwner(context.Background(), alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", tasks)
	}
}

func TestSQLiteRepository_SetDoneIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id := domain.ID("aaaaaaaa-0000-4000-8000-000000000001")
	if err := repo.Create(ctx, domain.Task{ID: id, OwnerID: alice, Title: "write spec", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.SetDone(ctx, alice, id, true); err != nil {
			t.Fatalf("set done (%d): %v", i, err)
		}
	}

	task, err := repo.FindByID(ctx, alice, id)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !task.Done {
		t.Error("expected task to be done")
	}
}

func TestSQLiteRepository_OwnershipScoping(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id := domain.ID("aaaaaaaa-0000-4000-8000-000000000001")
	if err := repo.Create(ctx, domain.Task{ID: id, OwnerID: alice, Title: "private", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.FindByID(ctx, bob, id); !errors.Is(err, commonerrors.ErrNotFound) {
		t.Errorf("find: expected not found, got %v", err)
	}
	if err := repo.SetDone(ctx, bob, id, true); !errors.Is(err, commonerrors.ErrNotFound) {
		t.Errorf("set done: expected not found, got %v", err)
	}
	if err := repo.UpdateTitle(ctx, bob, id, "stolen"); !errors.Is(err, commonerrors.ErrNotFound) {
		t.Errorf("update title: expected not found, got %v", err)
	}
	if err := repo.Delete(ctx, bob, id); err != nil {
		t.Errorf("delete: expected silent no-op, got %v", err)
	}

	task, err := repo.FindByID(ctx, alice, id)
	if err != nil {
		t.Fatalf("owner find: %v", err)
	}
	if task.Title != "private" || task.Done {
		t.Errorf("task was modified by another user: %+v", task)
	}
}

func TestSQLiteRepository_UpdateTitleAndDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id := domain.ID("aaaaaaaa-0000-4000-8000-000000000001")
	if err := repo.Create(ctx, domain.Task{ID: id, OwnerID: alice, Title: "old", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateTitle(ctx, alice, id, "new"); err != nil {
		t.Fatalf("update title: %v", err)
	}
	task, err := repo.FindByID(ctx, alice, id)
	if err != nil || task.Title != "new" {
		t.Fatalf("expected renamed task, got %+v, %v", task, err)
	}

	if err := repo.Delete(ctx, alice, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, alice, id); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if _, err := repo.FindByID(ctx, alice, id); !errors.Is(err, commonerrors.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := repo.UpdateTitle(ctx, alice, "ffffffff-0000-4000-8000-000000000000", "x"); !errors.Is(err, commonerrors.ErrNotFound) {
		t.Errorf("expected not found for missing task, got %v", err)
	}
}
