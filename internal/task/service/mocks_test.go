package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/common/clock"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/task/domain"
	"github.com/AlibekovAA/tasktracker/internal/task/service"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

type mockTaskRepo struct {
	createFunc      func(ctx context.Context, task domain.Task) error
	listByOwnerFunc func(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error)
	findByIDFunc    func(ctx context.Context, ownerID userdomain.ID, id domain.ID) (domain.Task, error)
	setDoneFunc     func(ctx context.Context, ownerID userdomain.ID, id domain.ID, done bool) error
	updateTitleFunc func(ctx context.Context, ownerID userdomain.ID, id domain.ID, title string) error
	deleteFunc      func(ctx context.Context, ownerID userdomain.ID, id domain.ID) error
}

func (m *mockTaskRepo) Create(ctx context.Context, task domain.Task) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, task)
	}
	return nil
}

func (m *mockTaskRepo) ListByOwner(ctx context.Context, ownerID userdomain.ID) ([]domain.Task, error) {
	if m.listByOwnerFunc != nil {
		return m.listByOwnerFunc(ctx, ownerID)
	}
	return []domain.Task{}, nil
}

func (m *mockTaskRepo) FindByID(ctx context.Context, ownerID userdomain.ID, id domain.ID) (domain.Task, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, ownerID, id)
	}
	return domain.Task{}, commonerrors.ErrNotFound
}

func (m *mockTaskRepo) SetDone(ctx context.Context, ownerID userdomain.ID, id domain.ID, done bool) error {
	if m.setDoneFunc != nil {
		return m.setDoneFunc(ctx, ownerID, id, done)
	}
	return nil
}

func (m *mockTaskRepo) UpdateTitle(ctx context.Context, ownerID userdomain.ID, id domain.ID, title string) error {
	if m.updateTitleFunc != nil {
		return m.updateTitleFunc(ctx, ownerID, id, title)
	}
	return nil
}

func (m *mockTaskRepo) Delete(ctx context.Context, ownerID userdomain.ID, id domain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, ownerID, id)
	}
	return nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "aaaaaaaa-0000-4000-8000-000000000001", nil
}

func setupTaskService(t *testing.T) (*service.TaskService, *mockTaskRepo, *mockIDGenerator, *clock.MockClock) {
	t.Helper()

	repo := &mockTaskRepo{}
	idGen := &mockIDGenerator{}
	clk := clock.NewMockClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	return service.NewTaskService(repo, idGen, clk, logger.NewNop()), repo, idGen, clk
}

var errDatabaseDown = errors.New("database down")
