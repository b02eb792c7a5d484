package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/auth/service"
	"github.com/AlibekovAA/tasktracker/internal/common/clock"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/common/session"
	"github.com/AlibekovAA/tasktracker/internal/testutil"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user userdomain.User) error
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
	findByIDFunc       func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, commonerrors.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, commonerrors.ErrUserNotFound
}

type mockRevokedRepo struct {
	mu      sync.Mutex
	revoked map[string]time.Time

	revokeFunc    func(ctx context.Context, sessionID, userID string, expiresAt time.Time) error
	isRevokedFunc func(ctx context.Context, sessionID string) (bool, error)
}

func (m *mockRevokedRepo) Revoke(ctx context.Context, sessionID string, userID string, expiresAt time.Time) error {
	if m.revokeFunc != nil {
		return m.revokeFunc(ctx, sessionID, userID, expiresAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.revoked == nil {
		m.revoked = make(map[string]time.Time)
	}
	m.revoked[sessionID] = expiresAt
	return nil
}

func (m *mockRevokedRepo) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if m.isRevokedFunc != nil {
		return m.isRevokedFunc(ctx, sessionID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[sessionID]
	return ok, nil
}

func (m *mockRevokedRepo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, exp := range m.revoked {
		if exp.Before(before) {
			delete(m.revoked, id)
			n++
		}
	}
	return n, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	if hash != "hashed_"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type mockIDGenerator struct {
	mu        sync.Mutex
	counter   int
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("00000000-0000-4000-8000-%012d", m.counter), nil
}

type testDeps struct {
	users   *mockUserRepo
	revoked *mockRevokedRepo
	hasher  *mockHasher
	ids     *mockIDGenerator
	clock   *clock.MockClock
}

func setupAuthService(t *testing.T) (*service.AuthService, *testDeps) {
	t.Helper()

	deps := &testDeps{
		users:   &mockUserRepo{},
		revoked: &mockRevokedRepo{},
		hasher:  &mockHasher{},
		ids:     &mockIDGenerator{},
		clock:   clock.NewMockClock(time.Now()),
	}

	sessions := session.NewManager(testutil.SecretKey, time.Hour, deps.clock)
	svc := service.NewAuthService(
		deps.users,
		deps.revoked,
		deps.hasher,
		deps.ids,
		sessions,
		deps.clock,
		logger.NewNop(),
	)
	return svc, deps
}
