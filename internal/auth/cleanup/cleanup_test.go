package cleanup

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AlibekovAA/tasktracker/internal/common/clock"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
)

type mockDeleter struct {
	calls      atomic.Int32
	deleteFunc func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockDeleter) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	m.calls.Add(1)
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, before)
	}
	return 0, nil
}

func TestRunOnce_UsesClock(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clk := clock.NewMockClock(now)

	repo := &mockDeleter{
		deleteFunc: func(ctx context.Context, before time.Time) (int64, error) {
			if !before.Equal(now) {
				t.Errorf("expected cutoff %v, got %v", now, before)
			}
			return 3, nil
		},
	}

	deleted, err := RunOnce(context.Background(), repo, clk, logger.NewNop())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted, got %d", deleted)
	}
}

func TestRunOnce_Error(t *testing.T) {
	repo := &mockDeleter{
		deleteFunc: func(ctx context.Context, before time.Time) (int64, error) {
			return 0, errors.New("cleanup error")
		},
	}

	if _, err := RunOnce(context.Background(), repo, clock.NewRealClock(), logger.NewNop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestStartRevokedSessionCleanup_StopsOnCancel(t *testing.T) {
	repo := &mockDeleter{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		StartRevokedSessionCleanup(ctx, repo, clock.NewRealClock(), 10*time.Millisecond, logger.NewNop())
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop after cancel")
	}

	if repo.calls.Load() == 0 {
		t.Error("expected at least one cleanup run")
	}
}
