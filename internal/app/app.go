// Package app assembles the services, handlers and middleware of the task
// tracker on top of an opened store.
package app

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authcleanup "github.com/AlibekovAA/tasktracker/internal/auth/cleanup"
	authhttp "github.com/AlibekovAA/tasktracker/internal/auth/http"
	authservice "github.com/AlibekovAA/tasktracker/internal/auth/service"
	"github.com/AlibekovAA/tasktracker/internal/common/bootstrap"
	"github.com/AlibekovAA/tasktracker/internal/common/clock"
	"github.com/AlibekovAA/tasktracker/internal/common/config"
	"github.com/AlibekovAA/tasktracker/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/tasktracker/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/tasktracker/internal/common/http"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/common/session"
	taskhttp "github.com/AlibekovAA/tasktracker/internal/task/http"
	taskservice "github.com/AlibekovAA/tasktracker/internal/task/service"
	"github.com/AlibekovAA/tasktracker/internal/web"
)

type Options struct {
	// DisableRateLimit turns off per-IP throttling.
	DisableRateLimit bool
	Clock            clock.Clock
}

type App struct {
	Auth  *authservice.AuthService
	Tasks *taskservice.TaskService

	store   *bootstrap.Store
	clock   clock.Clock
	limiter *commonhttp.StrictRateLimiter
	handler http.Handler
	log     *logger.Logger
}

func New(cfg config.Config, store *bootstrap.Store, log *logger.Logger, opts Options) (*App, error) {
	clk := opts.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}

	sessions := session.NewManager(cfg.SecretKey, cfg.SessionTTL, clk)
	idGenerator := commoncrypto.NewUUIDGenerator()

	authService := authservice.NewAuthService(
		store.Users,
		store.RevokedSessions,
		commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		idGenerator,
		sessions,
		clk,
		log,
	)
	taskService := taskservice.NewTaskService(store.Tasks, idGenerator, clk, log)

	renderer, err := web.NewRenderer(log)
	if err != nil {
		return nil, err
	}

	middleware := authhttp.NewMiddleware(authService, renderer, log)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", commonhttp.HealthHandler(log, store.Ping))
	mux.Handle("GET /metrics", promhttp.Handler())
	authhttp.NewHandler(authService, renderer, log).Register(mux, middleware)
	taskhttp.NewHandler(taskService, renderer, log).Register(mux, middleware)

	clientIP, err := commonhttp.NewClientIPResolver(cfg.TrustedProxies)
	if err != nil {
		return nil, err
	}

	var limiter *commonhttp.StrictRateLimiter
	if !opts.DisableRateLimit {
		limiter = commonhttp.NewStrictRateLimiter(clientIP)
	}

	return &App{
		Auth:    authService,
		Tasks:   taskService,
		store:   store,
		clock:   clk,
		limiter: limiter,
		handler: commonhttp.BuildBaseHandler(log, mux, cfg.RequestTimeout, limiter),
		log:     log,
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.handler
}

// StartBackground launches the revoked-session cleanup and the store
// metrics collector. Both stop when ctx is done.
func (a *App) StartBackground(ctx context.Context) {
	go authcleanup.StartRevokedSessionCleanup(ctx, a.store.RevokedSessions, a.clock, constants.RevokedSessionCleanupInterval, a.log)
	go a.store.StartMetrics(ctx)
}

func (a *App) Close() {
	if a.limiter != nil {
		a.limiter.Stop()
	}
}
