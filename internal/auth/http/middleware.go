package http

import (
	"context"
	"errors"
	"net/http"

	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	commonhttp "github.com/AlibekovAA/tasktracker/internal/common/http"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/common/session"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
	"github.com/AlibekovAA/tasktracker/internal/web"
)

type contextKey string

const userKey contextKey = "current_user"

type Middleware struct {
	auth     Service
	renderer *web.Renderer
	errors   *commonhttp.ErrorHandler
	log      *logger.Logger
}

func NewMiddleware(auth Service, renderer *web.Renderer, log *logger.Logger) *Middleware {
	return &Middleware{
		auth:     auth,
		renderer: renderer,
		errors:   commonhttp.NewErrorHandler(log),
		log:      log,
	}
}

// RequirePage sends anonymous visitors to the login page.
func (m *Middleware) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.auth.CurrentUser(r.Context(), session.TokenFromRequest(r))
		if err != nil {
			if errors.Is(err, commonerrors.ErrUnauthorized) {
				m.logRejected(r)
				web.SetFlash(w, r, commonerrors.ErrUnauthorized.Message())
				web.Redirect(w, r, "/login")
				return
			}
			domainErr := m.errors.Resolve(r, err)
			m.renderer.RenderError(w, r, domainErr.HTTPStatus(), domainErr.Message(), nil)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireAPI answers anonymous requests with a JSON 401.
func (m *Middleware) RequireAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.auth.CurrentUser(r.Context(), session.TokenFromRequest(r))
		if err != nil {
			if errors.Is(err, commonerrors.ErrUnauthorized) {
				m.logRejected(r)
			}
			m.errors.HandleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// OptionalUser attaches the user when the request carries a valid session.
func (m *Middleware) OptionalUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := session.TokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.auth.CurrentUser(r.Context(), token)
		if err != nil {
			if !errors.Is(err, commonerrors.ErrUnauthorized) {
				m.log.WithFields(r.Context(), logger.Fields{
					"path":   r.URL.Path,
					"action": "optional_session_failed",
				}).Errorf("session lookup failed: %v", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func (m *Middleware) logRejected(r *http.Request) {
	m.log.WithFields(r.Context(), logger.Fields{
		"path":   r.URL.Path,
		"method": r.Method,
		"action": "session_rejected",
	}).Warn("unauthenticated request rejected")
}

func WithUser(ctx context.Context, user userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (userdomain.User, bool) {
	user, ok := ctx.Value(userKey).(userdomain.User)
	return user, ok
}
