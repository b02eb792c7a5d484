package http

import (
	"context"
	"net/http"

	authdomain "github.com/AlibekovAA/tasktracker/internal/auth/domain"
	"github.com/AlibekovAA/tasktracker/internal/auth/service"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	commonhttp "github.com/AlibekovAA/tasktracker/internal/common/http"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/common/session"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
	"github.com/AlibekovAA/tasktracker/internal/web"
)

const (
	flashRegistered = "Account created, please log in."
	flashLoggedIn   = "Logged in successfully."
	flashLoggedOut  = "You have been logged out."
)

type Service interface {
	Register(ctx context.Context, input service.RegisterInput) (userdomain.User, error)
	Login(ctx context.Context, input service.LoginInput) (authdomain.Session, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (userdomain.User, error)
}

type Handler struct {
	auth     Service
	renderer *web.Renderer
	errors   *commonhttp.ErrorHandler
	log      *logger.Logger
}

func NewHandler(auth Service, renderer *web.Renderer, log *logger.Logger) *Handler {
	return &Handler{
		auth:     auth,
		renderer: renderer,
		errors:   commonhttp.NewErrorHandler(log),
		log:      log,
	}
}

// Register mounts the account routes on mux.
func (h *Handler) Register(mux *http.ServeMux, m *Middleware) {
	mux.Handle("GET /{$}", m.OptionalUser(http.HandlerFunc(h.home)))
	mux.HandleFunc("GET /register", h.registerPage)
	mux.HandleFunc("POST /register", h.register)
	mux.HandleFunc("GET /login", h.loginPage)
	mux.HandleFunc("POST /login", h.login)
	mux.HandleFunc("GET /logout", h.logout)
	mux.HandleFunc("POST /logout", h.logout)
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	if _, ok := UserFromContext(r.Context()); ok {
		web.Redirect(w, r, "/dashboard")
		return
	}
	h.renderer.Render(w, r, http.StatusOK, web.PageHome, web.PageData{})
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, web.PageRegister, web.PageData{})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderFormError(w, r, web.PageRegister, "", commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	input := service.RegisterInput{
		Username:        r.PostFormValue("username"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	}

	if _, err := h.auth.Register(r.Context(), input); err != nil {
		h.renderFormError(w, r, web.PageRegister, input.Username, err)
		return
	}

	web.SetFlash(w, r, flashRegistered)
	web.Redirect(w, r, "/login")
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, web.PageLogin, web.PageData{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderFormError(w, r, web.PageLogin, "", commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	input := service.LoginInput{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	sess, err := h.auth.Login(r.Context(), input)
	if err != nil {
		h.renderFormError(w, r, web.PageLogin, input.Username, err)
		return
	}

	session.SetCookie(w, r, sess.Token, sess.ExpiresAt)
	web.SetFlash(w, r, flashLoggedIn)
	web.Redirect(w, r, "/dashboard")
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token := session.TokenFromRequest(r); token != "" {
		if err := h.auth.Logout(r.Context(), token); err != nil {
			h.log.WithFields(r.Context(), logger.Fields{
				"action": "logout_failed",
			}).Errorf("logout failed: %v", err)
			domainErr := h.errors.Resolve(r, err)
			h.renderer.RenderError(w, r, domainErr.HTTPStatus(), domainErr.Message(), nil)
			return
		}
	}

	session.ClearCookie(w, r)
	web.SetFlash(w, r, flashLoggedOut)
	web.Redirect(w, r, "/")
}

func (h *Handler) renderFormError(w http.ResponseWriter, r *http.Request, page, username string, err error) {
	domainErr := h.errors.Resolve(r, err)
	h.renderer.Render(w, r, domainErr.HTTPStatus(), page, web.PageData{
		Error:    domainErr.Message(),
		Username: username,
	})
}
