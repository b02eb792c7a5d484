package http

import (
	"context"
	"net/http"

	authhttp "github.com/AlibekovAA/tasktracker/internal/auth/http"
	commonerrors "github.com/AlibekovAA/tasktracker/internal/common/errors"
	commonhttp "github.com/AlibekovAA/tasktracker/internal/common/http"
	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	"github.com/AlibekovAA/tasktracker/internal/task/domain"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
	"github.com/AlibekovAA/tasktracker/internal/web"
)

type Service interface {
	List(ctx context.Context, userID userdomain.ID) ([]domain.Task, error)
	Add(ctx context.Context, userID userdomain.ID, title string) (domain.Task, error)
	Get(ctx context.Context, userID userdomain.ID, taskID string) (domain.Task, error)
	Toggle(ctx context.Context, userID userdomain.ID, taskID string, done bool) error
	Rename(ctx context.Context, userID userdomain.ID, taskID string, title string) error
	Delete(ctx context.Context, userID userdomain.ID, taskID string) error
}

type Handler struct {
	tasks    Service
	renderer *web.Renderer
	errors   *commonhttp.ErrorHandler
	log      *logger.Logger
}

func NewHandler(tasks Service, renderer *web.Renderer, log *logger.Logger) *Handler {
	return &Handler{
		tasks:    tasks,
		renderer: renderer,
		errors:   commonhttp.NewErrorHandler(log),
		log:      log,
	}
}

// Register mounts the task routes on mux. Pages redirect anonymous
// visitors to /login, the fetch endpoints answer them with 401.
func (h *Handler) Register(mux *http.ServeMux, m *authhttp.Middleware) {
	mux.Handle("GET /dashboard", m.RequirePage(http.HandlerFunc(h.dashboard)))
	mux.Handle("POST /dashboard", m.RequirePage(http.HandlerFunc(h.addTask)))
	mux.Handle("GET /edit/{taskid}", m.RequirePage(http.HandlerFunc(h.editPage)))
	mux.Handle("POST /edit/{taskid}", m.RequirePage(http.HandlerFunc(h.renameTask)))
	mux.Handle("POST /toggle", m.RequireAPI(http.HandlerFunc(h.toggleTask)))
	mux.Handle("POST /delete", m.RequireAPI(http.HandlerFunc(h.deleteTask)))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	user, _ := authhttp.UserFromContext(r.Context())
	h.renderDashboard(w, r, user, http.StatusOK, "")
}

func (h *Handler) addTask(w http.ResponseWriter, r *http.Request) {
	user, _ := authhttp.UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.renderDashboardError(w, r, user, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	if _, err := h.tasks.Add(r.Context(), user.ID, r.PostFormValue("task")); err != nil {
		h.renderDashboardError(w, r, user, err)
		return
	}

	web.Redirect(w, r, "/dashboard")
}

func (h *Handler) editPage(w http.ResponseWriter, r *http.Request) {
	user, _ := authhttp.UserFromContext(r.Context())

	task, err := h.tasks.Get(r.Context(), user.ID, r.PathValue("taskid"))
	if err != nil {
		h.renderPageError(w, r, user, err)
		return
	}

	h.renderer.Render(w, r, http.StatusOK, web.PageEdit, web.PageData{User: &user, Task: task})
}

func (h *Handler) renameTask(w http.ResponseWriter, r *http.Request) {
	user, _ := authhttp.UserFromContext(r.Context())
	taskID := r.PathValue("taskid")

	if err := r.ParseForm(); err != nil {
		h.renderPageError(w, r, user, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	title := r.PostFormValue("task")
	if err := h.tasks.Rename(r.Context(), user.ID, taskID, title); err != nil {
		domainErr := h.errors.Resolve(r, err)
		if domainErr.Category() != commonerrors.CategoryValidation {
			h.renderer.RenderError(w, r, domainErr.HTTPStatus(), domainErr.Message(), &user)
			return
		}
		h.renderer.Render(w, r, domainErr.HTTPStatus(), web.PageEdit, web.PageData{
			User:  &user,
			Error: domainErr.Message(),
			Task:  domain.Task{ID: domain.ID(taskID), Title: title},
		})
		return
	}

	web.Redirect(w, r, "/dashboard")
}

func (h *Handler) toggleTask(w http.ResponseWriter, r *http.Request) {
	user, _ := authhttp.UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	done, err := parseDone(r.PostFormValue("done"))
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	if err := h.tasks.Toggle(r.Context(), user.ID, r.PostFormValue("taskid"), done); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteTask(w http.ResponseWriter, r *http.Request) {
	user, _ := authhttp.UserFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		h.errors.HandleError(w, r, commonerrors.ErrInvalidPayload.WithCause(err))
		return
	}

	if err := h.tasks.Delete(r.Context(), user.ID, r.PostFormValue("taskid")); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) renderDashboard(w http.ResponseWriter, r *http.Request, user userdomain.User, status int, notice string) {
	tasks, err := h.tasks.List(r.Context(), user.ID)
	if err != nil {
		h.renderPageError(w, r, user, err)
		return
	}

	h.renderer.Render(w, r, status, web.PageDashboard, web.PageData{
		User:  &user,
		Tasks: tasks,
		Error: notice,
	})
}

func (h *Handler) renderDashboardError(w http.ResponseWriter, r *http.Request, user userdomain.User, err error) {
	domainErr := h.errors.Resolve(r, err)
	if domainErr.Category() != commonerrors.CategoryValidation {
		h.renderer.RenderError(w, r, domainErr.HTTPStatus(), domainErr.Message(), &user)
		return
	}
	h.renderDashboard(w, r, user, domainErr.HTTPStatus(), domainErr.Message())
}

func (h *Handler) renderPageError(w http.ResponseWriter, r *http.Request, user userdomain.User, err error) {
	domainErr := h.errors.Resolve(r, err)
	h.renderer.RenderError(w, r, domainErr.HTTPStatus(), domainErr.Message(), &user)
}

func parseDone(value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, commonerrors.ErrInvalidPayload.WithMessage(`done must be "true" or "false"`)
	}
}
