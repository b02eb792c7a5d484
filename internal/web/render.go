// Package web renders the server-side HTML pages and carries one-shot
// notices across redirects.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	taskdomain "github.com/AlibekovAA/tasktracker/internal/task/domain"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	PageHome      = "home"
	PageLogin     = "login"
	PageRegister  = "register"
	PageDashboard = "dashboard"
	PageEdit      = "edit"
	PageError     = "error"
)

var pageTitles = map[string]string{
	PageHome:      "Home",
	PageLogin:     "Log in",
	PageRegister:  "Register",
	PageDashboard: "Dashboard",
	PageEdit:      "Edit task",
	PageError:     "Something went wrong",
}

type PageData struct {
	Title    string
	User     *userdomain.User
	Flash    string
	Error    string
	Username string
	Tasks    []taskdomain.Task
	Task     taskdomain.Task
}

type Renderer struct {
	pages map[string]*template.Template
	log   *logger.Logger
}

func NewRenderer(log *logger.Logger) (*Renderer, error) {
	layout, err := template.ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageTitles))
	for page := range pageTitles {
		t, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("failed to clone layout: %w", err)
		}
		if _, err := t.ParseFS(templatesFS, "templates/"+page+".html"); err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", page, err)
		}
		pages[page] = t
	}

	return &Renderer{pages: pages, log: log}, nil
}

// Render writes page with the given status. Any pending flash notice is
// consumed and shown.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data PageData) {
	t, ok := rd.pages[page]
	if !ok {
		rd.log.WithFields(r.Context(), logger.Fields{
			"page":   page,
			"action": "render_unknown_page",
		}).Error("unknown page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	if data.Title == "" {
		data.Title = pageTitles[page]
	}
	if data.Flash == "" {
		data.Flash = PopFlash(w, r)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		rd.log.WithFields(r.Context(), logger.Fields{
			"page":   page,
			"action": "render_failed",
		}).Errorf("render failed: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError shows message on the error page with the given status.
func (rd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, message string, user *userdomain.User) {
	rd.Render(w, r, status, PageError, PageData{
		Title: http.StatusText(status),
		User:  user,
		Error: message,
	})
}
