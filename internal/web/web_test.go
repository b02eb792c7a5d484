package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/AlibekovAA/tasktracker/internal/common/logger"
	taskdomain "github.com/AlibekovAA/tasktracker/internal/task/domain"
	userdomain "github.com/AlibekovAA/tasktracker/internal/user/domain"
)

func TestRenderer_AllPagesParse(t *testing.T) {
	rd, err := NewRenderer(logger.NewNop())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	for page := range pageTitles {
		rec := httptest.NewRecorder()
		rd.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, page, PageData{})
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", page, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<title>"+pageTitles[page]) {
			t.Errorf("%s: missing title", page)
		}
	}
}

func TestRenderer_DashboardEscapesTitles(t *testing.T) {
	rd, err := NewRenderer(logger.NewNop())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil), http.StatusOK, PageDashboard, PageData{
		User:  &userdomain.User{Username: "alice"},
		Tasks: []taskdomain.Task{{ID: "t1", Title: "<script>alert(1)</script>", Done: true}},
	})

	body := rec.Body.String()
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("task title was not escaped")
	}
	if !strings.Contains(body, `class="done"`) || !strings.Contains(body, "alice") {
		t.Error("expected done task and username to render")
	}
}

func TestRenderer_StatusAndError(t *testing.T) {
	rd, err := NewRenderer(logger.NewNop())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rec := httptest.NewRecorder()
	rd.Render(rec, httptest.NewRequest(http.MethodPost, "/login", nil), http.StatusUnauthorized, PageLogin, PageData{
		Error: "invalid username or password",
	})
	if rec.Code != http.StatusUnauthorized || !strings.Contains(rec.Body.String(), "invalid username or password") {
		t.Errorf("unexpected response %d: %s", rec.Code, rec.Body.String())
	}
}

func TestFlashRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	SetFlash(rec, httptest.NewRequest(http.MethodPost, "/register", nil), "Account created, please log in.")

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	next := httptest.NewRecorder()
	if got := PopFlash(next, req); got != "Account created, please log in." {
		t.Errorf("unexpected flash %q", got)
	}

	cleared := next.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 {
		t.Errorf("expected flash cookie to be cleared, got %+v", cleared)
	}

	if got := PopFlash(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil)); got != "" {
		t.Errorf("expected no flash, got %q", got)
	}
}

func TestRenderer_RenderError(t *testing.T) {
	rd, err := NewRenderer(logger.NewNop())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	rec := httptest.NewRecorder()
	rd.RenderError(rec, httptest.NewRequest(http.MethodGet, "/edit/x", nil), http.StatusNotFound, "task not found", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "task not found") || !strings.Contains(rec.Body.String(), "Not Found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
