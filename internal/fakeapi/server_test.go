package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/existflow/irontodo/internal/model"
)

func request(t *testing.T, s *Server, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := New()
	rec := request(t, s, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if s.TotalCalls() != 0 {
		t.Error("health checks are not API operations")
	}
}

func TestTodosRequireToken(t *testing.T) {
	s := New()
	for _, token := range []string{"", "garbage"} {
		rec := request(t, s, http.MethodGet, "/api/todos", token, "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("token %q: status = %d, want 401", token, rec.Code)
		}
	}
	if s.Calls(OpList) != 2 {
		t.Errorf("calls = %d, want 2", s.Calls(OpList))
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	s := New()
	if _, err := s.AddUser("Ada", "ada@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	access, _, err := s.IssueTokens("ada@example.com")
	if err != nil {
		t.Fatal(err)
	}

	s.now = func() time.Time { return time.Now().Add(time.Hour) }
	rec := request(t, s, http.MethodGet, "/api/todos", access, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestListIsNewestFirst(t *testing.T) {
	s := New()
	if _, err := s.AddUser("Ada", "ada@example.com", "pw"); err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"first", "second"} {
		if _, err := s.AddTodo("ada@example.com", title, model.StatusPending); err != nil {
			t.Fatal(err)
		}
	}
	access, _, err := s.IssueTokens("ada@example.com")
	if err != nil {
		t.Fatal(err)
	}

	rec := request(t, s, http.MethodGet, "/api/todos", access, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var todos []model.Todo
	if err := json.Unmarshal(rec.Body.Bytes(), &todos); err != nil {
		t.Fatal(err)
	}
	if len(todos) != 2 || todos[0].Title != "second" || todos[1].Title != "first" {
		t.Errorf("todos = %+v", todos)
	}
}

func TestFailAndHeal(t *testing.T) {
	s := New()
	body := `{"email":"ada@example.com","password":"pw"}`
	if _, err := s.AddUser("Ada", "ada@example.com", "pw"); err != nil {
		t.Fatal(err)
	}

	s.Fail(OpLogin, http.StatusServiceUnavailable)
	if rec := request(t, s, http.MethodPost, "/api/auth/login", "", body); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("failing: status = %d", rec.Code)
	}

	s.Heal(OpLogin)
	rec := request(t, s, http.MethodPost, "/api/auth/login", "", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("healed: status = %d: %s", rec.Code, rec.Body)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == RefreshCookie {
			cookie = c
		}
	}
	if cookie == nil || !cookie.HttpOnly {
		t.Errorf("expected an http-only refresh cookie, got %+v", cookie)
	}
	if s.Calls(OpLogin) != 2 {
		t.Errorf("calls = %d, want 2", s.Calls(OpLogin))
	}
}

func TestDuplicateSignup(t *testing.T) {
	s := New()
	body := `{"name":"Ada","email":"Ada@Example.com","password":"pw"}`
	if rec := request(t, s, http.MethodPost, "/api/auth/signup", "", body); rec.Code != http.StatusCreated {
		t.Fatalf("first signup: %d", rec.Code)
	}
	if rec := request(t, s, http.MethodPost, "/api/auth/signup", "", body); rec.Code != http.StatusConflict {
		t.Errorf("second signup: %d, want 409", rec.Code)
	}
}
