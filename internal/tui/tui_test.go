package tui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/irontodo/internal/app"
	"github.com/existflow/irontodo/internal/config"
	"github.com/existflow/irontodo/internal/fakeapi"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/notify"
	"github.com/existflow/irontodo/internal/router"
	"github.com/existflow/irontodo/internal/session"
)

const (
	testEmail    = "ada@example.com"
	testPassword = "secret123"
)

type harness struct {
	fake   *fakeapi.Server
	app    *app.App
	toasts *notify.Queue
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	fake := fakeapi.New()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	if _, err := fake.AddUser("Ada", testEmail, testPassword); err != nil {
		t.Fatal(err)
	}

	cfg := config.DefaultConfig()
	cfg.ServerURL = srv.URL
	cfg.DataDir = t.TempDir()
	cfg.RequestTimeout = 5 * time.Second

	toasts := notify.NewQueue(time.Minute)
	a, err := app.New(cfg, toasts)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	return &harness{fake: fake, app: a, toasts: toasts}
}

// started returns a model that has finished its startup sequence
func (h *harness) started(t *testing.T) Model {
	t.Helper()
	m := NewModel(h.app, h.toasts)
	m = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return step(t, m, m.startCmd()())
}

func (h *harness) signIn(t *testing.T) {
	t.Helper()
	form := session.LoginForm{Email: testEmail, Password: testPassword}
	if err := h.app.Login(context.Background(), form); err != nil {
		t.Fatalf("Login: %v", err)
	}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and returns the resulting command without running it
func press(t *testing.T, m Model, k tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(k)
	return next.(Model), cmd
}

// settle runs a request command and feeds its result back in
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return step(t, m, cmd())
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartSignedOutShowsLogin(t *testing.T) {
	h := newHarness(t)
	m := h.started(t)

	if !m.initialized {
		t.Fatal("model should be initialized")
	}
	if m.route != router.Login {
		t.Errorf("route = %q, want %q", m.route, router.Login)
	}
	if !strings.Contains(m.View(), "Login") {
		t.Error("login form not rendered")
	}
	if n := h.fake.TotalCalls(); n != 0 {
		t.Errorf("expected no requests, got %d", n)
	}
}

func TestKeysIgnoredBeforeStart(t *testing.T) {
	h := newHarness(t)
	m := NewModel(h.app, h.toasts)

	m, cmd := press(t, m, runes("a"))
	if cmd != nil || m.mode != ModeNormal {
		t.Error("keys should be ignored until the session is restored")
	}
}

func TestLoginFlow(t *testing.T) {
	h := newHarness(t)
	if _, err := h.fake.AddTodo(testEmail, "water plants", model.StatusPending); err != nil {
		t.Fatal(err)
	}
	m := h.started(t)

	m.login.inputs[0].SetValue(testEmail)
	m.login.inputs[1].SetValue(testPassword)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.busy {
		t.Error("expected busy while logging in")
	}
	// A second submit while the first is in flight is dropped
	if _, again := press(t, m, tea.KeyMsg{Type: tea.KeyEnter}); again != nil {
		t.Error("second submit should be ignored")
	}

	m = settle(t, m, cmd)
	if m.route != router.Todos {
		t.Errorf("route = %q, want todos", m.route)
	}
	if m.app.Todos.Len() != 1 {
		t.Errorf("expected 1 todo, got %d", m.app.Todos.Len())
	}
	if !slices.Contains(h.toasts.Messages(), "Logged in successfully") {
		t.Errorf("toasts = %v", h.toasts.Messages())
	}
	view := m.View()
	if !strings.Contains(view, testEmail) || !strings.Contains(view, "water plants") {
		t.Errorf("todo view missing user or todo:\n%s", view)
	}
}

func TestLoginClearsFormWhenListFails(t *testing.T) {
	h := newHarness(t)
	m := h.started(t)
	h.fake.Fail(fakeapi.OpList, http.StatusInternalServerError)

	m.login.inputs[0].SetValue(testEmail)
	m.login.inputs[1].SetValue(testPassword)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, cmd)

	if m.route != router.Todos {
		t.Errorf("route = %q, want todos", m.route)
	}
	if got := m.login.inputs[1].Value(); got != "" {
		t.Errorf("password input = %q, want it cleared", got)
	}
	if !slices.Contains(h.toasts.Messages(), "Error fetching todos") {
		t.Errorf("toasts = %v", h.toasts.Messages())
	}
}

func TestLoginValidationStaysOnForm(t *testing.T) {
	h := newHarness(t)
	m := h.started(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = settle(t, m, cmd)

	if m.route != router.Login {
		t.Errorf("route = %q, want login", m.route)
	}
	if m.busy {
		t.Error("busy should be cleared")
	}
	if h.fake.Calls(fakeapi.OpLogin) != 0 {
		t.Error("invalid form must not reach the server")
	}
}

func TestSwitchBetweenAuthViews(t *testing.T) {
	h := newHarness(t)
	m := h.started(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.route != router.Signup {
		t.Fatalf("route = %q, want signup", m.route)
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.route != router.Login {
		t.Fatalf("route = %q, want login", m.route)
	}
}

func TestFilterCycles(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	m := h.started(t)

	seen := []model.Filter{m.filter}
	for range model.Filters {
		m, _ = press(t, m, runes("f"))
		seen = append(seen, m.filter)
	}
	want := []model.Filter{model.FilterAll, model.FilterPending, model.FilterCompleted, model.FilterAll}
	if !slices.Equal(seen, want) {
		t.Errorf("filters = %v, want %v", seen, want)
	}
}

func TestToggleCompletesTodo(t *testing.T) {
	h := newHarness(t)
	todo, err := h.fake.AddTodo(testEmail, "write report", model.StatusPending)
	if err != nil {
		t.Fatal(err)
	}
	h.signIn(t)
	m := h.started(t)

	m, cmd := press(t, m, runes("x"))
	m = settle(t, m, cmd)

	got, ok := m.app.Todos.Get(todo.ID)
	if !ok || got.Status != model.StatusCompleted {
		t.Errorf("todo = %+v, want completed", got)
	}
	if m.busy {
		t.Error("busy should be cleared")
	}
}

func TestRefreshIgnoredWhileBusy(t *testing.T) {
	h := newHarness(t)
	if _, err := h.fake.AddTodo(testEmail, "write report", model.StatusPending); err != nil {
		t.Fatal(err)
	}
	h.signIn(t)
	m := h.started(t)
	listed := h.fake.Calls(fakeapi.OpList)

	m, toggle := press(t, m, runes("x"))
	if !m.busy {
		t.Fatal("expected busy while toggling")
	}
	m, cmd := press(t, m, runes("r"))
	if cmd != nil || m.loading {
		t.Error("reload should be ignored while a change is in flight")
	}

	m = settle(t, m, toggle)
	m, cmd = press(t, m, runes("r"))
	if !m.loading {
		t.Error("reload should start once the change has settled")
	}
	if cmd == nil {
		t.Error("expected a reload command")
	}
	if h.fake.Calls(fakeapi.OpList) != listed {
		t.Error("the ignored reload must not have reached the server")
	}
}

func TestDeleteDeclinedMakesNoCall(t *testing.T) {
	h := newHarness(t)
	if _, err := h.fake.AddTodo(testEmail, "old task", model.StatusPending); err != nil {
		t.Fatal(err)
	}
	h.signIn(t)
	m := h.started(t)

	m, _ = press(t, m, runes("d"))
	if m.mode != ModeConfirmDelete {
		t.Fatalf("mode = %v, want confirm", m.mode)
	}
	if !strings.Contains(m.View(), "Are you sure") {
		t.Error("confirmation not rendered")
	}

	m, cmd := press(t, m, runes("n"))
	if cmd != nil || m.mode != ModeNormal {
		t.Error("declining should close the prompt without a request")
	}
	if h.fake.Calls(fakeapi.OpDelete) != 0 {
		t.Error("no delete request expected")
	}
	if m.app.Todos.Len() != 1 {
		t.Error("todo should still be there")
	}
}

func TestDeleteConfirmed(t *testing.T) {
	h := newHarness(t)
	if _, err := h.fake.AddTodo(testEmail, "old task", model.StatusPending); err != nil {
		t.Fatal(err)
	}
	h.signIn(t)
	m := h.started(t)

	m, _ = press(t, m, runes("d"))
	m, cmd := press(t, m, runes("y"))
	m = settle(t, m, cmd)

	if m.app.Todos.Len() != 0 {
		t.Errorf("expected empty collection, got %d", m.app.Todos.Len())
	}
	if len(h.fake.Todos(testEmail)) != 0 {
		t.Error("server still has the todo")
	}
}

func TestAddModalCreatesTodo(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	m := h.started(t)

	m, _ = press(t, m, runes("a"))
	if m.mode != ModeAddTodo {
		t.Fatalf("mode = %v, want add", m.mode)
	}
	m.form.title.SetValue("buy milk")
	m.form.due.SetValue("2030-01-02")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = settle(t, m, cmd)

	if m.mode != ModeNormal {
		t.Error("modal should close after a successful save")
	}
	list := m.app.Todos.Todos()
	if len(list) != 1 || list[0].Title != "buy milk" {
		t.Fatalf("todos = %+v", list)
	}
	if list[0].DueDateString() != "2030-01-02" {
		t.Errorf("due = %q", list[0].DueDateString())
	}
}

func TestAddModalKeepsInputOnFailure(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	m := h.started(t)

	m, _ = press(t, m, runes("a"))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	m = settle(t, m, cmd)

	if m.mode != ModeAddTodo {
		t.Error("modal should stay open when validation fails")
	}
	if h.fake.Calls(fakeapi.OpCreate) != 0 {
		t.Error("empty title must not reach the server")
	}
	if !slices.Contains(h.toasts.Messages(), "Title is required") {
		t.Errorf("toasts = %v", h.toasts.Messages())
	}
}

func TestLogoutReturnsToLogin(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	m := h.started(t)

	m, cmd := press(t, m, runes("L"))
	m = settle(t, m, cmd)

	if m.route != router.Login {
		t.Errorf("route = %q, want login", m.route)
	}
	if m.app.Todos.Len() != 0 {
		t.Error("todos should be cleared")
	}
}

func TestLogoutFailureStaysSignedIn(t *testing.T) {
	h := newHarness(t)
	h.signIn(t)
	m := h.started(t)

	h.fake.Fail(fakeapi.OpLogout, 500)
	m, cmd := press(t, m, runes("L"))
	m = settle(t, m, cmd)

	if m.route != router.Todos {
		t.Errorf("route = %q, want todos", m.route)
	}
	if !slices.Contains(h.toasts.Messages(), "Error logging out") {
		t.Errorf("toasts = %v", h.toasts.Messages())
	}
}
