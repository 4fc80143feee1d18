package todos

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/existflow/irontodo/internal/api"
	"github.com/existflow/irontodo/internal/apperr"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/notify"
)

var errBoom = &apperr.RequestError{Op: "test", Status: 500, Message: "boom"}

// stubAPI answers from canned values and counts calls
type stubAPI struct {
	list     []model.Todo
	listErr  error
	listHook func()

	created   *model.Todo
	updated   *model.Todo
	mutateErr error

	calls      int
	lastCreate api.CreateTodoRequest
	lastUpdate api.UpdateTodoRequest
	lastID     string
}

func (s *stubAPI) ListTodos(ctx context.Context) ([]model.Todo, error) {
	s.calls++
	if s.listHook != nil {
		s.listHook()
	}
	return s.list, s.listErr
}

func (s *stubAPI) CreateTodo(ctx context.Context, req api.CreateTodoRequest) (*model.Todo, error) {
	s.calls++
	s.lastCreate = req
	if s.mutateErr != nil {
		return nil, s.mutateErr
	}
	return s.created, nil
}

func (s *stubAPI) UpdateTodo(ctx context.Context, id string, req api.UpdateTodoRequest) (*model.Todo, error) {
	s.calls++
	s.lastID = id
	s.lastUpdate = req
	if s.mutateErr != nil {
		return nil, s.mutateErr
	}
	return s.updated, nil
}

func (s *stubAPI) DeleteTodo(ctx context.Context, id string) error {
	s.calls++
	s.lastID = id
	return s.mutateErr
}

func todo(id string, status model.Status) model.Todo {
	return model.Todo{
		ID:        id,
		Title:     "todo " + id,
		Status:    status,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func ids(todos []model.Todo) []string {
	out := make([]string, len(todos))
	for i, t := range todos {
		out[i] = t.ID
	}
	return out
}

func loaded(t *testing.T, list ...model.Todo) (*Manager, *stubAPI, *notify.Queue) {
	t.Helper()
	stub := &stubAPI{list: list}
	toasts := notify.NewQueue(time.Minute)
	m := NewManager(stub, toasts)
	if err := m.List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	stub.calls = 0
	return m, stub, toasts
}

func lastToast(t *testing.T, q *notify.Queue) string {
	t.Helper()
	toast, ok := q.Last()
	if !ok {
		t.Fatal("expected a toast")
	}
	return toast.Message
}

func TestListKeepsServerOrder(t *testing.T) {
	m, _, _ := loaded(t, todo("3", model.StatusPending), todo("1", model.StatusCompleted), todo("2", model.StatusPending))

	if got := ids(m.Todos()); !reflect.DeepEqual(got, []string{"3", "1", "2"}) {
		t.Errorf("order = %v", got)
	}
	if m.Loading() {
		t.Error("loading should be cleared after List")
	}
}

func TestListDropsDuplicateIDs(t *testing.T) {
	first := todo("1", model.StatusPending)
	dup := todo("1", model.StatusCompleted)
	m, _, _ := loaded(t, first, todo("2", model.StatusPending), dup)

	if m.Len() != 2 {
		t.Fatalf("Len = %d, want 2", m.Len())
	}
	if got, _ := m.Get("1"); got.Status != model.StatusPending {
		t.Error("the first occurrence should win")
	}
}

func TestListFailureKeepsCollection(t *testing.T) {
	m, stub, toasts := loaded(t, todo("1", model.StatusPending))
	before := m.Todos()

	stub.listErr = errBoom
	stub.list = nil
	if err := m.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if !reflect.DeepEqual(m.Todos(), before) {
		t.Errorf("collection changed on failure: %+v", m.Todos())
	}
	if m.Loading() {
		t.Error("loading should be cleared after a failed List")
	}
	if lastToast(t, toasts) != "Error fetching todos" {
		t.Errorf("toast = %q", lastToast(t, toasts))
	}
}

func TestLoadingWhileListing(t *testing.T) {
	stub := &stubAPI{}
	m := NewManager(stub, notify.NewQueue(time.Minute))

	var during bool
	stub.listHook = func() { during = m.Loading() }
	_ = m.List(context.Background())

	if !during {
		t.Error("Loading should be true while the call is in flight")
	}
	if m.Loading() {
		t.Error("Loading should be false afterwards")
	}
}

func TestCreateWithoutTitleMakesNoCall(t *testing.T) {
	m, stub, toasts := loaded(t, todo("1", model.StatusPending))
	before := m.Todos()

	form := &CreateForm{Title: "   ", Description: "kept"}
	_, err := m.Create(context.Background(), form)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if stub.calls != 0 {
		t.Error("validation failure must not call the API")
	}
	if !reflect.DeepEqual(m.Todos(), before) {
		t.Error("collection changed")
	}
	if form.Description != "kept" {
		t.Error("a rejected form should keep its fields")
	}
	if lastToast(t, toasts) != "Title is required" {
		t.Errorf("toast = %q", lastToast(t, toasts))
	}
}

func TestCreateRejectsBadDueDate(t *testing.T) {
	m, stub, _ := loaded(t)
	_, err := m.Create(context.Background(), &CreateForm{Title: "x", DueDate: "tomorrow"})
	if !errors.Is(err, apperr.ErrValidation) || stub.calls != 0 {
		t.Fatalf("expected validation error without a call, got %v (%d calls)", err, stub.calls)
	}
}

func TestCreatePrependsAndResetsForm(t *testing.T) {
	m, stub, toasts := loaded(t, todo("1", model.StatusPending), todo("2", model.StatusCompleted))
	created := todo("9", model.StatusPending)
	stub.created = &created

	form := &CreateForm{Title: "  New  ", Description: "d", DueDate: "2026-03-01"}
	if _, err := m.Create(context.Background(), form); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if got := ids(m.Todos()); !reflect.DeepEqual(got, []string{"9", "1", "2"}) {
		t.Errorf("order = %v", got)
	}
	if stub.lastCreate.Title != "New" || stub.lastCreate.DueDate != "2026-03-01" {
		t.Errorf("request = %+v", stub.lastCreate)
	}
	if *form != (CreateForm{}) {
		t.Errorf("form should be reset, got %+v", form)
	}
	if lastToast(t, toasts) != "Todo added successfully" {
		t.Errorf("toast = %q", lastToast(t, toasts))
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	m, stub, toasts := loaded(t, todo("1", model.StatusPending), todo("2", model.StatusCompleted))

	current, _ := m.Get("1")
	form := NewEditForm(current)
	form.Status = model.StatusCompleted
	updated := current
	updated.Status = model.StatusCompleted
	stub.updated = &updated

	if _, err := m.Update(context.Background(), form); err != nil {
		t.Fatalf("Update: %v", err)
	}

	want := []model.Todo{updated, todo("2", model.StatusCompleted)}
	if got := m.Todos(); !reflect.DeepEqual(got, want) {
		t.Errorf("collection = %+v, want %+v", got, want)
	}
	if got := m.Filter(model.FilterPending); len(got) != 0 {
		t.Errorf("pending filter = %+v, want none", got)
	}
	if stub.lastID != "1" || stub.lastUpdate.Status != model.StatusCompleted {
		t.Errorf("sent id %q body %+v", stub.lastID, stub.lastUpdate)
	}
	if lastToast(t, toasts) != "Todo updated successfully" {
		t.Errorf("toast = %q", lastToast(t, toasts))
	}
}

func TestUpdateUnknownIDLeavesCollection(t *testing.T) {
	m, stub, _ := loaded(t, todo("1", model.StatusPending))
	before := m.Todos()

	stray := todo("404", model.StatusCompleted)
	stub.updated = &stray
	if _, err := m.Update(context.Background(), NewEditForm(todo("1", model.StatusPending))); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !reflect.DeepEqual(m.Todos(), before) {
		t.Errorf("collection changed: %+v", m.Todos())
	}
}

func TestUpdateValidation(t *testing.T) {
	m, stub, _ := loaded(t, todo("1", model.StatusPending))

	forms := []*EditForm{
		{Title: "no id", Status: model.StatusPending},
		{ID: "1", Title: "", Status: model.StatusPending},
		{ID: "1", Title: "bad status", Status: "done"},
	}
	for _, f := range forms {
		if _, err := m.Update(context.Background(), f); !errors.Is(err, apperr.ErrValidation) {
			t.Errorf("form %+v: expected validation error, got %v", f, err)
		}
	}
	if stub.calls != 0 {
		t.Errorf("validation failures made %d calls", stub.calls)
	}
}

func TestDelete(t *testing.T) {
	m, stub, toasts := loaded(t, todo("1", model.StatusPending), todo("2", model.StatusPending), todo("3", model.StatusPending))

	var asked string
	deleted, err := m.Delete(context.Background(), "2", ConfirmFunc(func(p string) bool {
		asked = p
		return true
	}))
	if err != nil || !deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	if asked != DeletePrompt {
		t.Errorf("prompt = %q", asked)
	}
	if got := ids(m.Todos()); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("order = %v", got)
	}
	if _, ok := m.Get("2"); ok {
		t.Error("deleted todo still present")
	}
	if stub.lastID != "2" {
		t.Errorf("deleted id = %q", stub.lastID)
	}
	if lastToast(t, toasts) != "Todo deleted successfully" {
		t.Errorf("toast = %q", lastToast(t, toasts))
	}
}

func TestDeclinedDeleteMakesNoCall(t *testing.T) {
	m, stub, _ := loaded(t, todo("1", model.StatusPending))

	deleted, err := m.Delete(context.Background(), "1", ConfirmFunc(func(string) bool { return false }))
	if err != nil || deleted {
		t.Fatalf("Delete = %v, %v", deleted, err)
	}
	if stub.calls != 0 || m.Len() != 1 {
		t.Error("declined delete must not call the API or change the collection")
	}
}

func TestFailedMutationsLeaveCollectionUnchanged(t *testing.T) {
	due := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	withDue := todo("2", model.StatusCompleted)
	withDue.DueDate = &due

	m, stub, toasts := loaded(t, todo("1", model.StatusPending), withDue)
	before := m.Todos()
	stub.mutateErr = errBoom
	ctx := context.Background()

	if _, err := m.Create(ctx, &CreateForm{Title: "x"}); err == nil {
		t.Error("Create should fail")
	}
	if lastToast(t, toasts) != "Error adding todo" {
		t.Errorf("toast = %q", lastToast(t, toasts))
	}

	if _, err := m.Update(ctx, NewEditForm(withDue)); err == nil {
		t.Error("Update should fail")
	}
	if lastToast(t, toasts) != "Error updating todo" {
		t.Errorf("toast = %q", lastToast(t, toasts))
	}

	if _, err := m.Delete(ctx, "1", Always); err == nil {
		t.Error("Delete should fail")
	}
	if lastToast(t, toasts) != "Error deleting todo" {
		t.Errorf("toast = %q", lastToast(t, toasts))
	}

	if !reflect.DeepEqual(m.Todos(), before) {
		t.Errorf("collection changed after failures:\n got %+v\nwant %+v", m.Todos(), before)
	}
}

func TestFilter(t *testing.T) {
	m, _, _ := loaded(t,
		todo("1", model.StatusCompleted),
		todo("2", model.StatusPending),
		todo("3", model.StatusCompleted),
		todo("4", model.StatusPending),
	)
	before := m.Todos()

	completed := m.Filter(model.FilterCompleted)
	if got := ids(completed); !reflect.DeepEqual(got, []string{"1", "3"}) {
		t.Errorf("completed = %v", got)
	}
	if again := m.Filter(model.FilterCompleted); !reflect.DeepEqual(again, completed) {
		t.Error("filtering twice should give the same result")
	}
	if got := ids(m.Filter(model.FilterPending)); !reflect.DeepEqual(got, []string{"2", "4"}) {
		t.Errorf("pending = %v", got)
	}
	if !reflect.DeepEqual(m.Filter(model.FilterAll), before) {
		t.Error("all should return the whole collection")
	}
	if !reflect.DeepEqual(m.Todos(), before) {
		t.Error("filtering must not change the collection")
	}

	pending, done := m.Counts()
	if pending != 2 || done != 2 {
		t.Errorf("Counts = %d, %d", pending, done)
	}
}

func TestLookup(t *testing.T) {
	m, _, _ := loaded(t,
		todo("abc123", model.StatusPending),
		todo("abd456", model.StatusPending),
	)

	if got, err := m.Lookup("abc"); err != nil || got.ID != "abc123" {
		t.Errorf("Lookup(abc) = %v, %v", got.ID, err)
	}
	if got, err := m.Lookup("abd456"); err != nil || got.ID != "abd456" {
		t.Errorf("Lookup(full id) = %v, %v", got.ID, err)
	}
	if _, err := m.Lookup("ab"); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("ambiguous prefix should be a validation error, got %v", err)
	}
	if _, err := m.Lookup("zz"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown prefix should be not found, got %v", err)
	}
}
