package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/session"
	"github.com/existflow/irontodo/internal/todos"
)

// startedMsg is sent once the session is restored and todos are loaded
type startedMsg struct{ err error }

// authMsg is sent after login or signup
type authMsg struct{ err error }

// loggedOutMsg is sent after a logout attempt
type loggedOutMsg struct{ err error }

// listedMsg is sent after a reload
type listedMsg struct{ err error }

// todoSavedMsg is sent after a create or update
type todoSavedMsg struct {
	todo    *model.Todo
	created bool
	modal   bool
	err     error
}

// todoDeletedMsg is sent after a delete
type todoDeletedMsg struct {
	id  string
	err error
}

// toastTickMsg drives toast expiry
type toastTickMsg time.Time

func (m Model) startCmd() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		return startedMsg{err: a.Start(ctx)}
	}
}

func (m Model) loginCmd(form session.LoginForm) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		return authMsg{err: a.Login(ctx, form)}
	}
}

func (m Model) signupCmd(form session.SignupForm) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		return authMsg{err: a.Signup(ctx, form)}
	}
}

func (m Model) logoutCmd() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		return loggedOutMsg{err: a.Logout(ctx)}
	}
}

func (m Model) listCmd() tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		return listedMsg{err: a.Todos.List(ctx)}
	}
}

func (m Model) createCmd(form *todos.CreateForm) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		todo, err := a.Todos.Create(ctx, form)
		return todoSavedMsg{todo: todo, created: true, modal: true, err: err}
	}
}

func (m Model) updateCmd(form *todos.EditForm, fromModal bool) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		todo, err := a.Todos.Update(ctx, form)
		return todoSavedMsg{todo: todo, modal: fromModal, err: err}
	}
}

// deleteCmd runs after the user answered the confirmation modal
func (m Model) deleteCmd(id string) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		_, err := a.Todos.Delete(ctx, id, todos.Always)
		return todoDeletedMsg{id: id, err: err}
	}
}

func toastTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}
