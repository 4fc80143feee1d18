package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/irontodo/internal/logger"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/router"
	"github.com/existflow/irontodo/internal/session"
	"github.com/existflow/irontodo/internal/todos"
)

// Init restores the session, then loads todos
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.spinner.Tick)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case toastTickMsg:
		if m.toasts.Prune() {
			return m, toastTick()
		}
		m.ticking = false
		return m, nil

	case startedMsg:
		m.initialized = true
		m.loading = false
		m.resolveRoute()
		m.cursor = clamp(m.cursor, len(m.visible()))
		return m, m.toastCmd()

	case authMsg:
		m.busy = false
		if msg.err == nil {
			m.login = newAuthForm("Email", "Password")
			m.signup = newAuthForm("Name", "Email", "Password", "Confirm password")
			m.filter = model.FilterAll
			m.cursor = 0
		}
		m.resolveRoute()
		return m, m.toastCmd()

	case loggedOutMsg:
		m.busy = false
		if msg.err == nil {
			m.cursor = 0
			m.resolveRoute()
		}
		return m, m.toastCmd()

	case listedMsg:
		m.loading = false
		m.cursor = clamp(m.cursor, len(m.visible()))
		return m, m.toastCmd()

	case todoSavedMsg:
		m.busy = false
		if msg.err == nil && msg.modal {
			m.mode = ModeNormal
			m.form = newTodoForm()
			if msg.created {
				m.cursor = 0
			}
		}
		m.cursor = clamp(m.cursor, len(m.visible()))
		return m, m.toastCmd()

	case todoDeletedMsg:
		m.busy = false
		m.cursor = clamp(m.cursor, len(m.visible()))
		return m, m.toastCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.initialized {
			return m, nil
		}

		switch m.route {
		case router.Login:
			return m.updateLogin(msg)
		case router.Signup:
			return m.updateSignup(msg)
		}

		switch m.mode {
		case ModeAddTodo, ModeEditTodo:
			return m.updateModal(msg)
		case ModeConfirmDelete:
			return m.updateConfirmDelete(msg)
		case ModeHelp:
			m.mode = ModeNormal
			return m, nil
		}
		return m.handleNormalKeys(msg)
	}

	return m, nil
}

// toastCmd starts the expiry ticker when toasts are showing
func (m *Model) toastCmd() tea.Cmd {
	if m.ticking || !m.toasts.Prune() {
		return nil
	}
	m.ticking = true
	return toastTick()
}

// handleNormalKeys handles key presses on the todo list
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Filter):
		m.filter = m.filter.Next()
		m.cursor = 0

	case key.Matches(msg, keys.Add):
		return m.startAddTodo()

	case key.Matches(msg, keys.Edit):
		return m.startEditTodo()

	case key.Matches(msg, keys.Toggle):
		return m.handleToggle()

	case key.Matches(msg, keys.Delete):
		return m.handleDelete()

	case key.Matches(msg, keys.Refresh):
		// A reload would race the in-flight change for the same todos
		if m.loading || m.busy {
			return m, nil
		}
		m.loading = true
		return m, tea.Batch(m.listCmd(), m.spinner.Tick)

	case key.Matches(msg, keys.Logout):
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.logoutCmd()

	case key.Matches(msg, keys.Help):
		m.mode = ModeHelp
	}

	return m, nil
}

func (m Model) startAddTodo() (tea.Model, tea.Cmd) {
	m.mode = ModeAddTodo
	m.form = newTodoForm()
	m.form.setFocus(fieldTitle)
	return m, textinput.Blink
}

func (m Model) startEditTodo() (tea.Model, tea.Cmd) {
	t, ok := m.currentTodo()
	if !ok {
		return m, nil
	}

	prefill := todos.NewEditForm(t)
	m.form = newTodoForm()
	m.form.editingID = prefill.ID
	m.form.title.SetValue(prefill.Title)
	m.form.title.CursorEnd()
	m.form.description.SetValue(prefill.Description)
	m.form.due.SetValue(prefill.DueDate)
	m.form.status = prefill.Status
	m.form.setFocus(fieldTitle)
	m.mode = ModeEditTodo
	return m, textinput.Blink
}

func (m Model) handleToggle() (tea.Model, tea.Cmd) {
	t, ok := m.currentTodo()
	if !ok || m.busy {
		return m, nil
	}
	form := todos.NewEditForm(t)
	form.Status = t.Status.Toggle()
	m.busy = true
	return m, m.updateCmd(form, false)
}

func (m Model) handleDelete() (tea.Model, tea.Cmd) {
	t, ok := m.currentTodo()
	if !ok || m.busy {
		return m, nil
	}
	if !m.app.Config.ConfirmDelete {
		m.busy = true
		return m, m.deleteCmd(t.ID)
	}
	m.deleteID = t.ID
	m.mode = ModeConfirmDelete
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Yes):
		m.mode = ModeNormal
		if m.busy {
			return m, nil
		}
		m.busy = true
		return m, m.deleteCmd(m.deleteID)
	case key.Matches(msg, keys.No):
		m.mode = ModeNormal
		m.deleteID = ""
	}
	return m, nil
}

// updateModal handles the add and edit modals
func (m Model) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Escape):
		m.mode = ModeNormal
		return m, nil

	case key.Matches(msg, keys.Next):
		m.form.setFocus(m.form.focus + 1)
		return m, nil

	case key.Matches(msg, keys.Prev):
		m.form.setFocus(m.form.focus - 1)
		return m, nil

	case key.Matches(msg, keys.Submit),
		key.Matches(msg, keys.Enter) && m.form.focus != fieldDescription:
		return m.submitModal()

	case m.form.focus == fieldStatus && key.Matches(msg, keys.Status):
		m.form.status = m.form.status.Toggle()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.form.focus {
	case fieldTitle:
		m.form.title, cmd = m.form.title.Update(msg)
	case fieldDescription:
		m.form.description, cmd = m.form.description.Update(msg)
	case fieldDue:
		m.form.due, cmd = m.form.due.Update(msg)
	}
	return m, cmd
}

func (m Model) submitModal() (tea.Model, tea.Cmd) {
	if m.busy {
		logger.Debug("Ignoring submit while a request is in flight")
		return m, nil
	}
	m.busy = true
	if m.form.editing() {
		return m, m.updateCmd(m.form.editForm(), true)
	}
	return m, m.createCmd(m.form.createForm())
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ToSignup):
		m.route = router.Signup
		m.resolveRoute()
		return m, textinput.Blink

	case key.Matches(msg, keys.Next):
		m.login.setFocus(m.login.focus + 1)
		return m, nil

	case key.Matches(msg, keys.Prev):
		m.login.setFocus(m.login.focus - 1)
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.busy {
			return m, nil
		}
		m.busy = true
		form := session.LoginForm{
			Email:    strings.TrimSpace(m.login.value(0)),
			Password: m.login.value(1),
		}
		return m, m.loginCmd(form)
	}

	var cmd tea.Cmd
	m.login.inputs[m.login.focus], cmd = m.login.inputs[m.login.focus].Update(msg)
	return m, cmd
}

func (m Model) updateSignup(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.ToLogin):
		m.route = router.Login
		m.resolveRoute()
		return m, textinput.Blink

	case key.Matches(msg, keys.Next):
		m.signup.setFocus(m.signup.focus + 1)
		return m, nil

	case key.Matches(msg, keys.Prev):
		m.signup.setFocus(m.signup.focus - 1)
		return m, nil

	case key.Matches(msg, keys.Enter):
		if m.busy {
			return m, nil
		}
		m.busy = true
		form := session.SignupForm{
			Name:            m.signup.value(0),
			Email:           strings.TrimSpace(m.signup.value(1)),
			Password:        m.signup.value(2),
			ConfirmPassword: m.signup.value(3),
		}
		return m, m.signupCmd(form)
	}

	var cmd tea.Cmd
	m.signup.inputs[m.signup.focus], cmd = m.signup.inputs[m.signup.focus].Update(msg)
	return m, cmd
}
