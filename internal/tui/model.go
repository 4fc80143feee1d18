package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/existflow/irontodo/internal/app"
	"github.com/existflow/irontodo/internal/logger"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/notify"
	"github.com/existflow/irontodo/internal/router"
	"github.com/existflow/irontodo/internal/todos"
)

// Mode represents the current UI mode of the todo view
type Mode int

const (
	ModeNormal Mode = iota
	ModeAddTodo
	ModeEditTodo
	ModeConfirmDelete
	ModeHelp
)

// modal field order
const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldStatus
)

// todoForm is the add/edit modal
type todoForm struct {
	title       textinput.Model
	description textarea.Model
	due         textinput.Model
	status      model.Status
	editingID   string
	focus       int
}

func newTodoForm() todoForm {
	title := textinput.New()
	title.Placeholder = "Title"
	title.CharLimit = 256
	title.Width = 48

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.ShowLineNumbers = false
	desc.SetWidth(50)
	desc.SetHeight(4)

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10
	due.Width = 12

	return todoForm{title: title, description: desc, due: due, status: model.StatusPending}
}

// editing reports whether the form edits an existing todo
func (f todoForm) editing() bool {
	return f.editingID != ""
}

func (f todoForm) fields() int {
	if f.editing() {
		return 4
	}
	return 3
}

func (f *todoForm) setFocus(i int) {
	n := f.fields()
	f.focus = (i%n + n) % n
	f.title.Blur()
	f.description.Blur()
	f.due.Blur()
	switch f.focus {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldDue:
		f.due.Focus()
	}
}

func (f todoForm) createForm() *todos.CreateForm {
	return &todos.CreateForm{
		Title:       f.title.Value(),
		Description: f.description.Value(),
		DueDate:     f.due.Value(),
	}
}

func (f todoForm) editForm() *todos.EditForm {
	return &todos.EditForm{
		ID:          f.editingID,
		Title:       f.title.Value(),
		Description: f.description.Value(),
		Status:      f.status,
		DueDate:     f.due.Value(),
	}
}

// authForm is the login or signup form: a list of labelled inputs
type authForm struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

func newAuthForm(labels ...string) authForm {
	f := authForm{labels: labels}
	for _, label := range labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 128
		in.Width = 36
		if label == "Password" || label == "Confirm password" {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		f.inputs = append(f.inputs, in)
	}
	f.setFocus(0)
	return f
}

func (f *authForm) setFocus(i int) {
	n := len(f.inputs)
	f.focus = (i%n + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f authForm) value(i int) string {
	return f.inputs[i].Value()
}

// Model is the main TUI model
type Model struct {
	app    *app.App
	toasts *notify.Queue
	ctx    context.Context

	// UI state
	width       int
	height      int
	route       router.Route
	mode        Mode
	cursor      int
	filter      model.Filter
	initialized bool
	loading     bool
	busy        bool
	ticking     bool

	// Forms
	login    authForm
	signup   authForm
	form     todoForm
	deleteID string
	spinner  spinner.Model
	help     help.Model
}

// NewModel creates a new TUI model. toasts must be the notifier the app was
// built with so service notifications show up on screen.
func NewModel(a *app.App, toasts *notify.Queue) Model {
	logger.Info("Initializing TUI model")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = TitleStyle

	return Model{
		app:     a,
		toasts:  toasts,
		ctx:     context.Background(),
		route:   router.Todos,
		mode:    ModeNormal,
		filter:  model.FilterAll,
		loading: true,
		login:   newAuthForm("Email", "Password"),
		signup:  newAuthForm("Name", "Email", "Password", "Confirm password"),
		form:    newTodoForm(),
		spinner: sp,
		help:    help.New(),
	}
}

// visible returns the filtered projection the list shows
func (m Model) visible() []model.Todo {
	return m.app.Todos.Filter(m.filter)
}

func (m Model) currentTodo() (model.Todo, bool) {
	list := m.visible()
	if m.cursor < 0 || m.cursor >= len(list) {
		return model.Todo{}, false
	}
	return list[m.cursor], true
}

// resolveRoute applies the guard after any session change
func (m *Model) resolveRoute() {
	next := router.Resolve(m.route, m.app.Session.Authenticated())
	if next != m.route {
		logger.Debug("Route changed", logger.F("from", string(m.route)), logger.F("to", string(next)))
		m.route = next
		m.mode = ModeNormal
	}
}
