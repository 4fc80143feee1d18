package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/notify"
	"github.com/existflow/irontodo/internal/router"
	"github.com/existflow/irontodo/internal/todos"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	navbar := m.renderNavbar()
	toasts := m.renderToasts()
	statusBar := m.renderStatusBar()

	bodyHeight := m.height - lipgloss.Height(navbar) - lipgloss.Height(toasts) - lipgloss.Height(statusBar)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch {
	case !m.initialized:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Restoring session...")
	case m.route == router.Login:
		body = m.renderAuth(router.Login.Title(), m.login, keys.ToSignup, bodyHeight)
	case m.route == router.Signup:
		body = m.renderAuth(router.Signup.Title(), m.signup, keys.ToLogin, bodyHeight)
	default:
		body = m.renderTodos(bodyHeight)
	}

	// Modals are drawn over the todo body
	switch m.mode {
	case ModeAddTodo, ModeEditTodo:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			m.renderModal(), lipgloss.WithWhitespaceChars(" "))
	case ModeConfirmDelete:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center,
			m.renderConfirmDelete(), lipgloss.WithWhitespaceChars(" "))
	case ModeHelp:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.renderHelp())
	}

	parts := []string{navbar}
	if toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, body, statusBar)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderNavbar() string {
	title := TitleStyle.Render(router.Todos.Title())

	var right string
	if user := m.app.Session.User(); user != nil {
		right = lipgloss.NewStyle().Foreground(Text).Render(user.Email) + "  " + HelpStyle.Render("L logout")
	} else {
		right = HelpStyle.Render("ctrl+l login  ctrl+s sign up")
	}

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return NavbarStyle.Width(m.width).Render(title + strings.Repeat(" ", gap) + right)
}

// renderToasts stacks active toasts against the right edge
func (m Model) renderToasts() string {
	active := m.toasts.Active()
	if len(active) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(active))
	for _, t := range active {
		style := ToastSuccessStyle
		icon := "✓ "
		if t.Level == notify.LevelError {
			style = ToastErrorStyle
			icon = "✗ "
		}
		rendered = append(rendered, style.Render(icon+truncate(t.Message, 60)))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Right, stack)
}

func (m Model) renderAuth(title string, form authForm, switchKey key.Binding, height int) string {
	var s string
	s += TitleStyle.Render(title) + "\n\n"
	for i, in := range form.inputs {
		label := LabelStyle
		if i == form.focus {
			label = FocusedLabelStyle
		}
		s += label.Render(form.labels[i]) + "\n"
		s += in.View() + "\n\n"
	}
	if m.busy {
		s += HelpStyle.Render("Please wait...")
	} else {
		h := switchKey.Help()
		s += HelpStyle.Render("enter: submit  " + h.Key + ": " + h.Desc)
	}

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, FormStyle.Render(s))
}

func (m Model) renderTodos(height int) string {
	width := m.width - 4
	var s string

	// Filter selector
	var tabs []string
	for _, f := range model.Filters {
		if f == m.filter {
			tabs = append(tabs, FilterActiveStyle.Render(f.Label()))
		} else {
			tabs = append(tabs, FilterInactiveStyle.Render(f.Label()))
		}
	}
	pending, completed := m.app.Todos.Counts()
	counts := HelpStyle.Render(fmt.Sprintf("  %d pending, %d completed", pending, completed))
	s += lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + counts + "\n"
	s += lipgloss.NewStyle().Foreground(Border).Render(strings.Repeat("─", max(width-4, 1))) + "\n\n"

	list := m.visible()
	switch {
	case m.loading && m.app.Todos.Len() == 0:
		s += m.spinner.View() + " Loading todos..."
		return ListStyle.Width(width).Render(s)
	case len(list) == 0 && m.filter == model.FilterAll:
		s += HelpStyle.Render("  No todos. Press 'a' to add one.")
		return ListStyle.Width(width).Render(s)
	case len(list) == 0:
		s += HelpStyle.Render(fmt.Sprintf("  No %s todos.", strings.ToLower(m.filter.Label())))
		return ListStyle.Width(width).Render(s)
	}

	// Each todo takes up to three lines; keep the cursor in view
	perPage := (height - 6) / 3
	if perPage < 1 {
		perPage = 1
	}
	start := 0
	if m.cursor >= perPage {
		start = m.cursor - perPage + 1
	}
	end := start + perPage
	if end > len(list) {
		end = len(list)
	}

	now := time.Now()
	for i := start; i < end; i++ {
		s += m.renderTodo(list[i], i == m.cursor, width, now)
	}
	if end < len(list) {
		s += HelpStyle.Render(fmt.Sprintf("  ... %d more", len(list)-end)) + "\n"
	}
	if m.loading {
		s += m.spinner.View() + HelpStyle.Render(" Reloading...")
	}

	return ListStyle.Width(width).Render(s)
}

func (m Model) renderTodo(t model.Todo, selected bool, width int, now time.Time) string {
	cursor := "  "
	style := TodoItemStyle
	if selected {
		cursor = "❯ "
		style = TodoItemSelectedStyle
	}
	if t.IsCompleted() {
		style = TodoDoneStyle
	}

	line := cursor + StatusBadge(t.Status) + style.Render(truncate(t.Title, width-20))
	out := line + "\n"
	if t.Description != "" {
		desc := strings.SplitN(t.Description, "\n", 2)[0]
		out += DescriptionStyle.Render(truncate(desc, width-10)) + "\n"
	}
	if due := formatDue(t, now); due != "" {
		out += DescriptionStyle.Render(due) + "\n"
	}
	return out
}

func (m Model) renderModal() string {
	title := "Add Todo"
	if m.form.editing() {
		title = "Edit Todo"
	}

	label := func(i int, text string) string {
		if m.form.focus == i {
			return FocusedLabelStyle.Render(text)
		}
		return LabelStyle.Render(text)
	}

	content := TitleStyle.Render(title) + "\n\n"
	content += label(fieldTitle, "Title") + "\n" + m.form.title.View() + "\n\n"
	content += label(fieldDescription, "Description") + "\n" + m.form.description.View() + "\n\n"
	content += label(fieldDue, "Due date") + "\n" + m.form.due.View() + "\n"
	if m.form.editing() {
		content += "\n" + label(fieldStatus, "Status") + "\n" + StatusBadge(m.form.status) + "\n"
	}
	if m.busy {
		content += "\n" + HelpStyle.Render("Saving...")
	}

	return ModalStyle.Width(58).Render(content)
}

func (m Model) renderConfirmDelete() string {
	title := ""
	if t, ok := m.app.Todos.Get(m.deleteID); ok {
		title = t.Title
	}
	content := LabelStyle.Render(todos.DeletePrompt) + "\n\n"
	if title != "" {
		content += HelpStyle.Render(truncate(title, 50)) + "\n\n"
	}
	content += HelpStyle.Render("y: delete  n: cancel")
	return DangerModalStyle.Render(content)
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	return ModalStyle.Render(TitleStyle.Render("Keyboard Shortcuts") + "\n\n" + h.View(keys) + "\n\n" +
		HelpStyle.Render("Press any key to close"))
}

func (m Model) renderStatusBar() string {
	var line string
	switch {
	case !m.initialized:
		line = "ctrl+c: quit"
	case m.route == router.Login:
		line = m.help.View(authKeys{switchView: keys.ToSignup})
	case m.route == router.Signup:
		line = m.help.View(authKeys{switchView: keys.ToLogin})
	case m.mode == ModeAddTodo || m.mode == ModeEditTodo:
		line = m.help.View(modalKeys{editing: m.form.editing()})
	case m.mode == ModeConfirmDelete:
		line = "y: delete  n: cancel"
	default:
		line = m.help.View(keys)
	}
	return StatusBarStyle.Width(m.width).Render(line)
}
