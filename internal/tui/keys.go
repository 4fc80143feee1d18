package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Add      key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Filter   key.Binding
	Refresh  key.Binding
	Logout   key.Binding
	Help     key.Binding
	Quit     key.Binding
	Escape   key.Binding
	Enter    key.Binding
	Submit   key.Binding
	Next     key.Binding
	Prev     key.Binding
	ToSignup key.Binding
	ToLogin  key.Binding
	Yes      key.Binding
	No       key.Binding
	Status   key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Toggle:   key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle done")),
	Filter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
	Refresh:  key.NewBinding(key.WithKeys("r", "R"), key.WithHelp("r", "reload")),
	Logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Submit:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
	ToSignup: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "sign up")),
	ToLogin:  key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "log in")),
	Yes:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "no")),
	Status:   key.NewBinding(key.WithKeys(" ", "left", "right"), key.WithHelp("space", "toggle status")),
}

// ShortHelp implements help.KeyMap for the todo view
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Filter, k.Refresh, k.Logout, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter, k.Refresh},
		{k.Add, k.Edit, k.Toggle, k.Delete},
		{k.Logout, k.Help, k.Quit},
	}
}

// authKeys is the help line of the login and signup views
type authKeys struct {
	switchView key.Binding
}

func (k authKeys) ShortHelp() []key.Binding {
	return []key.Binding{keys.Next, keys.Enter, k.switchView, key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit"))}
}

func (k authKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// modalKeys is the help line of the add and edit modals
type modalKeys struct {
	editing bool
}

func (k modalKeys) ShortHelp() []key.Binding {
	b := []key.Binding{keys.Next, keys.Submit, keys.Escape}
	if k.editing {
		b = append(b, keys.Status)
	}
	return b
}

func (k modalKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
