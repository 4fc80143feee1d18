package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/existflow/irontodo/internal/model"
)

// Color palette based on TUI design
var (
	// Status colors
	Completed = lipgloss.Color("#95E1A3") // Green
	Pending   = lipgloss.Color("#FFE66D") // Yellow
	Overdue   = lipgloss.Color("#FF6B6B") // Red

	// UI colors
	Primary   = lipgloss.Color("#4ECDC4")
	Secondary = lipgloss.Color("#6C757D")
	Surface   = lipgloss.Color("#16213e")
	Text      = lipgloss.Color("#FFFFFF")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
	Danger    = lipgloss.Color("#FF6B6B")
)

// Styles
var (
	// Navbar
	NavbarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(Border)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	// Todo list
	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	TodoItemStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TodoItemSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	TodoDoneStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Strikethrough(true).
			Padding(0, 1)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(TextMuted).
				PaddingLeft(6)

	// Status badges
	PendingBadgeStyle   = lipgloss.NewStyle().Foreground(Pending).Bold(true)
	CompletedBadgeStyle = lipgloss.NewStyle().Foreground(Completed).Bold(true)
	OverdueStyle        = lipgloss.NewStyle().Foreground(Overdue)

	// Filter selector
	FilterActiveStyle = lipgloss.NewStyle().
				Foreground(Surface).
				Background(Primary).
				Padding(0, 1)

	FilterInactiveStyle = lipgloss.NewStyle().
				Foreground(TextMuted).
				Padding(0, 1)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	// Input modal
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	DangerModalStyle = ModalStyle.
				BorderForeground(Danger)

	LabelStyle = lipgloss.NewStyle().
			Bold(true)

	FocusedLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(Primary)

	// Auth forms
	FormStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 3)

	// Toasts
	ToastSuccessStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Completed).
				Foreground(Completed).
				Padding(0, 1)

	ToastErrorStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Danger).
			Foreground(Danger).
			Padding(0, 1)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// StatusBadge returns the rendered status label
func StatusBadge(status model.Status) string {
	if status == model.StatusCompleted {
		return CompletedBadgeStyle.Render("[" + status.Title() + "]")
	}
	return PendingBadgeStyle.Render("[" + status.Title() + "]")
}
