package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/existflow/irontodo/internal/app"
	"github.com/existflow/irontodo/internal/logger"
	"github.com/existflow/irontodo/internal/notify"
)

// Run starts the interactive UI and blocks until the user quits
func Run(a *app.App, toasts *notify.Queue) error {
	logger.Info("Launching TUI")

	p := tea.NewProgram(NewModel(a, toasts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", logger.Err(err))
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	logger.Info("TUI exited normally")
	return nil
}
