package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo-cli/internal/store"
)

type Options struct {
	// File is opened right away when set.
	File   string
	Config *store.Config
	// Logger must not write to the terminal.
	Logger *log.Logger
}

func Run(opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()

	m := newAppModel(opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
