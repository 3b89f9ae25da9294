package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nhle/taskmaster/internal/app"
	"github.com/nhle/taskmaster/internal/reducer"
	"github.com/nhle/taskmaster/internal/state"
	"github.com/nhle/taskmaster/internal/theme"
)

// errNoTerminal is returned when the dashboard cannot take over the screen.
var errNoTerminal = errors.New("the dashboard needs an interactive terminal; try \"taskmaster export\"")

func runDashboard(cmd *cobra.Command, _ []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	s := state.New(reducer.New(), e.persistence, e.logger)
	snap, err := s.Hydrate(cmd.Context())
	if err != nil {
		return fmt.Errorf("restoring state: %w", err)
	}
	// Set the palette before the first frame is drawn.
	theme.Apply(snap.IsDarkMode)

	m := app.New(app.Options{
		Store:      s,
		Data:       e.persistence,
		Config:     e.cfg,
		ConfigPath: e.cfgPath,
		Logger:     e.logger,
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
