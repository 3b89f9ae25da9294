package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/reducer"
)

// configSavedMsg is sent after the config file is written.
type configSavedMsg struct{ err error }

// exportDoneMsg is sent after the task list is written to path.
type exportDoneMsg struct {
	path string
	err  error
}

// dataClearedMsg is sent after the persisted keys are deleted.
type dataClearedMsg struct{ err error }

// exportTimeLayout names export files so they sort by creation time.
const exportTimeLayout = "20060102-150405"

// executeCommand runs a command palette entry.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "quit", "q":
		return m.quit()
	case "new":
		var cmds []tea.Cmd
		if !m.store.Snapshot().ActiveView.ShowsTasks() {
			cmds = append(cmds, m.setView(reducer.ViewDashboard))
		}
		cmds = append(cmds, m.openForm())
		return m, tea.Batch(cmds...)
	case "dark":
		return m, m.dispatch(reducer.ToggleDarkMode{})
	case "sidebar":
		return m, m.toggleSidebar()
	case "export":
		return m, m.exportTasks()
	case "clear":
		return m, m.clearData()
	}

	for _, v := range reducer.Views() {
		if cmd == v.String() {
			return m, m.setView(v)
		}
	}

	m.lastErr = fmt.Errorf("unknown command %q", cmd)
	return m, nil
}

// saveConfig writes a copy of the current config.
func (m *Model) saveConfig() tea.Cmd {
	if m.cfgPath == "" {
		return nil
	}
	path := m.cfgPath
	cfg := *m.cfg
	return func() tea.Msg {
		return configSavedMsg{err: model.SaveConfig(path, &cfg)}
	}
}

// exportTasks writes the persisted task list to a timestamped JSON file
// next to the config file.
func (m *Model) exportTasks() tea.Cmd {
	if m.data == nil {
		return nil
	}
	d := m.data
	dir := "."
	if m.cfgPath != "" {
		dir = filepath.Dir(m.cfgPath)
	}
	path := filepath.Join(dir, "taskmaster-export-"+m.now().Format(exportTimeLayout)+".json")

	return func() tea.Msg {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return exportDoneMsg{err: fmt.Errorf("creating export directory: %w", err)}
		}
		f, err := os.Create(path)
		if err != nil {
			return exportDoneMsg{err: fmt.Errorf("creating export file: %w", err)}
		}
		defer f.Close()

		if err := d.Export(context.Background(), f); err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path}
	}
}

// clearData empties the task list, switches back to the light theme and
// deletes every persisted key.
func (m *Model) clearData() tea.Cmd {
	m.resetViewContext()
	clear(m.pending)

	refresh := m.dispatch(reducer.ClearTasks{})
	m.dispatch(reducer.SetDarkMode{Dark: false})
	m.notice = "all data cleared"
	m.logger.Info("cleared all data")

	if m.data == nil {
		return refresh
	}
	d := m.data
	return tea.Batch(refresh, func() tea.Msg {
		return dataClearedMsg{err: d.Clear(context.Background())}
	})
}
