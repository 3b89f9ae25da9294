// Package taskgrid renders the task cards and turns card key presses into
// intents for the root model.
package taskgrid

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskmaster/internal/keys"
	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/theme"
	"github.com/nhle/taskmaster/internal/ui"
)

// ToggleCompleteMsg asks to flip a task between completed and pending.
type ToggleCompleteMsg struct {
	ID     string
	Status model.Status
}

// CycleStatusMsg asks to move a task to the next status.
type CycleStatusMsg struct {
	ID     string
	Status model.Status
}

// DeleteMsg asks to delete a task.
type DeleteMsg struct {
	ID string
}

// Model is the task grid component.
type Model struct {
	list     list.Model
	src      ui.StateSource
	keys     *keys.KeyMap
	now      func() time.Time
	delegate CardDelegate
	width    int
	height   int
}

// New creates a task grid reading from src. It panics when src is nil.
func New(src ui.StateSource, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	if src == nil {
		panic("taskgrid: nil state source")
	}
	if now == nil {
		now = time.Now
	}

	delegate := CardDelegate{}
	l := list.New([]list.Item{}, delegate, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()

	return Model{
		list:     l,
		src:      src,
		keys:     k,
		now:      now,
		delegate: delegate,
		width:    width,
		height:   height,
	}
}

// Refresh rebuilds the cards from the current snapshot.
func (m *Model) Refresh() tea.Cmd {
	s := m.src.Snapshot()
	now := m.now()
	items := make([]list.Item, len(s.Tasks))
	for i, t := range s.Tasks {
		items[i] = newItem(t, s.IsDeleting(t.ID), now)
	}
	return m.list.SetItems(items)
}

// SetCompact switches between one- and two-line cards.
func (m *Model) SetCompact(compact bool) {
	m.delegate.Compact = compact
	m.list.SetDelegate(m.delegate)
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (TaskItem, bool) {
	it, ok := m.list.SelectedItem().(TaskItem)
	return it, ok
}

// Len returns the number of cards.
func (m Model) Len() int {
	return len(m.list.Items())
}

// Update handles messages for the task grid.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if cmd, handled := m.handleKeys(msg); handled {
			return m, cmd
		}
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleKeys(msg tea.KeyMsg) (tea.Cmd, bool) {
	var build func(model.Task) tea.Msg

	switch {
	case key.Matches(msg, m.keys.Toggle):
		build = func(t model.Task) tea.Msg {
			next := model.StatusCompleted
			if t.IsCompleted() {
				next = model.StatusPending
			}
			return ToggleCompleteMsg{ID: t.ID, Status: next}
		}
	case key.Matches(msg, m.keys.CycleStatus):
		build = func(t model.Task) tea.Msg {
			return CycleStatusMsg{ID: t.ID, Status: t.Status.Next()}
		}
	case key.Matches(msg, m.keys.Delete):
		build = func(t model.Task) tea.Msg {
			return DeleteMsg{ID: t.ID}
		}
	default:
		return nil, false
	}

	it, ok := m.SelectedTask()
	if !ok || it.Deleting {
		return nil, true
	}
	out := build(it.Task)
	return func() tea.Msg { return out }, true
}

// View renders the task grid.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when there are no tasks.
func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render("No tasks yet\n\nCreate your first task to get started! Press n.")
}

// SetSize updates the grid dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height)
}
