// Package header renders the title bar above the content area.
package header

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/theme"
	"github.com/nhle/taskmaster/internal/ui"
)

// AlertWindow is how far ahead a due date raises a notification.
const AlertWindow = 24 * time.Hour

// Model is the header bar.
type Model struct {
	src       ui.StateSource
	now       func() time.Time
	reminders bool
	width     int
}

// New creates a header reading from src. It panics when src is nil.
func New(src ui.StateSource, now func() time.Time) Model {
	if src == nil {
		panic("header: nil state source")
	}
	if now == nil {
		now = time.Now
	}
	return Model{src: src, now: now, reminders: true}
}

// SetReminders turns the notification badge on or off.
func (m *Model) SetReminders(on bool) {
	m.reminders = on
}

// SetSize updates the header width.
func (m *Model) SetSize(width int) {
	m.width = width
}

// View renders the title, progress line, notification badge, and add-task
// hint.
func (m Model) View() string {
	s := m.src.Snapshot()
	stats := model.ComputeStats(s.Tasks)

	left := theme.HeaderStyle.Render(s.ActiveView.Title()) + " " +
		theme.HelpStyle.Render(Progress(stats))

	right := ""
	if n := CountAlerts(s.Tasks, m.now()); m.reminders && n > 0 {
		right = theme.BadgeStyle.Render(fmt.Sprintf("! %d", n))
	}
	if s.ActiveView.ShowsTasks() {
		right += " " + theme.HelpStyle.Render("n add task")
	}

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}

// Progress returns the "X of Y tasks completed" line.
func Progress(stats model.TaskStats) string {
	return fmt.Sprintf("%d of %d tasks completed", stats.Completed, stats.Total)
}

// CountAlerts counts unfinished tasks that are overdue or due within
// AlertWindow of now.
func CountAlerts(tasks []model.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted() {
			continue
		}
		if t.DueDate.Sub(now) <= AlertWindow {
			n++
		}
	}
	return n
}
