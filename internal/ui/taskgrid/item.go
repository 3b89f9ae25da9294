package taskgrid

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/theme"
)

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task     model.Task
	Deleting bool
	DueText  string
	Overdue  bool
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns the due-date line of the card.
func (i TaskItem) Description() string { return i.DueText }

func newItem(t model.Task, deleting bool, now time.Time) TaskItem {
	return TaskItem{
		Task:     t,
		Deleting: deleting,
		DueText:  DueText(t.DaysUntilDue(now)),
		Overdue:  t.DaysUntilDue(now) < 0,
	}
}

// DueText describes a due date given the days until it, rounded up.
func DueText(days int) string {
	switch {
	case days < 0:
		return "Overdue by " + plural(-days, "day")
	case days == 0:
		return "Due today"
	default:
		return "Due in " + plural(days, "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Columns kept free for the prefix and badges around a card title.
const (
	titleReserve  = 32
	minTitleWidth = 12
)

// CardDelegate implements list.ItemDelegate for rendering task cards.
type CardDelegate struct {
	// Compact renders each card on a single line.
	Compact bool
}

// Height returns the number of lines each card takes.
func (d CardDelegate) Height() int {
	if d.Compact {
		return 1
	}
	return 2
}

// Spacing returns the number of blank lines between cards.
func (d CardDelegate) Spacing() int {
	if d.Compact {
		return 0
	}
	return 1
}

// Update handles per-item messages (unused).
func (d CardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single card.
func (d CardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(TaskItem)
	if !ok {
		return
	}
	t := it.Task

	prefix := "○"
	if t.IsCompleted() {
		prefix = "✓"
	}

	priBadge := theme.PriorityStyle(t.Priority).Render("● " + t.Priority.Label())
	statusBadge := theme.StatusStyle(t.Status).Render(t.Status.Label())

	due := theme.DueDateStyle.Render(it.DueText)
	if it.Overdue && !t.IsCompleted() {
		due = theme.OverdueStyle.Render(it.DueText)
	}

	title := truncate.StringWithTail(t.Title, uint(max(m.Width()-titleReserve, minTitleWidth)), "…")
	head := fmt.Sprintf("%s %s %s %s", prefix, priBadge, title, statusBadge)
	if t.IsCompleted() {
		head = theme.DimmedStyle.Render(head)
	}

	var card string
	if d.Compact {
		card = head + "  " + due
	} else {
		card = head + "\n  " + due
	}
	if it.Deleting {
		card = theme.DeletingStyle.Render(card + "  deleting…")
	}

	if index == m.Index() {
		card = theme.SelectedItemStyle.Render(card)
	} else {
		card = theme.ListItemStyle.Render(card)
	}

	fmt.Fprint(w, card)
}
