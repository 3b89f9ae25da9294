package taskgrid

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskmaster/internal/keys"
	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/reducer"
)

var now = time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)

type fakeSource struct{ s reducer.State }

func (f *fakeSource) Snapshot() reducer.State { return f.s }

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func newGrid(t *testing.T, s reducer.State) Model {
	t.Helper()
	m := New(&fakeSource{s: s}, keys.DefaultKeyMap(), func() time.Time { return now }, 80, 20)
	m.Refresh()
	return m
}

func sampleState() reducer.State {
	s := reducer.Initial()
	s.Tasks = []model.Task{
		{ID: "a", Title: "Write report", Priority: model.PriorityHigh, Status: model.StatusPending,
			DueDate: now.Add(36 * time.Hour), CreatedAt: now},
		{ID: "b", Title: "Ship release", Priority: model.PriorityLow, Status: model.StatusCompleted,
			DueDate: now.Add(-30 * time.Hour), CreatedAt: now},
	}
	return s
}

func TestDueText(t *testing.T) {
	tests := []struct {
		days int
		want string
	}{
		{-2, "Overdue by 2 days"},
		{-1, "Overdue by 1 day"},
		{0, "Due today"},
		{1, "Due in 1 day"},
		{5, "Due in 5 days"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DueText(tt.days))
	}
}

func TestView_RendersCards(t *testing.T) {
	m := newGrid(t, sampleState())

	out := m.View()
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Due in 2 days")
	assert.Contains(t, out, "Overdue by 1 day")
	assert.Equal(t, 2, m.Len())
}

func TestView_EmptyState(t *testing.T) {
	m := newGrid(t, reducer.Initial())
	assert.Contains(t, m.View(), "No tasks yet")
}

func TestView_DeletingMarker(t *testing.T) {
	s := sampleState()
	s.DeletingTaskID = "a"
	m := newGrid(t, s)

	assert.Contains(t, m.View(), "deleting…")
}

func TestUpdate_Intents(t *testing.T) {
	m := newGrid(t, sampleState())

	_, cmd := m.Update(runeKey('x'))
	require.NotNil(t, cmd)
	assert.Equal(t, ToggleCompleteMsg{ID: "a", Status: model.StatusCompleted}, cmd())

	_, cmd = m.Update(runeKey('s'))
	require.NotNil(t, cmd)
	assert.Equal(t, CycleStatusMsg{ID: "a", Status: model.StatusInProgress}, cmd())

	_, cmd = m.Update(runeKey('d'))
	require.NotNil(t, cmd)
	assert.Equal(t, DeleteMsg{ID: "a"}, cmd())
}

func TestUpdate_ToggleCompletedGoesBackToPending(t *testing.T) {
	m := newGrid(t, sampleState())
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	_, cmd := m.Update(runeKey('x'))
	require.NotNil(t, cmd)
	assert.Equal(t, ToggleCompleteMsg{ID: "b", Status: model.StatusPending}, cmd())
}

func TestUpdate_IgnoresDeletingCard(t *testing.T) {
	s := sampleState()
	s.DeletingTaskID = "a"
	m := newGrid(t, s)

	_, cmd := m.Update(runeKey('d'))
	assert.Nil(t, cmd)
}

func TestNew_PanicsWithoutSource(t *testing.T) {
	assert.Panics(t, func() { New(nil, keys.DefaultKeyMap(), nil, 10, 10) })
}

func TestView_TruncatesLongTitles(t *testing.T) {
	s := sampleState()
	s.Tasks[0].Title = strings.Repeat("very long title ", 8)
	m := newGrid(t, s)

	out := m.View()
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, s.Tasks[0].Title)
}
