package reducer

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/taskmaster/internal/model"
)

var testNow = time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

// newTestReducer returns a reducer with a fixed clock and sequential ids.
func newTestReducer() Reducer {
	n := 0
	return Reducer{
		Now: func() time.Time { return testNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}
}

func draft(title string) model.TaskDraft {
	return model.TaskDraft{
		Title:    title,
		Priority: model.PriorityLow,
		Status:   model.StatusPending,
		DueDate:  testNow.Add(48 * time.Hour),
	}
}

func TestAddTask_EmptyStore(t *testing.T) {
	r := newTestReducer()
	due := testNow.Add(72 * time.Hour)

	s := r.Reduce(Initial(), AddTask{Draft: model.TaskDraft{
		Title:    "Buy milk",
		Priority: model.PriorityLow,
		Status:   model.StatusPending,
		DueDate:  due,
	}})

	require.Len(t, s.Tasks, 1)
	got := s.Tasks[0]
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, model.PriorityLow, got.Priority)
	assert.Equal(t, model.StatusPending, got.Status)
	assert.True(t, got.DueDate.Equal(due))
	assert.NotEmpty(t, got.ID)
	assert.WithinDuration(t, testNow, got.CreatedAt, time.Second)
}

func TestAddTask_NewestFirstAndUniqueIDs(t *testing.T) {
	r := newTestReducer()
	s := Initial()
	titles := []string{"one", "two", "three", "four", "five"}
	for _, title := range titles {
		s = r.Reduce(s, AddTask{Draft: draft(title)})
	}

	require.Len(t, s.Tasks, len(titles))
	seen := make(map[string]bool)
	for i, task := range s.Tasks {
		assert.Equal(t, titles[len(titles)-1-i], task.Title)
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}

func TestAddTask_SkipsIDsAlreadyInUse(t *testing.T) {
	r := newTestReducer()
	s := r.Reduce(Initial(), ReplaceAll{Tasks: []model.Task{{ID: "id-1", Title: "seeded"}}})

	s = r.Reduce(s, AddTask{Draft: draft("fresh")})

	require.Len(t, s.Tasks, 2)
	assert.Equal(t, "id-2", s.Tasks[0].ID)
}

func TestAddTask_ClosesForm(t *testing.T) {
	r := newTestReducer()
	s := r.Reduce(Initial(), SetShowAddForm{Show: true})
	require.True(t, s.ShowAddForm)

	s = r.Reduce(s, AddTask{Draft: draft("task")})

	assert.False(t, s.ShowAddForm)
}

func TestAddTask_InvalidDraftIsNoop(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.TaskDraft)
	}{
		{"empty title", func(d *model.TaskDraft) { d.Title = "" }},
		{"blank title", func(d *model.TaskDraft) { d.Title = "   " }},
		{"missing due date", func(d *model.TaskDraft) { d.DueDate = time.Time{} }},
		{"due yesterday", func(d *model.TaskDraft) { d.DueDate = testNow.Add(-24 * time.Hour) }},
		{"bad priority", func(d *model.TaskDraft) { d.Priority = "urgent" }},
		{"bad status", func(d *model.TaskDraft) { d.Status = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestReducer()
			before := r.Reduce(Initial(), SetShowAddForm{Show: true})
			d := draft("task")
			tt.mutate(&d)

			after := r.Reduce(before, AddTask{Draft: d})

			assert.Equal(t, before, after)
		})
	}
}

func TestUpdateStatus_ChangesOnlyTarget(t *testing.T) {
	r := newTestReducer()
	a := model.Task{ID: "a", Title: "A", Priority: model.PriorityHigh, Status: model.StatusCompleted,
		DueDate: testNow, CreatedAt: testNow}
	b := model.Task{ID: "b", Title: "B", Priority: model.PriorityLow, Status: model.StatusPending,
		DueDate: testNow, CreatedAt: testNow}
	s := r.Reduce(Initial(), ReplaceAll{Tasks: []model.Task{a, b}})

	next := r.Reduce(s, UpdateStatus{ID: "b", Status: model.StatusCompleted})

	wantB := b
	wantB.Status = model.StatusCompleted
	assert.Equal(t, []model.Task{a, wantB}, next.Tasks)
	// The input state is untouched.
	assert.Equal(t, model.StatusPending, s.Tasks[1].Status)
}

func TestUpdateStatus_UnknownIDIsNoop(t *testing.T) {
	r := newTestReducer()
	s := r.Reduce(Initial(), ReplaceAll{Tasks: model.DemoTasks(testNow)})

	next := r.Reduce(s, UpdateStatus{ID: "missing", Status: model.StatusCompleted})

	assert.Equal(t, s, next)
}

func TestUpdateStatus_InvalidStatusIsNoop(t *testing.T) {
	r := newTestReducer()
	s := r.Reduce(Initial(), ReplaceAll{Tasks: model.DemoTasks(testNow)})

	next := r.Reduce(s, UpdateStatus{ID: "1", Status: "archived"})

	assert.Equal(t, s, next)
}

func TestTwoPhaseDelete(t *testing.T) {
	r := newTestReducer()
	s := r.Reduce(Initial(), ReplaceAll{Tasks: model.DemoTasks(testNow)})

	marked := r.Reduce(s, MarkForDeletion{ID: "2"})
	assert.Equal(t, "2", marked.DeletingTaskID)
	assert.Len(t, marked.Tasks, 4, "marking must not remove the task")
	assert.True(t, marked.IsDeleting("2"))

	removed := r.Reduce(marked, CommitDeletion{ID: "2"})
	assert.Empty(t, removed.DeletingTaskID)
	require.Len(t, removed.Tasks, 3)
	assert.Equal(t, []string{"1", "3", "4"}, ids(removed.Tasks))
	assert.Len(t, marked.Tasks, 4, "input state is untouched")
}

func TestCommitDeletion_UnknownIDClearsMark(t *testing.T) {
	r := newTestReducer()
	s := r.Reduce(Initial(), ReplaceAll{Tasks: model.DemoTasks(testNow)})
	s = r.Reduce(s, MarkForDeletion{ID: "gone"})

	next := r.Reduce(s, CommitDeletion{ID: "gone"})

	assert.Empty(t, next.DeletingTaskID)
	assert.Equal(t, s.Tasks, next.Tasks)
}

func TestCancelDeletion(t *testing.T) {
	r := newTestReducer()
	s := r.Reduce(Initial(), ReplaceAll{Tasks: model.DemoTasks(testNow)})
	s = r.Reduce(s, MarkForDeletion{ID: "3"})

	other := r.Reduce(s, CancelDeletion{ID: "1"})
	assert.Equal(t, "3", other.DeletingTaskID, "cancel for another task keeps the mark")

	live := r.Reduce(s, CancelDeletion{ID: "3"})
	assert.Empty(t, live.DeletingTaskID)
	assert.Len(t, live.Tasks, 4)
}

func TestClearTasks(t *testing.T) {
	r := newTestReducer()
	s := r.Reduce(Initial(), ReplaceAll{Tasks: model.DemoTasks(testNow)})
	s = r.Reduce(s, MarkForDeletion{ID: "1"})

	s = r.Reduce(s, ClearTasks{})

	assert.Empty(t, s.Tasks)
	assert.Empty(t, s.DeletingTaskID)
}

func TestFlagActions(t *testing.T) {
	r := newTestReducer()
	s := Initial()

	s = r.Reduce(s, ToggleSidebar{})
	assert.True(t, s.SidebarCollapsed)
	s = r.Reduce(s, ToggleSidebar{})
	assert.False(t, s.SidebarCollapsed)

	s = r.Reduce(s, SetActiveView{View: ViewSettings})
	assert.Equal(t, ViewSettings, s.ActiveView)

	s = r.Reduce(s, ToggleDarkMode{})
	assert.True(t, s.IsDarkMode)
	s = r.Reduce(s, SetDarkMode{Dark: false})
	assert.False(t, s.IsDarkMode)

	s = r.Reduce(s, SetShowAddForm{Show: true})
	assert.True(t, s.ShowAddForm)
	assert.Empty(t, s.Tasks, "flag actions never touch tasks")
}

func TestReplaceAll_CopiesInput(t *testing.T) {
	r := newTestReducer()
	in := model.DemoTasks(testNow)

	s := r.Reduce(Initial(), ReplaceAll{Tasks: in})
	in[0].Title = "changed"

	assert.Equal(t, "Finish quarterly report", s.Tasks[0].Title)
}

func TestParseView(t *testing.T) {
	tests := []struct {
		name string
		want View
	}{
		{"dashboard", ViewDashboard},
		{"tasks", ViewTasks},
		{"profile", ViewProfile},
		{"settings", ViewSettings},
		{"", ViewDashboard},
		{"analytics", ViewDashboard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseView(tt.name))
		})
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}
