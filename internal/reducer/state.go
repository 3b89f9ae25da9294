// Package reducer holds the dashboard state and the pure transition
// function over it. Every change to tasks or UI flags is expressed as an
// Action and applied with Reducer.Reduce.
package reducer

import (
	"slices"

	"github.com/nhle/taskmaster/internal/model"
)

// State is the whole dashboard state.
type State struct {
	// Tasks is in display order, newest first.
	Tasks []model.Task

	SidebarCollapsed bool
	ShowAddForm      bool
	ActiveView       View

	// DeletingTaskID names the task that is marked for removal, or "".
	DeletingTaskID string

	IsDarkMode bool
}

// Initial returns the state before hydration.
func Initial() State {
	return State{ActiveView: ViewDashboard}
}

// Clone returns a copy of s that shares no task storage with it.
func (s State) Clone() State {
	s.Tasks = slices.Clone(s.Tasks)
	return s
}

// FindTask returns the task with the given id.
func (s State) FindTask(id string) (model.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.Tasks[i], true
}

// IsDeleting reports whether the task is marked for removal.
func (s State) IsDeleting(id string) bool {
	return id != "" && s.DeletingTaskID == id
}

func (s State) indexOf(id string) int {
	return slices.IndexFunc(s.Tasks, func(t model.Task) bool {
		return t.ID == id
	})
}
