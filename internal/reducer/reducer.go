package reducer

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/taskmaster/internal/model"
)

// Reducer applies actions to state. Now and NewID supply the creation
// timestamp and id of new tasks.
type Reducer struct {
	Now   func() time.Time
	NewID func() string
}

// New returns a Reducer using the wall clock and random UUIDs.
func New() Reducer {
	return Reducer{
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}
}

// Accept reports whether the draft may become a task at time now.
// It is the single validation gate for new tasks.
func Accept(d model.TaskDraft, now time.Time) error {
	return d.Validate(now)
}

// Reduce returns the state that follows s after a. It never modifies s.
// Actions that refer to missing tasks, and drafts that fail Accept,
// leave the state unchanged.
func (r Reducer) Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ReplaceAll:
		s.Tasks = slices.Clone(a.Tasks)
		return s

	case AddTask:
		// Timestamps persist at millisecond precision.
		now := r.Now().Truncate(time.Millisecond)
		if Accept(a.Draft, now) != nil {
			return s
		}
		task := a.Draft.Build(r.newUniqueID(s), now)
		tasks := make([]model.Task, 0, len(s.Tasks)+1)
		tasks = append(tasks, task)
		s.Tasks = append(tasks, s.Tasks...)
		s.ShowAddForm = false
		return s

	case UpdateStatus:
		i := s.indexOf(a.ID)
		if i < 0 || !a.Status.IsValid() {
			return s
		}
		s.Tasks = slices.Clone(s.Tasks)
		s.Tasks[i].Status = a.Status
		return s

	case MarkForDeletion:
		s.DeletingTaskID = a.ID
		return s

	case CommitDeletion:
		if i := s.indexOf(a.ID); i >= 0 {
			s.Tasks = slices.Delete(slices.Clone(s.Tasks), i, i+1)
		}
		s.DeletingTaskID = ""
		return s

	case CancelDeletion:
		if s.DeletingTaskID == a.ID {
			s.DeletingTaskID = ""
		}
		return s

	case ClearTasks:
		s.Tasks = nil
		s.DeletingTaskID = ""
		return s

	case ToggleSidebar:
		s.SidebarCollapsed = !s.SidebarCollapsed
		return s

	case SetShowAddForm:
		s.ShowAddForm = a.Show
		return s

	case SetActiveView:
		s.ActiveView = a.View
		return s

	case ToggleDarkMode:
		s.IsDarkMode = !s.IsDarkMode
		return s

	case SetDarkMode:
		s.IsDarkMode = a.Dark
		return s

	default:
		return s
	}
}

// newUniqueID draws ids until one is unused in s.
func (r Reducer) newUniqueID(s State) string {
	for {
		id := r.NewID()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}
