package reducer

import "github.com/nhle/taskmaster/internal/model"

// Action is an intent that Reduce turns into a state transition.
// The set of actions is closed; see the types below.
type Action interface {
	action()
}

// ReplaceAll sets the task list verbatim. Used for hydration.
type ReplaceAll struct {
	Tasks []model.Task
}

// AddTask creates a task from a draft and puts it first.
type AddTask struct {
	Draft model.TaskDraft
}

// UpdateStatus changes the status of one task.
type UpdateStatus struct {
	ID     string
	Status model.Status
}

// MarkForDeletion flags a task for removal without removing it.
type MarkForDeletion struct {
	ID string
}

// CommitDeletion removes a task and clears the deletion mark.
type CommitDeletion struct {
	ID string
}

// CancelDeletion clears the deletion mark if it still names ID.
type CancelDeletion struct {
	ID string
}

// ClearTasks removes every task.
type ClearTasks struct{}

// ToggleSidebar collapses or expands the sidebar.
type ToggleSidebar struct{}

// SetShowAddForm opens or closes the add-task form.
type SetShowAddForm struct {
	Show bool
}

// SetActiveView switches the content screen.
type SetActiveView struct {
	View View
}

// ToggleDarkMode flips the colour scheme.
type ToggleDarkMode struct{}

// SetDarkMode sets the colour scheme. Used for hydration.
type SetDarkMode struct {
	Dark bool
}

func (ReplaceAll) action()      {}
func (AddTask) action()         {}
func (UpdateStatus) action()    {}
func (MarkForDeletion) action() {}
func (CommitDeletion) action()  {}
func (CancelDeletion) action()  {}
func (ClearTasks) action()      {}
func (ToggleSidebar) action()   {}
func (SetShowAddForm) action()  {}
func (SetActiveView) action()   {}
func (ToggleDarkMode) action()  {}
func (SetDarkMode) action()     {}
