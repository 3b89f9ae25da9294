package model

import "time"

// Priority is the urgency level of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities returns all valid priorities, lowest first.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Label returns the display name of the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return "?"
	}
}

// Status is the progress state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Statuses returns all valid statuses in workflow order.
func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// Label returns the display name of the status.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "?"
	}
}

// Next returns the status that follows s in workflow order, wrapping
// from completed back to pending.
func (s Status) Next() Status {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Task is a single to-do item on the dashboard.
type Task struct {
	// ID is assigned by the store at creation and never changes.
	ID string `json:"id"`

	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	Status   Status   `json:"status"`

	// DueDate is only checked against the current day when the task is created.
	DueDate time.Time `json:"dueDate"`

	// CreatedAt is set by the store at creation and never changes.
	CreatedAt time.Time `json:"createdAt"`
}

// IsCompleted reports whether the task is done.
func (t Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// DaysUntilDue returns the number of days until the task is due, rounded up,
// relative to now. Negative values mean the task is overdue.
func (t Task) DaysUntilDue(now time.Time) int {
	d := t.DueDate.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// IsOverdue reports whether an unfinished task is past its due date.
func (t Task) IsOverdue(now time.Time) bool {
	return !t.IsCompleted() && t.DaysUntilDue(now) < 0
}

// TaskDraft holds the caller-supplied fields of a task that has not been
// created yet. The store fills in ID and CreatedAt.
type TaskDraft struct {
	Title    string
	Priority Priority
	Status   Status
	DueDate  time.Time
}

// Build turns a draft into a task with the given identity.
func (d TaskDraft) Build(id string, createdAt time.Time) Task {
	return Task{
		ID:        id,
		Title:     d.Title,
		Priority:  d.Priority,
		Status:    d.Status,
		DueDate:   d.DueDate,
		CreatedAt: createdAt,
	}
}

// DemoTasks returns the example tasks shown when no saved list exists.
// Together they cover every priority and every status.
func DemoTasks(now time.Time) []Task {
	day := 24 * time.Hour
	return []Task{
		{
			ID:        "1",
			Title:     "Finish quarterly report",
			Priority:  PriorityHigh,
			Status:    StatusInProgress,
			DueDate:   now.Add(3 * day),
			CreatedAt: now,
		},
		{
			ID:        "2",
			Title:     "Review team performance",
			Priority:  PriorityMedium,
			Status:    StatusPending,
			DueDate:   now.Add(7 * day),
			CreatedAt: now,
		},
		{
			ID:        "3",
			Title:     "Update project documentation",
			Priority:  PriorityLow,
			Status:    StatusCompleted,
			DueDate:   now.Add(1 * day),
			CreatedAt: now,
		},
		{
			ID:        "4",
			Title:     "Prepare client presentation",
			Priority:  PriorityHigh,
			Status:    StatusPending,
			DueDate:   now.Add(2 * day),
			CreatedAt: now,
		},
	}
}
