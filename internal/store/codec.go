package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nhle/taskmaster/internal/model"
)

// isoLayout matches JavaScript's Date.prototype.toISOString.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// taskRecord is the persisted shape of a task: dates travel as
// ISO-8601 strings.
type taskRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	Status    string `json:"status"`
	DueDate   string `json:"dueDate"`
	CreatedAt string `json:"createdAt"`
}

// EncodeTasks serializes tasks to the persisted JSON array form.
func EncodeTasks(tasks []model.Task) (string, error) {
	records := make([]taskRecord, len(tasks))
	for i, t := range tasks {
		records[i] = taskRecord{
			ID:        t.ID,
			Title:     t.Title,
			Priority:  string(t.Priority),
			Status:    string(t.Status),
			DueDate:   formatISO(t.DueDate),
			CreatedAt: formatISO(t.CreatedAt),
		}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling tasks: %w", err)
	}
	return string(data), nil
}

// DecodeTasks parses the persisted JSON array form, reviving dates.
// Records with a blank title or unknown priorities or statuses are rejected.
func DecodeTasks(data string) ([]model.Task, error) {
	var records []taskRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, fmt.Errorf("unmarshaling tasks: %w", err)
	}

	tasks := make([]model.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.ID == "" {
			return nil, fmt.Errorf("task %d: missing id", i)
		}
		if seen[r.ID] {
			return nil, fmt.Errorf("task %d: duplicate id %q", i, r.ID)
		}
		seen[r.ID] = true

		if err := model.ValidateTitle(r.Title); err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
		if err := model.ValidatePriority(model.Priority(r.Priority)); err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
		if err := model.ValidateStatus(model.Status(r.Status)); err != nil {
			return nil, fmt.Errorf("task %s: %w", r.ID, err)
		}
		due, err := parseISO(r.DueDate)
		if err != nil {
			return nil, fmt.Errorf("task %s: dueDate: %w", r.ID, err)
		}
		created, err := parseISO(r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("task %s: createdAt: %w", r.ID, err)
		}

		tasks = append(tasks, model.Task{
			ID:        r.ID,
			Title:     r.Title,
			Priority:  model.Priority(r.Priority),
			Status:    model.Status(r.Status),
			DueDate:   due,
			CreatedAt: created,
		})
	}
	return tasks, nil
}

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

func parseISO(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// EncodeBool renders a flag the way it is persisted.
func EncodeBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// DecodeBool treats exactly "true" as true and anything else as false.
func DecodeBool(s string) bool {
	return s == "true"
}
