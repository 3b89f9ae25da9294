package model

import (
	"testing"
	"time"
)

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	day := 24 * time.Hour

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"exactly now", now, 0},
		{"half a day ahead", now.Add(day / 2), 1},
		{"one day ahead", now.Add(day), 1},
		{"a day and a bit", now.Add(day + time.Minute), 2},
		{"half a day ago", now.Add(-day / 2), 0},
		{"a day and a half ago", now.Add(-day - day/2), -1},
		{"three days ago", now.Add(-3 * day), -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := Task{DueDate: tt.due}
			if got := task.DaysUntilDue(now); got != tt.want {
				t.Errorf("DaysUntilDue = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	late := Task{Status: StatusPending, DueDate: now.Add(-72 * time.Hour)}
	if !late.IsOverdue(now) {
		t.Error("pending task three days late should be overdue")
	}

	late.Status = StatusCompleted
	if late.IsOverdue(now) {
		t.Error("completed tasks are never overdue")
	}
}

func TestStatusNext(t *testing.T) {
	s := StatusPending
	var seen []Status
	for range 3 {
		s = s.Next()
		seen = append(seen, s)
	}
	want := []Status{StatusInProgress, StatusCompleted, StatusPending}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("Next sequence = %v, want %v", seen, want)
		}
	}
}

func TestDemoTasksCoverEveryValue(t *testing.T) {
	now := time.Now()
	tasks := DemoTasks(now)
	if len(tasks) != 4 {
		t.Fatalf("got %d demo tasks, want 4", len(tasks))
	}

	priorities := make(map[Priority]bool)
	statuses := make(map[Status]bool)
	ids := make(map[string]bool)
	for _, task := range tasks {
		priorities[task.Priority] = true
		statuses[task.Status] = true
		if ids[task.ID] {
			t.Errorf("duplicate demo id %s", task.ID)
		}
		ids[task.ID] = true
	}
	for _, p := range Priorities() {
		if !priorities[p] {
			t.Errorf("no demo task with priority %s", p)
		}
	}
	for _, s := range Statuses() {
		if !statuses[s] {
			t.Errorf("no demo task with status %s", s)
		}
	}
}

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(DemoTasks(time.Now()))
	if stats.Total != 4 || stats.Completed != 1 || stats.InProgress != 1 || stats.Pending != 2 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if got := stats.CompletionRate(); got != 25 {
		t.Errorf("CompletionRate = %d, want 25", got)
	}
	if got := (TaskStats{}).CompletionRate(); got != 0 {
		t.Errorf("empty CompletionRate = %d, want 0", got)
	}
}

func TestProfileInitials(t *testing.T) {
	p := Profile{Name: "priya  das"}
	if got := p.Initials(); got != "PD" {
		t.Errorf("Initials = %q, want PD", got)
	}
}
