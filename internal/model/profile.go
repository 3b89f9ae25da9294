package model

import "strings"

// Profile describes the dashboard owner. It is kept in the config file.
type Profile struct {
	Name     string `mapstructure:"name" yaml:"name"`
	Email    string `mapstructure:"email" yaml:"email"`
	Phone    string `mapstructure:"phone" yaml:"phone"`
	Location string `mapstructure:"location" yaml:"location"`
	Bio      string `mapstructure:"bio" yaml:"bio"`
	JoinDate string `mapstructure:"join_date" yaml:"join_date"`
}

// Initials returns the first letter of each word of the name, e.g. "PD".
func (p Profile) Initials() string {
	var b strings.Builder
	for _, part := range strings.Fields(p.Name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// TaskStats summarizes a task list for the profile and header views.
type TaskStats struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int
}

// ComputeStats counts tasks by status.
func ComputeStats(tasks []Task) TaskStats {
	var s TaskStats
	s.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case StatusCompleted:
			s.Completed++
		case StatusInProgress:
			s.InProgress++
		case StatusPending:
			s.Pending++
		}
	}
	return s
}

// CompletionRate returns the completed share in percent, 0 for an empty list.
func (s TaskStats) CompletionRate() int {
	if s.Total == 0 {
		return 0
	}
	return s.Completed * 100 / s.Total
}
