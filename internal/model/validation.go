package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the longest title accepted, in characters.
const MaxTitleLength = 200

// DateLayout is the input format for due dates.
const DateLayout = "2006-01-02"

var (
	// ErrEmptyTitle is returned when a task title is empty or blank.
	ErrEmptyTitle = errors.New("title is required")

	// ErrTitleTooLong is returned when a title exceeds MaxTitleLength.
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// ErrInvalidPriority is returned for a priority outside low/medium/high.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatus is returned for a status outside pending/in-progress/completed.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrMissingDueDate is returned when no due date is given.
	ErrMissingDueDate = errors.New("due date is required")

	// ErrDueDateInPast is returned when a new task is due before today.
	ErrDueDateInPast = errors.New("due date must be today or later")
)

// ValidateTitle checks that a title is present and not too long.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if n := utf8.RuneCountInString(title); n > MaxTitleLength {
		return fmt.Errorf("%w: %d > %d", ErrTitleTooLong, n, MaxTitleLength)
	}
	return nil
}

// ValidatePriority checks that p is a known priority.
func ValidatePriority(p Priority) error {
	if !p.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, p)
	}
	return nil
}

// ValidateStatus checks that s is a known status.
func ValidateStatus(s Status) error {
	if !s.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
	return nil
}

// ValidateDueDate checks that due is set and falls on or after the local
// day containing now.
func ValidateDueDate(due, now time.Time) error {
	if due.IsZero() {
		return ErrMissingDueDate
	}
	if due.Before(StartOfDay(now)) {
		return ErrDueDateInPast
	}
	return nil
}

// ParseDueDate parses a YYYY-MM-DD string in the local time zone.
func ParseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingDueDate
	}
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return t, nil
}

// StartOfDay returns midnight of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Validate checks every field of the draft. now anchors the due-date check.
func (d TaskDraft) Validate(now time.Time) error {
	if err := ValidateTitle(d.Title); err != nil {
		return err
	}
	if err := ValidatePriority(d.Priority); err != nil {
		return err
	}
	if err := ValidateStatus(d.Status); err != nil {
		return err
	}
	return ValidateDueDate(d.DueDate, now)
}
