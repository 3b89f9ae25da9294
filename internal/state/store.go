// Package state owns the live dashboard state. A Store is the only writer:
// it runs actions through the reducer one at a time and mirrors the task
// list and the dark-mode flag to persistence after each change.
package state

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/nhle/taskmaster/internal/model"
	"github.com/nhle/taskmaster/internal/reducer"
)

// Persister saves and restores the persisted slices of the state.
type Persister interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
	LoadDarkMode(ctx context.Context) (bool, error)
	SaveDarkMode(ctx context.Context, dark bool) error
}

// Store serializes dispatches and hands out snapshots of the state.
type Store struct {
	mu        sync.Mutex
	state     reducer.State
	reducer   reducer.Reducer
	persister Persister
	logger    *slog.Logger
}

// New creates a Store holding the initial state.
func New(r reducer.Reducer, p Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		state:     reducer.Initial(),
		reducer:   r,
		persister: p,
		logger:    logger,
	}
}

// Hydrate loads the saved tasks and dark-mode flag into the state.
func (s *Store) Hydrate(ctx context.Context) (reducer.State, error) {
	tasks, err := s.persister.LoadTasks(ctx)
	if err != nil {
		return s.Snapshot(), fmt.Errorf("loading tasks: %w", err)
	}
	dark, err := s.persister.LoadDarkMode(ctx)
	if err != nil {
		s.logger.Warn("reading dark mode failed, using light", "err", err)
		dark = false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.reducer.Reduce(s.state, reducer.ReplaceAll{Tasks: tasks})
	s.state = s.reducer.Reduce(s.state, reducer.SetDarkMode{Dark: dark})
	s.logger.Info("hydrated", "tasks", len(tasks), "dark", dark)
	return s.state.Clone(), nil
}

// Dispatch applies a to the state and persists what changed. The returned
// state is a snapshot; it reflects a even when persisting fails.
func (s *Store) Dispatch(ctx context.Context, a reducer.Action) (reducer.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state
	next := s.reducer.Reduce(prev, a)
	s.state = next

	if tasksChanged(prev.Tasks, next.Tasks) {
		if err := s.persister.SaveTasks(ctx, next.Tasks); err != nil {
			s.logger.Error("persisting tasks failed", "action", fmt.Sprintf("%T", a), "err", err)
			return next.Clone(), err
		}
	}
	if prev.IsDarkMode != next.IsDarkMode {
		if err := s.persister.SaveDarkMode(ctx, next.IsDarkMode); err != nil {
			s.logger.Error("persisting dark mode failed", "err", err)
			return next.Clone(), err
		}
	}

	return next.Clone(), nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() reducer.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Accept validates a draft against the store's clock.
func (s *Store) Accept(d model.TaskDraft) error {
	return reducer.Accept(d, s.reducer.Now())
}

// tasksChanged reports whether the reducer produced a different task list.
// The reducer copies the slice on every task mutation, so identity is
// checked first and contents only when the backing arrays differ.
func tasksChanged(prev, next []model.Task) bool {
	if len(prev) != len(next) {
		return true
	}
	if len(prev) == 0 {
		return false
	}
	if &prev[0] == &next[0] {
		return false
	}
	return !slices.EqualFunc(prev, next, func(a, b model.Task) bool {
		return a.ID == b.ID && a.Title == b.Title && a.Priority == b.Priority &&
			a.Status == b.Status && a.DueDate.Equal(b.DueDate) && a.CreatedAt.Equal(b.CreatedAt)
	})
}
