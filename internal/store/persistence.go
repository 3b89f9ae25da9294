package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nhle/taskmaster/internal/model"
)

// Persistence mirrors the task list and the dark-mode flag to a KV.
type Persistence struct {
	kv     KV
	now    func() time.Time
	logger *slog.Logger
}

// NewPersistence returns a Persistence over kv. A nil logger discards output.
func NewPersistence(kv KV, logger *slog.Logger) *Persistence {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Persistence{
		kv:     kv,
		now:    time.Now,
		logger: logger,
	}
}

// LoadTasks returns the saved task list. When nothing is saved it writes the
// demo tasks and returns them, so they are generated only once. A value that
// cannot be read or decoded also yields the demo tasks, but is left in place.
func (p *Persistence) LoadTasks(ctx context.Context) ([]model.Task, error) {
	data, ok, err := p.kv.Get(ctx, KeyTasks)
	if err != nil {
		p.logger.Warn("reading saved tasks failed, using demo tasks", "err", err)
		return p.demoTasks(), nil
	}
	if !ok {
		seed := p.demoTasks()
		if err := p.SaveTasks(ctx, seed); err != nil {
			p.logger.Warn("saving demo tasks failed", "err", err)
		} else {
			p.logger.Info("no saved tasks, seeded demo tasks", "count", len(seed))
		}
		return seed, nil
	}

	tasks, err := DecodeTasks(data)
	if err != nil {
		p.logger.Warn("saved tasks are malformed, using demo tasks", "err", err)
		return p.demoTasks(), nil
	}
	return tasks, nil
}

// SaveTasks writes the full task list. An empty list is never written, so
// a store emptied by deletes still holds its last non-empty list.
func (p *Persistence) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	data, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	if err := p.kv.Set(ctx, KeyTasks, data); err != nil {
		return fmt.Errorf("saving tasks: %w", err)
	}
	p.logger.Debug("saved tasks", "count", len(tasks))
	return nil
}

// LoadDarkMode returns the saved dark-mode flag; only "true" is true.
func (p *Persistence) LoadDarkMode(ctx context.Context) (bool, error) {
	data, ok, err := p.kv.Get(ctx, KeyDarkMode)
	if err != nil {
		return false, fmt.Errorf("loading dark mode: %w", err)
	}
	if !ok {
		return false, nil
	}
	return DecodeBool(data), nil
}

// SaveDarkMode writes the dark-mode flag as "true" or "false".
func (p *Persistence) SaveDarkMode(ctx context.Context, dark bool) error {
	if err := p.kv.Set(ctx, KeyDarkMode, EncodeBool(dark)); err != nil {
		return fmt.Errorf("saving dark mode: %w", err)
	}
	return nil
}

// Export writes the saved task list to w as indented JSON. It writes an
// empty array when nothing is saved.
func (p *Persistence) Export(ctx context.Context, w io.Writer) error {
	data, ok, err := p.kv.Get(ctx, KeyTasks)
	if err != nil {
		return fmt.Errorf("loading tasks for export: %w", err)
	}
	if !ok {
		data = "[]"
	}

	var records []taskRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return fmt.Errorf("decoding tasks for export: %w", err)
	}
	if records == nil {
		records = []taskRecord{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}

// Clear deletes both persisted keys.
func (p *Persistence) Clear(ctx context.Context) error {
	for _, key := range []string{KeyTasks, KeyDarkMode} {
		if err := p.kv.Delete(ctx, key); err != nil {
			return fmt.Errorf("clearing saved data: %w", err)
		}
	}
	p.logger.Info("cleared saved data")
	return nil
}

func (p *Persistence) demoTasks() []model.Task {
	return model.DemoTasks(p.now().UTC().Truncate(time.Millisecond))
}
