package store

import "context"

// Keys under which the dashboard persists its state.
const (
	KeyTasks    = "taskmaster-tasks"
	KeyDarkMode = "taskmaster-dark-mode"
)

// KV is a durable string key-value store.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
