package testutil

import (
	"context"
	"errors"
	"testing"

	"github.com/nhle/taskmaster/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// ErrInjected is returned by FailingKV.
var ErrInjected = errors.New("injected storage failure")

// FailingKV wraps a KV and fails the operations whose flag is set.
type FailingKV struct {
	store.KV
	FailGet bool
	FailSet bool
}

// Get fails when FailGet is set.
func (f *FailingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.FailGet {
		return "", false, ErrInjected
	}
	return f.KV.Get(ctx, key)
}

// Set fails when FailSet is set.
func (f *FailingKV) Set(ctx context.Context, key, value string) error {
	if f.FailSet {
		return ErrInjected
	}
	return f.KV.Set(ctx, key, value)
}
